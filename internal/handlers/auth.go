package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bookhive/internal/config"
	"github.com/example/bookhive/internal/middleware"
	"github.com/example/bookhive/internal/models"
	"github.com/example/bookhive/internal/services"
	"github.com/example/bookhive/internal/utils"
)

// Registration attempts allowed per email before support has to step in.
const maxRegistrationAttempts = 5

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer services.EmailSender
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer services.EmailSender) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, mailer: mailer}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unverified account and emails a verification code.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields.")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields.")
	}

	var verified models.User
	err := h.db.Where("email = ? AND account_verified = ?", req.Email, true).First(&verified).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User already exists.")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	// Best-effort cap: the count is read before the insert, so concurrent
	// registrations can momentarily exceed it.
	var attempts int64
	if err := h.db.Model(&models.User{}).
		Where("email = ? AND account_verified = ?", req.Email, false).
		Count(&attempts).Error; err != nil {
		return err
	}
	if attempts >= maxRegistrationAttempts {
		return fiber.NewError(fiber.StatusBadRequest,
			"You have exceeded the number of registration attempts. Please contact support.")
	}

	if err := utils.ValidatePasswordLength(req.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be between 8 and 16 characters.")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password.")
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate verification code.")
	}
	expire := time.Now().Add(h.cfg.OTPExpires)

	user := models.User{
		Name:                   req.Name,
		Email:                  req.Email,
		PasswordHash:           passwordHash,
		Role:                   models.RoleUser,
		AccountVerified:        false,
		VerificationCode:       &code,
		VerificationCodeExpire: &expire,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	// The unverified record stays on delivery failure so the attempt still
	// counts toward the cap.
	if err := h.mailer.SendVerificationCode(user.Email, code); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Verification code failed to send.")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Verification code sent successfully.",
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP promotes the newest unverified record to verified and removes
// superseded registration attempts for the same email.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email or otp is missing.")
	}

	if req.Email == "" || req.OTP == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email or otp is missing.")
	}

	var entries []models.User
	if err := h.db.Where("email = ? AND account_verified = ?", req.Email, false).
		Order("created_at desc").
		Find(&entries).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error.")
	}

	if len(entries) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found.")
	}

	user := entries[0]
	if len(entries) > 1 {
		if err := h.db.
			Where("id <> ? AND email = ? AND account_verified = ?", user.ID, req.Email, false).
			Delete(&models.User{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Internal server error.")
		}
	}

	otp, err := strconv.Atoi(req.OTP)
	if err != nil || user.VerificationCode == nil || *user.VerificationCode != otp {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid OTP.")
	}

	if user.VerificationCodeExpire == nil || time.Now().After(*user.VerificationCodeExpire) {
		return fiber.NewError(fiber.StatusBadRequest, "OTP expired.")
	}

	user.ClearVerification()
	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"account_verified":         true,
		"verification_code":        nil,
		"verification_code_expire": nil,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error.")
	}

	return h.sendSession(c, &user, "Account Verified.")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a verified user. Unknown emails and wrong passwords
// produce the identical message so accounts cannot be enumerated.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields.")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields.")
	}

	var user models.User
	err := h.db.Where("email = ? AND account_verified = ?", req.Email, true).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email or password.")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid email or password.")
	}

	return h.sendSession(c, &user, "User login successfully.")
}

// Logout clears the session cookie. Idempotent.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now(),
		HTTPOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: fiber.CookieSameSiteNoneMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully.",
	})
}

// Me returns the profile the auth middleware attached to the request.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "User is not authenticated.")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a time-boxed reset token and emails the recovery
// link. Only the sha256 of the token is persisted.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required.")
	}

	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required.")
	}

	var user models.User
	err := h.db.Where("email = ? AND account_verified = ?", req.Email, true).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email.")
		}
		return err
	}

	token, tokenHash, err := utils.GenerateResetToken()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate reset token.")
	}
	expire := time.Now().Add(h.cfg.ResetExpires)

	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":  tokenHash,
		"reset_password_expire": expire,
	}).Error; err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", h.cfg.FrontendURL, token)

	if err := h.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		// Roll back so a token that was never delivered cannot linger.
		h.db.Model(&user).Updates(map[string]interface{}{
			"reset_password_token":  nil,
			"reset_password_expire": nil,
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Recovery email failed to send.")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Email sent to %s successfully.", user.Email),
	})
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword consumes a reset token and replaces the stored credential.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	tokenHash := utils.HashResetToken(c.Params("token"))

	var user models.User
	err := h.db.Where("reset_password_token = ? AND reset_password_expire > ?", tokenHash, time.Now()).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Reset password token is invalid or has been expired.")
		}
		return err
	}

	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Password & confirm password do not match.")
	}

	if req.Password != req.ConfirmPassword {
		return fiber.NewError(fiber.StatusBadRequest, "Password & confirm password do not match.")
	}

	if err := utils.ValidatePasswordLength(req.Password, req.ConfirmPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be between 8 and 16 characters.")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password.")
	}

	user.PasswordHash = passwordHash
	user.ClearResetToken()
	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"password_hash":         passwordHash,
		"reset_password_token":  nil,
		"reset_password_expire": nil,
	}).Error; err != nil {
		return err
	}

	return h.sendSession(c, &user, "Password reset successfully.")
}

type updatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// UpdatePassword changes the password of the authenticated user. No new
// session is issued.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "User is not authenticated.")
	}

	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields.")
	}

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmNewPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields.")
	}

	if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return fiber.NewError(fiber.StatusBadRequest, "Current password is incorrect.")
	}

	if err := utils.ValidatePasswordLength(req.NewPassword, req.ConfirmNewPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be between 8 and 16 characters.")
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return fiber.NewError(fiber.StatusBadRequest, "New password and confirm new password do not match.")
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password.")
	}

	if err := h.db.Model(user).Update("password_hash", passwordHash).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password updated.",
	})
}

// sendSession issues the session JWT as an HTTP-only cookie and echoes the
// profile in the body.
func (h *AuthHandler) sendSession(c *fiber.Ctx, user *models.User, message string) error {
	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate session token.")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.cfg.CookieExpires),
		HTTPOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: fiber.CookieSameSiteNoneMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"user":    user,
		"token":   token,
	})
}
