package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bookhive/internal/models"
	"github.com/example/bookhive/internal/utils"
)

// UserHandler manages administrative user endpoints.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// ListUsers returns every verified account.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.db.Where("account_verified = ?", true).
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
	})
}

type newAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddNewAdmin registers a pre-verified administrator account. Admins skip the
// OTP flow since an existing admin vouches for them.
func (h *UserHandler) AddNewAdmin(c *fiber.Ctx) error {
	var req newAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields.")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields.")
	}

	var existing models.User
	err := h.db.Where("email = ? AND account_verified = ?", req.Email, true).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User already exists.")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := utils.ValidatePasswordLength(req.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be between 8 and 16 characters.")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password.")
	}

	admin := models.User{
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    passwordHash,
		Role:            models.RoleAdmin,
		AccountVerified: true,
	}

	if err := h.db.Create(&admin).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Admin added successfully.",
		"admin":   admin,
	})
}
