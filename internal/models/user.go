package models

import "time"

// User roles.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User represents a library member or administrator.
//
// Email is deliberately not unique: registration may leave several unverified
// rows for the same address, and only OTP verification collapses them down to
// one. Application logic guarantees at most one verified row per email.
type User struct {
	BaseModel
	Name            string `json:"name"`
	Email           string `gorm:"index" json:"email"`
	PasswordHash    string `json:"-"`
	Role            string `gorm:"default:User" json:"role"`
	AccountVerified bool   `json:"accountVerified"`

	// Pending OTP verification state, null once verified.
	VerificationCode       *int       `json:"-"`
	VerificationCodeExpire *time.Time `json:"-"`

	// Outstanding password-reset state; only the sha256 of the token is stored.
	ResetPasswordToken  *string    `gorm:"index" json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
}

// ClearVerification nulls the OTP fields after a successful verification.
func (u *User) ClearVerification() {
	u.AccountVerified = true
	u.VerificationCode = nil
	u.VerificationCodeExpire = nil
}

// ClearResetToken nulls the outstanding password-reset state.
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
}
