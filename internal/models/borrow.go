package models

import (
	"time"

	"github.com/google/uuid"
)

// Borrow records one lending of a book to a user. User name/email and the
// book title are denormalized so listings do not need joins.
type Borrow struct {
	BaseModel
	UserID    uuid.UUID `gorm:"index" json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	BookID    uuid.UUID `gorm:"index" json:"book_id"`
	BookTitle string    `json:"book_title"`
	Price     float64   `json:"price"`

	BorrowedAt time.Time  `json:"borrowedAt"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnedAt *time.Time `json:"returnDate"`
	Fine       float64    `json:"fine"`
}

// Returned reports whether the book has already come back.
func (b *Borrow) Returned() bool {
	return b.ReturnedAt != nil
}
