package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/bookhive/internal/config"
	"github.com/example/bookhive/internal/middleware"
	"github.com/example/bookhive/internal/models"
)

// BorrowHandler manages lending records.
type BorrowHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewBorrowHandler constructs a BorrowHandler.
func NewBorrowHandler(db *gorm.DB, cfg *config.Config) *BorrowHandler {
	return &BorrowHandler{db: db, cfg: cfg}
}

type borrowRequest struct {
	Email string `json:"email"`
}

// RecordBorrow lends the book in :id to the verified user named by email.
func (h *BorrowHandler) RecordBorrow(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book id.")
	}

	var req borrowRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required.")
	}
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required.")
	}

	var book models.Book
	if err := h.db.First(&book, "id = ?", bookID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Book not found.")
		}
		return err
	}

	if book.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Book not available.")
	}

	var user models.User
	if err := h.db.Where("email = ? AND account_verified = ?", req.Email, true).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found.")
		}
		return err
	}

	var outstanding models.Borrow
	err = h.db.Where("user_id = ? AND book_id = ? AND returned_at IS NULL", user.ID, book.ID).
		First(&outstanding).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Book already borrowed.")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	now := time.Now()
	borrow := models.Borrow{
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		BookID:     book.ID,
		BookTitle:  book.Title,
		Price:      book.Price,
		BorrowedAt: now,
		DueDate:    now.Add(h.cfg.BorrowPeriod),
	}

	if err := h.db.Create(&borrow).Error; err != nil {
		return err
	}

	book.Quantity--
	book.Availability = book.Quantity > 0
	if err := h.db.Model(&book).Updates(map[string]interface{}{
		"quantity":     book.Quantity,
		"availability": book.Availability,
	}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Borrowed book recorded successfully.",
	})
}

// ReturnBorrow marks the borrow of book :id by the given user as returned and
// charges an hourly fine for overdue returns.
func (h *BorrowHandler) ReturnBorrow(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book id.")
	}

	var req borrowRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required.")
	}
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required.")
	}

	var user models.User
	if err := h.db.Where("email = ? AND account_verified = ?", req.Email, true).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found.")
		}
		return err
	}

	var borrow models.Borrow
	err = h.db.Where("user_id = ? AND book_id = ? AND returned_at IS NULL", user.ID, bookID).
		First(&borrow).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "You have not borrowed this book.")
		}
		return err
	}

	now := time.Now()
	fine := h.calculateFine(borrow.DueDate, now)

	if err := h.db.Model(&borrow).Updates(map[string]interface{}{
		"returned_at": now,
		"fine":        fine,
	}).Error; err != nil {
		return err
	}

	var book models.Book
	if err := h.db.First(&book, "id = ?", bookID).Error; err == nil {
		book.Quantity++
		book.Availability = true
		if err := h.db.Model(&book).Updates(map[string]interface{}{
			"quantity":     book.Quantity,
			"availability": book.Availability,
		}).Error; err != nil {
			return err
		}
	}

	message := "The book has been returned successfully."
	if fine > 0 {
		message = "The book has been returned with a fine."
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"fine":    fine,
	})
}

// MyBorrowedBooks lists the caller's borrow records.
func (h *BorrowHandler) MyBorrowedBooks(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "User is not authenticated.")
	}

	var borrows []models.Borrow
	if err := h.db.Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&borrows).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"borrowedBooks": borrows,
	})
}

// AllBorrowedBooks lists every borrow record for administrators.
func (h *BorrowHandler) AllBorrowedBooks(c *fiber.Ctx) error {
	var borrows []models.Borrow
	if err := h.db.Order("created_at desc").Find(&borrows).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"borrowedBooks": borrows,
	})
}

func (h *BorrowHandler) calculateFine(dueDate, returnedAt time.Time) float64 {
	if !returnedAt.After(dueDate) {
		return 0
	}
	overdueHours := returnedAt.Sub(dueDate).Hours()
	return float64(int(overdueHours)) * h.cfg.FinePerHour
}
