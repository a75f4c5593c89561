package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/bookhive/internal/models"
)

// BookHandler manages the book catalog.
type BookHandler struct {
	db *gorm.DB
}

// NewBookHandler constructs a BookHandler.
func NewBookHandler(db *gorm.DB) *BookHandler {
	return &BookHandler{db: db}
}

// ListBooks returns the whole catalog.
func (h *BookHandler) ListBooks(c *fiber.Ctx) error {
	var books []models.Book
	if err := h.db.Order("created_at desc").Find(&books).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"books":   books,
	})
}

type addBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// AddBook creates a new catalog entry.
func (h *BookHandler) AddBook(c *fiber.Ctx) error {
	var req addBookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please fill all fields.")
	}

	if req.Title == "" || req.Author == "" || req.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please fill all fields.")
	}

	book := models.Book{
		Title:        req.Title,
		Author:       req.Author,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Availability: req.Quantity > 0,
	}

	if err := h.db.Create(&book).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Book added successfully.",
		"book":    book,
	})
}

// DeleteBook removes a catalog entry by ID.
func (h *BookHandler) DeleteBook(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book id.")
	}

	var book models.Book
	if err := h.db.First(&book, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Book not found.")
		}
		return err
	}

	if err := h.db.Delete(&book).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Book deleted successfully.",
	})
}
