package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/bookhive/internal/models"
)

// PYQHandler manages previous-year-question documents.
type PYQHandler struct {
	db *gorm.DB
}

// NewPYQHandler constructs a PYQHandler.
func NewPYQHandler(db *gorm.DB) *PYQHandler {
	return &PYQHandler{db: db}
}

// ListPYQs returns all documents, newest first.
func (h *PYQHandler) ListPYQs(c *fiber.Ctx) error {
	var pyqs []models.PYQ
	if err := h.db.Order("year desc, created_at desc").Find(&pyqs).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"pyqs":    pyqs,
	})
}

type addPYQRequest struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Year    int    `json:"year"`
	FileURL string `json:"fileUrl"`
}

// AddPYQ stores a new document reference.
func (h *PYQHandler) AddPYQ(c *fiber.Ctx) error {
	var req addPYQRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please fill all fields.")
	}

	if req.Title == "" || req.Subject == "" || req.FileURL == "" || req.Year == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Please fill all fields.")
	}

	pyq := models.PYQ{
		Title:   req.Title,
		Subject: req.Subject,
		Year:    req.Year,
		FileURL: req.FileURL,
	}

	if err := h.db.Create(&pyq).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "PYQ added successfully.",
		"pyq":     pyq,
	})
}

// DeletePYQ removes a document by ID.
func (h *PYQHandler) DeletePYQ(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid pyq id.")
	}

	var pyq models.PYQ
	if err := h.db.First(&pyq, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "PYQ not found.")
		}
		return err
	}

	if err := h.db.Delete(&pyq).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "PYQ deleted successfully.",
	})
}
