package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/skwermkt/internal/middleware"
	"github.com/example/skwermkt/internal/models"
	"github.com/example/skwermkt/internal/utils"
)

// NeedHandler manages customer request endpoints.
type NeedHandler struct {
	db *gorm.DB
}

// NewNeedHandler constructs a NeedHandler.
func NewNeedHandler(db *gorm.DB) *NeedHandler {
	return &NeedHandler{db: db}
}

type needRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	PriceUnit   string   `json:"price_unit"`
	Location    string   `json:"location"`
	Keywords    []string `json:"keywords"`
}

// Create persists a new need for the authenticated customer.
func (h *NeedHandler) Create(c *fiber.Ctx) error {
	customerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req needRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := &utils.Validator{}
	v.MinLen("title", req.Title, 1).MinLen("category", req.Category, 1)
	if err := v.Err(); err != nil {
		return err
	}

	need := models.Need{
		CustomerID:  customerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PriceUnit:   req.PriceUnit,
		Location:    req.Location,
		Chats:       []string{},
		Keywords:    req.Keywords,
	}

	if err := h.db.Create(&need).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(need)
}

// Get returns a single need by ID.
func (h *NeedHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var need models.Need
	if err := h.db.First(&need, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "need not found")
		}
		return err
	}

	return c.JSON(need)
}

// List returns paginated needs.
func (h *NeedHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var needs []models.Need
	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&needs).Error; err != nil {
		return err
	}

	return c.JSON(needs)
}

// Update modifies an existing need.
func (h *NeedHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var need models.Need
	if err := h.db.First(&need, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "need not found")
		}
		return err
	}

	var req needRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Price != 0 {
		updates["price"] = req.Price
	}
	if req.PriceUnit != "" {
		updates["price_unit"] = req.PriceUnit
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Keywords != nil {
		updates["keywords"] = req.Keywords
	}

	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&need).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Need updated"})
}

// Delete removes a need by ID.
func (h *NeedHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Need{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Need deleted"})
}
