package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/skwermkt/internal/middleware"
	"github.com/example/skwermkt/internal/models"
	"github.com/example/skwermkt/internal/utils"
)

// OfferHandler manages vendor listing endpoints.
type OfferHandler struct {
	db *gorm.DB
}

// NewOfferHandler constructs an OfferHandler.
func NewOfferHandler(db *gorm.DB) *OfferHandler {
	return &OfferHandler{db: db}
}

type offerRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Price       float64            `json:"price"`
	PriceUnit   string             `json:"price_unit"`
	Location    string             `json:"location"`
	Media       []models.MediaItem `json:"media"`
	IsPremium   bool               `json:"is_premium"`
	Keywords    []string           `json:"keywords"`
}

// Create persists a new offer for the authenticated vendor.
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	vendorID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := &utils.Validator{}
	v.MinLen("title", req.Title, 1).MinLen("category", req.Category, 1)
	if err := v.Err(); err != nil {
		return err
	}

	offer := models.Offer{
		VendorID:    vendorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PriceUnit:   req.PriceUnit,
		Location:    req.Location,
		Media:       req.Media,
		Approvals:   []string{},
		Chats:       []string{},
		IsPremium:   req.IsPremium,
		Keywords:    req.Keywords,
	}

	if err := h.db.Create(&offer).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(offer)
}

// Get returns a single offer by ID.
func (h *OfferHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return err
	}

	return c.JSON(offer)
}

// List returns paginated offers.
func (h *OfferHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var offers []models.Offer
	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&offers).Error; err != nil {
		return err
	}

	return c.JSON(offers)
}

// Update modifies an existing offer.
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return err
	}

	var req offerRequest
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
	if req.Media != nil {
		updates["media"] = req.Media
	}
	if req.Keywords != nil {
		updates["keywords"] = req.Keywords
	}

	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&offer).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Offer updated"})
}

// Approve appends the caller's ID to the offer's approvals list.
func (h *OfferHandler) Approve(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return err
	}

	offer.Approvals = append(offer.Approvals, userID.String())
	if err := h.db.Model(&offer).Update("approvals", offer.Approvals).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Offer approved"})
}

// Delete removes an offer by ID.
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Offer{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Offer deleted"})
}
