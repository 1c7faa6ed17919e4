package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/skwermkt/internal/middleware"
	"github.com/example/skwermkt/internal/models"
	"github.com/example/skwermkt/internal/utils"
)

// CommentHandler manages comments attached to offers.
type CommentHandler struct {
	db *gorm.DB
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

type commentRequest struct {
	Text string `json:"text"`
}

// Create attaches a comment to an offer and bumps its comment counter.
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	offerID, err := uuid.Parse(c.Params("offerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid offer id")
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := &utils.Validator{}
	v.MinLen("text", req.Text, 1)
	if err := v.Err(); err != nil {
		return err
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", offerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return err
	}

	comment := models.Comment{
		OfferID: offerID,
		UserID:  userID,
		Text:    req.Text,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Offer{}).Where("id = ?", offerID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListByOffer returns all comments for an offer.
func (h *CommentHandler) ListByOffer(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("offerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid offer id")
	}

	var comments []models.Comment
	if err := h.db.Where("offer_id = ?", offerID).Order("created_at asc").
		Find(&comments).Error; err != nil {
		return err
	}

	return c.JSON(comments)
}

// Delete removes a comment and decrements the offer's comment counter.
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("offerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid offer id")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", offerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "id = ? AND offer_id = ?", id, offerID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Offer{}).
			Where("id = ? AND comment_count > 0", offerID).
			Update("comment_count", gorm.Expr("comment_count - 1")).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
