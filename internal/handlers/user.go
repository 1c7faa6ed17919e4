package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/skwermkt/internal/models"
	"github.com/example/skwermkt/internal/utils"
)

// UserHandler manages account CRUD endpoints.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetByTitle returns a vendor account by its storefront title.
func (h *UserHandler) GetByTitle(c *fiber.Ctx) error {
	title := c.Params("title")

	var user models.User
	if err := h.db.Where("title = ?", title).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(user)
}

// Get returns a single account by ID.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(user)
}

// List returns all accounts.
func (h *UserHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var users []models.User
	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(users)
}

type updateUserRequest struct {
	Email   *string             `json:"email"`
	Country *string             `json:"country"`
	Title   *string             `json:"title"`
	About   *string             `json:"about"`
	Colors  *models.BrandColors `json:"colors"`
	Fonts   *models.BrandFonts  `json:"fonts"`
}

func (r *updateUserRequest) validate() error {
	v := &utils.Validator{}
	if r.Email != nil {
		v.Email("email", *r.Email)
	}
	if r.Country != nil {
		v.MinLen("country", *r.Country, 1)
	}
	return v.Err()
}

// updates builds the column map; credential, role and OTP fields are never
// touched through this endpoint.
func (r *updateUserRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.Country != nil {
		updates["country"] = *r.Country
	}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.About != nil {
		updates["about"] = *r.About
	}
	if r.Colors != nil {
		updates["colors"] = r.Colors
	}
	if r.Fonts != nil {
		updates["fonts"] = r.Fonts
	}
	return updates
}

// Update modifies profile fields on a single account.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	updates := req.updates()
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "User updated"})
}

type updateManyUsersRequest struct {
	IDs    []string          `json:"ids"`
	Update updateUserRequest `json:"update"`
}

// UpdateMany applies the same profile update to a set of accounts.
func (h *UserHandler) UpdateMany(c *fiber.Ctx) error {
	var req updateManyUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.IDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "ids are required")
	}
	if err := req.Update.validate(); err != nil {
		return err
	}

	updates := req.Update.updates()
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&models.User{}).Where("id IN ?", req.IDs).
		Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Users updated"})
}

// Delete removes a single account.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

// DeleteAll removes every account.
func (h *UserHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.db.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "All users deleted"})
}
