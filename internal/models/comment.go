package models

import (
	"github.com/google/uuid"
)

// Comment is a user comment attached to an offer.
type Comment struct {
	BaseModel
	OfferID uuid.UUID `gorm:"type:uuid;index" json:"offer_id"`
	UserID  uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Text    string    `json:"text"`
}
