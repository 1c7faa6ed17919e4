package models

import (
	"github.com/google/uuid"
)

// MediaItem is a single image or video attached to an offer.
type MediaItem struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Offer is a vendor listing.
type Offer struct {
	BaseModel
	VendorID     uuid.UUID   `gorm:"type:uuid;index" json:"vendor_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Price        float64     `json:"price"`
	PriceUnit    string      `json:"price_unit"`
	Location     string      `json:"location"`
	Media        []MediaItem `gorm:"serializer:json" json:"media"`
	Approvals    []string    `gorm:"serializer:json" json:"approvals"`
	CommentCount int         `json:"comment_count"`
	Chats        []string    `gorm:"serializer:json" json:"chats"`
	IsPremium    bool        `json:"is_premium"`
	Keywords     []string    `gorm:"serializer:json" json:"keywords"`
}
