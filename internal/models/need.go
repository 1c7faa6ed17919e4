package models

import (
	"github.com/google/uuid"
)

// Need is a customer request for a product or service.
type Need struct {
	BaseModel
	CustomerID  uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	PriceUnit   string    `json:"price_unit"`
	Location    string    `json:"location"`
	Chats       []string  `gorm:"serializer:json" json:"chats"`
	Keywords    []string  `gorm:"serializer:json" json:"keywords"`
}
