package models

import (
	"time"
)

// Account roles.
const (
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

// Banner is the storefront banner shown on a vendor page.
type Banner struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// BrandColors holds the vendor storefront palette.
type BrandColors struct {
	Primary       string `json:"primary"`
	Accent        string `json:"accent"`
	Secondary     string `json:"secondary"`
	TopBarTextCol string `json:"topBarTextCol"`
	TopBarBgCol   string `json:"topBarBgCol"`
	BodyBgCol     string `json:"bodyBgCol"`
	BodyTextCol   string `json:"bodyTextCol"`
}

// BrandFonts holds the vendor storefront typography choices.
type BrandFonts struct {
	Title   string `json:"title"`
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Action  string `json:"action"`
}

// User represents a marketplace account, vendor or customer.
//
// The OTP fields double as the challenge slot for both initial email
// verification and password reset: they are either both set or both null,
// and issuing a new challenge overwrites the previous one.
type User struct {
	BaseModel
	Email         string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash  string     `json:"-"`
	Country       string     `json:"country"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	OTP           *string    `json:"-"`
	OTPExpires    *time.Time `json:"-"`
	IsPremium     bool       `json:"is_premium"`
	Loyalists     []string   `gorm:"serializer:json" json:"loyalists"`

	// Vendor storefront profile; null for customers.
	Title  *string      `json:"title,omitempty"`
	Banner *Banner      `gorm:"serializer:json" json:"banner,omitempty"`
	Colors *BrandColors `gorm:"serializer:json" json:"colors,omitempty"`
	Fonts  *BrandFonts  `gorm:"serializer:json" json:"fonts,omitempty"`
	About  *string      `json:"about,omitempty"`
}

// DefaultVendorProfile returns the storefront defaults applied to new
// vendor accounts when the registration payload omits them.
func DefaultVendorProfile() (Banner, BrandColors, BrandFonts) {
	banner := Banner{Type: "image", URL: "/card-banner.jpg"}
	colors := BrandColors{
		Primary:   "#4F7942",
		Accent:    "#ffae00",
		Secondary: "#888888",
	}
	fonts := BrandFonts{
		Title:   "poppins",
		Heading: "poppins",
		Body:    "poppins",
		Action:  "poppins",
	}
	return banner, colors, fonts
}
