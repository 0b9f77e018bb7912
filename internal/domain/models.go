package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is the access token granted to the app for one shop.
// Shop is unique: a re-install overwrites Token in place.
type Token struct {
	ID        uuid.UUID
	Shop      string // e.g. example.myshopify.com
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is one card of the storefront grid
type Product struct {
	ID          string
	Title       string
	Description string
	ImageSrc    string // empty when the product has no image
}

// HasImage reports whether the card should render an image block
func (p Product) HasImage() bool {
	return p.ImageSrc != ""
}
