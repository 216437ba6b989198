package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry is a unique (user, package) pair toggled from the storefront.
type WishlistEntry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	PackageID string    `db:"package_id" json:"package_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WishlistItem is a wishlist entry joined with the catalog card fields the
// account page renders.
type WishlistItem struct {
	WishlistEntry
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	Country     string  `json:"country"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
}
