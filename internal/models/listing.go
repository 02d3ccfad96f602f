package models

import (
	"time"

	"github.com/google/uuid"
)

type ListingCategory string

const (
	ListingCategoryBooks       ListingCategory = "books"
	ListingCategoryElectronics ListingCategory = "electronics"
	ListingCategoryHousing     ListingCategory = "housing"
	ListingCategoryServices    ListingCategory = "services"
	ListingCategoryOther       ListingCategory = "other"
)

// Valid reports whether c is a known category.
func (c ListingCategory) Valid() bool {
	switch c {
	case ListingCategoryBooks, ListingCategoryElectronics, ListingCategoryHousing,
		ListingCategoryServices, ListingCategoryOther:
		return true
	}
	return false
}

type Listing struct {
	ID          uuid.UUID       `db:"id"`
	SellerID    uuid.UUID       `db:"seller_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       float64         `db:"price"`
	Currency    string          `db:"currency"`
	Category    ListingCategory `db:"category"`
	CityID      *uuid.UUID      `db:"city_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
