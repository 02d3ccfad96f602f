package dto

type CreateListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	CityID      *string `json:"city_id"`
}

type ListingResponse struct {
	ID          string  `json:"id"`
	SellerID    string  `json:"seller_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	CityID      *string `json:"city_id,omitempty"`
	Saved       bool    `json:"saved"`
	CreatedAt   string  `json:"created_at"`
}

type SavedResponse struct {
	ListingID string `json:"listing_id"`
	Saved     bool   `json:"saved"`
	Backend   string `json:"backend"`
}
