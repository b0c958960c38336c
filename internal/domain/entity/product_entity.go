package entity

import "time"

// Product belongs to one Category and owns its Images.
// Images never outlive their product.
type Product struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"categoryId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Category *Category `json:"category,omitempty"`
	Images   []Image   `json:"images"`
}

// Image fields are opaque values handed over by the caller, typically from an upload.
type Image struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	AssetID   string    `json:"asset_id"`
	PublicID  string    `json:"public_id"`
	URL       string    `json:"url"`
	SecureURL string    `json:"secure_url"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
