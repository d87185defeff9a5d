package domain

import "time"

// Product : catalogue boutique, lecture seule côté service.
// L'administration du catalogue se fait ailleurs.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         int64     `json:"price"` // En centimes, pour éviter les flottants
	ImageURL      string    `json:"imageUrl,omitempty"`
	Category      string    `json:"category"`
	IsPopular     bool      `json:"isPopular"`
	IsRecommended bool      `json:"isRecommended"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProductFilter restreint le listing du catalogue.
type ProductFilter struct {
	Category        string
	OnlyPopular     bool
	OnlyRecommended bool
	Limit           int
}
