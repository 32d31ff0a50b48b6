package entity

import "time"

// Item categories. Carried over from the catalogue taxonomy; exact-match
// filtering only, no hierarchy.
const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryHome        = "home"
	CategorySports      = "sports"
	CategoryLeisure     = "leisure"
	CategoryOther       = "other"
)

// Categories lists the recognized item categories in display order.
var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryHome,
	CategorySports,
	CategoryLeisure,
	CategoryOther,
}

// ValidCategory reports whether c is a recognized category.
func ValidCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Item is a marketplace listing. SellerID is the ownership record: set at
// creation and never reassigned. Inactive items are invisible to listing.
type Item struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Images      []string  `json:"images"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
