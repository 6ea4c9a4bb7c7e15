// Package catalog models the remote, read-only product list and keeps
// a cached snapshot of it for rendering.
package catalog

import "github.com/shopspring/decimal"

// Product mirrors the remote catalog record. The storefront never
// mutates products; the cart stores its own snapshot of name, price
// and image at add time.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
}

// Category tags as the backend emits them. The casing is uneven on the
// wire (only Tea is capitalized), so matching is exact, not normalized.
const (
	CategoryTea        = "Tea"
	CategoryCoffee     = "coffee"
	CategoryChips      = "chips"
	CategoryColdDrinks = "cold-drinks"
	CategoryDryFruits  = "dry-fruits"
	CategorySalt       = "salt"
	CategorySugar      = "sugar"
)

// Categories lists the recognized tags in display order. Products
// carrying any other tag appear in no category section.
func Categories() []string {
	return []string{
		CategoryTea,
		CategoryCoffee,
		CategoryChips,
		CategoryColdDrinks,
		CategoryDryFruits,
		CategorySalt,
		CategorySugar,
	}
}
