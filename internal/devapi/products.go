package devapi

import (
	"github.com/shopspring/decimal"

	"bitykart/internal/catalog"
)

// SeedProducts returns the demo catalog, one or more products per
// category tag. Order matters: the storefront's trending section is the
// first six.
func SeedProducts() []catalog.Product {
	p := func(id int64, name, desc string, price int64, img, cat string) catalog.Product {
		return catalog.Product{
			ID:          id,
			Name:        name,
			Description: desc,
			Price:       decimal.NewFromInt(price),
			ImageURL:    img,
			Category:    cat,
		}
	}

	return []catalog.Product{
		p(1, "Masala Tea", "Spiced black tea blend", 150, "https://images.example/masala-tea.jpg", catalog.CategoryTea),
		p(2, "Green Tea", "Loose leaf green tea", 220, "https://images.example/green-tea.jpg", catalog.CategoryTea),
		p(3, "Filter Coffee", "South Indian filter blend", 340, "https://images.example/filter-coffee.jpg", catalog.CategoryCoffee),
		p(4, "Instant Coffee", "100g instant coffee jar", 280, "https://images.example/instant-coffee.jpg", catalog.CategoryCoffee),
		p(5, "Salted Chips", "Classic salted potato chips", 40, "https://images.example/salted-chips.jpg", catalog.CategoryChips),
		p(6, "Masala Chips", "Spicy masala potato chips", 45, "https://images.example/masala-chips.jpg", catalog.CategoryChips),
		p(7, "Cola", "750ml cola bottle", 60, "https://images.example/cola.jpg", catalog.CategoryColdDrinks),
		p(8, "Lemon Soda", "Fizzy lemon drink", 50, "https://images.example/lemon-soda.jpg", catalog.CategoryColdDrinks),
		p(9, "Almonds", "500g premium almonds", 650, "https://images.example/almonds.jpg", catalog.CategoryDryFruits),
		p(10, "Cashews", "500g whole cashews", 720, "https://images.example/cashews.jpg", catalog.CategoryDryFruits),
		p(11, "Rock Salt", "1kg rock salt", 85, "https://images.example/rock-salt.jpg", catalog.CategorySalt),
		p(12, "Brown Sugar", "1kg brown sugar", 95, "https://images.example/brown-sugar.jpg", catalog.CategorySugar),
	}
}
