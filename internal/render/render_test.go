package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitykart/internal/cart"
	"bitykart/internal/catalog"
	"bitykart/internal/shopapi"
)

func product(id int64, name, category, price string) catalog.Product {
	return catalog.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		ImageURL:    "https://img.test/" + name + ".png",
		Category:    category,
	}
}

func noQty(int64) int { return 0 }

func TestProductCardShowsAddButtonWhenNotInCart(t *testing.T) {
	r := New()

	html, err := r.ProductCard(product(7, "Masala Tea", catalog.CategoryTea, "150"), 0)
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, `class="add-to-cart"`)
	assert.Contains(t, s, `data-product-id="7"`)
	assert.Contains(t, s, `data-name="Masala Tea"`)
	assert.Contains(t, s, `data-price="150"`)
	assert.NotContains(t, s, "quantity-controls")
}

func TestProductCardShowsStepperWhenInCart(t *testing.T) {
	r := New()

	html, err := r.ProductCard(product(7, "Masala Tea", catalog.CategoryTea, "150"), 3)
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, `class="quantity-controls"`)
	assert.Contains(t, s, `<span class="quantity-display">3</span>`)
	assert.NotContains(t, s, "add-to-cart")
}

func TestProductCardIsDeterministic(t *testing.T) {
	r := New()
	p := product(7, "Masala Tea", catalog.CategoryTea, "150")

	a, err := r.ProductCard(p, 2)
	require.NoError(t, err)
	b, err := r.ProductCard(p, 2)
	require.NoError(t, err)

	assert.Equal(t, a, b, "re-rendering the same state must produce identical bytes")
}

func TestCatalogPartitionsByCategory(t *testing.T) {
	r := New()

	products := []catalog.Product{
		product(1, "Masala Tea", catalog.CategoryTea, "150"),
		product(2, "Green Tea", catalog.CategoryTea, "200"),
		product(3, "Filter Coffee", catalog.CategoryCoffee, "340"),
		product(4, "Potato Chips", catalog.CategoryChips, "30"),
		product(5, "Mystery Box", "gadgets", "999"),
		product(6, "Lemon Soda", catalog.CategoryColdDrinks, "25"),
		product(7, "Almonds", catalog.CategoryDryFruits, "650"),
		product(8, "Another Mystery", "toys", "50"),
	}

	html, err := r.Catalog(products, noQty, "")
	require.NoError(t, err)
	s := string(html)

	teaGrid := between(t, s, `id="tea-products">`, `</section>`)
	assert.Contains(t, teaGrid, "Masala Tea")
	assert.Contains(t, teaGrid, "Green Tea")
	assert.NotContains(t, teaGrid, "Filter Coffee")

	coffeeGrid := between(t, s, `id="coffee-products">`, `</section>`)
	assert.Contains(t, coffeeGrid, "Filter Coffee")

	for _, slug := range []string{"tea", "coffee", "chips", "colddrinks", "dryfruits", "salt", "sugar"} {
		assert.Contains(t, s, `id="`+slug+`-products"`, "every section renders even when empty")
	}

	saltGrid := between(t, s, `id="salt-products">`, `</section>`)
	assert.NotContains(t, saltGrid, "product-card")

	// Unrecognized categories appear in trending only, never in a section.
	trendingEnd := strings.Index(s, "</section>")
	require.GreaterOrEqual(t, trendingEnd, 0)
	assert.Contains(t, s[:trendingEnd], "Mystery Box")
	assert.NotContains(t, s[trendingEnd:], "Mystery Box")
	assert.NotContains(t, s, "Another Mystery", "past trending, an unknown category lands nowhere")
}

func TestCatalogTrendingIsFirstSix(t *testing.T) {
	r := New()

	products := []catalog.Product{
		product(1, "P1", catalog.CategoryTea, "10"),
		product(2, "P2", catalog.CategoryTea, "10"),
		product(3, "P3", catalog.CategoryTea, "10"),
		product(4, "P4", catalog.CategoryTea, "10"),
		product(5, "P5", catalog.CategoryTea, "10"),
		product(6, "P6", catalog.CategoryTea, "10"),
		product(7, "P7", catalog.CategoryTea, "10"),
	}

	html, err := r.Catalog(products, noQty, "")
	require.NoError(t, err)

	trending := between(t, string(html), `id="trending-products">`, `</section>`)
	assert.Contains(t, trending, `data-name="P6"`)
	assert.NotContains(t, trending, `data-name="P7"`)
}

func TestCatalogTrendingWithFewProducts(t *testing.T) {
	r := New()

	html, err := r.Catalog([]catalog.Product{product(1, "Only One", catalog.CategoryTea, "10")}, noQty, "")
	require.NoError(t, err)

	trending := between(t, string(html), `id="trending-products">`, `</section>`)
	assert.Equal(t, 1, strings.Count(trending, "product-card"))
}

func TestCatalogNotice(t *testing.T) {
	r := New()

	html, err := r.Catalog(nil, noQty, "Error loading products. Please try again.")
	require.NoError(t, err)
	assert.Contains(t, string(html), `<div class="notice">Error loading products. Please try again.</div>`)

	html, err = r.Catalog(nil, noQty, "")
	require.NoError(t, err)
	assert.NotContains(t, string(html), `class="notice"`)
}

func TestSearchResults(t *testing.T) {
	r := New()

	products := []catalog.Product{
		product(1, "Masala Tea", catalog.CategoryTea, "150"),
		product(2, "Green Tea", catalog.CategoryTea, "200"),
		product(3, "Filter Coffee", catalog.CategoryCoffee, "340"),
	}

	html, err := r.SearchResults("tea", products, noQty)
	require.NoError(t, err)
	s := string(html)
	assert.Contains(t, s, "Search Results for &quot;tea&quot; (2 found)")
	assert.Contains(t, s, "Masala Tea")
	assert.NotContains(t, s, "Filter Coffee")

	html, err = r.SearchResults("plutonium", products, noQty)
	require.NoError(t, err)
	assert.Contains(t, string(html), "No products found matching your search.")
}

func TestMatchProducts(t *testing.T) {
	products := []catalog.Product{
		product(1, "Masala Tea", catalog.CategoryTea, "150"),
		product(3, "Filter Coffee", catalog.CategoryCoffee, "340"),
	}
	products[1].Description = "strong south indian tea alternative"

	got := MatchProducts(products, "  TEA ")
	require.Len(t, got, 2, "matches name and description, case-insensitive, trimmed")

	assert.Nil(t, MatchProducts(products, "   "))
}

func TestCartViewEmpty(t *testing.T) {
	r := New()

	html, err := r.CartView(nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Your cart is empty.")
	assert.NotContains(t, string(html), "cart-summary")
}

func TestCartViewItemsAndTotal(t *testing.T) {
	r := New()

	html, err := r.CartView([]cart.Entry{
		{ProductID: 7, Name: "Masala Tea", UnitPrice: decimal.RequireFromString("150"), ImageURL: "t.png", Quantity: 2},
		{ProductID: 9, Name: "Almonds", UnitPrice: decimal.RequireFromString("650"), ImageURL: "a.png", Quantity: 1},
	})
	require.NoError(t, err)
	s := string(html)

	assert.Contains(t, s, "Masala Tea")
	assert.Contains(t, s, "&#8377;300")
	assert.Contains(t, s, "Total (3 item(s))")
	assert.Contains(t, s, "&#8377;950")
}

func TestBadge(t *testing.T) {
	r := New()

	html, err := r.Badge(4)
	require.NoError(t, err)
	assert.Equal(t, `<span class="cart-count">4</span>`, string(html))
}

func TestOrdersEmpty(t *testing.T) {
	r := New()

	html, err := r.Orders(nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), "No orders found.")
}

func TestOrdersCard(t *testing.T) {
	r := New()

	orders := []shopapi.Order{{
		ID:          1001,
		Status:      "Shipped",
		OrderDate:   time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC),
		TotalAmount: decimal.RequireFromString("950"),
		Items: []shopapi.OrderItem{
			{ProductID: 7, ProductName: "Masala Tea", ImageURL: "t.png", Quantity: 2, Price: decimal.RequireFromString("150")},
			{ProductID: 9, ProductName: "Almonds", ImageURL: "a.png", Quantity: 1, Price: decimal.RequireFromString("650")},
		},
	}}

	html, err := r.Orders(orders)
	require.NoError(t, err)
	s := string(html)

	assert.Contains(t, s, "Order #BK1001")
	assert.Contains(t, s, "status-shipped")
	assert.Contains(t, s, "<h4>Masala Tea</h4>")
	assert.Contains(t, s, "2 item(s)")
	assert.Contains(t, s, "Ordered on 05/03/2026")
	assert.Contains(t, s, "&#8377;950")
}

func TestOrdersCardFallbacks(t *testing.T) {
	r := New()

	html, err := r.Orders([]shopapi.Order{{
		ID:          42,
		OrderDate:   time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.RequireFromString("100"),
	}})
	require.NoError(t, err)
	s := string(html)

	assert.Contains(t, s, ">Processing</div>")
	assert.Contains(t, s, "status-pending")
	assert.Contains(t, s, "<h4>Order Items</h4>")
	assert.Contains(t, s, "Multiple items")
	assert.Contains(t, s, "images.unsplash.com")
}

func TestProfile(t *testing.T) {
	r := New()

	html, err := r.Profile(shopapi.User{Name: "Asha Rao", Email: "asha@example.com"})
	require.NoError(t, err)
	s := string(html)

	assert.Contains(t, s, `<h3 class="profile-display-name">Asha</h3>`)
	assert.Contains(t, s, `<p class="detail-name">Asha Rao</p>`)
	assert.Contains(t, s, "asha@example.com")
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Asha", FirstName("Asha Rao"))
	assert.Equal(t, "Asha", FirstName("Asha"))
	assert.Equal(t, "User", FirstName(""))
	assert.Equal(t, "User", FirstName("   "))
}

// between extracts the substring after marker up to the next end token,
// enough to scope assertions to one grid.
func between(t *testing.T, s, marker, end string) string {
	t.Helper()
	i := strings.Index(s, marker)
	require.GreaterOrEqual(t, i, 0, "marker %q not found", marker)
	rest := s[i+len(marker):]
	j := strings.Index(rest, end)
	require.GreaterOrEqual(t, j, 0)
	return rest[:j]
}
