// Package render projects the cart store and the product catalog into
// HTML fragments. Rendering is a pure projection: given the same store
// state and the same inputs, every function returns identical bytes, so
// re-rendering after a mutation is always safe.
package render

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"bitykart/internal/cart"
	"bitykart/internal/catalog"
	"bitykart/internal/shopapi"
)

const (
	trendingSize = 6

	fallbackStatus      = "Processing"
	fallbackStatusClass = "pending"
	fallbackOrderTitle  = "Order Items"
	fallbackOrderImage  = "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=60&h=60&fit=crop"

	orderDateLayout = "02/01/2006"
)

// QuantityFunc reports the cart quantity for a product id; 0 when the
// product is not in the cart.
type QuantityFunc func(productID int64) int

type Renderer struct {
	t *template.Template
}

func New() *Renderer {
	return &Renderer{t: template.Must(template.New("fragments").Parse(templateText))}
}

// Control describes the add-or-stepper region of one product card. The
// snapshot fields feed the add button's data attributes so the card can
// be re-added after its entry was removed.
type Control struct {
	ID       int64
	Name     string
	Price    string
	ImageURL string
	Quantity int
}

type card struct {
	Control
	Description string
}

type section struct {
	Slug  string
	Title string
	Cards []template.HTML
}

var sectionDefs = []struct {
	category string
	slug     string
	title    string
}{
	{catalog.CategoryTea, "tea", "Tea"},
	{catalog.CategoryCoffee, "coffee", "Coffee"},
	{catalog.CategoryChips, "chips", "Chips & Snacks"},
	{catalog.CategoryColdDrinks, "colddrinks", "Cold Drinks"},
	{catalog.CategoryDryFruits, "dryfruits", "Dry Fruits"},
	{catalog.CategorySalt, "salt", "Salt"},
	{catalog.CategorySugar, "sugar", "Sugar"},
}

func (r *Renderer) exec(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ProductCard renders one card. Quantity 0 yields the static add
// control, anything above the stepper.
func (r *Renderer) ProductCard(p catalog.Product, qty int) (template.HTML, error) {
	return r.exec("productCard", card{
		Control: Control{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price.String(),
			ImageURL: p.ImageURL,
			Quantity: qty,
		},
		Description: p.Description,
	})
}

// CartControls renders just the button region, used to refresh every
// on-screen instance of a product after a cart mutation.
func (r *Renderer) CartControls(c Control) (template.HTML, error) {
	return r.exec("cartControls", c)
}

// Catalog partitions products into the fixed category sections plus the
// trending bucket, which is the first min(6, len) products in catalog
// order. Products with an unrecognized category land in no section.
// notice, when non-empty, is rendered above the sections (the degraded
// catalog-load path).
func (r *Renderer) Catalog(products []catalog.Product, qty QuantityFunc, notice string) (template.HTML, error) {
	trending := products
	if len(trending) > trendingSize {
		trending = trending[:trendingSize]
	}

	trendingCards := make([]template.HTML, 0, len(trending))
	for _, p := range trending {
		c, err := r.ProductCard(p, qty(p.ID))
		if err != nil {
			return "", err
		}
		trendingCards = append(trendingCards, c)
	}

	sections := make([]section, 0, len(sectionDefs))
	for _, def := range sectionDefs {
		sec := section{Slug: def.slug, Title: def.title}
		for _, p := range products {
			if p.Category != def.category {
				continue
			}
			c, err := r.ProductCard(p, qty(p.ID))
			if err != nil {
				return "", err
			}
			sec.Cards = append(sec.Cards, c)
		}
		sections = append(sections, sec)
	}

	return r.exec("catalog", struct {
		Notice   string
		Trending []template.HTML
		Sections []section
	}{notice, trendingCards, sections})
}

// SearchResults renders cards for the products matching term by name or
// description, case-insensitively.
func (r *Renderer) SearchResults(term string, products []catalog.Product, qty QuantityFunc) (template.HTML, error) {
	cards := make([]template.HTML, 0, 8)
	for _, p := range MatchProducts(products, term) {
		c, err := r.ProductCard(p, qty(p.ID))
		if err != nil {
			return "", err
		}
		cards = append(cards, c)
	}

	return r.exec("searchResults", struct {
		Term  string
		Cards []template.HTML
	}{term, cards})
}

// MatchProducts filters products whose name or description contains
// term, preserving catalog order.
func MatchProducts(products []catalog.Product, term string) []catalog.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	out := make([]catalog.Product, 0, 8)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out
}

type cartItem struct {
	ID        int64
	Name      string
	ImageURL  string
	Price     string
	Quantity  int
	LineTotal string
}

// CartView renders the cart page fragment from the stored entries. An
// empty cart gets the fixed empty message, never an empty container.
func (r *Renderer) CartView(entries []cart.Entry) (template.HTML, error) {
	items := make([]cartItem, 0, len(entries))
	count := 0
	total := decimal.Zero

	for _, e := range entries {
		line := e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
		total = total.Add(line)
		count += e.Quantity
		items = append(items, cartItem{
			ID:        e.ProductID,
			Name:      e.Name,
			ImageURL:  e.ImageURL,
			Price:     e.UnitPrice.String(),
			Quantity:  e.Quantity,
			LineTotal: line.String(),
		})
	}

	return r.exec("cartView", struct {
		Items []cartItem
		Count int
		Total string
	}{items, count, total.String()})
}

// Badge renders the cart item-count indicator.
func (r *Renderer) Badge(count int) (template.HTML, error) {
	return r.exec("badge", count)
}

type orderCard struct {
	ID          int64
	Status      string
	StatusClass string
	Title       string
	ImageURL    string
	ItemsLabel  string
	Date        string
	Total       string
}

// Orders maps order records to summary cards. Absent fields fall back
// to fixed labels; an empty list renders the fixed no-orders message.
func (r *Renderer) Orders(orders []shopapi.Order) (template.HTML, error) {
	cards := make([]orderCard, 0, len(orders))
	for _, o := range orders {
		cards = append(cards, summarize(o))
	}

	return r.exec("orders", struct {
		Orders []orderCard
	}{cards})
}

func summarize(o shopapi.Order) orderCard {
	c := orderCard{
		ID:          o.ID,
		Status:      o.Status,
		StatusClass: strings.ToLower(o.Status),
		Title:       fallbackOrderTitle,
		ImageURL:    fallbackOrderImage,
		ItemsLabel:  "Multiple items",
		Date:        o.OrderDate.Format(orderDateLayout),
		Total:       o.TotalAmount.String(),
	}

	if c.Status == "" {
		c.Status = fallbackStatus
		c.StatusClass = fallbackStatusClass
	}

	if len(o.Items) > 0 {
		first := o.Items[0]
		if first.ProductName != "" {
			c.Title = first.ProductName
		} else {
			c.Title = "Product"
		}
		if first.ImageURL != "" {
			c.ImageURL = first.ImageURL
		}
		c.ItemsLabel = itemCountLabel(len(o.Items))
	}

	return c
}

func itemCountLabel(n int) string {
	return strconv.Itoa(n) + " item(s)"
}

type profileData struct {
	FirstName string
	Name      string
	Email     string
}

// Profile renders the profile fragment; the heading shows the first
// name only, the details keep the full name.
func (r *Renderer) Profile(u shopapi.User) (template.HTML, error) {
	return r.exec("profile", profileData{
		FirstName: FirstName(u.Name),
		Name:      u.Name,
		Email:     u.Email,
	})
}

// Notice renders a user-visible message fragment.
func (r *Renderer) Notice(msg string) (template.HTML, error) {
	return r.exec("notice", msg)
}

// FirstName returns the first space-separated part of a full name, or
// "User" when the name is empty.
func FirstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "User"
	}
	return fields[0]
}
