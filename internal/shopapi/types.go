// Package shopapi is the typed client for the remote Bity Kart API:
// user registration and login, the user profile, and order placement
// and history. The catalog lives in package catalog.
package shopapi

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderItem is the shape order placement expects: the product id with
// the quantity and snapshot price taken from the cart.
type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type Order struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []OrderItem     `json:"orderItems"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is what a successful login or registration yields: the user
// record plus the bearer token for subsequent calls.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type placeOrderReq struct {
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
