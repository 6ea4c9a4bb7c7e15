package devapi

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type Order struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"-"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []OrderItem     `json:"orderItems"`
}

type OrderStore struct {
	mu     sync.RWMutex
	nextID int64
	byUser map[string][]Order
}

func NewOrderStore() *OrderStore {
	// Ids start above 1000 so order numbers read like the real thing.
	return &OrderStore{nextID: 1001, byUser: make(map[string][]Order)}
}

func (s *OrderStore) Create(userID string, items []OrderItem, total decimal.Decimal) Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := Order{
		ID:          s.nextID,
		UserID:      userID,
		Status:      "Processing",
		OrderDate:   time.Now().UTC(),
		TotalAmount: total,
		Items:       items,
	}
	s.nextID++
	s.byUser[userID] = append(s.byUser[userID], o)
	return o
}

// ByUser returns the user's orders in placement order, or ok=false when
// the user has none.
func (s *OrderStore) ByUser(userID string) ([]Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders, ok := s.byUser[userID]
	if !ok || len(orders) == 0 {
		return nil, false
	}
	out := make([]Order, len(orders))
	copy(out, orders)
	return out, true
}
