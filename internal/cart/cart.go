// Package cart holds the authoritative view of every shopper's cart.
//
// A cart is an ordered sequence of entries, one per product, each
// carrying the name/price/image snapshot captured when the product was
// first added. The snapshot is deliberately never reconciled with the
// live catalog; a price change after add time does not touch the cart.
package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Entry is one cart line. Quantity is always >= 1; an entry whose
// quantity would drop to 0 is removed instead of being stored.
type Entry struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
	Quantity  int             `json:"quantity"`
}

// Backend persists full cart contents per namespace. Save overwrites
// the previous sequence; Load on an unknown namespace returns an empty
// slice, not an error.
type Backend interface {
	Load(ctx context.Context, namespace string) ([]Entry, error)
	Save(ctx context.Context, namespace string, entries []Entry) error
	Delete(ctx context.Context, namespace string) error
	Ping(ctx context.Context) error
}
