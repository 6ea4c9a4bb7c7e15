package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// Store serializes all cart mutations behind one mutex so that the
// read-modify-write against the backend never loses an update, and
// persists the full cart before any mutation returns.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Add increments the entry for productID if present, otherwise appends
// a new entry with quantity 1 carrying the given snapshot. The snapshot
// arguments are stored as given; there is no validation layer.
func (s *Store) Add(ctx context.Context, ns string, productID int64, name string, price decimal.Decimal, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.backend.Load(ctx, ns)
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, Entry{
			ProductID: productID,
			Name:      name,
			UnitPrice: price,
			ImageURL:  imageURL,
			Quantity:  1,
		})
	}

	return s.backend.Save(ctx, ns, entries)
}

// Increment bumps an existing entry by one. Unknown products are a
// no-op: nothing is stored and no error is returned.
func (s *Store) Increment(ctx context.Context, ns string, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.backend.Load(ctx, ns)
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity++
			return s.backend.Save(ctx, ns, entries)
		}
	}
	return nil
}

// Decrement lowers an existing entry by one and removes the entry
// entirely when its quantity reaches 0. Unknown products are a no-op.
func (s *Store) Decrement(ctx context.Context, ns string, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.backend.Load(ctx, ns)
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].ProductID != productID {
			continue
		}
		entries[i].Quantity--
		if entries[i].Quantity <= 0 {
			entries = append(entries[:i], entries[i+1:]...)
		}
		return s.backend.Save(ctx, ns, entries)
	}
	return nil
}

// Remove drops the entry regardless of its quantity.
func (s *Store) Remove(ctx context.Context, ns string, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.backend.Load(ctx, ns)
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].ProductID == productID {
			entries = append(entries[:i], entries[i+1:]...)
			return s.backend.Save(ctx, ns, entries)
		}
	}
	return nil
}

// Quantity reports the stored quantity for productID, 0 when absent.
func (s *Store) Quantity(ctx context.Context, ns string, productID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.backend.Load(ctx, ns)
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		if e.ProductID == productID {
			return e.Quantity, nil
		}
	}
	return 0, nil
}

// Entries returns the cart in insertion order.
func (s *Store) Entries(ctx context.Context, ns string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Load(ctx, ns)
}

// Clear empties the cart. Invoked on logout.
func (s *Store) Clear(ctx context.Context, ns string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Delete(ctx, ns)
}

// ItemCount is the sum of all quantities, for the badge indicator.
func (s *Store) ItemCount(ctx context.Context, ns string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.backend.Load(ctx, ns)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, e := range entries {
		n += e.Quantity
	}
	return n, nil
}

// TotalPrice is the sum of quantity x unit price across all entries,
// computed from the stored snapshots.
func (s *Store) TotalPrice(ctx context.Context, ns string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.backend.Load(ctx, ns)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
