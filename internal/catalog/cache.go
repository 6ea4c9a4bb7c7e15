package catalog

import (
	"context"
	"errors"
	"sync"
)

// ErrStaleRefresh reports that a refresh finished after a newer one had
// already started; its result was discarded.
var ErrStaleRefresh = errors.New("catalog refresh superseded")

// Lister is satisfied by *Client.
type Lister interface {
	List(ctx context.Context) ([]Product, error)
}

// Cache holds the last good catalog snapshot. Each Refresh call is
// stamped with a generation; a slow fetch that completes after a newer
// refresh began never overwrites the newer data, so navigating away
// from a pending load cannot resurface stale products.
type Cache struct {
	client Lister

	mu       sync.Mutex
	gen      uint64
	applied  uint64
	products []Product
}

func NewCache(client Lister) *Cache {
	return &Cache{client: client}
}

// Refresh fetches the catalog once. On failure the previous snapshot is
// kept and the error returned; the caller degrades to the cached view.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	g := c.gen
	c.mu.Unlock()

	products, err := c.client.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if g < c.gen {
		return ErrStaleRefresh
	}
	c.products = products
	c.applied = g
	return nil
}

// Products returns a copy of the current snapshot, possibly empty.
func (c *Cache) Products() []Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up in the snapshot by id.
func (c *Cache) Get(id int64) (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
