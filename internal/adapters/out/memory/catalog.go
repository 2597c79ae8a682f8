package memory

import (
	"context"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
)

// Catalog is a fixed in-process menu implementing ports.Catalog.
type Catalog struct {
	mu    sync.RWMutex
	items map[kernel.UUID]ports.CatalogItem
}

func NewCatalog(items ...ports.CatalogItem) *Catalog {
	c := &Catalog{items: make(map[kernel.UUID]ports.CatalogItem, len(items))}
	c.Put(items...)
	return c
}

// Put adds or replaces menu items.
func (c *Catalog) Put(items ...ports.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		c.items[item.ID] = item
	}
}

func (c *Catalog) Lookup(_ context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.CatalogItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[kernel.UUID]ports.CatalogItem, len(ids))
	for _, id := range ids {
		if item, ok := c.items[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}
