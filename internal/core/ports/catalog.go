package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
)

// CatalogItem is the part of a menu item the fulfillment core needs.
type CatalogItem struct {
	ID    kernel.UUID
	Name  string
	Price kernel.Money
}

// Catalog resolves menu item references. Lookup returns only the items it knows;
// unknown ids are simply absent from the result so display paths can fall back
// instead of failing.
type Catalog interface {
	Lookup(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]CatalogItem, error)
}
