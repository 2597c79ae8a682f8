package memory_test

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
)

func memoryItem(id kernel.UUID, name string, price kernel.Money) ports.CatalogItem {
	return ports.CatalogItem{ID: id, Name: name, Price: price}
}
