package cmd

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
)

// DemoMenu is the menu served by the memory driver and seeded into postgres with SEED_MENU=true.
func DemoMenu() []ports.CatalogItem {
	return []ports.CatalogItem{
		{ID: kernel.MustUUIDFromString("8d0f3a5e-2b7c-4d1a-9e6f-1a2b3c4d5e01"), Name: "Margherita", Price: 950},
		{ID: kernel.MustUUIDFromString("8d0f3a5e-2b7c-4d1a-9e6f-1a2b3c4d5e02"), Name: "Caesar salad", Price: 780},
		{ID: kernel.MustUUIDFromString("8d0f3a5e-2b7c-4d1a-9e6f-1a2b3c4d5e03"), Name: "Tomato soup", Price: 540},
		{ID: kernel.MustUUIDFromString("8d0f3a5e-2b7c-4d1a-9e6f-1a2b3c4d5e04"), Name: "Tiramisu", Price: 620},
		{ID: kernel.MustUUIDFromString("8d0f3a5e-2b7c-4d1a-9e6f-1a2b3c4d5e05"), Name: "Espresso", Price: 250},
	}
}
