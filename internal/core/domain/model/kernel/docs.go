// Package kernel provides the shared domain primitives of the restaurant service.
//
// The package includes:
//   - UUID: identity value object for orders, dishes, tables, waiters and kitchen actors
//   - Quantity: a validated positive count of a catalog item on an order
//   - Money: an amount in minor currency units used for bills
//
// The primitives are immutable and safe for concurrent use.
package kernel
