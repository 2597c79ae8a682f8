// Package services provides domain services that implement business rules spanning
// more than a single entity of the restaurant domain.
//
// The package includes:
//   - OrderAggregator: derives the order-level status from the dish line items
//   - BillCalculator: prices the dish line items of an order against the catalog
package services
