// Package order provides the Order aggregate of the fulfillment workflow together with
// its embedded Dish line items and their state machines.
//
// Key business rules:
//   - An order is placed by a waiter for a table with at least one dish
//   - Dishes move order -> prepare -> prepared independently of each other
//   - The order-level status is derived from the dishes (services.OrderAggregator);
//     only the final Prepared -> Served step is an explicit waiter action
//   - Orders are never deleted by the workflow
package order
