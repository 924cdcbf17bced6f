// Package kernel provides the value objects shared by the cart and order aggregates.
//
// The package includes:
//   - UUID: identifier for carts, orders, users and products, validated against the nil UUID
//   - Money: a non-negative decimal amount used for locked prices and totals
//
// Both types are immutable and safe for concurrent use.
package kernel
