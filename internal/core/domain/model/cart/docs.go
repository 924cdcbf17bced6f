// Package cart implements the per-user shopping cart aggregate.
//
// A Cart exclusively owns its lines. Each line locks the unit price observed when the
// product was first added; later catalog price changes reach the cart only through
// SyncPrices. Totals are derived: every mutation rebuilds TotalAmount and
// TotalItemCount from the complete line set, so they always equal
// Σ(price × quantity) and Σ(quantity).
//
// Key business rules:
//   - At most one line per product; adding a present product merges quantities
//   - Line quantity is at least 1 and at most MaxLineQuantity; setting a quantity
//     of 0 or less removes the line
//   - Removing an absent line is a no-op
//   - Only active products may be added
package cart
