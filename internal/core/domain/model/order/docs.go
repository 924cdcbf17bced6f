// Package order provides the Order aggregate: the immutable record produced by checkout
// and its status lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding the cart snapshot, comments and milestones
//   - Line: a frozen copy of a cart line with the product name captured at checkout
//   - Status: the table-driven state machine PENDING -> CONFIRMED -> PROCESSING ->
//     READY -> COMPLETED, with CANCELLED reachable from every non-terminal state
//   - Number: the ORD-YYYYMMDD-XXXXXXXX human-readable identifier
//   - PlacedEvent, StatusChangedEvent, CancelledEvent: facts recorded for the outbox
//
// Key business rules:
//   - An order is created only from a non-empty cart and copies its totals verbatim
//   - Only status, manager comment and the confirmed/completed timestamps ever change
//   - A rejected transition mutates nothing and records no event
package order
