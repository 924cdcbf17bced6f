package ports

import (
	"context"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order with all of its lines.
	// Returns ConflictError if the order number is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable part of an order: status, manager comment and milestones.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines. Returns ObjectNotFoundError if absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends. Status
	// transitions read through it so that two concurrent transitions from the same
	// state cannot both commit.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable number.
	GetByNumber(ctx context.Context, number order.Number) (*order.Order, error)

	// ExistsByNumber reports whether the number is already taken.
	ExistsByNumber(ctx context.Context, number order.Number) (bool, error)

	// GetByUser lists a user's orders, newest first.
	GetByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)
}
