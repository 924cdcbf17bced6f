// Package ports defines the contracts between the core and its infrastructure:
// repositories, the product catalog, the notification sink and the unit of work.
package ports

import (
	"context"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
// A cart is stored as one row keyed by its owner plus the full set of its lines.
type CartRepository interface {
	// Add persists a new, possibly empty cart.
	// Returns ConflictError if the user already owns a cart.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update replaces the stored line set with the aggregate's current lines.
	// Lines missing from the aggregate are deleted; no per-line diffing is done.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// GetByUser reads the user's cart without locking it.
	// Returns ObjectNotFoundError when the user has no cart.
	GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// GetByUserForUpdate reads the user's cart and holds a row lock on it until the
	// enclosing transaction ends, so concurrent mutations of one cart serialize.
	// Returns ObjectNotFoundError when the user has no cart.
	GetByUserForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)
}
