package ports

import (
	"context"

	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
)

// ProductCatalog is the read-only view of the external product catalog.
type ProductCatalog interface {
	// GetProductSnapshot returns the product's id, name, current price and active flag.
	// Returns ObjectNotFoundError for an unknown product.
	GetProductSnapshot(ctx context.Context, id kernel.UUID) (catalog.Product, error)
}
