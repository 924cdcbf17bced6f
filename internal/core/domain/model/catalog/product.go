// Package catalog holds the read-only product snapshot the core receives from the
// catalog. Catalog management itself lives outside this service.
package catalog

import (
	"errors"
	"strings"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"
	"ordercore/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a point-in-time view of a catalog product: identity, display name,
// current price and whether it can be purchased right now.
type Product struct {
	id       kernel.UUID
	name     string
	price    kernel.Money
	isActive bool

	guard guard.ConstructorGuard
}

func NewProduct(id kernel.UUID, name string, price kernel.Money, isActive bool) (Product, error) {
	if err := id.Validate(); err != nil {
		return Product{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, errs.NewValueIsRequiredError("product name")
	}

	return Product{
		id:       id,
		name:     name,
		price:    price,
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p Product) ID() kernel.UUID {
	return p.id
}

func (p Product) Name() string {
	return p.name
}

func (p Product) Price() kernel.Money {
	return p.price
}

// IsActive reports whether the product is currently purchasable.
func (p Product) IsActive() bool {
	return p.isActive
}
