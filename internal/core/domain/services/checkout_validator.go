package services

import (
	"fmt"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"
)

// CheckoutValidator is a domain service that decides whether a cart may be converted
// into an order. It is read-only: neither the cart nor the products are modified.
//
// Business rules, checked in this order:
//   - The cart must have at least one line (ErrEmptyCart)
//   - Every line must reference a product that exists and is active
//     (ProductUnavailableError naming the first offending product)
//   - Every line quantity must be at least 1 (ValueIsInvalidError)
//
// Callers run it inside the checkout transaction, against the locked cart and product
// snapshots read in that same transaction.
//
// Example usage:
//
//	validator := services.NewCheckoutValidator()
//	if err := validator.Validate(c, products); err != nil {
//	    return err // cart is left untouched
//	}
type CheckoutValidator struct{}

func NewCheckoutValidator() CheckoutValidator {
	return CheckoutValidator{}
}

// Validate checks c against products, a snapshot keyed by product ID. A product absent
// from the map is treated as missing from the catalog.
func (CheckoutValidator) Validate(c *cart.Cart, products map[kernel.UUID]catalog.Product) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.IsEmpty() {
		return errs.ErrEmptyCart
	}

	for _, line := range c.Lines() {
		product, ok := products[line.ProductID()]
		if !ok {
			return errs.NewProductUnavailableError(line.ProductID().String(), "product not found")
		}
		if !product.IsActive() {
			return errs.NewProductUnavailableError(line.ProductID().String(), "product is inactive")
		}
		if line.Quantity() <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("%d for product %s is not greater than 0", line.Quantity(), line.ProductID()),
			)
		}
	}

	return nil
}
