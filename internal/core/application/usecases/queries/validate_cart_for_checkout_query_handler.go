package queries

import (
	"context"
	"errors"

	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/services"
	"ordercore/internal/core/ports"
	"ordercore/internal/pkg/errs"
)

// ValidateCartForCheckoutQueryHandler reads the cart and its products without locks and
// applies services.CheckoutValidator.
//
// Returns:
//   - ErrEmptyCart when the user has no cart or an empty one
//   - ProductUnavailableError naming the first missing or inactive product
//   - InternalError when storage fails
type ValidateCartForCheckoutQueryHandler struct {
	carts     ports.CartRepository
	products  ports.ProductCatalog
	validator services.CheckoutValidator
}

func NewValidateCartForCheckoutQueryHandler(
	carts ports.CartRepository,
	products ports.ProductCatalog,
) ValidateCartForCheckoutQueryHandler {
	return ValidateCartForCheckoutQueryHandler{
		carts:     carts,
		products:  products,
		validator: services.NewCheckoutValidator(),
	}
}

func (h ValidateCartForCheckoutQueryHandler) Handle(
	ctx context.Context,
	query ValidateCartForCheckoutQuery,
) (ValidateCartForCheckoutQueryResponse, error) {
	response, err := h.handle(ctx, query)
	if err != nil {
		return ValidateCartForCheckoutQueryResponse{}, errs.Internal("validate cart for checkout", err)
	}
	return response, nil
}

func (h ValidateCartForCheckoutQueryHandler) handle(
	ctx context.Context,
	query ValidateCartForCheckoutQuery,
) (ValidateCartForCheckoutQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateCartForCheckoutQueryResponse{}, err
	}

	c, err := h.carts.GetByUser(ctx, query.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ValidateCartForCheckoutQueryResponse{}, errs.ErrEmptyCart
	}
	if err != nil {
		return ValidateCartForCheckoutQueryResponse{}, err
	}

	products := make(map[kernel.UUID]catalog.Product, len(c.Lines()))
	for _, line := range c.Lines() {
		product, err := h.products.GetProductSnapshot(ctx, line.ProductID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return ValidateCartForCheckoutQueryResponse{}, err
		}
		products[product.ID()] = product
	}

	if err = h.validator.Validate(c, products); err != nil {
		return ValidateCartForCheckoutQueryResponse{}, err
	}

	return ValidateCartForCheckoutQueryResponse{
		CartID:         c.ID(),
		TotalAmount:    c.TotalAmount().Decimal(),
		TotalItemCount: c.TotalItemCount(),
	}, nil
}
