package http

import (
	"net/http"

	"ordercore/internal/core/application/usecases/commands"
	"ordercore/internal/core/application/usecases/queries"
	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Cart operation labels used for metrics.
const (
	opGetOrCreate = "get_or_create"
	opAddItem     = "add_item"
	opSetQuantity = "set_quantity"
	opRemoveItem  = "remove_item"
	opIncrement   = "increment_item"
	opDecrement   = "decrement_item"
	opClear       = "clear"
	opSyncPrices  = "sync_prices"
)

// GetCart handles GET /api/v1/users/:userId/cart. A user without a cart gets an empty
// cart; no cart is created.
func (s *Server) GetCart(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetCartQuery(userID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	view, err := s.handlers.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromView(view))
}

// GetOrCreateCart handles POST /api/v1/users/:userId/cart.
func (s *Server) GetOrCreateCart(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewGetOrCreateCartCommand(userID)
	if err != nil {
		return s.cartResult(ctx, opGetOrCreate, nil, err)
	}

	c, err := s.handlers.GetOrCreateCart.Handle(ctx.Request().Context(), cmd)
	return s.cartResult(ctx, opGetOrCreate, c, err)
}

// AddCartItem handles POST /api/v1/users/:userId/cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req AddCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAddCartItemCommand(userID, productID, req.Quantity)
	if err != nil {
		return s.cartResult(ctx, opAddItem, nil, err)
	}

	c, err := s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd)
	return s.cartResult(ctx, opAddItem, c, err)
}

// SetCartItemQuantity handles PUT /api/v1/users/:userId/cart/items/:productId.
// A quantity of zero or less removes the line.
func (s *Server) SetCartItemQuantity(ctx echo.Context) error {
	userID, productID, err := cartItemParams(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req SetCartItemQuantityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewSetCartItemQuantityCommand(userID, productID, req.Quantity)
	if err != nil {
		return s.cartResult(ctx, opSetQuantity, nil, err)
	}

	c, err := s.handlers.SetCartItemQuantity.Handle(ctx.Request().Context(), cmd)
	return s.cartResult(ctx, opSetQuantity, c, err)
}

// RemoveCartItem handles DELETE /api/v1/users/:userId/cart/items/:productId.
// Removing an absent line succeeds.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	userID, productID, err := cartItemParams(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveCartItemCommand(userID, productID)
	if err != nil {
		return s.cartResult(ctx, opRemoveItem, nil, err)
	}

	c, err := s.handlers.SetCartItemQuantity.Handle(ctx.Request().Context(), cmd)
	return s.cartResult(ctx, opRemoveItem, c, err)
}

// IncrementCartItem handles POST /api/v1/users/:userId/cart/items/:productId/increment.
func (s *Server) IncrementCartItem(ctx echo.Context) error {
	userID, productID, err := cartItemParams(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewIncrementCartItemCommand(userID, productID)
	if err != nil {
		return s.cartResult(ctx, opIncrement, nil, err)
	}

	c, err := s.handlers.AdjustCartItemQuantity.Handle(ctx.Request().Context(), cmd)
	return s.cartResult(ctx, opIncrement, c, err)
}

// DecrementCartItem handles POST /api/v1/users/:userId/cart/items/:productId/decrement.
func (s *Server) DecrementCartItem(ctx echo.Context) error {
	userID, productID, err := cartItemParams(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewDecrementCartItemCommand(userID, productID)
	if err != nil {
		return s.cartResult(ctx, opDecrement, nil, err)
	}

	c, err := s.handlers.AdjustCartItemQuantity.Handle(ctx.Request().Context(), cmd)
	return s.cartResult(ctx, opDecrement, c, err)
}

// ClearCart handles DELETE /api/v1/users/:userId/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewClearCartCommand(userID)
	if err != nil {
		return s.cartResult(ctx, opClear, nil, err)
	}

	c, err := s.handlers.ClearCart.Handle(ctx.Request().Context(), cmd)
	return s.cartResult(ctx, opClear, c, err)
}

// SyncCartPrices handles POST /api/v1/users/:userId/cart/sync.
func (s *Server) SyncCartPrices(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewSyncCartPricesCommand(userID)
	if err != nil {
		return s.cartResult(ctx, opSyncPrices, nil, err)
	}

	c, err := s.handlers.SyncCartPrices.Handle(ctx.Request().Context(), cmd)
	return s.cartResult(ctx, opSyncPrices, c, err)
}

// ValidateCartForCheckout handles GET /api/v1/users/:userId/cart/checkout/validate.
// It answers 200 with the totals the order would get, or the checkout rejection.
func (s *Server) ValidateCartForCheckout(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewValidateCartForCheckoutQuery(userID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.handlers.ValidateCartForCheckout.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CheckoutValidation{
		CartID:         result.CartID.String(),
		TotalAmount:    amount(result.TotalAmount),
		TotalItemCount: result.TotalItemCount,
	})
}

func (s *Server) cartResult(ctx echo.Context, operation string, c *cart.Cart, err error) error {
	s.metrics.CartMutation(operation, outcome(err))
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

func uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func cartItemParams(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return userID, productID, nil
}
