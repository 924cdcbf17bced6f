package http

import (
	"context"
	"log/slog"

	"ordercore/internal/core/application/usecases/commands"
	"ordercore/internal/core/application/usecases/queries"
	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/pkg/metrics"
)

// Handler is the shape shared by every command and query handler.
type Handler[Req, Resp any] interface {
	Handle(ctx context.Context, request Req) (Resp, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[Req, Resp any] func(ctx context.Context, request Req) (Resp, error)

func (f HandlerFunc[Req, Resp]) Handle(ctx context.Context, request Req) (Resp, error) {
	return f(ctx, request)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	GetOrCreateCart        Handler[commands.GetOrCreateCartCommand, *cart.Cart]
	AddCartItem            Handler[commands.AddCartItemCommand, *cart.Cart]
	SetCartItemQuantity    Handler[commands.SetCartItemQuantityCommand, *cart.Cart]
	AdjustCartItemQuantity Handler[commands.AdjustCartItemQuantityCommand, *cart.Cart]
	ClearCart              Handler[commands.ClearCartCommand, *cart.Cart]
	SyncCartPrices         Handler[commands.SyncCartPricesCommand, *cart.Cart]
	Checkout               Handler[commands.CheckoutCommand, *order.Order]
	ChangeOrderStatus      Handler[commands.ChangeOrderStatusCommand, *order.Order]

	// Query handlers
	GetCart                 Handler[queries.GetCartQuery, queries.GetCartQueryResponse]
	GetOrder                Handler[queries.GetOrderQuery, queries.OrderDetails]
	GetUserOrders           Handler[queries.GetUserOrdersQuery, []queries.OrderSummary]
	ValidateCartForCheckout Handler[queries.ValidateCartForCheckoutQuery, queries.ValidateCartForCheckoutQueryResponse]
}

// Server serves the cart and order API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
// m may be nil, in which case nothing is recorded.
func NewServer(handlers Handlers, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		metrics:  m,
		logger:   logger.With("component", "http_server"),
	}
}
