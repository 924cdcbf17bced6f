package http

import (
	"errors"
	"net/http"
	"strconv"

	"ordercore/internal/core/application/usecases/commands"
	"ordercore/internal/core/application/usecases/queries"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Checkout handles POST /api/v1/users/:userId/orders - turns the cart into an order.
func (s *Server) Checkout(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCheckoutCommand(userID, req.CustomerComment, req.ContactInfo)
	if err != nil {
		return s.respondError(ctx, err)
	}

	o, err := s.handlers.Checkout.Handle(ctx.Request().Context(), cmd)
	s.metrics.Checkout(outcome(err))
	if err != nil {
		return s.respondError(ctx, err)
	}

	s.metrics.OrderPlaced(o.TotalAmount().Decimal(), o.TotalItemCount())
	return ctx.JSON(http.StatusCreated, orderFromDomain(o))
}

// GetUserOrders handles GET /api/v1/users/:userId/orders?limit=&offset= - newest first.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return s.respondError(ctx, err)
	}
	offset, err := intQueryParam(ctx, "offset")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetUserOrdersQuery(userID, limit, offset)
	if err != nil {
		return s.respondError(ctx, err)
	}

	rows, err := s.handlers.GetUserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummariesFromView(rows))
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return s.respondOrder(ctx, query)
}

// GetOrderByNumber handles GET /api/v1/orders/by-number/:number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(ctx.Param("number"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	return s.respondOrder(ctx, query)
}

func (s *Server) respondOrder(ctx echo.Context, query queries.GetOrderQuery) error {
	details, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDetails(details))
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderId/status with an explicit target.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req ChangeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return s.respondError(ctx, err)
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return s.transition(ctx, orderID, target, req.Note)
}

// ConfirmOrder handles POST /api/v1/orders/:orderId/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	return s.transitionWithNote(ctx, order.Confirmed)
}

// StartProcessingOrder handles POST /api/v1/orders/:orderId/start-processing.
func (s *Server) StartProcessingOrder(ctx echo.Context) error {
	return s.transitionWithNote(ctx, order.Processing)
}

// MarkOrderReady handles POST /api/v1/orders/:orderId/ready.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	return s.transitionWithNote(ctx, order.Ready)
}

// CompleteOrder handles POST /api/v1/orders/:orderId/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	return s.transitionWithNote(ctx, order.Completed)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel. The reason is optional.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.transition(ctx, orderID, order.Cancelled, req.Reason)
}

func (s *Server) transitionWithNote(ctx echo.Context, target order.Status) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req OrderNoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.transition(ctx, orderID, target, req.Note)
}

func (s *Server) transition(ctx echo.Context, orderID kernel.UUID, target order.Status, note string) error {
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, note)
	if err != nil {
		return s.respondError(ctx, err)
	}

	o, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			s.metrics.TransitionRejected(target.String())
		}
		return s.respondError(ctx, err)
	}

	s.metrics.Transition(target.String())
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// intQueryParam returns 0 when the parameter is absent.
func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}
