package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the API, the health probe and the metrics endpoint on e.
// gatherer may be nil when metrics are not exposed.
func (s *Server) RegisterRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.Validator = NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api/v1")

	users := api.Group("/users/:userId")
	users.GET("/cart", s.GetCart)
	users.POST("/cart", s.GetOrCreateCart)
	users.DELETE("/cart", s.ClearCart)
	users.POST("/cart/items", s.AddCartItem)
	users.PUT("/cart/items/:productId", s.SetCartItemQuantity)
	users.DELETE("/cart/items/:productId", s.RemoveCartItem)
	users.POST("/cart/items/:productId/increment", s.IncrementCartItem)
	users.POST("/cart/items/:productId/decrement", s.DecrementCartItem)
	users.POST("/cart/sync", s.SyncCartPrices)
	users.GET("/cart/checkout/validate", s.ValidateCartForCheckout)
	users.POST("/orders", s.Checkout)
	users.GET("/orders", s.GetUserOrders)

	orders := api.Group("/orders")
	orders.GET("/by-number/:number", s.GetOrderByNumber)
	orders.GET("/:orderId", s.GetOrder)
	orders.POST("/:orderId/status", s.ChangeOrderStatus)
	orders.POST("/:orderId/confirm", s.ConfirmOrder)
	orders.POST("/:orderId/start-processing", s.StartProcessingOrder)
	orders.POST("/:orderId/ready", s.MarkOrderReady)
	orders.POST("/:orderId/complete", s.CompleteOrder)
	orders.POST("/:orderId/cancel", s.CancelOrder)
}
