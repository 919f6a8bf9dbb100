package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"ckobridge/internal/handler/api"
	"ckobridge/internal/middleware"
)

// Setup configures all routes for the Echo server.
func Setup(e *echo.Echo, deps *api.Deps) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Handlers
	paymentHandler := api.NewPaymentHandler(deps)
	contextHandler := api.NewContextHandler(deps)

	// Payment operations
	e.GET("/create-payment-link", paymentHandler.CreatePaymentLink)
	e.GET("/lookup-payment", paymentHandler.LookupPayment)
	e.GET("/refund-payment", paymentHandler.RefundPayment)

	// Voice-agent webhook
	e.POST("/get-user-context", contextHandler.GetUserContext)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
