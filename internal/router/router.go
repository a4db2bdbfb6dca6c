package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"comgatepay/internal/handler"
	"comgatepay/internal/middleware"
)

// Setup configures all routes for the Echo server. The return route is
// named so the gateway facade can reverse it into the callback URL.
func Setup(e *echo.Echo, paymentHandler *handler.PaymentHandler) {
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	e.POST("/checkout", paymentHandler.Checkout)

	returnRoute := e.GET("/payment/return", paymentHandler.Return)
	returnRoute.Name = handler.RoutePaymentReturn

	e.GET("/payments/:transId", paymentHandler.Status)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
