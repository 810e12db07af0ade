package echo

import (
	"github.com/anahush1701/payment-resilience/internal/application/use_cases"
	"github.com/anahush1701/payment-resilience/internal/presentation/echo/handlers"
	"github.com/anahush1701/payment-resilience/internal/presentation/echo/middleware"
	echofw "github.com/labstack/echo/v4"
)

func ConfigureRoutes(e *echofw.Echo, container *use_cases.Container) {
	e.Use(middleware.Recovery)
	e.Use(middleware.TraceID)
	e.Use(middleware.RequestLogger)

	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Check)

	paymentHandler := handlers.NewPaymentHandler(container)
	accountHandler := handlers.NewAccountHandler(container)

	v1 := e.Group("/v1")
	v1.POST("/payments", paymentHandler.ChargeAccount)
	v1.GET("/payments/:id", paymentHandler.GetPayment)
	v1.GET("/idempotency/:key", paymentHandler.GetByIdempotencyKey)
	v1.GET("/accounts/:id", accountHandler.GetAccount)
}
