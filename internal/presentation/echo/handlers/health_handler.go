package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers liveness probes. It carries no dependencies: a
// database or gateway outage must not take the health endpoint down with it.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "OK",
		"service": "payment-resilience",
	})
}
