package handlers

import (
	"net/http"

	"github.com/anahush1701/payment-resilience/internal/application/use_cases"
	"github.com/anahush1701/payment-resilience/internal/domain"
	apperrors "github.com/anahush1701/payment-resilience/internal/domain/errors"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	chargeAccount       *use_cases.ChargeAccountUseCase
	getPayment          *use_cases.GetPaymentUseCase
	getByIdempotencyKey *use_cases.GetByIdempotencyKeyUseCase
}

func NewPaymentHandler(container *use_cases.Container) *PaymentHandler {
	return &PaymentHandler{
		chargeAccount:       container.ChargeAccount,
		getPayment:          container.GetPayment,
		getByIdempotencyKey: container.GetByIdempotencyKey,
	}
}

func (h *PaymentHandler) ChargeAccount(c echo.Context) error {
	idempotencyKey := c.Request().Header.Get("X-Idempotency-Key")

	var req domain.ChargeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidChargeRequest("invalid request body")
	}

	payment, err := h.chargeAccount.Execute(c.Request().Context(), idempotencyKey, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id := c.Param("id")

	payment, err := h.getPayment.Execute(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetByIdempotencyKey(c echo.Context) error {
	key := c.Param("key")

	record, err := h.getByIdempotencyKey.Execute(c.Request().Context(), key)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}
