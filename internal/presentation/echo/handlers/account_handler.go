package handlers

import (
	"net/http"
	"strconv"

	"github.com/anahush1701/payment-resilience/internal/application/use_cases"
	apperrors "github.com/anahush1701/payment-resilience/internal/domain/errors"
	"github.com/labstack/echo/v4"
)

type AccountHandler struct {
	getAccount *use_cases.GetAccountUseCase
}

func NewAccountHandler(container *use_cases.Container) *AccountHandler {
	return &AccountHandler{getAccount: container.GetAccount}
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.ErrInvalidChargeRequest("account id must be an integer")
	}

	account, err := h.getAccount.Execute(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, account)
}
