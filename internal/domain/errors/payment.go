package errors

import (
	"fmt"
	"net/http"
)

func ErrIdempotencyKeyTooLong() *AppError {
	return New("IDEMPOTENCY_KEY_TOO_LONG", http.StatusBadRequest, messages["en"]["IDEMPOTENCY_KEY_TOO_LONG"])
}

func ErrIdempotencyKeyConflict() *AppError {
	return New("IDEMPOTENCY_KEY_CONFLICT", http.StatusConflict, messages["en"]["IDEMPOTENCY_KEY_CONFLICT"])
}

func ErrPaymentProcessing() *AppError {
	return New("PAYMENT_PROCESSING", http.StatusConflict, messages["en"]["PAYMENT_PROCESSING"])
}

func ErrPaymentNotFound() *AppError {
	return New("PAYMENT_NOT_FOUND", http.StatusNotFound, messages["en"]["PAYMENT_NOT_FOUND"])
}

func ErrAccountNotFound() *AppError {
	return New("ACCOUNT_NOT_FOUND", http.StatusNotFound, messages["en"]["ACCOUNT_NOT_FOUND"])
}

func ErrIdempotencyKeyNotFound() *AppError {
	return New("IDEMPOTENCY_KEY_NOT_FOUND", http.StatusNotFound, messages["en"]["IDEMPOTENCY_KEY_NOT_FOUND"])
}

func ErrInvalidChargeRequest(detail string) *AppError {
	return New("INVALID_CHARGE_REQUEST", http.StatusBadRequest, fmt.Sprintf("%s: %s", messages["en"]["INVALID_CHARGE_REQUEST"], detail))
}

func ErrInternal() *AppError {
	return New("INTERNAL_ERROR", http.StatusInternalServerError, messages["en"]["INTERNAL_ERROR"])
}
