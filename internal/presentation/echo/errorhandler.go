package echo

import (
	"net/http"
	"strings"

	apperrors "github.com/anahush1701/payment-resilience/internal/domain/errors"
	echofw "github.com/labstack/echo/v4"
)

func CustomHTTPErrorHandler(err error, c echofw.Context) {
	if c.Response().Committed {
		return
	}

	lang := parseAcceptLanguage(c.Request().Header.Get("Accept-Language"))

	if appErr, ok := err.(*apperrors.AppError); ok {
		localized := apperrors.Localize(appErr, lang)
		_ = c.JSON(localized.HTTPCode, map[string]interface{}{
			"code":    localized.Code,
			"message": localized.Message,
		})
		return
	}

	if echoErr, ok := err.(*echofw.HTTPError); ok {
		_ = c.JSON(echoErr.Code, map[string]interface{}{
			"code":    "HTTP_ERROR",
			"message": http.StatusText(echoErr.Code),
		})
		return
	}

	internalErr := apperrors.Localize(apperrors.ErrInternal(), lang)
	_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"code":    internalErr.Code,
		"message": internalErr.Message,
	})
}

func parseAcceptLanguage(header string) string {
	if header == "" {
		return "en"
	}
	parts := strings.Split(header, ",")
	if len(parts) == 0 {
		return "en"
	}
	lang := strings.TrimSpace(parts[0])
	lang = strings.Split(lang, ";")[0]
	return lang
}
