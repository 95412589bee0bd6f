package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type errorMapping struct {
	target error
	status int
	code   string
	// details replaces err.Error() in the reply when set; the error itself
	// is only logged.
	details string
}

// errorMappings translates domain errors to HTTP replies. First match wins.
var errorMappings = []errorMapping{
	{common.ErrorNotFound, http.StatusNotFound, "USER_NOT_FOUND", ""},
	{common.ErrorConflict, http.StatusConflict, "USER_EXISTS", ""},
	{common.ErrorValidation, http.StatusBadRequest, "INVALID_INPUT", ""},
	{common.ErrorUnauthorized, http.StatusUnauthorized, "INVALID_CREDENTIALS", ""},
	{common.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED", ""},
	{common.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN", ""},
	{common.ErrorUnavailable, http.StatusServiceUnavailable, "CREDENTIAL_SERVICE_UNAVAILABLE", "credential service unavailable, try again later"},
	{common.ErrorInternal, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error"},
}

// errorHandler is the echo HTTPErrorHandler for the account API.
type errorHandler struct {
	logger logging.Logger
}

func (h *errorHandler) handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		details := err.Error()
		if m.details != "" {
			details = m.details
			req := c.Request()
			h.logger.Error(req.Context(), "Request failed",
				"error", fmt.Sprintf("%+v", err),
				"path", req.URL.Path,
				"method", req.Method,
			)
		}
		_ = failure(c, m.status, m.code, "", details)
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = failure(c, httpErr.Code, "HTTP_ERROR", "", fmt.Sprint(httpErr.Message))
		return
	}

	req := c.Request()
	h.logger.Error(req.Context(), "Unhandled error",
		"error", fmt.Sprintf("%+v", err),
		"path", req.URL.Path,
		"method", req.Method,
	)
	_ = failure(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", "")
}
