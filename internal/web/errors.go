package web

import (
	"errors"
	"net/http"

	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/khanglvm/marketing-support/internal/shell"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusOf maps domain errors to HTTP status codes and stable codes.
func statusOf(err error) (int, string) {
	var (
		verr *shell.ValidationError
		ferr *gateway.FormatError
		gerr *gateway.GenerationError
		herr *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, shell.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, shell.ErrBusy):
		return http.StatusConflict, "busy"
	case errors.Is(err, shell.ErrNoPlan):
		return http.StatusConflict, "no_plan"
	case errors.Is(err, shell.ErrCanceled):
		return http.StatusConflict, "canceled"
	case errors.As(err, &ferr):
		return http.StatusBadGateway, "format_error"
	case errors.As(err, &gerr):
		return http.StatusBadGateway, "generation_failed"
	case errors.As(err, &herr):
		return herr.Code, "http_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code := statusOf(err)
	msg := err.Error()
	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		if s, ok := herr.Message.(string); ok {
			msg = s
		}
	}

	if err := c.JSON(status, errorBody{Error: msg, Code: code}); err != nil {
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("failed to write error response")
	}
}
