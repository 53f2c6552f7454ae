package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buket_shop/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

// statusOf maps service errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage is the text sent in the error body. Storage failures are
// reported with the driver's own message, without the service-layer context.
func clientMessage(err error) string {
	if statusOf(err) < http.StatusInternalServerError {
		return err.Error()
	}
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}

// ErrorHandler renders every error that reaches echo as {"error": "..."}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := statusOf(err)
	msg := clientMessage(err)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		} else {
			msg = http.StatusText(he.Code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = errorJSON(c, status, msg)
}
