package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buket_shop/internal/service"
	"github.com/Skotchmaster/buket_shop/internal/transport"
	"github.com/Skotchmaster/buket_shop/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) SubmitOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.submit")

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("submit_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	orderID, err := h.Svc.Submit(ctx, req)
	if err != nil {
		l.Error("submit_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, clientMessage(err))
	}

	return c.JSON(http.StatusOK, transport.OrderResponse{Message: msgOrdered, OrderID: orderID.String()})
}
