package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buket_shop/internal/models"
	"github.com/Skotchmaster/buket_shop/internal/service"
	"github.com/Skotchmaster/buket_shop/internal/transport"
	"github.com/Skotchmaster/buket_shop/pkg/logging"
)

const (
	msgAdded   = "Товар добавлен в корзину"
	msgUpdated = "Количество товара обновлено"
	msgRemoved = "Товар удален из корзины"
	msgCleared = "Корзина очищена"
	msgOrdered = "Заказ оформлен"
)

// CartHTTP serves the single anonymous cart.
type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) fail(c echo.Context, event string, err error) error {
	l := logging.FromContext(c.Request().Context())
	status := statusOf(err)
	if status >= 500 {
		l.Error(event, "status", status, "error", err)
	} else {
		l.Warn(event, "status", status, "error", err)
	}
	return echo.NewHTTPError(status, clientMessage(err))
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Svc.List(ctx, models.DefaultCartID)
	if err != nil {
		return h.fail(c, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item := models.CartItem{
		CartID:    models.DefaultCartID,
		ProductID: req.ID,
		Name:      req.Name,
		Price:     req.Price,
		Images:    models.Images(req.Images),
		Quantity:  req.Quantity,
	}
	merged, err := h.Svc.Add(ctx, &item)
	if err != nil {
		return h.fail(c, "add_to_cart_error", err)
	}

	msg := msgAdded
	if merged {
		msg = msgUpdated
	}
	l.Info("add_to_cart_success", "product_id", item.ProductID, "quantity", item.Quantity, "merged", merged)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msg})
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	productID, err := service.ParseProductID(c.Param("productId"))
	if err != nil {
		return h.fail(c, "update_quantity_error", err)
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateQuantity(ctx, models.DefaultCartID, productID, req.Quantity); err != nil {
		return h.fail(c, "update_quantity_error", err)
	}

	l.Info("update_quantity_success", "product_id", productID, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msgUpdated})
}

func (h *CartHTTP) DeleteFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := service.ParseProductID(c.Param("productId"))
	if err != nil {
		return h.fail(c, "delete_from_cart_error", err)
	}

	if err := h.Svc.Remove(ctx, models.DefaultCartID, productID); err != nil {
		return h.fail(c, "delete_from_cart_error", err)
	}

	logging.FromContext(ctx).Info("delete_from_cart_success", "product_id", productID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msgRemoved})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Svc.Clear(ctx, models.DefaultCartID); err != nil {
		return h.fail(c, "clear_cart_error", err)
	}

	logging.FromContext(ctx).Info("clear_cart_success")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msgCleared})
}
