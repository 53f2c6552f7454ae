package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buket_shop/internal/service"
	"github.com/Skotchmaster/buket_shop/internal/transport"
	"github.com/Skotchmaster/buket_shop/internal/util"
	"github.com/Skotchmaster/buket_shop/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_categories")

	items, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("get_categories_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, clientMessage(err))
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	filter := service.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Offset:   util.ParseIntDefault(c.QueryParam("offset"), 0),
		Limit:    util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
	}

	items, err := h.Svc.ListProducts(ctx, filter)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, clientMessage(err))
	}

	l.Debug("get_products_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_products")

	offset := util.ParseIntDefault(c.QueryParam("offset"), 0)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		status := statusOf(err)
		if status >= 500 {
			l.Error("search_products_error", "status", status, "error", err)
		} else {
			l.Warn("search_products_error", "status", status, "error", err)
		}
		return echo.NewHTTPError(status, clientMessage(err))
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: items})
}
