package httpserver

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buket_shop/pkg/logging"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	Ready          func(ctx context.Context) error
	StaticDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Error("ready_check_failed", "status", 503, "error", err)
				return errorJSON(c, http.StatusServiceUnavailable, err.Error())
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	api.GET("/categories", d.CatalogHandler.GetCategories)
	api.GET("/products", d.CatalogHandler.GetProducts)
	if d.CatalogHandler.Svc.SearchEnabled() {
		api.GET("/products/search", d.CatalogHandler.SearchProducts)
	}

	cart := api.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	// static segment first so it is never captured by :productId
	cart.DELETE("/clear", d.CartHandler.ClearCart)
	cart.PUT("/:productId", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:productId", d.CartHandler.DeleteFromCart)

	api.POST("/order", d.OrderHandler.SubmitOrder)

	if d.StaticDir != "" {
		e.Static("/", d.StaticDir)
		index := filepath.Join(d.StaticDir, "index.html")
		e.GET("/", func(c echo.Context) error { return c.File(index) })
	}
}
