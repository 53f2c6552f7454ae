package transport

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Skotchmaster/buket_shop/internal/models"
)

type AddToCartRequest struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Images   []string `json:"images"`
	Quantity int64    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// OrderRequest is accepted as the storefront sends it. Items are kept as
// decoded JSON; nothing is checked against the catalog.
type OrderRequest struct {
	Items         []any  `json:"items"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
}

// Total sums price*quantity over the items whose two fields parse as numbers.
// Other items are skipped.
func (r OrderRequest) Total() float64 {
	var sum float64
	for _, it := range r.Items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		price, ok1 := number(m["price"])
		qty, ok2 := number(m["quantity"])
		if ok1 && ok2 {
			sum += price * qty
		}
	}
	return sum
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type OrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

type SearchResponse struct {
	Total    int64                `json:"total"`
	Products []models.ProductView `json:"products"`
}
