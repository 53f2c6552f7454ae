package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/buket_shop/internal/transport"
	"github.com/Skotchmaster/buket_shop/pkg/logging"
)

// OrderService acknowledges orders. Nothing is persisted and no stock is
// reserved; the order is logged and announced on the order topic.
type OrderService struct {
	Events EventPublisher
	Topic  string
}

func (s *OrderService) Submit(ctx context.Context, req transport.OrderRequest) (uuid.UUID, error) {
	orderID := uuid.New()

	logging.FromContext(ctx).Info("order_received",
		"order_id", orderID.String(),
		"customer_name", req.CustomerName,
		"customer_phone", req.CustomerPhone,
		"items", len(req.Items),
		"total", req.Total(),
	)

	publish(ctx, s.Events, s.Topic, orderID.String(), map[string]any{
		"type":          "order_submitted",
		"orderID":       orderID.String(),
		"customerName":  req.CustomerName,
		"customerPhone": req.CustomerPhone,
		"items":         req.Items,
		"total":         req.Total(),
	})
	return orderID, nil
}
