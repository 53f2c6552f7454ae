package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/buket_shop/internal/models"
	"github.com/Skotchmaster/buket_shop/pkg/logging"
)

// MaxQuantity bounds a single quantity value so that merged sums cannot
// overflow.
const MaxQuantity = 1_000_000

type CartRepo interface {
	GetCart(ctx context.Context, cartID string) ([]models.CartItem, error)
	AddToCart(ctx context.Context, item *models.CartItem) (bool, error)
	UpdateQuantity(ctx context.Context, cartID string, productID, quantity int64) error
	DeleteFromCart(ctx context.Context, cartID string, productID int64) error
	ClearCart(ctx context.Context, cartID string) error
}

type CartService struct {
	Repo   CartRepo
	Events EventPublisher
	Topic  string
}

func validateQuantity(q int64) error {
	if q < 1 || q > MaxQuantity {
		return fmt.Errorf("quantity must be between 1 and %d: %w", MaxQuantity, ErrValidation)
	}
	return nil
}

func validateCartID(cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return fmt.Errorf("cart id required: %w", ErrValidation)
	}
	return nil
}

func validateProductID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("product id must be positive: %w", ErrValidation)
	}
	return nil
}

func (s *CartService) List(ctx context.Context, cartID string) ([]models.CartItem, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	items, err := s.Repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return items, nil
}

// Add puts item into its cart. If the product is already there the quantities
// are summed and the stored snapshot is kept. merged reports which case happened.
func (s *CartService) Add(ctx context.Context, item *models.CartItem) (merged bool, err error) {
	if err := validateCartID(item.CartID); err != nil {
		return false, err
	}
	if err := validateProductID(item.ProductID); err != nil {
		return false, err
	}
	if strings.TrimSpace(item.Name) == "" {
		return false, fmt.Errorf("name required: %w", ErrValidation)
	}
	if item.Price < 0 {
		return false, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}
	if err := validateQuantity(item.Quantity); err != nil {
		return false, err
	}
	if item.Images == nil {
		item.Images = models.Images{}
	}

	added := item.Quantity
	merged, err = s.Repo.AddToCart(ctx, item)
	if err != nil {
		return false, fmt.Errorf("add to cart: %w", err)
	}

	logging.FromContext(ctx).Debug("cart_item_upserted", "product_id", item.ProductID, "merged", merged, "quantity", item.Quantity)
	publish(ctx, s.Events, s.Topic, item.CartID, map[string]any{
		"type":      "cart_item_added",
		"cartID":    item.CartID,
		"productID": item.ProductID,
		"added":     added,
		"quantity":  item.Quantity,
		"merged":    merged,
	})
	return merged, nil
}

// UpdateQuantity replaces the quantity of a product already in the cart.
// It returns ErrNotFound when the product is not in the cart.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID string, productID, quantity int64) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}
	if err := validateProductID(productID); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	if err := s.Repo.UpdateQuantity(ctx, cartID, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d is not in the cart: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("update quantity: %w", err)
	}

	publish(ctx, s.Events, s.Topic, cartID, map[string]any{
		"type":      "cart_item_quantity_set",
		"cartID":    cartID,
		"productID": productID,
		"quantity":  quantity,
	})
	return nil
}

// Remove deletes a product from the cart. Removing an absent product is not an error.
func (s *CartService) Remove(ctx context.Context, cartID string, productID int64) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}
	if err := validateProductID(productID); err != nil {
		return err
	}
	if err := s.Repo.DeleteFromCart(ctx, cartID, productID); err != nil {
		return fmt.Errorf("delete from cart: %w", err)
	}

	publish(ctx, s.Events, s.Topic, cartID, map[string]any{
		"type":      "cart_item_deleted",
		"cartID":    cartID,
		"productID": productID,
	})
	return nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}
	if err := s.Repo.ClearCart(ctx, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	publish(ctx, s.Events, s.Topic, cartID, map[string]any{
		"type":   "cart_cleared",
		"cartID": cartID,
	})
	return nil
}

// ParseProductID parses a product id taken from a URL path.
func ParseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q: %w", raw, ErrValidation)
	}
	return id, nil
}
