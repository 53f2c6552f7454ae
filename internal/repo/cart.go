package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/buket_shop/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, cartID string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Order("product_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Images = emptyIfNil(items[i].Images)
	}
	return items, nil
}

// AddToCart inserts item or, when the product is already in the cart, adds
// item.Quantity to the stored quantity in the same statement. The stored
// name, price and images are left as they were. On return item.Quantity
// holds the resulting quantity and merged reports whether a row existed.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) (merged bool, err error) {
	incoming := item.Quantity

	res := r.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"quantity": gorm.Expr("cart.quantity + excluded.quantity"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "quantity"}}},
		).
		Create(item)
	if res.Error != nil {
		return false, res.Error
	}

	return item.Quantity != incoming, nil
}

// UpdateQuantity reports gorm.ErrRecordNotFound when no row matched.
func (r *GormRepo) UpdateQuantity(ctx context.Context, cartID string, productID, quantity int64) error {
	res := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteFromCart(ctx context.Context, cartID string, productID int64) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID string) error {
	return r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
