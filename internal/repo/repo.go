package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/buket_shop/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// Migrate creates missing tables and columns. It never drops anything.
func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// NULL columns never reach Images.Scan, so rows read back may carry a nil list.
func emptyIfNil(img models.Images) models.Images {
	if img == nil {
		return models.Images{}
	}
	return img
}
