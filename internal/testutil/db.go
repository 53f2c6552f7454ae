// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/buket_shop/internal/models"
	"github.com/Skotchmaster/buket_shop/internal/repo"
	pkgdb "github.com/Skotchmaster/buket_shop/pkg/db"
)

// NewRepo opens a migrated SQLite database in a temp dir.
func NewRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "shop_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

// SeedCatalog inserts two categories and five products:
// Розы: "Red Rose" (1), "White Rose" (2), "Rose 100%" (3); Тюльпаны: "Yellow Tulip" (4), "Tulip_Mix" (5).
func SeedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	roses := models.Category{Name: "Розы"}
	tulips := models.Category{Name: "Тюльпаны"}
	require.NoError(t, db.Create(&roses).Error)
	require.NoError(t, db.Create(&tulips).Error)

	products := []models.Product{
		{Name: "Red Rose", Description: "classic", Price: 1500, Images: models.Images{"red1.jpg", "red2.jpg"}, CategoryID: roses.ID},
		{Name: "White Rose", Description: "wedding", Price: 1700, Images: models.Images{"white.jpg"}, CategoryID: roses.ID},
		{Name: "Rose 100%", Description: "bundle", Price: 9000, Images: nil, CategoryID: roses.ID},
		{Name: "Yellow Tulip", Description: "spring", Price: 900, Images: models.Images{"tulip.jpg"}, CategoryID: tulips.ID},
		{Name: "Tulip_Mix", Description: "mix", Price: 1200, Images: models.Images{}, CategoryID: tulips.ID},
	}
	require.NoError(t, db.Create(&products).Error)
}
