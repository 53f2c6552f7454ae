//go:build integration

package repo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Skotchmaster/buket_shop/internal/models"
	"github.com/Skotchmaster/buket_shop/internal/repo"
	"github.com/Skotchmaster/buket_shop/internal/testutil"
	pkgdb "github.com/Skotchmaster/buket_shop/pkg/db"
)

func newPostgresRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("buket"),
		postgres.WithUsername("buket"),
		postgres.WithPassword("buket"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pkgdb.Open(ctx, "postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(ctx))
	return r
}

func TestPostgres_CartUpsert(t *testing.T) {
	ctx := context.Background()
	r := newPostgresRepo(t)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.AddToCart(ctx, &models.CartItem{
				CartID: models.DefaultCartID, ProductID: 1, Name: "Red Rose", Price: 1500,
				Images: models.Images{"red1.jpg"}, Quantity: 2,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := r.GetCart(ctx, models.DefaultCartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2*workers, items[0].Quantity)
	assert.Equal(t, models.Images{"red1.jpg"}, items[0].Images)

	merged, err := r.AddToCart(ctx, &models.CartItem{
		CartID: models.DefaultCartID, ProductID: 1, Name: "x", Price: 1, Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, merged)

	require.NoError(t, r.UpdateQuantity(ctx, models.DefaultCartID, 1, 3))
	require.ErrorIs(t, r.UpdateQuantity(ctx, models.DefaultCartID, 2, 3), gorm.ErrRecordNotFound)
}

func TestPostgres_ListProducts(t *testing.T) {
	ctx := context.Background()
	r := newPostgresRepo(t)
	testutil.SeedCatalog(t, r.DB)

	items, err := r.ListProducts(ctx, repo.ProductQuery{Search: "100%", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rose 100%", items[0].Name)
	assert.Equal(t, models.Images{}, items[0].Images)

	items, err = r.ListProducts(ctx, repo.ProductQuery{Category: "Тюльпаны", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
