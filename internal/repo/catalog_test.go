package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/buket_shop/internal/models"
	"github.com/Skotchmaster/buket_shop/internal/repo"
	"github.com/Skotchmaster/buket_shop/internal/testutil"
)

func names(items []models.ProductView) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestGormRepo_ListCategories(t *testing.T) {
	r := testutil.NewRepo(t)
	testutil.SeedCatalog(t, r.DB)

	cats, err := r.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Розы", cats[0].Name)
	assert.Equal(t, "Тюльпаны", cats[1].Name)
}

func TestGormRepo_ListProducts(t *testing.T) {
	r := testutil.NewRepo(t)
	testutil.SeedCatalog(t, r.DB)
	ctx := context.Background()

	tests := []struct {
		name string
		q    repo.ProductQuery
		want []string
	}{
		{name: "no filters", q: repo.ProductQuery{Limit: 6}, want: []string{"Red Rose", "White Rose", "Rose 100%", "Yellow Tulip", "Tulip_Mix"}},
		{name: "search substring", q: repo.ProductQuery{Search: "Rose", Limit: 6}, want: []string{"Red Rose", "White Rose", "Rose 100%"}},
		{name: "category", q: repo.ProductQuery{Category: "Тюльпаны", Limit: 6}, want: []string{"Yellow Tulip", "Tulip_Mix"}},
		{name: "search and category", q: repo.ProductQuery{Search: "Tulip", Category: "Розы", Limit: 6}, want: []string{}},
		{name: "percent is literal", q: repo.ProductQuery{Search: "100%", Limit: 6}, want: []string{"Rose 100%"}},
		{name: "underscore is literal", q: repo.ProductQuery{Search: "p_M", Limit: 6}, want: []string{"Tulip_Mix"}},
		{name: "limit", q: repo.ProductQuery{Limit: 2}, want: []string{"Red Rose", "White Rose"}},
		{name: "offset", q: repo.ProductQuery{Offset: 3, Limit: 6}, want: []string{"Yellow Tulip", "Tulip_Mix"}},
		{name: "unknown category", q: repo.ProductQuery{Category: "Пионы", Limit: 6}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := r.ListProducts(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(items))
		})
	}
}

func TestGormRepo_ListProducts_JoinsCategoryAndDecodesImages(t *testing.T) {
	r := testutil.NewRepo(t)
	testutil.SeedCatalog(t, r.DB)

	items, err := r.ListProducts(context.Background(), repo.ProductQuery{Search: "Red", Limit: 6})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Розы", items[0].Category)
	assert.Equal(t, "classic", items[0].Description)
	assert.EqualValues(t, 1500, items[0].Price)
	assert.Equal(t, models.Images{"red1.jpg", "red2.jpg"}, items[0].Images)

	items, err = r.ListProducts(context.Background(), repo.ProductQuery{Search: "100", Limit: 6})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.Images{}, items[0].Images)
}

func TestGormRepo_AllProducts(t *testing.T) {
	r := testutil.NewRepo(t)
	testutil.SeedCatalog(t, r.DB)

	items, err := r.AllProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestGormRepo_ListProducts_NullImages(t *testing.T) {
	r := testutil.NewRepo(t)
	testutil.SeedCatalog(t, r.DB)
	require.NoError(t, r.DB.Exec("UPDATE products SET images = NULL WHERE name = ?", "White Rose").Error)

	items, err := r.ListProducts(context.Background(), repo.ProductQuery{Search: "White", Limit: 6})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.Images{}, items[0].Images)

	all, err := r.AllProducts(context.Background())
	require.NoError(t, err)
	for _, p := range all {
		assert.NotNil(t, p.Images, p.Name)
	}
}
