package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/buket_shop/internal/models"
	"github.com/Skotchmaster/buket_shop/internal/repo"
	"github.com/Skotchmaster/buket_shop/internal/util"
)

// allCategories holds the category values that disable the category filter.
// Matching is exact so that real categories such as "All" stay filterable.
var allCategories = map[string]struct{}{
	"":    {},
	"all": {},
	"Все": {},
}

type CatalogRepo interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context, q repo.ProductQuery) ([]models.ProductView, error)
	AllProducts(ctx context.Context) ([]models.ProductView, error)
}

// ProductSearcher is a full-text index over the catalog.
type ProductSearcher interface {
	Search(ctx context.Context, q string, from, size int) (int64, []models.ProductView, error)
	IndexProducts(ctx context.Context, products []models.ProductView) (int, error)
}

type ProductFilter struct {
	Category string
	Search   string
	Offset   int
	Limit    int
}

type CatalogService struct {
	Repo     CatalogRepo
	Searcher ProductSearcher
}

func IsAllCategories(category string) bool {
	_, ok := allCategories[strings.TrimSpace(category)]
	return ok
}

func (f ProductFilter) query() repo.ProductQuery {
	q := repo.ProductQuery{Search: f.Search}
	if !IsAllCategories(f.Category) {
		q.Category = strings.TrimSpace(f.Category)
	}
	q.Offset, q.Limit = util.Window(f.Offset, f.Limit)
	return q
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	items, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f ProductFilter) ([]models.ProductView, error) {
	items, err := s.Repo.ListProducts(ctx, f.query())
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (s *CatalogService) SearchEnabled() bool {
	return s.Searcher != nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.ProductView, error) {
	if s.Searcher == nil {
		return 0, nil, fmt.Errorf("search is not configured: %w", ErrNotFound)
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("query is required: %w", ErrValidation)
	}
	offset, limit = util.Window(offset, limit)

	total, items, err := s.Searcher.Search(ctx, q, offset, limit)
	if err != nil {
		return 0, nil, fmt.Errorf("search products: %w", err)
	}
	return total, items, nil
}

// ReindexProducts copies the whole catalog into the search index.
func (s *CatalogService) ReindexProducts(ctx context.Context) (int, error) {
	if s.Searcher == nil {
		return 0, fmt.Errorf("search is not configured: %w", ErrNotFound)
	}
	products, err := s.Repo.AllProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	return s.Searcher.IndexProducts(ctx, products)
}
