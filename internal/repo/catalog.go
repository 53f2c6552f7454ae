package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/buket_shop/internal/models"
)

// ProductQuery is an already normalized listing request. Empty Search and
// Category mean "no filter".
type ProductQuery struct {
	Search   string
	Category string
	Offset   int
	Limit    int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	items := make([]models.Category, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) productViews(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("products AS p").
		Select("p.id, p.name, p.description, p.price, p.images, c.name AS category").
		Joins("JOIN categories AS c ON p.category_id = c.id")
}

func (r *GormRepo) ListProducts(ctx context.Context, q ProductQuery) ([]models.ProductView, error) {
	tx := r.productViews(ctx)

	if q.Search != "" {
		tx = tx.Where(`p.name LIKE ? ESCAPE '\'`, containsPattern(q.Search))
	}
	if q.Category != "" {
		tx = tx.Where("c.name = ?", q.Category)
	}

	items := make([]models.ProductView, 0, q.Limit)
	if err := tx.Order("p.id ASC").Offset(q.Offset).Limit(q.Limit).Scan(&items).Error; err != nil {
		return nil, err
	}
	return fillViewImages(items), nil
}

// AllProducts returns the whole joined catalog, used to rebuild the search index.
func (r *GormRepo) AllProducts(ctx context.Context) ([]models.ProductView, error) {
	items := make([]models.ProductView, 0)
	if err := r.productViews(ctx).Order("p.id ASC").Scan(&items).Error; err != nil {
		return nil, err
	}
	return fillViewImages(items), nil
}

func fillViewImages(items []models.ProductView) []models.ProductView {
	for i := range items {
		items[i].Images = emptyIfNil(items[i].Images)
	}
	return items
}
