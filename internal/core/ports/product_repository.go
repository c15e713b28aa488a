package ports

import (
	"context"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// ListProductsFilter is the validated query plan executed by the repository.
// All fields are produced by the service layer: SortField has already passed
// the allow-list gate and Skip/Limit are already bounded. Absent criteria
// (zero values, nil bounds) mean "no constraint".
type ListProductsFilter struct {
	Search   string   // case-insensitive substring on name or description
	Category string   // exact match
	MinPrice *float64 // inclusive lower bound
	MaxPrice *float64 // inclusive upper bound
	Sort     string   // validated sort field
	Asc      bool     // sort direction; false = descending
	Skip     int
	Limit    int
}

// CategoryCount is one row of the per-category aggregate.
type CategoryCount struct {
	Category      string `json:"category"`
	Count         int64  `json:"count"`
	TotalQuantity int64  `json:"total_quantity"`
}

// ProductRepository defines persistence operations for product listings.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// FindByID returns domain.ErrProductNotFound for unknown ids, including
	// syntactically malformed ones.
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of products matching filter and the total count
	// of matches before pagination.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	// Categories returns the distinct category values, sorted ascending.
	Categories(ctx context.Context) ([]string, error)

	// Aggregates backing the dashboard.
	Count(ctx context.Context) (int64, error)
	InventoryValue(ctx context.Context) (float64, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	LowStock(ctx context.Context, threshold int, limit int) ([]*domain.Product, error)
	Recent(ctx context.Context, limit int) ([]*domain.Product, error)
	// PriceHistogram counts products per bucket. boundaries are the lower
	// bounds of each bucket; the last bucket is open-ended.
	PriceHistogram(ctx context.Context, boundaries []float64) ([]int64, error)
}
