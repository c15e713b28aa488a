package service

import (
	"context"
	"fmt"

	"github.com/markethub/marketplace-api/internal/core/ports"
)

const (
	lowStockThreshold = 20
	dashboardTopN     = 10
)

// priceBuckets are the lower bounds of the fixed histogram buckets; the
// final bucket is open-ended.
var priceBuckets = []float64{0, 25, 50, 100, 250, 500}

var priceBucketLabels = []string{"0-25", "25-50", "50-100", "100-250", "250-500", "500+"}

// StatsService computes the dashboard aggregate over the product and user
// stores. Values are recomputed on every call.
type StatsService struct {
	products ports.ProductRepository
	users    ports.UserRepository
}

func NewStatsService(products ports.ProductRepository, users ports.UserRepository) *StatsService {
	return &StatsService{products: products, users: users}
}

func (s *StatsService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count products: %w", err)
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count users: %w", err)
	}

	inventoryValue, err := s.products.InventoryValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: inventory value: %w", err)
	}

	byCategory, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: by category: %w", err)
	}

	lowStock, err := s.products.LowStock(ctx, lowStockThreshold, dashboardTopN)
	if err != nil {
		return nil, fmt.Errorf("dashboard: low stock: %w", err)
	}
	lowStockItems := make([]ports.LowStockItem, len(lowStock))
	for i, p := range lowStock {
		lowStockItems[i] = ports.LowStockItem{ID: p.ID, Name: p.Name, Quantity: p.Quantity, Category: p.Category}
	}

	recent, err := s.products.Recent(ctx, dashboardTopN)
	if err != nil {
		return nil, fmt.Errorf("dashboard: recent products: %w", err)
	}
	recentItems := make([]ports.RecentProductItem, len(recent))
	for i, p := range recent {
		recentItems[i] = ports.RecentProductItem{ID: p.ID, Name: p.Name, Price: p.Price, Category: p.Category, CreatedAt: p.CreatedAt}
	}

	counts, err := s.products.PriceHistogram(ctx, priceBuckets)
	if err != nil {
		return nil, fmt.Errorf("dashboard: price histogram: %w", err)
	}
	ranges := make([]ports.PriceRangeCount, len(priceBucketLabels))
	for i, label := range priceBucketLabels {
		var n int64
		if i < len(counts) {
			n = counts[i]
		}
		ranges[i] = ports.PriceRangeCount{PriceRange: label, Count: n}
	}

	return &ports.DashboardStats{
		TotalProducts:  totalProducts,
		TotalUsers:     totalUsers,
		InventoryValue: inventoryValue,
		ByCategory:     byCategory,
		LowStock:       lowStockItems,
		RecentProducts: recentItems,
		PriceRanges:    ranges,
	}, nil
}
