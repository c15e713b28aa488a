package ports

import (
	"context"
	"time"
)

// LowStockItem is a product surfaced for replenishment attention.
type LowStockItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

// RecentProductItem is one of the latest created listings.
type RecentProductItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceRangeCount is one bucket of the price histogram.
type PriceRangeCount struct {
	PriceRange string `json:"price_range"`
	Count      int64  `json:"count"`
}

// DashboardStats is the aggregate inventory view. Every value is computed
// fresh per call; nothing is cached or incrementally maintained.
type DashboardStats struct {
	TotalProducts  int64               `json:"totalProducts"`
	TotalUsers     int64               `json:"totalUsers"`
	InventoryValue float64             `json:"inventoryValue"`
	ByCategory     []CategoryCount     `json:"byCategory"`
	LowStock       []LowStockItem      `json:"lowStock"`
	RecentProducts []RecentProductItem `json:"recentProducts"`
	PriceRanges    []PriceRangeCount   `json:"priceRanges"`
}

// StatsService computes the dashboard aggregate.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}
