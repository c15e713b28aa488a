package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

func TestDashboard_ComposesAggregates(t *testing.T) {
	products := newStubProductRepo()
	products.countVal = 18
	products.inventoryVal = 24999.5
	products.byCategory = []ports.CategoryCount{
		{Category: "Electronics", Count: 5, TotalQuantity: 388},
		{Category: "Furniture", Count: 2, TotalQuantity: 17},
	}
	products.lowStock = []*domain.Product{
		{ID: "p1", Name: "Herman Miller Aeron Chair", Quantity: 5, Category: "Furniture"},
	}
	products.recent = []*domain.Product{
		{ID: "p2", Name: "LED Desk Lamp", Price: 54.99, Category: "Office Decor", CreatedAt: time.Now()},
	}
	products.histogram = []int64{3, 4, 5, 3, 2, 1}

	users := newStubUserRepo()
	seedOwner(users, "u1", "alice_seller")
	seedOwner(users, "u2", "bob_shop")

	svc := NewStatsService(products, users)
	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if stats.TotalProducts != 18 {
		t.Fatalf("totalProducts = %d, want 18", stats.TotalProducts)
	}
	if stats.TotalUsers != 2 {
		t.Fatalf("totalUsers = %d, want 2", stats.TotalUsers)
	}
	if stats.InventoryValue != 24999.5 {
		t.Fatalf("inventoryValue = %v", stats.InventoryValue)
	}
	if len(stats.ByCategory) != 2 || stats.ByCategory[0].Category != "Electronics" {
		t.Fatalf("byCategory not forwarded: %+v", stats.ByCategory)
	}
	if len(stats.LowStock) != 1 || stats.LowStock[0].Quantity != 5 {
		t.Fatalf("lowStock not mapped: %+v", stats.LowStock)
	}
	if len(stats.RecentProducts) != 1 || stats.RecentProducts[0].Name != "LED Desk Lamp" {
		t.Fatalf("recentProducts not mapped: %+v", stats.RecentProducts)
	}
}

func TestDashboard_PriceRangeLabels(t *testing.T) {
	products := newStubProductRepo()
	products.histogram = []int64{1, 0, 2, 0, 0, 7}

	svc := NewStatsService(products, newStubUserRepo())
	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	wantLabels := []string{"0-25", "25-50", "50-100", "100-250", "250-500", "500+"}
	if len(stats.PriceRanges) != len(wantLabels) {
		t.Fatalf("got %d price ranges, want %d", len(stats.PriceRanges), len(wantLabels))
	}
	for i, label := range wantLabels {
		if stats.PriceRanges[i].PriceRange != label {
			t.Fatalf("range[%d] = %q, want %q", i, stats.PriceRanges[i].PriceRange, label)
		}
	}
	if stats.PriceRanges[5].Count != 7 {
		t.Fatalf("open-ended bucket count = %d, want 7", stats.PriceRanges[5].Count)
	}
}

func TestDashboard_ZeroFillsMissingBuckets(t *testing.T) {
	products := newStubProductRepo()
	products.histogram = []int64{2, 3} // sparse result: only low buckets populated

	svc := NewStatsService(products, newStubUserRepo())
	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if len(stats.PriceRanges) != 6 {
		t.Fatalf("histogram must always cover all buckets, got %d", len(stats.PriceRanges))
	}
	for i := 2; i < 6; i++ {
		if stats.PriceRanges[i].Count != 0 {
			t.Fatalf("bucket %d should be zero-filled, got %d", i, stats.PriceRanges[i].Count)
		}
	}
}

func TestDashboard_PropagatesRepoError(t *testing.T) {
	products := newStubProductRepo()
	products.aggErr = errors.New("connection reset")

	svc := NewStatsService(products, newStubUserRepo())
	if _, err := svc.Dashboard(context.Background()); err == nil {
		t.Fatalf("expected aggregate error to propagate")
	}
}
