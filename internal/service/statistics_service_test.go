package service

import (
	"context"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

func createStatsOrder(t *testing.T, env *marketplaceTestEnv, buyerID uint, item *models.Item, total int64, status, paymentStatus string) *models.Order {
	t.Helper()
	order := &models.Order{
		BuyerID:       buyerID,
		SellerID:      item.OwnerID,
		ItemID:        item.ID,
		Quantity:      1,
		TotalPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		Status:        status,
		PaymentStatus: paymentStatus,
	}
	if err := env.db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestStatisticsServiceDashboardAndUser(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "statistics_service_test")
	svc := NewStatisticsService(repository.NewStatisticsRepository(env.db))
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	lamp := env.createItem(t, seller.ID, "Lamp", 200, nil)
	env.createItem(t, seller.ID, "Sold Kettle", 300, func(item *models.Item) { item.IsAvailable = false })

	createStatsOrder(t, env, buyer.ID, lamp, 200, constants.OrderStatusDelivered, constants.OrderPaymentStatusPaid)
	createStatsOrder(t, env, buyer.ID, lamp, 150, constants.OrderStatusPending, constants.OrderPaymentStatusPending)

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if dashboard.Overview.TotalItems != 1 || dashboard.Overview.TotalUsers != 2 || dashboard.Overview.TotalOrders != 2 {
		t.Fatalf("unexpected overview: %+v", dashboard.Overview)
	}
	if dashboard.Revenue.TotalRevenue != 200 || dashboard.Revenue.RecentRevenue != 200 {
		t.Fatalf("only paid orders count as revenue: %+v", dashboard.Revenue)
	}

	sellerStats, err := svc.User(seller.ID)
	if err != nil {
		t.Fatalf("user stats failed: %v", err)
	}
	if sellerStats.Items.Total != 2 || sellerStats.Items.Available != 1 || sellerStats.Items.Sold != 1 {
		t.Fatalf("unexpected item stats: %+v", sellerStats.Items)
	}
	if sellerStats.Sales.Total != 2 || sellerStats.Sales.Completed != 1 || sellerStats.Sales.Pending != 1 {
		t.Fatalf("unexpected sales stats: %+v", sellerStats.Sales)
	}
	if sellerStats.Revenue != 200 {
		t.Fatalf("unexpected revenue: %v", sellerStats.Revenue)
	}
	buyerStats, err := svc.User(buyer.ID)
	if err != nil {
		t.Fatalf("buyer stats failed: %v", err)
	}
	if buyerStats.Orders.Total != 2 || buyerStats.Sales.Total != 0 {
		t.Fatalf("unexpected buyer stats: %+v", buyerStats)
	}
}

func TestStatisticsServiceItemsPriceRanges(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "statistics_items_test")
	svc := NewStatisticsService(repository.NewStatisticsRepository(env.db))
	owner := env.createUser(t, "owner")
	env.createItem(t, owner.ID, "Pen", 20, nil)
	env.createItem(t, owner.ID, "Shelf", 100, nil)
	env.createItem(t, owner.ID, "Bike", 4200, nil)
	env.createItem(t, owner.ID, "Scooter", 12000, func(item *models.Item) { item.Category = "Vehicles" })
	env.createItem(t, owner.ID, "Free swap", 0, func(item *models.Item) { item.Price = nil })

	stats, err := svc.Items()
	if err != nil {
		t.Fatalf("item stats failed: %v", err)
	}
	want := map[string]int64{"0-100": 1, "100-500": 1, "500-1000": 0, "1000-5000": 1, "5000+": 1}
	if len(stats.PriceRanges) != len(want) {
		t.Fatalf("unexpected bucket count: %d", len(stats.PriceRanges))
	}
	for _, bucket := range stats.PriceRanges {
		if bucket.Count != want[bucket.Range] {
			t.Fatalf("bucket %s: expected %d, got %d", bucket.Range, want[bucket.Range], bucket.Count)
		}
	}
	if len(stats.ByCategory) != 2 || stats.ByCategory[0].Category != "Electronics" {
		t.Fatalf("unexpected category breakdown: %+v", stats.ByCategory)
	}
}

func TestBucketMonthlySales(t *testing.T) {
	first := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	rows := []repository.OrderAmountRow{
		{CreatedAt: time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC), TotalPrice: 100.25},
		{CreatedAt: time.Date(2025, time.November, 20, 10, 0, 0, 0, time.UTC), TotalPrice: 50},
		{CreatedAt: time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC), TotalPrice: 10},
		{CreatedAt: time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC), TotalPrice: 999},
	}
	result := bucketMonthlySales(rows, first, 3)
	if len(result) != 3 {
		t.Fatalf("expected 3 months, got %d", len(result))
	}
	if result[0].Month != "2025-11" || result[0].Orders != 2 || result[0].Revenue != 150.25 {
		t.Fatalf("unexpected first bucket: %+v", result[0])
	}
	if result[1].Month != "2025-12" || result[1].Orders != 0 {
		t.Fatalf("unexpected empty bucket: %+v", result[1])
	}
	if result[2].Month != "2026-01" || result[2].Orders != 1 {
		t.Fatalf("unexpected last bucket: %+v", result[2])
	}
}
