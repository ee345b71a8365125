package service

import (
	"context"
	"math"
	"time"

	"github.com/ait-marketplace/internal/cache"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/repository"
)

// StatisticsService 统计服务
type StatisticsService struct {
	repo repository.StatisticsRepository
	now  func() time.Time
}

// NewStatisticsService 创建统计服务
func NewStatisticsService(repo repository.StatisticsRepository) *StatisticsService {
	return &StatisticsService{repo: repo, now: time.Now}
}

// DashboardStats 市场看板
type DashboardStats struct {
	Overview       DashboardOverview             `json:"overview"`
	RecentActivity DashboardActivity             `json:"recent_activity"`
	Revenue        DashboardRevenue              `json:"revenue"`
	TopCategories  []repository.CategoryCountRow `json:"top_categories"`
}

// DashboardOverview 总量
type DashboardOverview struct {
	TotalItems          int64 `json:"total_items"`
	TotalUsers          int64 `json:"total_users"`
	TotalOrders         int64 `json:"total_orders"`
	TotalBarterRequests int64 `json:"total_barter_requests"`
	TotalWantToBuy      int64 `json:"total_want_to_buy"`
}

// DashboardActivity 近 30 天新增
type DashboardActivity struct {
	RecentItems  int64 `json:"recent_items"`
	RecentOrders int64 `json:"recent_orders"`
	RecentUsers  int64 `json:"recent_users"`
}

// DashboardRevenue 已支付收入
type DashboardRevenue struct {
	TotalRevenue  float64 `json:"total_revenue"`
	RecentRevenue float64 `json:"recent_revenue"`
}

// UserStats 个人统计
type UserStats struct {
	Items    UserItemStats  `json:"items"`
	Orders   UserOrderStats `json:"orders"`
	Sales    UserOrderStats `json:"sales"`
	Revenue  float64        `json:"revenue"`
	Wishlist int64          `json:"wishlist_count"`
	Wants    int64          `json:"want_to_buy_count"`
}

// UserItemStats 个人商品统计
type UserItemStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Sold      int64 `json:"sold"`
}

// UserOrderStats 个人订单统计
type UserOrderStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

// MonthlySales 月度销售
type MonthlySales struct {
	Month   string  `json:"month"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// SalesStats 销售分析
type SalesStats struct {
	OrdersByStatus []repository.StatusCountRow `json:"orders_by_status"`
	MonthlySales   []MonthlySales              `json:"monthly_sales"`
	TopItems       []repository.TopItemRow     `json:"top_items"`
}

// PriceBucket 价格区间
type PriceBucket struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// ItemStats 商品分析
type ItemStats struct {
	ByCategory         []repository.CategoryCountRow        `json:"by_category"`
	ByCondition        []repository.ConditionCountRow       `json:"by_condition"`
	PriceRanges        []PriceBucket                        `json:"price_ranges"`
	AvgPriceByCategory []repository.CategoryAveragePriceRow `json:"avg_price_by_category"`
}

// Dashboard 市场看板，结果缓存 60 秒
func (s *StatisticsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if hit, err := cache.GetDashboardStats(ctx, &cached); err == nil && hit {
		return &cached, nil
	}

	now := s.now()
	since := now.AddDate(0, 0, -constants.StatsRecentDays)
	overview, err := s.repo.GetOverview(since)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.SumPaidRevenue(0, nil)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.SumPaidRevenue(0, &since)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.CountItemsByCategory(constants.StatsTopCategories)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []repository.CategoryCountRow{}
	}
	stats := &DashboardStats{
		Overview: DashboardOverview{
			TotalItems:          overview.TotalItems,
			TotalUsers:          overview.TotalUsers,
			TotalOrders:         overview.TotalOrders,
			TotalBarterRequests: overview.TotalBarterRequests,
			TotalWantToBuy:      overview.TotalWantToBuy,
		},
		RecentActivity: DashboardActivity{
			RecentItems:  overview.RecentItems,
			RecentOrders: overview.RecentOrders,
			RecentUsers:  overview.RecentUsers,
		},
		Revenue: DashboardRevenue{
			TotalRevenue:  roundMoney(total),
			RecentRevenue: roundMoney(recent),
		},
		TopCategories: top,
	}
	if err := cache.SetDashboardStats(ctx, stats); err != nil {
		logger.Warnw("dashboard_stats_cache_set_failed", "error", err)
	}
	return stats, nil
}

// User 个人统计
func (s *StatisticsService) User(userID uint) (*UserStats, error) {
	row, err := s.repo.GetUserStats(userID)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		Items: UserItemStats{
			Total:     row.ItemsTotal,
			Available: row.ItemsAvailable,
			Sold:      row.ItemsTotal - row.ItemsAvailable,
		},
		Orders: UserOrderStats{
			Total:     row.OrdersTotal,
			Pending:   row.OrdersPending,
			Completed: row.OrdersCompleted,
		},
		Sales: UserOrderStats{
			Total:     row.SalesTotal,
			Pending:   row.SalesPending,
			Completed: row.SalesCompleted,
		},
		Revenue:  roundMoney(row.Revenue),
		Wishlist: row.WishlistCount,
		Wants:    row.WantToBuyCount,
	}, nil
}

// Sales 销售分析：月度数据在内存中按 YYYY-MM 聚合，兼容所有数据库方言
func (s *StatisticsService) Sales() (*SalesStats, error) {
	byStatus, err := s.repo.CountOrdersByStatus()
	if err != nil {
		return nil, err
	}
	now := s.now()
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(constants.StatsMonthlyWindow - 1), 0)
	amounts, err := s.repo.ListOrderAmountsSince(firstMonth)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopItemsByOrders(constants.StatsTopItems)
	if err != nil {
		return nil, err
	}
	if byStatus == nil {
		byStatus = []repository.StatusCountRow{}
	}
	if top == nil {
		top = []repository.TopItemRow{}
	}
	return &SalesStats{
		OrdersByStatus: byStatus,
		MonthlySales:   bucketMonthlySales(amounts, firstMonth, constants.StatsMonthlyWindow),
		TopItems:       top,
	}, nil
}

func bucketMonthlySales(rows []repository.OrderAmountRow, firstMonth time.Time, months int) []MonthlySales {
	result := make([]MonthlySales, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		key := firstMonth.AddDate(0, i, 0).Format("2006-01")
		result[i] = MonthlySales{Month: key}
		index[key] = i
	}
	for _, row := range rows {
		key := row.CreatedAt.In(firstMonth.Location()).Format("2006-01")
		i, ok := index[key]
		if !ok {
			continue
		}
		result[i].Orders++
		result[i].Revenue += row.TotalPrice
	}
	for i := range result {
		result[i].Revenue = roundMoney(result[i].Revenue)
	}
	return result
}

type priceRange struct {
	label string
	min   float64
	max   *float64
}

func priceRanges() []priceRange {
	bound := func(v float64) *float64 { return &v }
	return []priceRange{
		{"0-100", 0, bound(100)},
		{"100-500", 100, bound(500)},
		{"500-1000", 500, bound(1000)},
		{"1000-5000", 1000, bound(5000)},
		{"5000+", 5000, nil},
	}
}

// Items 商品分析
func (s *StatisticsService) Items() (*ItemStats, error) {
	byCategory, err := s.repo.CountItemsByCategory(0)
	if err != nil {
		return nil, err
	}
	byCondition, err := s.repo.CountItemsByCondition()
	if err != nil {
		return nil, err
	}
	buckets := make([]PriceBucket, 0, 5)
	for _, r := range priceRanges() {
		count, err := s.repo.CountItemsInPriceRange(r.min, r.max)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, PriceBucket{Range: r.label, Count: count})
	}
	avg, err := s.repo.AveragePriceByCategory()
	if err != nil {
		return nil, err
	}
	for i := range avg {
		avg[i].AvgPrice = roundMoney(avg[i].AvgPrice)
	}
	stats := &ItemStats{
		ByCategory:         byCategory,
		ByCondition:        byCondition,
		PriceRanges:        buckets,
		AvgPriceByCategory: avg,
	}
	if stats.ByCategory == nil {
		stats.ByCategory = []repository.CategoryCountRow{}
	}
	if stats.ByCondition == nil {
		stats.ByCondition = []repository.ConditionCountRow{}
	}
	if stats.AvgPriceByCategory == nil {
		stats.AvgPriceByCategory = []repository.CategoryAveragePriceRow{}
	}
	return stats, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
