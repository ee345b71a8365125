package repository

import (
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
)

// StatisticsRepository 统计聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type StatisticsRepository interface {
	GetOverview(since time.Time) (StatsOverviewRow, error)
	GetAdminOverview(now time.Time) (AdminOverviewRow, error)
	SumPaidRevenue(sellerID uint, since *time.Time) (float64, error)
	CountItemsByCategory(limit int) ([]CategoryCountRow, error)
	CountItemsByCondition() ([]ConditionCountRow, error)
	CountItemsInPriceRange(min float64, max *float64) (int64, error)
	AveragePriceByCategory() ([]CategoryAveragePriceRow, error)
	CountOrdersByStatus() ([]StatusCountRow, error)
	ListOrderAmountsSince(since time.Time) ([]OrderAmountRow, error)
	TopItemsByOrders(limit int) ([]TopItemRow, error)
	GetUserStats(userID uint) (UserStatsRow, error)
	DailyCounts(model interface{}, since time.Time) ([]DailyCountRow, error)
	CountSince(model interface{}, since, until time.Time) (int64, error)
	ListCreatedSince(model interface{}, since time.Time) ([]time.Time, error)
	UserActivityCounts(userIDs []uint) (map[uint]UserActivityRow, error)
}

// StatsOverviewRow 市场总览
type StatsOverviewRow struct {
	TotalItems          int64
	TotalUsers          int64
	TotalOrders         int64
	TotalBarterRequests int64
	TotalWantToBuy      int64
	RecentItems         int64
	RecentOrders        int64
	RecentUsers         int64
}

// AdminOverviewRow 管理后台总览
type AdminOverviewRow struct {
	TotalUsers        int64
	ActiveUsers       int64
	VerifiedUsers     int64
	TotalItems        int64
	AvailableItems    int64
	FeaturedItems     int64
	TotalOrders       int64
	PendingOrders     int64
	ForumPosts        int64
	Advertisements    int64
	ActiveMemberships int64
}

// CategoryCountRow 分类计数
type CategoryCountRow struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ConditionCountRow 成色计数
type ConditionCountRow struct {
	Condition string `json:"condition"`
	Count     int64  `json:"count"`
}

// CategoryAveragePriceRow 分类均价
type CategoryAveragePriceRow struct {
	Category string  `json:"category"`
	AvgPrice float64 `json:"avg_price"`
}

// StatusCountRow 状态计数
type StatusCountRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// OrderAmountRow 订单金额原始行
type OrderAmountRow struct {
	CreatedAt  time.Time
	TotalPrice float64
}

// TopItemRow 商品销量排行
type TopItemRow struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	OrderCount   int64   `json:"order_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

// UserStatsRow 用户维度统计
type UserStatsRow struct {
	ItemsTotal      int64
	ItemsAvailable  int64
	OrdersTotal     int64
	OrdersPending   int64
	OrdersCompleted int64
	SalesTotal      int64
	SalesPending    int64
	SalesCompleted  int64
	Revenue         float64
	WishlistCount   int64
	WantToBuyCount  int64
}

// UserActivityRow 用户商品/订单/销售计数
type UserActivityRow struct {
	Items  int64 `json:"items_count"`
	Orders int64 `json:"orders_count"`
	Sales  int64 `json:"sales_count"`
}

type userCountRow struct {
	UserID uint
	Count  int64
}

// GormStatisticsRepository GORM 统计实现
type GormStatisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository 创建统计仓库
func NewStatisticsRepository(db *gorm.DB) *GormStatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

type countStep struct {
	query  func() *gorm.DB
	target *int64
}

func runCounts(steps []countStep) error {
	for _, step := range steps {
		if err := step.query().Count(step.target).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetOverview 获取市场总览
func (r *GormStatisticsRepository) GetOverview(since time.Time) (StatsOverviewRow, error) {
	row := StatsOverviewRow{}
	items := func() *gorm.DB { return r.db.Model(&models.Item{}) }
	orders := func() *gorm.DB { return r.db.Model(&models.Order{}) }
	users := func() *gorm.DB { return r.db.Model(&models.User{}) }
	err := runCounts([]countStep{
		{func() *gorm.DB { return items().Where("is_available = ?", true) }, &row.TotalItems},
		{func() *gorm.DB { return users().Where("is_verified = ?", true) }, &row.TotalUsers},
		{orders, &row.TotalOrders},
		{func() *gorm.DB { return r.db.Model(&models.BarterTransaction{}) }, &row.TotalBarterRequests},
		{func() *gorm.DB {
			return r.db.Model(&models.WantToBuy{}).Where("status = ?", constants.WantToBuyStatusActive)
		}, &row.TotalWantToBuy},
		{func() *gorm.DB { return items().Where("created_at >= ?", since) }, &row.RecentItems},
		{func() *gorm.DB { return orders().Where("created_at >= ?", since) }, &row.RecentOrders},
		{func() *gorm.DB { return users().Where("created_at >= ?", since) }, &row.RecentUsers},
	})
	return row, err
}

// GetAdminOverview 获取管理后台总览
func (r *GormStatisticsRepository) GetAdminOverview(now time.Time) (AdminOverviewRow, error) {
	row := AdminOverviewRow{}
	items := func() *gorm.DB { return r.db.Model(&models.Item{}) }
	users := func() *gorm.DB { return r.db.Model(&models.User{}) }
	orders := func() *gorm.DB { return r.db.Model(&models.Order{}) }
	err := runCounts([]countStep{
		{users, &row.TotalUsers},
		{func() *gorm.DB { return users().Where("is_active = ?", true) }, &row.ActiveUsers},
		{func() *gorm.DB { return users().Where("is_verified = ?", true) }, &row.VerifiedUsers},
		{items, &row.TotalItems},
		{func() *gorm.DB { return items().Where("is_available = ?", true) }, &row.AvailableItems},
		{func() *gorm.DB { return items().Where("is_featured = ?", true) }, &row.FeaturedItems},
		{orders, &row.TotalOrders},
		{func() *gorm.DB { return orders().Where("status = ?", constants.OrderStatusPending) }, &row.PendingOrders},
		{func() *gorm.DB { return r.db.Model(&models.ForumPost{}) }, &row.ForumPosts},
		{func() *gorm.DB { return r.db.Model(&models.Advertisement{}) }, &row.Advertisements},
		{func() *gorm.DB {
			return r.db.Model(&models.UserMembership{}).Where("is_active = ? AND end_date > ?", true, now)
		}, &row.ActiveMemberships},
	})
	return row, err
}

// SumPaidRevenue 已支付订单金额（sellerID 为 0 时统计全站）
func (r *GormStatisticsRepository) SumPaidRevenue(sellerID uint, since *time.Time) (float64, error) {
	query := r.db.Model(&models.Order{}).Where("payment_status = ?", constants.OrderPaymentStatusPaid)
	if sellerID != 0 {
		query = query.Where("seller_id = ?", sellerID)
	}
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	var total float64
	if err := query.Select("COALESCE(SUM(total_price), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountItemsByCategory 在售商品按分类计数
func (r *GormStatisticsRepository) CountItemsByCategory(limit int) ([]CategoryCountRow, error) {
	query := r.db.Model(&models.Item{}).
		Select("category, COUNT(*) as count").
		Where("is_available = ?", true).
		Group("category").
		Order("count DESC, category ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []CategoryCountRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountItemsByCondition 在售商品按成色计数
func (r *GormStatisticsRepository) CountItemsByCondition() ([]ConditionCountRow, error) {
	column := r.db.Statement.Quote("condition")
	var rows []ConditionCountRow
	err := r.db.Model(&models.Item{}).
		Select(column+" as "+column+", COUNT(*) as count").
		Where("is_available = ?", true).
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountItemsInPriceRange 价格区间计数（左闭右开）
func (r *GormStatisticsRepository) CountItemsInPriceRange(min float64, max *float64) (int64, error) {
	query := r.db.Model(&models.Item{}).
		Where("is_available = ? AND price IS NOT NULL AND price >= ?", true, min)
	if max != nil {
		query = query.Where("price < ?", *max)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// AveragePriceByCategory 分类均价
func (r *GormStatisticsRepository) AveragePriceByCategory() ([]CategoryAveragePriceRow, error) {
	var rows []CategoryAveragePriceRow
	err := r.db.Model(&models.Item{}).
		Select("category, AVG(price) as avg_price").
		Where("is_available = ? AND price IS NOT NULL", true).
		Group("category").
		Order("avg_price DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountOrdersByStatus 订单状态分布
func (r *GormStatisticsRepository) CountOrdersByStatus() ([]StatusCountRow, error) {
	var rows []StatusCountRow
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOrderAmountsSince 指定时间后的订单金额（按月聚合在服务层完成）
func (r *GormStatisticsRepository) ListOrderAmountsSince(since time.Time) ([]OrderAmountRow, error) {
	var rows []OrderAmountRow
	err := r.db.Model(&models.Order{}).
		Select("created_at, total_price").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopItemsByOrders 按订单数排行的商品
func (r *GormStatisticsRepository) TopItemsByOrders(limit int) ([]TopItemRow, error) {
	var rows []TopItemRow
	err := r.db.Model(&models.Order{}).
		Select(
			"items.id as id, items.title as title, COUNT(orders.id) as order_count, "+
				"COALESCE(SUM(CASE WHEN orders.payment_status = ? THEN orders.total_price ELSE 0 END), 0) as total_revenue",
			constants.OrderPaymentStatusPaid,
		).
		Joins("JOIN items ON items.id = orders.item_id").
		Group("items.id, items.title").
		Order("order_count DESC, items.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetUserStats 用户维度统计
func (r *GormStatisticsRepository) GetUserStats(userID uint) (UserStatsRow, error) {
	row := UserStatsRow{}
	items := func() *gorm.DB { return r.db.Model(&models.Item{}).Where("owner_id = ?", userID) }
	buys := func() *gorm.DB { return r.db.Model(&models.Order{}).Where("buyer_id = ?", userID) }
	sales := func() *gorm.DB { return r.db.Model(&models.Order{}).Where("seller_id = ?", userID) }
	err := runCounts([]countStep{
		{items, &row.ItemsTotal},
		{func() *gorm.DB { return items().Where("is_available = ?", true) }, &row.ItemsAvailable},
		{buys, &row.OrdersTotal},
		{func() *gorm.DB { return buys().Where("status = ?", constants.OrderStatusPending) }, &row.OrdersPending},
		{func() *gorm.DB { return buys().Where("status = ?", constants.OrderStatusDelivered) }, &row.OrdersCompleted},
		{sales, &row.SalesTotal},
		{func() *gorm.DB { return sales().Where("status = ?", constants.OrderStatusPending) }, &row.SalesPending},
		{func() *gorm.DB { return sales().Where("status = ?", constants.OrderStatusDelivered) }, &row.SalesCompleted},
		{func() *gorm.DB {
			return r.db.Model(&models.WishlistItem{}).
				Joins("JOIN wishlists ON wishlists.id = wishlist_items.wishlist_id").
				Where("wishlists.user_id = ?", userID)
		}, &row.WishlistCount},
		{func() *gorm.DB {
			return r.db.Model(&models.WantToBuy{}).Where("user_id = ? AND status = ?", userID, constants.WantToBuyStatusActive)
		}, &row.WantToBuyCount},
	})
	if err != nil {
		return row, err
	}
	revenue, err := r.SumPaidRevenue(userID, nil)
	if err != nil {
		return row, err
	}
	row.Revenue = revenue
	return row, nil
}

// DailyCounts 按天统计新增记录
func (r *GormStatisticsRepository) DailyCounts(model interface{}, since time.Time) ([]DailyCountRow, error) {
	expr := dayExpr(r.db, "created_at")
	var rows []DailyCountRow
	err := r.db.Model(model).
		Select(expr+" as day, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group(expr).
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountSince 统计区间内新增记录
func (r *GormStatisticsRepository) CountSince(model interface{}, since, until time.Time) (int64, error) {
	var count int64
	err := r.db.Model(model).Where("created_at >= ? AND created_at < ?", since, until).Count(&count).Error
	return count, err
}

// ListCreatedSince 区间内记录的创建时间（按月聚合在服务层完成）
func (r *GormStatisticsRepository) ListCreatedSince(model interface{}, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.Model(model).Where("created_at >= ?", since).Order("created_at ASC").Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// UserActivityCounts 批量统计用户的商品数、购买订单数与销售订单数
func (r *GormStatisticsRepository) UserActivityCounts(userIDs []uint) (map[uint]UserActivityRow, error) {
	result := make(map[uint]UserActivityRow, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	collect := func(model interface{}, column string, assign func(row *UserActivityRow, count int64)) error {
		var rows []userCountRow
		err := r.db.Model(model).
			Select(column+" as user_id, COUNT(*) as count").
			Where(column+" IN ?", userIDs).
			Group(column).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			current := result[row.UserID]
			assign(&current, row.Count)
			result[row.UserID] = current
		}
		return nil
	}
	if err := collect(&models.Item{}, "owner_id", func(row *UserActivityRow, n int64) { row.Items = n }); err != nil {
		return nil, err
	}
	if err := collect(&models.Order{}, "buyer_id", func(row *UserActivityRow, n int64) { row.Orders = n }); err != nil {
		return nil, err
	}
	if err := collect(&models.Order{}, "seller_id", func(row *UserActivityRow, n int64) { row.Sales = n }); err != nil {
		return nil, err
	}
	return result, nil
}
