package service

import (
	"context"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/cache"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"gorm.io/gorm"
)

const adminTopCategories = 10

// AdminService 管理后台服务
// 说明：聚合后台看板、用户/商品/订单管理与批量操作。
type AdminService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	itemRepo  repository.ItemRepository
	orderRepo repository.OrderRepository
	statsRepo repository.StatisticsRepository
	now       func() time.Time
}

// NewAdminService 创建管理后台服务
func NewAdminService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	orderRepo repository.OrderRepository,
	statsRepo repository.StatisticsRepository,
) *AdminService {
	return &AdminService{
		db:        db,
		userRepo:  userRepo,
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
		statsRepo: statsRepo,
		now:       time.Now,
	}
}

// AdminDashboard 管理端看板
type AdminDashboard struct {
	Overview                repository.AdminOverviewRow   `json:"overview"`
	Revenue                 DashboardRevenue              `json:"revenue"`
	RecentActivity          AdminRecentActivity           `json:"recent_activity"`
	TopCategories           []repository.CategoryCountRow `json:"top_categories"`
	OrderStatusDistribution []repository.StatusCountRow   `json:"order_status_distribution"`
	MonthlyRegistrations    []MonthlyCount                `json:"monthly_registrations"`
}

// AdminRecentActivity 近 7 天新增
type AdminRecentActivity struct {
	NewUsers  int64 `json:"new_users"`
	NewItems  int64 `json:"new_items"`
	NewOrders int64 `json:"new_orders"`
}

// MonthlyCount 月度计数
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// AdminUserView 管理端用户行
type AdminUserView struct {
	models.User
	repository.UserActivityRow
}

// AdminUserListInput 用户列表参数
type AdminUserListInput struct {
	Page       int
	PageSize   int
	Search     string
	IsVerified *bool
	IsActive   *bool
}

// AdminItemListInput 商品列表参数
type AdminItemListInput struct {
	Page        int
	PageSize    int
	Search      string
	Category    string
	IsAvailable *bool
}

// AdminOrderListInput 订单列表参数
type AdminOrderListInput struct {
	Page          int
	PageSize      int
	Search        string
	Status        string
	PaymentStatus string
}

// BulkActionInput 批量操作参数
type BulkActionInput struct {
	Action  string
	ItemIDs []uint
	UserIDs []uint
}

// BulkActionResult 批量操作结果
type BulkActionResult struct {
	Action  string `json:"action"`
	Updated int64  `json:"updated_count"`
}

// SystemHealth 系统健康状态
type SystemHealth struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Redis     string    `json:"redis"`
	Timestamp time.Time `json:"timestamp"`
}

// Dashboard 管理端看板
func (s *AdminService) Dashboard() (*AdminDashboard, error) {
	now := s.now()
	overview, err := s.statsRepo.GetAdminOverview(now)
	if err != nil {
		return nil, err
	}
	total, err := s.statsRepo.SumPaidRevenue(0, nil)
	if err != nil {
		return nil, err
	}
	monthAgo := now.AddDate(0, 0, -constants.StatsRecentDays)
	recentRevenue, err := s.statsRepo.SumPaidRevenue(0, &monthAgo)
	if err != nil {
		return nil, err
	}
	weekAgo := now.AddDate(0, 0, -7)
	activity := AdminRecentActivity{}
	counts := []struct {
		model  interface{}
		target *int64
	}{
		{&models.User{}, &activity.NewUsers},
		{&models.Item{}, &activity.NewItems},
		{&models.Order{}, &activity.NewOrders},
	}
	for _, c := range counts {
		n, err := s.statsRepo.CountSince(c.model, weekAgo, now)
		if err != nil {
			return nil, err
		}
		*c.target = n
	}
	top, err := s.statsRepo.CountItemsByCategory(adminTopCategories)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.statsRepo.CountOrdersByStatus()
	if err != nil {
		return nil, err
	}
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(constants.StatsMonthlyWindow - 1), 0)
	joined, err := s.statsRepo.ListCreatedSince(&models.User{}, firstMonth)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []repository.CategoryCountRow{}
	}
	if byStatus == nil {
		byStatus = []repository.StatusCountRow{}
	}
	return &AdminDashboard{
		Overview:                overview,
		Revenue:                 DashboardRevenue{TotalRevenue: roundMoney(total), RecentRevenue: roundMoney(recentRevenue)},
		RecentActivity:          activity,
		TopCategories:           top,
		OrderStatusDistribution: byStatus,
		MonthlyRegistrations:    bucketMonthlyCounts(joined, firstMonth, constants.StatsMonthlyWindow),
	}, nil
}

func bucketMonthlyCounts(times []time.Time, firstMonth time.Time, months int) []MonthlyCount {
	result := make([]MonthlyCount, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		key := firstMonth.AddDate(0, i, 0).Format("2006-01")
		result[i] = MonthlyCount{Month: key}
		index[key] = i
	}
	for _, t := range times {
		if i, ok := index[t.In(firstMonth.Location()).Format("2006-01")]; ok {
			result[i].Count++
		}
	}
	return result
}

// ListUsers 管理端用户列表，附带商品/订单/销售计数
func (s *AdminService) ListUsers(input AdminUserListInput) ([]AdminUserView, int64, error) {
	users, total, err := s.userRepo.List(repository.UserListFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		Search:     strings.TrimSpace(input.Search),
		IsVerified: input.IsVerified,
		IsActive:   input.IsActive,
	})
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	counts, err := s.statsRepo.UserActivityCounts(ids)
	if err != nil {
		return nil, 0, err
	}
	views := make([]AdminUserView, 0, len(users))
	for _, user := range users {
		views = append(views, AdminUserView{User: user, UserActivityRow: counts[user.ID]})
	}
	return views, total, nil
}

// ListItems 管理端商品列表
func (s *AdminService) ListItems(input AdminItemListInput) ([]models.Item, int64, error) {
	return s.itemRepo.List(repository.ItemListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		Search:      strings.TrimSpace(input.Search),
		Category:    strings.TrimSpace(input.Category),
		IsAvailable: input.IsAvailable,
	})
}

// ListOrders 管理端订单列表
func (s *AdminService) ListOrders(input AdminOrderListInput) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(repository.OrderListFilter{
		Page:          input.Page,
		PageSize:      input.PageSize,
		Search:        strings.TrimSpace(input.Search),
		Status:        strings.TrimSpace(input.Status),
		PaymentStatus: strings.TrimSpace(input.PaymentStatus),
	})
}

// BulkAction 批量操作；停用用户时同时吊销其 Token
func (s *AdminService) BulkAction(ctx context.Context, input BulkActionInput) (*BulkActionResult, error) {
	action := strings.TrimSpace(input.Action)
	var (
		updated int64
		err     error
	)
	switch action {
	case constants.BulkActionActivateItems, constants.BulkActionDeactivateItems:
		if len(input.ItemIDs) == 0 {
			return nil, ErrBulkActionInvalid
		}
		updated, err = s.itemRepo.SetAvailability(input.ItemIDs, action == constants.BulkActionActivateItems)
	case constants.BulkActionVerifyUsers:
		if len(input.UserIDs) == 0 {
			return nil, ErrBulkActionInvalid
		}
		updated, err = s.userRepo.BatchVerify(input.UserIDs)
	case constants.BulkActionDeactivateUsers:
		if len(input.UserIDs) == 0 {
			return nil, ErrBulkActionInvalid
		}
		updated, err = s.userRepo.BatchSetActive(input.UserIDs, false)
		if err == nil {
			s.dropUserAuthStates(ctx, input.UserIDs...)
		}
	default:
		return nil, ErrBulkActionInvalid
	}
	if err != nil {
		return nil, err
	}
	return &BulkActionResult{Action: action, Updated: updated}, nil
}

func (s *AdminService) dropUserAuthStates(ctx context.Context, userIDs ...uint) {
	if err := cache.DelUserAuthStates(ctx, userIDs...); err != nil {
		logger.Warnw("user_auth_state_invalidate_failed", "user_ids", userIDs, "error", err)
	}
}

// SystemHealth 数据库与 Redis 连通性
func (s *AdminService) SystemHealth(ctx context.Context) *SystemHealth {
	health := &SystemHealth{
		Status:    "healthy",
		Database:  "connected",
		Redis:     "disabled",
		Timestamp: s.now(),
	}
	if err := pingDB(ctx, s.db); err != nil {
		logger.Warnw("system_health_database_failed", "error", err)
		health.Database = "disconnected"
		health.Status = "unhealthy"
	}
	if cache.Enabled() {
		if ok, err := cache.Ping(ctx); err != nil || !ok {
			logger.Warnw("system_health_redis_failed", "error", err)
			health.Redis = "disconnected"
			health.Status = "unhealthy"
		} else {
			health.Redis = "connected"
		}
	}
	return health
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
