package service

import (
	"context"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

// PanelDashboard HTML 后台首页数据
type PanelDashboard struct {
	TotalUsers        int64
	ActiveUsers       int64
	TotalItems        int64
	AvailableItems    int64
	TotalOrders       int64
	PendingOrders     int64
	ActiveMemberships int64
	TotalRevenue      float64
	Growth            []PanelGrowth
	Daily             []PanelDailyBucket
}

// PanelGrowth 本周与上周对比
type PanelGrowth struct {
	Label    string
	ThisWeek int64
	LastWeek int64
	Percent  float64
}

// PanelDailyBucket 近 7 天单日新增
type PanelDailyBucket struct {
	Date   string
	Users  int64
	Items  int64
	Orders int64
}

// PanelDashboard HTML 后台首页
func (s *AdminService) PanelDashboard() (*PanelDashboard, error) {
	now := s.now()
	overview, err := s.statsRepo.GetAdminOverview(now)
	if err != nil {
		return nil, err
	}
	revenue, err := s.statsRepo.SumPaidRevenue(0, nil)
	if err != nil {
		return nil, err
	}
	dashboard := &PanelDashboard{
		TotalUsers:        overview.TotalUsers,
		ActiveUsers:       overview.ActiveUsers,
		TotalItems:        overview.TotalItems,
		AvailableItems:    overview.AvailableItems,
		TotalOrders:       overview.TotalOrders,
		PendingOrders:     overview.PendingOrders,
		ActiveMemberships: overview.ActiveMemberships,
		TotalRevenue:      roundMoney(revenue),
	}

	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	sources := []struct {
		label string
		model interface{}
	}{
		{"Users", &models.User{}},
		{"Items", &models.Item{}},
		{"Orders", &models.Order{}},
	}
	for _, source := range sources {
		thisWeek, err := s.statsRepo.CountSince(source.model, weekAgo, now)
		if err != nil {
			return nil, err
		}
		lastWeek, err := s.statsRepo.CountSince(source.model, twoWeeksAgo, weekAgo)
		if err != nil {
			return nil, err
		}
		dashboard.Growth = append(dashboard.Growth, PanelGrowth{
			Label:    source.label,
			ThisWeek: thisWeek,
			LastWeek: lastWeek,
			Percent:  growthPercent(thisWeek, lastWeek),
		})
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	days := make([]PanelDailyBucket, 7)
	index := make(map[string]int, 7)
	for i := range days {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		days[i] = PanelDailyBucket{Date: key}
		index[key] = i
	}
	series := []struct {
		model  interface{}
		assign func(bucket *PanelDailyBucket, count int64)
	}{
		{&models.User{}, func(b *PanelDailyBucket, n int64) { b.Users = n }},
		{&models.Item{}, func(b *PanelDailyBucket, n int64) { b.Items = n }},
		{&models.Order{}, func(b *PanelDailyBucket, n int64) { b.Orders = n }},
	}
	for _, serie := range series {
		rows, err := s.statsRepo.DailyCounts(serie.model, start)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if i, ok := index[normalizeDay(row.Day)]; ok {
				serie.assign(&days[i], row.Count)
			}
		}
	}
	dashboard.Daily = days
	return dashboard, nil
}

func growthPercent(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return roundMoney(float64(current-previous) / float64(previous) * 100)
}

// normalizeDay 不同方言返回的日期可能带时间部分
func normalizeDay(day string) string {
	if len(day) >= 10 {
		return day[:10]
	}
	return day
}

// PanelUsers HTML 后台用户列表
func (s *AdminService) PanelUsers(page int, search string) ([]models.User, int64, error) {
	return s.userRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: constants.PanelPageSize,
		Search:   strings.TrimSpace(search),
	})
}

// PanelUserAction 用户操作：启停 / 认证
func (s *AdminService) PanelUserAction(ctx context.Context, userID uint, action string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	switch action {
	case constants.PanelUserToggleActive:
		active := !user.IsActive
		if _, err := s.userRepo.BatchSetActive([]uint{user.ID}, active); err != nil {
			return nil, err
		}
		user.IsActive = active
		s.dropUserAuthStates(ctx, user.ID)
	case constants.PanelUserVerify:
		if _, err := s.userRepo.BatchVerify([]uint{user.ID}); err != nil {
			return nil, err
		}
		user.IsVerified = true
	default:
		return nil, ErrInvalidInput
	}
	return user, nil
}

// PanelItems HTML 后台商品列表
func (s *AdminService) PanelItems(page int, search string) ([]models.Item, int64, error) {
	return s.itemRepo.List(repository.ItemListFilter{
		Page:     page,
		PageSize: constants.PanelPageSize,
		Search:   strings.TrimSpace(search),
	})
}

// PanelItemAction 商品操作：上下架 / 精选 / 删除
func (s *AdminService) PanelItemAction(itemID uint, action string) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	switch action {
	case constants.PanelItemToggleAvailable:
		if _, err := s.itemRepo.SetAvailability([]uint{item.ID}, !item.IsAvailable); err != nil {
			return nil, err
		}
		item.IsAvailable = !item.IsAvailable
	case constants.PanelItemToggleFeatured:
		if err := s.itemRepo.SetFeatured(item.ID, !item.IsFeatured); err != nil {
			return nil, err
		}
		item.IsFeatured = !item.IsFeatured
	case constants.PanelItemDelete:
		if err := s.itemRepo.Delete(item.ID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidInput
	}
	return item, nil
}

// PanelOrders HTML 后台订单列表
func (s *AdminService) PanelOrders(page int, status string) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(repository.OrderListFilter{
		Page:     page,
		PageSize: constants.PanelPageSize,
		Status:   strings.TrimSpace(status),
	})
}

// PanelMemberships HTML 后台会员列表，filter 为 1/0 时按有效期过滤
func (s *AdminService) PanelMemberships(page int, filter string) ([]models.UserMembership, int64, error) {
	query := repository.MembershipListFilter{
		Page:     page,
		PageSize: constants.PanelPageSize,
		Now:      s.now(),
	}
	switch strings.TrimSpace(filter) {
	case constants.PanelMembershipFilterOn:
		valid := true
		query.ValidOnly = &valid
	case constants.PanelMembershipFilterOff:
		valid := false
		query.ValidOnly = &valid
	}
	return s.userRepo.ListMemberships(query)
}
