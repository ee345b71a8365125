package service

import (
	"strings"
	"time"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WantedService 求购帖服务（含每月免费额度）
type WantedService struct {
	cfg             *config.Config
	wantedRepo      repository.WantedRepository
	userAuthService *UserAuthService
	settingService  *SettingService
	now             func() time.Time
}

// NewWantedService 创建求购帖服务
func NewWantedService(cfg *config.Config, wantedRepo repository.WantedRepository, userAuthService *UserAuthService, settingService *SettingService) *WantedService {
	return &WantedService{
		cfg:             cfg,
		wantedRepo:      wantedRepo,
		userAuthService: userAuthService,
		settingService:  settingService,
		now:             time.Now,
	}
}

// WantedPostInfo 发帖额度信息
type WantedPostInfo struct {
	IsPremium          bool         `json:"is_premium"`
	FreePostsUsed      int64        `json:"free_posts_used"`
	FreePostsRemaining int64        `json:"free_posts_remaining"`
	CanPostFree        bool         `json:"can_post_free"`
	PostingFee         models.Money `json:"posting_fee"`
	MemberFreePosts    int          `json:"member_free_posts"`
}

// WantedInput 求购帖参数，指针为空表示不修改
type WantedInput struct {
	Title               *string
	Description         *string
	MaxPrice            *models.Money
	ClearMaxPrice       bool
	Category            *string
	ConditionPreference *string
	ContactPhone        *string
	Location            *string
	IsActive            *bool
	PaidAmount          *models.Money
}

// WantedListInput 求购帖列表参数
type WantedListInput struct {
	ViewerID uint
	UserID   uint
	My       bool
	Page     int
	PageSize int
}

// monthStart 当月第一天零点
func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func (s *WantedService) marketplaceSetting() MarketplaceSetting {
	var defaults config.MarketplaceConfig
	if s.cfg != nil {
		defaults = s.cfg.Marketplace
	}
	setting, err := s.settingService.GetMarketplaceSetting(defaults)
	if err != nil {
		logger.Warnw("marketplace_setting_load_failed", "error", err)
	}
	return setting
}

// PostInfo 查询当月免费额度
func (s *WantedService) PostInfo(userID uint) (*WantedPostInfo, error) {
	setting := s.marketplaceSetting()
	premium, err := s.userAuthService.IsMember(userID)
	if err != nil {
		return nil, err
	}
	used, err := s.wantedRepo.CountFreePostsSince(userID, monthStart(s.now()))
	if err != nil {
		return nil, err
	}
	return buildWantedPostInfo(setting, premium, used), nil
}

func buildWantedPostInfo(setting MarketplaceSetting, premium bool, used int64) *WantedPostInfo {
	allowance := int64(setting.WantedFreePosts)
	if premium {
		allowance = int64(setting.WantedMemberFreePosts)
	}
	remaining := allowance - used
	if remaining < 0 {
		remaining = 0
	}
	return &WantedPostInfo{
		IsPremium:          premium,
		FreePostsUsed:      used,
		FreePostsRemaining: remaining,
		CanPostFree:        remaining > 0,
		PostingFee:         models.NewMoneyFromDecimal(decimal.NewFromFloat(setting.WantedPostingFee)),
		MemberFreePosts:    setting.WantedMemberFreePosts,
	}
}

// Create 发布求购帖：额度内免费，超出需支付发帖费，额度检查与写入同事务
func (s *WantedService) Create(userID uint, input WantedInput) (*models.WantedItem, error) {
	item := &models.WantedItem{
		UserID:              userID,
		ConditionPreference: constants.ConditionAny,
		IsActive:            true,
	}
	if err := applyWantedInput(item, input); err != nil {
		return nil, err
	}
	if item.Title == "" || item.Description == "" {
		return nil, ErrWantedInvalid
	}
	setting := s.marketplaceSetting()
	premium, err := s.userAuthService.IsMember(userID)
	if err != nil {
		return nil, err
	}
	paid := decimal.Zero
	if input.PaidAmount != nil {
		paid = input.PaidAmount.Decimal
	}

	err = s.wantedRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.wantedRepo.WithTx(tx)
		used, err := repo.CountFreePostsSince(userID, monthStart(s.now()))
		if err != nil {
			return err
		}
		info := buildWantedPostInfo(setting, premium, used)
		if info.CanPostFree {
			item.IsFreePost = true
			item.PaidAmount = models.NewMoneyFromDecimal(decimal.Zero)
		} else {
			if paid.LessThan(info.PostingFee.Decimal) {
				return ErrWantedPaymentRequired
			}
			item.IsFreePost = false
			item.PaidAmount = models.NewMoneyFromDecimal(paid)
		}
		return repo.Create(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List 进行中的求购帖，支持按用户或“我的”过滤
func (s *WantedService) List(input WantedListInput) ([]models.WantedItem, int64, error) {
	filter := repository.WantedListFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		OnlyActive: true,
	}
	switch {
	case input.UserID != 0:
		filter.UserID = input.UserID
	case input.My && input.ViewerID != 0:
		filter.UserID = input.ViewerID
	}
	return s.wantedRepo.List(filter)
}

// Get 求购帖详情
func (s *WantedService) Get(id uint) (*models.WantedItem, error) {
	item, err := s.wantedRepo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrWantedNotFound
	}
	return item, nil
}

// Update 更新求购帖（仅发布者，发帖费与免费标记不可改）
func (s *WantedService) Update(userID, id uint, input WantedInput) (*models.WantedItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrForbidden
	}
	input.PaidAmount = nil
	if err := applyWantedInput(item, input); err != nil {
		return nil, err
	}
	if item.Title == "" || item.Description == "" {
		return nil, ErrWantedInvalid
	}
	if err := s.wantedRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 删除求购帖（仅发布者）
func (s *WantedService) Delete(userID, id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrForbidden
	}
	return s.wantedRepo.Delete(id)
}

func applyWantedInput(item *models.WantedItem, input WantedInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len([]rune(title)) > 200 {
			return ErrWantedInvalid
		}
		item.Title = title
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.ClearMaxPrice {
		item.MaxPrice = nil
	} else if input.MaxPrice != nil {
		if input.MaxPrice.Decimal.IsNegative() {
			return ErrWantedInvalid
		}
		price := models.NewMoneyFromDecimal(input.MaxPrice.Decimal)
		item.MaxPrice = &price
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.ConditionPreference != nil {
		condition := strings.TrimSpace(*input.ConditionPreference)
		if !containsString(constants.WantedConditions, condition) {
			return ErrWantedInvalid
		}
		item.ConditionPreference = condition
	}
	if input.ContactPhone != nil {
		item.ContactPhone = strings.TrimSpace(*input.ContactPhone)
	}
	if input.Location != nil {
		item.Location = strings.TrimSpace(*input.Location)
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if input.PaidAmount != nil && input.PaidAmount.Decimal.IsNegative() {
		return ErrWantedInvalid
	}
	return nil
}
