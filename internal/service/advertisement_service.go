package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/cache"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

const (
	adAnalyticsRecentLimit = 10
	adAnalyticsDays        = 30
)

// AdvertisementService 广告服务
type AdvertisementService struct {
	repo repository.AdvertisementRepository
	now  func() time.Time
}

// NewAdvertisementService 创建广告服务
func NewAdvertisementService(repo repository.AdvertisementRepository) *AdvertisementService {
	return &AdvertisementService{repo: repo, now: time.Now}
}

// AdvertisementInput 广告参数，指针为空表示不修改
type AdvertisementInput struct {
	Title            *string
	Description      *string
	AdType           *string
	ImageURL         *string
	LinkURL          *string
	Status           *string
	TargetCategories *string
	TargetLocations  *string
	StartDate        *time.Time
	EndDate          *time.Time
	Position         *string
	SortOrder        *int
}

// AdvertisementView 广告视图（含投放状态与点击率）
type AdvertisementView struct {
	models.Advertisement
	IsActive         bool    `json:"is_active"`
	ClickThroughRate float64 `json:"click_through_rate"`
}

// AdEventInput 展示/点击事件
type AdEventInput struct {
	UserID    *uint
	IPAddress string
	UserAgent string
	Referer   string
	PageURL   string
}

// AdAnalytics 广告分析
type AdAnalytics struct {
	Advertisement AdvertisementView          `json:"advertisement"`
	RecentClicks  []models.AdClick           `json:"recent_clicks"`
	RecentViews   []models.AdView            `json:"recent_views"`
	DailyClicks   []repository.DailyCountRow `json:"daily_clicks"`
	DailyViews    []repository.DailyCountRow `json:"daily_views"`
}

var (
	adTypes    = []string{constants.AdTypeBanner, constants.AdTypeSidebar, constants.AdTypePopup, constants.AdTypeInline}
	adStatuses = []string{constants.AdStatusDraft, constants.AdStatusActive, constants.AdStatusPaused, constants.AdStatusExpired}
)

func (s *AdvertisementService) toView(ad models.Advertisement) AdvertisementView {
	return AdvertisementView{
		Advertisement:    ad,
		IsActive:         ad.IsActiveAt(s.now()),
		ClickThroughRate: ad.ClickThroughRate(),
	}
}

func (s *AdvertisementService) toViews(ads []models.Advertisement) []AdvertisementView {
	views := make([]AdvertisementView, 0, len(ads))
	for _, ad := range ads {
		views = append(views, s.toView(ad))
	}
	return views
}

// ListMine 当前用户创建的广告
func (s *AdvertisementService) ListMine(userID uint, page, pageSize int) ([]AdvertisementView, int64, error) {
	ads, total, err := s.repo.List(repository.AdvertisementListFilter{Page: page, PageSize: pageSize, CreatedByID: userID})
	if err != nil {
		return nil, 0, err
	}
	return s.toViews(ads), total, nil
}

// Stats 当前用户广告的计数与点击率
func (s *AdvertisementService) Stats(userID uint) ([]AdvertisementView, error) {
	ads, _, err := s.repo.List(repository.AdvertisementListFilter{CreatedByID: userID})
	if err != nil {
		return nil, err
	}
	return s.toViews(ads), nil
}

// ListPublic 投放窗口内的广告，可按位置过滤
func (s *AdvertisementService) ListPublic(position string, page, pageSize int) ([]AdvertisementView, int64, error) {
	now := s.now()
	ads, total, err := s.repo.List(repository.AdvertisementListFilter{
		Page:     page,
		PageSize: pageSize,
		Position: position,
		ActiveAt: &now,
	})
	if err != nil {
		return nil, 0, err
	}
	return s.toViews(ads), total, nil
}

// Get 获取广告（仅创建者）
func (s *AdvertisementService) Get(userID, id uint) (*AdvertisementView, error) {
	ad, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	view := s.toView(*ad)
	return &view, nil
}

func (s *AdvertisementService) owned(userID, id uint) (*models.Advertisement, error) {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ad == nil || ad.CreatedByID != userID {
		return nil, ErrAdNotFound
	}
	return ad, nil
}

// Create 创建广告
func (s *AdvertisementService) Create(userID uint, input AdvertisementInput) (*AdvertisementView, error) {
	ad := &models.Advertisement{
		CreatedByID: userID,
		AdType:      constants.AdTypeBanner,
		Status:      constants.AdStatusDraft,
	}
	if input.StartDate == nil || input.EndDate == nil {
		return nil, ErrAdInvalid
	}
	if err := applyAdvertisementInput(ad, input); err != nil {
		return nil, err
	}
	if ad.Title == "" {
		return nil, ErrAdInvalid
	}
	if err := s.repo.Create(ad); err != nil {
		return nil, err
	}
	view := s.toView(*ad)
	return &view, nil
}

// Update 更新广告（仅创建者）
func (s *AdvertisementService) Update(userID, id uint, input AdvertisementInput) (*AdvertisementView, error) {
	ad, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyAdvertisementInput(ad, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ad); err != nil {
		return nil, err
	}
	view := s.toView(*ad)
	return &view, nil
}

// Delete 删除广告（仅创建者）
func (s *AdvertisementService) Delete(userID, id uint) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func applyAdvertisementInput(ad *models.Advertisement, input AdvertisementInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len([]rune(title)) > 200 {
			return ErrAdInvalid
		}
		ad.Title = title
	}
	if input.Description != nil {
		ad.Description = strings.TrimSpace(*input.Description)
	}
	if input.AdType != nil {
		adType := strings.TrimSpace(*input.AdType)
		if !containsString(adTypes, adType) {
			return ErrAdInvalid
		}
		ad.AdType = adType
	}
	if input.ImageURL != nil {
		ad.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.LinkURL != nil {
		ad.LinkURL = strings.TrimSpace(*input.LinkURL)
	}
	if input.Status != nil {
		status := strings.TrimSpace(*input.Status)
		if !containsString(adStatuses, status) {
			return ErrAdInvalid
		}
		ad.Status = status
	}
	if input.TargetCategories != nil {
		ad.TargetCategories = strings.TrimSpace(*input.TargetCategories)
	}
	if input.TargetLocations != nil {
		ad.TargetLocations = strings.TrimSpace(*input.TargetLocations)
	}
	if input.StartDate != nil {
		ad.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		ad.EndDate = *input.EndDate
	}
	if input.Position != nil {
		ad.Position = strings.TrimSpace(*input.Position)
	}
	if input.SortOrder != nil {
		ad.SortOrder = *input.SortOrder
	}
	if !ad.EndDate.After(ad.StartDate) {
		return ErrAdDateRangeInvalid
	}
	return nil
}

func adEventSubject(input AdEventInput) string {
	if input.UserID != nil && *input.UserID != 0 {
		return fmt.Sprintf("u%d", *input.UserID)
	}
	return strings.TrimSpace(input.IPAddress)
}

// RecordView 记录展示，同一访客短时间内重复展示只计一次
func (s *AdvertisementService) RecordView(ctx context.Context, id uint, input AdEventInput) (bool, error) {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if ad == nil {
		return false, ErrAdNotFound
	}
	fresh, err := cache.MarkAdImpression(ctx, "view", id, adEventSubject(input))
	if err != nil {
		logger.Warnw("ad_impression_mark_failed", "ad_id", id, "error", err)
		fresh = true
	}
	if !fresh {
		return false, nil
	}
	view := &models.AdView{
		AdvertisementID: id,
		UserID:          input.UserID,
		IPAddress:       truncateRunes(strings.TrimSpace(input.IPAddress), 64),
		UserAgent:       strings.TrimSpace(input.UserAgent),
		PageURL:         truncateRunes(strings.TrimSpace(input.PageURL), 500),
	}
	if err := s.repo.RecordView(view); err != nil {
		return false, err
	}
	return true, nil
}

// RecordClick 记录点击，同一访客短时间内重复点击只计一次
func (s *AdvertisementService) RecordClick(ctx context.Context, id uint, input AdEventInput) (bool, error) {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if ad == nil {
		return false, ErrAdNotFound
	}
	fresh, err := cache.MarkAdImpression(ctx, "click", id, adEventSubject(input))
	if err != nil {
		logger.Warnw("ad_click_mark_failed", "ad_id", id, "error", err)
		fresh = true
	}
	if !fresh {
		return false, nil
	}
	click := &models.AdClick{
		AdvertisementID: id,
		UserID:          input.UserID,
		IPAddress:       truncateRunes(strings.TrimSpace(input.IPAddress), 64),
		UserAgent:       strings.TrimSpace(input.UserAgent),
		Referer:         truncateRunes(strings.TrimSpace(input.Referer), 500),
	}
	if err := s.repo.RecordClick(click); err != nil {
		return false, err
	}
	return true, nil
}

// Analytics 广告分析：最近 10 条事件与 30 天逐日计数
func (s *AdvertisementService) Analytics(userID, id uint) (*AdAnalytics, error) {
	ad, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	since := s.now().AddDate(0, 0, -adAnalyticsDays)
	result := &AdAnalytics{Advertisement: s.toView(*ad)}
	if result.RecentClicks, err = s.repo.RecentClicks(id, adAnalyticsRecentLimit); err != nil {
		return nil, err
	}
	if result.RecentViews, err = s.repo.RecentViews(id, adAnalyticsRecentLimit); err != nil {
		return nil, err
	}
	if result.DailyClicks, err = s.repo.DailyClicks(id, since); err != nil {
		return nil, err
	}
	if result.DailyViews, err = s.repo.DailyViews(id, since); err != nil {
		return nil, err
	}
	return result, nil
}
