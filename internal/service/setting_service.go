package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrSettingValueInvalid
	}
	normalized := models.JSON{}
	for k, v := range value {
		normalized[strings.TrimSpace(k)] = v
	}
	setting, err := s.repo.Upsert(key, normalized)
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// MarketplaceSetting 市场业务参数（会员价格、求购额度）
type MarketplaceSetting struct {
	AllowedEmailDomain     string  `json:"allowed_email_domain"`
	MembershipMonthlyPrice float64 `json:"membership_monthly_price"`
	MembershipMinMonths    int     `json:"membership_min_months"`
	MembershipMaxMonths    int     `json:"membership_max_months"`
	MembershipDaysPerMonth int     `json:"membership_days_per_month"`
	WantedPostingFee       float64 `json:"wanted_posting_fee"`
	WantedFreePosts        int     `json:"wanted_free_posts"`
	WantedMemberFreePosts  int     `json:"wanted_member_free_posts"`
	Currency               string  `json:"currency"`
}

// MarketplaceDefaultSetting 根据配置文件生成默认市场参数
func MarketplaceDefaultSetting(cfg config.MarketplaceConfig) MarketplaceSetting {
	return NormalizeMarketplaceSetting(MarketplaceSetting{
		AllowedEmailDomain:     cfg.AllowedEmailDomain,
		MembershipMonthlyPrice: cfg.MembershipMonthlyPrice,
		MembershipMinMonths:    cfg.MembershipMinMonths,
		MembershipMaxMonths:    cfg.MembershipMaxMonths,
		MembershipDaysPerMonth: cfg.MembershipDaysPerMonth,
		WantedPostingFee:       cfg.WantedPostingFee,
		WantedFreePosts:        cfg.WantedFreePosts,
		WantedMemberFreePosts:  cfg.WantedMemberFreePosts,
		Currency:               cfg.Currency,
	})
}

// NormalizeMarketplaceSetting 归一化市场参数
func NormalizeMarketplaceSetting(setting MarketplaceSetting) MarketplaceSetting {
	setting.AllowedEmailDomain = strings.ToLower(strings.TrimSpace(setting.AllowedEmailDomain))
	if setting.AllowedEmailDomain == "" {
		setting.AllowedEmailDomain = "@ait.ac.th"
	}
	if !strings.HasPrefix(setting.AllowedEmailDomain, "@") {
		setting.AllowedEmailDomain = "@" + setting.AllowedEmailDomain
	}
	if setting.MembershipMonthlyPrice <= 0 {
		setting.MembershipMonthlyPrice = 199
	}
	if setting.MembershipMinMonths <= 0 {
		setting.MembershipMinMonths = 1
	}
	if setting.MembershipMaxMonths < setting.MembershipMinMonths {
		setting.MembershipMaxMonths = 12
		if setting.MembershipMaxMonths < setting.MembershipMinMonths {
			setting.MembershipMaxMonths = setting.MembershipMinMonths
		}
	}
	if setting.MembershipDaysPerMonth <= 0 {
		setting.MembershipDaysPerMonth = 30
	}
	if setting.WantedPostingFee < 0 {
		setting.WantedPostingFee = 20
	}
	if setting.WantedFreePosts < 0 {
		setting.WantedFreePosts = 1
	}
	if setting.WantedMemberFreePosts < 0 {
		setting.WantedMemberFreePosts = 5
	}
	setting.Currency = strings.ToUpper(strings.TrimSpace(setting.Currency))
	if setting.Currency == "" {
		setting.Currency = constants.CurrencyDefault
	}
	return setting
}

// GetMarketplaceSetting 读取市场参数（数据库覆盖配置文件）
func (s *SettingService) GetMarketplaceSetting(defaultCfg config.MarketplaceConfig) (MarketplaceSetting, error) {
	fallback := MarketplaceDefaultSetting(defaultCfg)
	if s == nil {
		return fallback, nil
	}
	raw, err := s.GetByKey(constants.SettingKeyMarketplaceConfig)
	if err != nil {
		return fallback, err
	}
	if raw == nil {
		return fallback, nil
	}
	setting := fallback
	setting.AllowedEmailDomain = readString(raw, "allowed_email_domain", setting.AllowedEmailDomain)
	setting.MembershipMonthlyPrice = readFloat(raw, "membership_monthly_price", setting.MembershipMonthlyPrice)
	setting.MembershipMinMonths = readInt(raw, "membership_min_months", setting.MembershipMinMonths)
	setting.MembershipMaxMonths = readInt(raw, "membership_max_months", setting.MembershipMaxMonths)
	setting.MembershipDaysPerMonth = readInt(raw, "membership_days_per_month", setting.MembershipDaysPerMonth)
	setting.WantedPostingFee = readFloat(raw, "wanted_posting_fee", setting.WantedPostingFee)
	setting.WantedFreePosts = readInt(raw, "wanted_free_posts", setting.WantedFreePosts)
	setting.WantedMemberFreePosts = readInt(raw, "wanted_member_free_posts", setting.WantedMemberFreePosts)
	setting.Currency = readString(raw, "currency", setting.Currency)
	return NormalizeMarketplaceSetting(setting), nil
}

// UpdateMarketplaceSetting 保存市场参数
func (s *SettingService) UpdateMarketplaceSetting(setting MarketplaceSetting) (MarketplaceSetting, error) {
	if setting.MembershipMonthlyPrice < 0 || setting.WantedPostingFee < 0 {
		return MarketplaceSetting{}, ErrSettingValueInvalid
	}
	if setting.MembershipMinMonths > 0 && setting.MembershipMaxMonths > 0 && setting.MembershipMaxMonths < setting.MembershipMinMonths {
		return MarketplaceSetting{}, ErrSettingValueInvalid
	}
	normalized := NormalizeMarketplaceSetting(setting)
	if _, err := s.Update(constants.SettingKeyMarketplaceConfig, structToMap(normalized)); err != nil {
		return MarketplaceSetting{}, err
	}
	return normalized, nil
}

func readString(source map[string]interface{}, key, fallback string) string {
	value, ok := source[key]
	if !ok {
		return fallback
	}
	if v, ok := value.(string); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func readBool(source map[string]interface{}, key string, fallback bool) bool {
	value, ok := source[key]
	if !ok {
		return fallback
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func readInt(source map[string]interface{}, key string, fallback int) int {
	value, ok := source[key]
	if !ok {
		return fallback
	}
	parsed, err := parseSettingNumber(value)
	if err != nil {
		return fallback
	}
	return int(parsed)
}

func readFloat(source map[string]interface{}, key string, fallback float64) float64 {
	value, ok := source[key]
	if !ok {
		return fallback
	}
	parsed, err := parseSettingNumber(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseSettingNumber(value interface{}) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseFloat(trimmed, 64)
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}
