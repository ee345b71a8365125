package service

import (
	"encoding/json"
	"strings"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
)

// CaptchaSceneSetting 验证码场景开关
type CaptchaSceneSetting struct {
	Login    bool `json:"login"`
	Register bool `json:"register"`
}

// CaptchaImageSetting 图片验证码参数
type CaptchaImageSetting struct {
	Length        int `json:"length"`
	Width         int `json:"width"`
	Height        int `json:"height"`
	NoiseCount    int `json:"noise_count"`
	ShowLine      int `json:"show_line"`
	ExpireSeconds int `json:"expire_seconds"`
	MaxStore      int `json:"max_store"`
}

// CaptchaSetting 验证码配置实体
type CaptchaSetting struct {
	Provider string              `json:"provider"`
	Scenes   CaptchaSceneSetting `json:"scenes"`
	Image    CaptchaImageSetting `json:"image"`
}

// CaptchaSettingPatch 验证码配置补丁
type CaptchaSettingPatch struct {
	Provider *string `json:"provider"`
	Scenes   *struct {
		Login    *bool `json:"login"`
		Register *bool `json:"register"`
	} `json:"scenes"`
	Image *CaptchaImageSetting `json:"image"`
}

// CaptchaDefaultSetting 从配置文件构建默认验证码配置
func CaptchaDefaultSetting(cfg config.CaptchaConfig) CaptchaSetting {
	return NormalizeCaptchaSetting(CaptchaSetting{
		Provider: cfg.Provider,
		Scenes: CaptchaSceneSetting{
			Login:    cfg.Scenes.Login,
			Register: cfg.Scenes.Register,
		},
		Image: CaptchaImageSetting{
			Length:        cfg.Image.Length,
			Width:         cfg.Image.Width,
			Height:        cfg.Image.Height,
			NoiseCount:    cfg.Image.NoiseCount,
			ShowLine:      cfg.Image.ShowLine,
			ExpireSeconds: cfg.Image.ExpireSeconds,
			MaxStore:      cfg.Image.MaxStore,
		},
	})
}

// NormalizeCaptchaSetting 归一化验证码配置
func NormalizeCaptchaSetting(setting CaptchaSetting) CaptchaSetting {
	provider := strings.ToLower(strings.TrimSpace(setting.Provider))
	if provider != constants.CaptchaProviderImage {
		provider = constants.CaptchaProviderNone
	}
	setting.Provider = provider
	setting.Image.Length = clampInt(setting.Image.Length, 4, 8, 5)
	setting.Image.Width = clampInt(setting.Image.Width, 100, 480, 240)
	setting.Image.Height = clampInt(setting.Image.Height, 40, 160, 80)
	setting.Image.NoiseCount = clampInt(setting.Image.NoiseCount, 0, 10, 2)
	setting.Image.ShowLine = clampInt(setting.Image.ShowLine, 0, 10, 2)
	setting.Image.ExpireSeconds = clampInt(setting.Image.ExpireSeconds, 30, 3600, 300)
	setting.Image.MaxStore = clampInt(setting.Image.MaxStore, 100, 100000, 10240)
	return setting
}

func clampInt(value, min, max, fallback int) int {
	if value < min || value > max {
		return fallback
	}
	return value
}

// IsSceneEnabled 判断场景是否需要验证码
func (s CaptchaSetting) IsSceneEnabled(scene string) bool {
	if s.Provider == constants.CaptchaProviderNone {
		return false
	}
	switch strings.TrimSpace(scene) {
	case constants.CaptchaSceneLogin:
		return s.Scenes.Login
	case constants.CaptchaSceneRegister:
		return s.Scenes.Register
	default:
		return false
	}
}

// PublicCaptchaSetting 前台可见的验证码配置
func PublicCaptchaSetting(setting CaptchaSetting) models.JSON {
	return models.JSON{
		"provider": setting.Provider,
		"scenes": map[string]interface{}{
			"login":    setting.IsSceneEnabled(constants.CaptchaSceneLogin),
			"register": setting.IsSceneEnabled(constants.CaptchaSceneRegister),
		},
	}
}

// GetCaptchaSetting 读取验证码配置（数据库优先，缺省回落到配置文件）
func (s *SettingService) GetCaptchaSetting(defaultCfg config.CaptchaConfig) (CaptchaSetting, error) {
	fallback := CaptchaDefaultSetting(defaultCfg)
	raw, err := s.GetByKey(constants.SettingKeyCaptchaConfig)
	if err != nil {
		return fallback, err
	}
	if raw == nil {
		return fallback, nil
	}
	setting := fallback
	if err := decodeSettingJSON(raw, &setting); err != nil {
		return fallback, nil
	}
	return NormalizeCaptchaSetting(setting), nil
}

// PatchCaptchaSetting 部分更新验证码配置
func (s *SettingService) PatchCaptchaSetting(defaultCfg config.CaptchaConfig, patch CaptchaSettingPatch) (CaptchaSetting, error) {
	current, err := s.GetCaptchaSetting(defaultCfg)
	if err != nil {
		return CaptchaSetting{}, err
	}
	if patch.Provider != nil {
		provider := strings.ToLower(strings.TrimSpace(*patch.Provider))
		if provider != constants.CaptchaProviderNone && provider != constants.CaptchaProviderImage {
			return CaptchaSetting{}, ErrCaptchaConfigInvalid
		}
		current.Provider = provider
	}
	if patch.Scenes != nil {
		if patch.Scenes.Login != nil {
			current.Scenes.Login = *patch.Scenes.Login
		}
		if patch.Scenes.Register != nil {
			current.Scenes.Register = *patch.Scenes.Register
		}
	}
	if patch.Image != nil {
		current.Image = *patch.Image
	}
	current = NormalizeCaptchaSetting(current)
	if _, err := s.Update(constants.SettingKeyCaptchaConfig, structToMap(current)); err != nil {
		return CaptchaSetting{}, err
	}
	return current, nil
}

func decodeSettingJSON(raw models.JSON, dest interface{}) error {
	body, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

func structToMap(value interface{}) map[string]interface{} {
	body, err := json.Marshal(value)
	if err != nil {
		return map[string]interface{}{}
	}
	result := make(map[string]interface{})
	if err := json.Unmarshal(body, &result); err != nil {
		return map[string]interface{}{}
	}
	return result
}
