package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
	LocaleThTH = "th-TH"

	// DefaultLocale 默认语言
	DefaultLocale = LocaleEnUS
)

var catalogs = map[string]map[string]string{
	LocaleEnUS: enUS,
	LocaleZhCN: zhCN,
	LocaleThTH: thTH,
}

// SupportedLocales 支持的语言列表
func SupportedLocales() []string {
	return []string{LocaleEnUS, LocaleZhCN, LocaleThTH}
}

// ResolveLocale 按 ?lang= 与 Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := NormalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := NormalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return DefaultLocale
}

// NormalizeLocale 归一化语言标签，不支持时返回空
func NormalizeLocale(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(tag, "_", "-")))
	switch {
	case tag == "":
		return ""
	case tag == "en" || strings.HasPrefix(tag, "en-"):
		return LocaleEnUS
	case tag == "zh" || strings.HasPrefix(tag, "zh-"):
		return LocaleZhCN
	case tag == "th" || strings.HasPrefix(tag, "th-"):
		return LocaleThTH
	}
	return ""
}

// T 翻译文案，缺失时回退到英文，再回退到 key 本身
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := enUS[key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
