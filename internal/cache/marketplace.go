package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	categoryTreeKey     = "catalog:category_tree"
	categoryRootsKey    = "catalog:category_roots"
	statsDashboardKey   = "stats:dashboard"
	statsDashboardTTL   = 60 * time.Second
	categoryCacheTTL    = 10 * time.Minute
	adImpressionWindow  = 30 * time.Minute
	adImpressionKeyBase = "ads"
)

// GetCategoryTree 读取分类树缓存
func GetCategoryTree(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, categoryTreeKey, dest)
}

// SetCategoryTree 写入分类树缓存
func SetCategoryTree(ctx context.Context, value interface{}) error {
	return SetJSON(ctx, categoryTreeKey, value, categoryCacheTTL)
}

// GetCategoryRoots 读取顶级分类缓存
func GetCategoryRoots(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, categoryRootsKey, dest)
}

// SetCategoryRoots 写入顶级分类缓存
func SetCategoryRoots(ctx context.Context, value interface{}) error {
	return SetJSON(ctx, categoryRootsKey, value, categoryCacheTTL)
}

// InvalidateCategories 分类变更后清理缓存
func InvalidateCategories(ctx context.Context) error {
	return Del(ctx, categoryTreeKey, categoryRootsKey)
}

// GetDashboardStats 读取首页统计缓存
func GetDashboardStats(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, statsDashboardKey, dest)
}

// SetDashboardStats 写入首页统计缓存
func SetDashboardStats(ctx context.Context, value interface{}) error {
	return SetJSON(ctx, statsDashboardKey, value, statsDashboardTTL)
}

// MarkAdImpression 标记广告展示/点击，窗口期内重复事件返回 false
// subject 为用户 ID 或 IP
func MarkAdImpression(ctx context.Context, kind string, adID uint, subject string) (bool, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return true, nil
	}
	key := fmt.Sprintf("%s:%s:%d:%s", adImpressionKeyBase, kind, adID, subject)
	return SetNX(ctx, key, adImpressionWindow)
}
