package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

// SearchService 搜索服务
type SearchService struct {
	itemRepo     repository.ItemRepository
	wishlistRepo repository.WishlistRepository
	categoryRepo repository.CategoryRepository
	statsRepo    repository.StatisticsRepository
}

// NewSearchService 创建搜索服务
func NewSearchService(
	itemRepo repository.ItemRepository,
	wishlistRepo repository.WishlistRepository,
	categoryRepo repository.CategoryRepository,
	statsRepo repository.StatisticsRepository,
) *SearchService {
	return &SearchService{
		itemRepo:     itemRepo,
		wishlistRepo: wishlistRepo,
		categoryRepo: categoryRepo,
		statsRepo:    statsRepo,
	}
}

// ItemSearchInput 商品搜索参数（原始查询串）
type ItemSearchInput struct {
	Query     string
	Category  string
	MinPrice  string
	MaxPrice  string
	Condition string
	Location  string
	IsBarter  string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// WantSearchInput 求购搜索参数
type WantSearchInput struct {
	Query     string
	Category  string
	MaxPrice  string
	Condition string
	Location  string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// SearchSuggestions 搜索联想
type SearchSuggestions struct {
	Items      []string `json:"items"`
	Categories []string `json:"categories"`
}

// SearchStats 搜索统计
type SearchStats struct {
	TotalItems     int64                         `json:"total_items"`
	TotalWantToBuy int64                         `json:"total_want_to_buy"`
	TopCategories  []repository.CategoryCountRow `json:"top_categories"`
}

// SearchItems 搜索在售商品；非法价格忽略，未知排序字段回退 created_at
func (s *SearchService) SearchItems(input ItemSearchInput) ([]models.Item, int64, error) {
	sortBy, desc := normalizeSort(input.SortBy, input.SortOrder)
	filter := repository.ItemSearchFilter{
		Page:      input.Page,
		PageSize:  input.PageSize,
		Query:     strings.TrimSpace(input.Query),
		Category:  strings.TrimSpace(input.Category),
		MinPrice:  parseOptionalFloat(input.MinPrice),
		MaxPrice:  parseOptionalFloat(input.MaxPrice),
		Condition: strings.TrimSpace(input.Condition),
		Location:  strings.TrimSpace(input.Location),
		SortBy:    sortBy,
		SortDesc:  desc,
	}
	if raw := strings.TrimSpace(input.IsBarter); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			filter.IsBarter = &value
		}
	}
	return s.itemRepo.Search(filter)
}

// SearchWants 搜索进行中的求购
func (s *SearchService) SearchWants(input WantSearchInput) ([]models.WantToBuy, int64, error) {
	sortBy, desc := normalizeSort(input.SortBy, input.SortOrder)
	condition := strings.TrimSpace(input.Condition)
	if condition == constants.ConditionAny {
		condition = ""
	}
	return s.wishlistRepo.ListWants(repository.WantToBuyListFilter{
		Page:      input.Page,
		PageSize:  input.PageSize,
		Status:    constants.WantToBuyStatusActive,
		Query:     strings.TrimSpace(input.Query),
		Category:  strings.TrimSpace(input.Category),
		MaxPrice:  parseOptionalFloat(input.MaxPrice),
		Condition: condition,
		Location:  strings.TrimSpace(input.Location),
		SortBy:    sortBy,
		SortDesc:  desc,
	})
}

// Suggestions 关键词不足两个字符时返回空
func (s *SearchService) Suggestions(keyword string) (*SearchSuggestions, error) {
	result := &SearchSuggestions{Items: []string{}, Categories: []string{}}
	keyword = strings.TrimSpace(keyword)
	if len([]rune(keyword)) < 2 {
		return result, nil
	}
	items, err := s.itemRepo.SuggestTitles(keyword, constants.SearchItemSuggestion)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result.Items = append(result.Items, item.Title)
	}
	categories, err := s.categoryRepo.SearchNames(keyword, constants.SearchCategorySugg)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		result.Categories = append(result.Categories, category.Name)
	}
	return result, nil
}

// Stats 搜索页统计
func (s *SearchService) Stats() (*SearchStats, error) {
	overview, err := s.statsRepo.GetOverview(time.Now())
	if err != nil {
		return nil, err
	}
	top, err := s.statsRepo.CountItemsByCategory(10)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []repository.CategoryCountRow{}
	}
	return &SearchStats{
		TotalItems:     overview.TotalItems,
		TotalWantToBuy: overview.TotalWantToBuy,
		TopCategories:  top,
	}, nil
}

func normalizeSort(sortBy, sortOrder string) (string, bool) {
	sortBy = strings.TrimSpace(sortBy)
	if !containsString(constants.SearchSortFields, sortBy) {
		sortBy = "created_at"
	}
	return sortBy, !strings.EqualFold(strings.TrimSpace(sortOrder), "asc")
}

func parseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}
