package service

import (
	"fmt"
	"strings"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// ItemService 商品业务服务
type ItemService struct {
	itemRepo        repository.ItemRepository
	categoryRepo    repository.CategoryRepository
	wishlistRepo    repository.WishlistRepository
	userAuthService *UserAuthService
	notifier        *NotificationService
}

// NewItemService 创建商品服务
func NewItemService(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	wishlistRepo repository.WishlistRepository,
	userAuthService *UserAuthService,
	notifier *NotificationService,
) *ItemService {
	return &ItemService{
		itemRepo:        itemRepo,
		categoryRepo:    categoryRepo,
		wishlistRepo:    wishlistRepo,
		userAuthService: userAuthService,
		notifier:        notifier,
	}
}

// ItemListInput 商品列表参数
type ItemListInput struct {
	ViewerID uint
	OwnerID  uint
	My       bool
	Featured bool
	Barter   bool
	Page     int
	PageSize int
}

// ItemInput 创建/更新商品参数，指针为空表示不修改
type ItemInput struct {
	Title        *string
	Description  *string
	Price        *models.Money
	ClearPrice   bool
	Category     *string
	CategoryID   *uint
	ImageURL     *string
	ImageURLs    []string
	IsAvailable  *bool
	IsBarter     *bool
	AllowBarter  *bool
	DesiredItem  *string
	Condition    *string
	Location     *string
	ContactPhone *string
}

// List 商品列表：owner 优先，其次 my（需登录），再按精选/换物过滤
func (s *ItemService) List(input ItemListInput) ([]models.Item, int64, error) {
	filter := repository.ItemListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Featured: input.Featured,
		Barter:   input.Barter,
	}
	switch {
	case input.OwnerID != 0:
		filter.OwnerID = input.OwnerID
	case input.My && input.ViewerID != 0:
		filter.OwnerID = input.ViewerID
	}
	return s.itemRepo.List(filter)
}

// Get 获取商品
func (s *ItemService) Get(id uint) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Create 发布商品，发布后向匹配的求购用户推送 wishlist_match
func (s *ItemService) Create(ownerID uint, input ItemInput) (*models.Item, error) {
	item := &models.Item{
		OwnerID:     ownerID,
		IsAvailable: true,
		Condition:   constants.ConditionGood,
		ImageURLs:   models.StringArray{},
	}
	if err := s.apply(item, input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, ErrItemInvalid
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}
	s.notifyWishlistMatches(item)
	return item, nil
}

// Update 更新商品（仅发布者）
func (s *ItemService) Update(userID, id uint, input ItemInput) (*models.Item, error) {
	item, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(item, input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, ErrItemInvalid
	}
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 删除商品（仅发布者）
func (s *ItemService) Delete(userID, id uint) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(id)
}

// SetFeatured 设置精选：需为发布者且会员有效
func (s *ItemService) SetFeatured(userID, id uint) (*models.Item, error) {
	item, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	member, err := s.userAuthService.IsMember(userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrMembershipRequired
	}
	if err := s.itemRepo.SetFeatured(id, true); err != nil {
		return nil, err
	}
	item.IsFeatured = true
	return item, nil
}

// UnsetFeatured 取消精选（仅发布者）
func (s *ItemService) UnsetFeatured(userID, id uint) (*models.Item, error) {
	item, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.SetFeatured(id, false); err != nil {
		return nil, err
	}
	item.IsFeatured = false
	return item, nil
}

func (s *ItemService) owned(userID, id uint) (*models.Item, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, ErrItemNotOwner
	}
	return item, nil
}

func (s *ItemService) apply(item *models.Item, input ItemInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len([]rune(title)) > 200 {
			return ErrItemInvalid
		}
		item.Title = title
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.ClearPrice {
		item.Price = nil
	} else if input.Price != nil {
		if input.Price.Decimal.LessThan(decimal.Zero) {
			return ErrItemPriceInvalid
		}
		price := models.NewMoneyFromDecimal(input.Price.Decimal)
		item.Price = &price
	}
	if input.CategoryID != nil {
		if *input.CategoryID == 0 {
			item.CategoryID = nil
		} else {
			category, err := s.categoryRepo.GetByID(*input.CategoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return ErrCategoryNotFound
			}
			item.CategoryID = &category.ID
			if input.Category == nil {
				item.Category = category.Name
			}
		}
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.ImageURLs != nil {
		urls := make(models.StringArray, 0, len(input.ImageURLs))
		for _, url := range input.ImageURLs {
			if url = strings.TrimSpace(url); url != "" {
				urls = append(urls, url)
			}
		}
		item.ImageURLs = urls
		if item.ImageURL == "" && len(urls) > 0 {
			item.ImageURL = urls[0]
		}
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.IsBarter != nil {
		item.IsBarter = *input.IsBarter
	}
	if input.AllowBarter != nil {
		item.AllowBarter = *input.AllowBarter
	}
	if input.DesiredItem != nil {
		item.DesiredItem = strings.TrimSpace(*input.DesiredItem)
	}
	if input.Condition != nil {
		condition := strings.TrimSpace(*input.Condition)
		if !containsString(constants.ItemConditions, condition) {
			return ErrItemConditionInvalid
		}
		item.Condition = condition
	}
	if input.Location != nil {
		item.Location = strings.TrimSpace(*input.Location)
	}
	if input.ContactPhone != nil {
		item.ContactPhone = strings.TrimSpace(*input.ContactPhone)
	}
	return nil
}

// notifyWishlistMatches 标题或分类命中求购关键词（不区分大小写的子串）时通知求购者
func (s *ItemService) notifyWishlistMatches(item *models.Item) {
	if s.wishlistRepo == nil || s.notifier == nil {
		return
	}
	wants, err := s.wishlistRepo.ListActiveWants(item.OwnerID)
	if err != nil {
		logger.Warnw("wishlist_match_load_failed", "item_id", item.ID, "error", err)
		return
	}
	title := strings.ToLower(item.Title)
	category := strings.ToLower(item.Category)
	notified := make(map[uint]bool)
	for _, want := range wants {
		if notified[want.UserID] || !wantMatchesItem(want, title, category) {
			continue
		}
		notified[want.UserID] = true
		itemID := item.ID
		s.notifier.Notify(queue.NotificationDispatchPayload{
			UserID:        want.UserID,
			Type:          constants.NotificationWishlistMatch,
			Title:         "New item matches your wishlist",
			Message:       fmt.Sprintf("A new item \"%s\" matches your want-to-buy post \"%s\".", item.Title, want.Title),
			Priority:      constants.NotificationPriorityMedium,
			RelatedItemID: &itemID,
			Data: map[string]string{
				"item_title": item.Title,
				"want_title": want.Title,
			},
		})
	}
}

func wantMatchesItem(want models.WantToBuy, itemTitle, itemCategory string) bool {
	wantTitle := strings.ToLower(strings.TrimSpace(want.Title))
	wantCategory := strings.ToLower(strings.TrimSpace(want.Category))
	if wantTitle != "" && strings.Contains(itemTitle, wantTitle) {
		return true
	}
	if wantCategory != "" && itemCategory != "" && strings.Contains(itemCategory, wantCategory) {
		return true
	}
	return false
}
