package service

import (
	"strings"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

// WishlistService 收藏夹与求购意向服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	itemRepo     repository.ItemRepository
}

// NewWishlistService 创建收藏服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, itemRepo repository.ItemRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, itemRepo: itemRepo}
}

// WantToBuyInput 求购意向参数，指针为空表示不修改
type WantToBuyInput struct {
	Title         *string
	Description   *string
	Category      *string
	MaxPrice      *models.Money
	ClearMaxPrice bool
	Condition     *string
	Location      *string
	Status        *string
}

// Get 获取收藏夹
func (s *WishlistService) Get(userID uint) (*models.Wishlist, error) {
	return s.wishlistRepo.GetOrCreate(userID)
}

// Add 收藏商品，重复收藏返回 ErrWishlistDuplicate
func (s *WishlistService) Add(userID, itemID uint, notes string) (*models.WishlistItem, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsAvailable {
		return nil, ErrItemNotFound
	}
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	exists, err := s.wishlistRepo.ExistsItem(wishlist.ID, itemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrWishlistDuplicate
	}
	entry := &models.WishlistItem{
		WishlistID: wishlist.ID,
		ItemID:     itemID,
		Notes:      strings.TrimSpace(notes),
	}
	if err := s.wishlistRepo.AddItem(entry); err != nil {
		return nil, err
	}
	entry.Item = item
	return entry, nil
}

// Remove 取消收藏
func (s *WishlistService) Remove(userID, itemID uint) error {
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		return err
	}
	affected, err := s.wishlistRepo.RemoveItem(wishlist.ID, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

// ListActiveWants 全部进行中的求购意向（最新优先）
func (s *WishlistService) ListActiveWants(page, pageSize int) ([]models.WantToBuy, int64, error) {
	return s.wishlistRepo.ListWants(repository.WantToBuyListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   constants.WantToBuyStatusActive,
		SortDesc: true,
	})
}

// ListUserWants 指定用户进行中的求购意向
func (s *WishlistService) ListUserWants(userID uint, page, pageSize int) ([]models.WantToBuy, int64, error) {
	return s.wishlistRepo.ListWants(repository.WantToBuyListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   constants.WantToBuyStatusActive,
		SortDesc: true,
	})
}

// CreateWant 发布求购意向
func (s *WishlistService) CreateWant(userID uint, input WantToBuyInput) (*models.WantToBuy, error) {
	want := &models.WantToBuy{
		UserID:    userID,
		Condition: constants.ConditionAny,
		Status:    constants.WantToBuyStatusActive,
	}
	if err := applyWantInput(want, input); err != nil {
		return nil, err
	}
	if want.Title == "" {
		return nil, ErrWantToBuyInvalid
	}
	if err := s.wishlistRepo.CreateWant(want); err != nil {
		return nil, err
	}
	return want, nil
}

// GetWant 获取自己的求购意向
func (s *WishlistService) GetWant(userID, id uint) (*models.WantToBuy, error) {
	want, err := s.wishlistRepo.GetWant(id)
	if err != nil {
		return nil, err
	}
	if want == nil || want.UserID != userID {
		return nil, ErrWantToBuyNotFound
	}
	return want, nil
}

// UpdateWant 更新自己的求购意向
func (s *WishlistService) UpdateWant(userID, id uint, input WantToBuyInput) (*models.WantToBuy, error) {
	want, err := s.GetWant(userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyWantInput(want, input); err != nil {
		return nil, err
	}
	if want.Title == "" {
		return nil, ErrWantToBuyInvalid
	}
	if err := s.wishlistRepo.UpdateWant(want); err != nil {
		return nil, err
	}
	return want, nil
}

// DeleteWant 删除自己的求购意向
func (s *WishlistService) DeleteWant(userID, id uint) error {
	if _, err := s.GetWant(userID, id); err != nil {
		return err
	}
	return s.wishlistRepo.DeleteWant(id)
}

// FulfillWant 标记求购已完成
func (s *WishlistService) FulfillWant(userID, id uint) (*models.WantToBuy, error) {
	want, err := s.GetWant(userID, id)
	if err != nil {
		return nil, err
	}
	want.Status = constants.WantToBuyStatusFulfilled
	if err := s.wishlistRepo.UpdateWant(want); err != nil {
		return nil, err
	}
	return want, nil
}

var wantToBuyStatuses = []string{
	constants.WantToBuyStatusActive,
	constants.WantToBuyStatusFulfilled,
	constants.WantToBuyStatusCancelled,
}

func applyWantInput(want *models.WantToBuy, input WantToBuyInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len([]rune(title)) > 200 {
			return ErrWantToBuyInvalid
		}
		want.Title = title
	}
	if input.Description != nil {
		want.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		want.Category = strings.TrimSpace(*input.Category)
	}
	if input.ClearMaxPrice {
		want.MaxPrice = nil
	} else if input.MaxPrice != nil {
		if input.MaxPrice.Decimal.IsNegative() {
			return ErrWantToBuyInvalid
		}
		price := models.NewMoneyFromDecimal(input.MaxPrice.Decimal)
		want.MaxPrice = &price
	}
	if input.Condition != nil {
		condition := strings.TrimSpace(*input.Condition)
		if !containsString(constants.WantToBuyConditions, condition) {
			return ErrWantToBuyInvalid
		}
		want.Condition = condition
	}
	if input.Location != nil {
		want.Location = strings.TrimSpace(*input.Location)
	}
	if input.Status != nil {
		status := strings.TrimSpace(*input.Status)
		if !containsString(wantToBuyStatuses, status) {
			return ErrWantToBuyInvalid
		}
		want.Status = status
	}
	return nil
}
