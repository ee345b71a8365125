package service

import (
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	cartMinQuantity = 1
	cartMaxQuantity = 99
)

// CartLine 购物车行（含小计）
type CartLine struct {
	models.CartItem
	TotalPrice models.Money `json:"total_price"`
}

// CartView 购物车视图
type CartView struct {
	ID         uint         `json:"id"`
	UserID     uint         `json:"user"`
	Items      []CartLine   `json:"items"`
	TotalItems int          `json:"total_items"`
	TotalPrice models.Money `json:"total_price"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, itemRepo repository.ItemRepository) *CartService {
	return &CartService{cartRepo: cartRepo, itemRepo: itemRepo}
}

// Get 获取（必要时创建）用户购物车
func (s *CartService) Get(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// Add 加入购物车，已存在的行累加数量
func (s *CartService) Add(userID, itemID uint, quantity int) (*CartView, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < cartMinQuantity || quantity > cartMaxQuantity {
		return nil, ErrCartQuantityInvalid
	}
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsAvailable {
		return nil, ErrItemNotFound
	}
	if item.OwnerID == userID {
		return nil, ErrCartOwnItem
	}
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	line, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		line = &models.CartItem{CartID: cart.ID, ItemID: itemID}
	}
	line.Quantity += quantity
	if line.Quantity > cartMaxQuantity {
		return nil, ErrCartQuantityInvalid
	}
	if err := s.cartRepo.SaveItem(line); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// UpdateQuantity 修改购物车行数量
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (*CartView, error) {
	if quantity < cartMinQuantity || quantity > cartMaxQuantity {
		return nil, ErrCartQuantityInvalid
	}
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	line, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, ErrCartItemNotFound
	}
	line.Quantity = quantity
	if err := s.cartRepo.SaveItem(line); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// Remove 移除购物车行
func (s *CartService) Remove(userID, itemID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	affected, err := s.cartRepo.DeleteItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.Get(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Clear(cart.ID); err != nil {
		return nil, err
	}
	return &CartView{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      []CartLine{},
		TotalPrice: models.NewMoneyFromDecimal(decimal.Zero),
	}, nil
}

func buildCartView(cart *models.Cart) *CartView {
	view := &CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]CartLine, 0, len(cart.Items)),
	}
	total := decimal.Zero
	for _, line := range cart.Items {
		lineTotal := decimal.Zero
		if line.Item != nil && line.Item.Price != nil {
			lineTotal = line.Item.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		}
		total = total.Add(lineTotal)
		view.TotalItems += line.Quantity
		view.Items = append(view.Items, CartLine{CartItem: line, TotalPrice: models.NewMoneyFromDecimal(lineTotal)})
	}
	view.TotalPrice = models.NewMoneyFromDecimal(total)
	return view
}
