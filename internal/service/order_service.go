package service

import (
	"fmt"
	"strings"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	notifier  *NotificationService
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, itemRepo repository.ItemRepository, notifier *NotificationService) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		notifier:  notifier,
	}
}

// CreateOrderInput 下单参数
type CreateOrderInput struct {
	ItemID          uint
	Quantity        int
	ShippingAddress string
	Notes           string
}

// UpdateOrderInput 买家可修改的订单字段
type UpdateOrderInput struct {
	ShippingAddress *string
	Notes           *string
}

// Create 创建单商品订单，订单与订单项同事务写入
func (s *OrderService) Create(buyerID uint, input CreateOrderInput) (*models.Order, error) {
	if input.ItemID == 0 {
		return nil, ErrOrderInvalid
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 1 {
		return nil, ErrOrderInvalid
	}
	item, err := s.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.OwnerID == buyerID {
		return nil, ErrOrderOwnItem
	}

	unitPrice := decimal.Zero
	if item.Price != nil {
		unitPrice = item.Price.Decimal
	}
	total := unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))

	order := &models.Order{
		BuyerID:         buyerID,
		SellerID:        item.OwnerID,
		ItemID:          item.ID,
		Quantity:        input.Quantity,
		TotalPrice:      models.NewMoneyFromDecimal(total),
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.OrderPaymentStatusPending,
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		Notes:           strings.TrimSpace(input.Notes),
	}
	lines := []models.OrderItem{{
		ItemID:   item.ID,
		Quantity: input.Quantity,
		Price:    models.NewMoneyFromDecimal(unitPrice),
	}}
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, lines)
	})
	if err != nil {
		return nil, err
	}
	order.Item = item

	orderID := order.ID
	itemID := item.ID
	data := map[string]string{
		"order_id":    fmt.Sprintf("%d", order.ID),
		"item_title":  item.Title,
		"total_price": order.TotalPrice.String(),
	}
	s.notifier.Notify(queue.NotificationDispatchPayload{
		UserID:         order.SellerID,
		Type:           constants.NotificationOrderCreated,
		Title:          "New order received",
		Message:        fmt.Sprintf("You received a new order #%d for \"%s\".", order.ID, item.Title),
		Priority:       constants.NotificationPriorityMedium,
		RelatedItemID:  &itemID,
		RelatedOrderID: &orderID,
		Data:           data,
	})
	s.notifier.Notify(queue.NotificationDispatchPayload{
		UserID:         order.SellerID,
		Type:           constants.NotificationItemSold,
		Title:          "Item sold",
		Message:        fmt.Sprintf("Your item \"%s\" was ordered (quantity %d).", item.Title, order.Quantity),
		Priority:       constants.NotificationPriorityMedium,
		RelatedItemID:  &itemID,
		RelatedOrderID: &orderID,
		Data:           data,
	})
	return order, nil
}

// ListForBuyer 买家订单
func (s *OrderService) ListForBuyer(buyerID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByBuyer(repository.OrderListFilter{BuyerID: buyerID, Page: page, PageSize: pageSize})
}

// ListForSeller 卖家订单
func (s *OrderService) ListForSeller(sellerID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListBySeller(repository.OrderListFilter{SellerID: sellerID, Page: page, PageSize: pageSize})
}

// GetForBuyer 获取买家自己的订单
func (s *OrderService) GetForBuyer(buyerID, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndBuyer(id, buyerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Update 买家修改收货地址与备注
func (s *OrderService) Update(buyerID, id uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.GetForBuyer(buyerID, id)
	if err != nil {
		return nil, err
	}
	if input.ShippingAddress != nil {
		order.ShippingAddress = strings.TrimSpace(*input.ShippingAddress)
	}
	if input.Notes != nil {
		order.Notes = strings.TrimSpace(*input.Notes)
	}
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete 买家删除订单
func (s *OrderService) Delete(buyerID, id uint) error {
	if _, err := s.GetForBuyer(buyerID, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(id)
}

// UpdateStatus 卖家更新订单状态
func (s *OrderService) UpdateStatus(sellerID, id uint, status string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.SellerID != sellerID {
		return nil, ErrOrderNotSeller
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if !containsString(constants.OrderStatuses, status) {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	order.Status = status

	orderID := order.ID
	s.notifier.Notify(queue.NotificationDispatchPayload{
		UserID:         order.BuyerID,
		Type:           constants.NotificationOrderUpdated,
		Title:          "Order status updated",
		Message:        fmt.Sprintf("Your order #%d is now %s.", order.ID, status),
		Priority:       constants.NotificationPriorityMedium,
		RelatedItemID:  &order.ItemID,
		RelatedOrderID: &orderID,
		Data: map[string]string{
			"order_id": fmt.Sprintf("%d", order.ID),
			"status":   status,
		},
	})
	return order, nil
}

// Cancel 买家取消订单，仅待确认或已确认状态可取消
func (s *OrderService) Cancel(buyerID, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.BuyerID != buyerID {
		return nil, ErrOrderNotBuyer
	}
	if order.Status != constants.OrderStatusPending && order.Status != constants.OrderStatusConfirmed {
		return nil, ErrOrderCannotCancel
	}
	if err := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{"status": constants.OrderStatusCancelled}); err != nil {
		return nil, err
	}
	order.Status = constants.OrderStatusCancelled

	orderID := order.ID
	s.notifier.Notify(queue.NotificationDispatchPayload{
		UserID:         order.SellerID,
		Type:           constants.NotificationOrderCancelled,
		Title:          "Order cancelled",
		Message:        fmt.Sprintf("Order #%d was cancelled by the buyer.", order.ID),
		Priority:       constants.NotificationPriorityHigh,
		RelatedItemID:  &order.ItemID,
		RelatedOrderID: &orderID,
		Data: map[string]string{
			"order_id": fmt.Sprintf("%d", order.ID),
		},
	})
	return order, nil
}
