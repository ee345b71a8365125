package service

import (
	"fmt"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/repository"

	"gorm.io/gorm"
)

// BarterService 以物换物服务
type BarterService struct {
	barterRepo repository.BarterRepository
	itemRepo   repository.ItemRepository
	notifier   *NotificationService
}

// NewBarterService 创建以物换物服务
func NewBarterService(barterRepo repository.BarterRepository, itemRepo repository.ItemRepository, notifier *NotificationService) *BarterService {
	return &BarterService{barterRepo: barterRepo, itemRepo: itemRepo, notifier: notifier}
}

// List 当前用户参与的交换
func (s *BarterService) List(userID uint, page, pageSize int) ([]models.BarterTransaction, int64, error) {
	return s.barterRepo.ListByParticipant(userID, page, pageSize)
}

// Get 交换详情（仅参与方）
func (s *BarterService) Get(userID, id uint) (*models.BarterTransaction, error) {
	barter, err := s.barterRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if barter == nil {
		return nil, ErrBarterNotFound
	}
	if barter.RequesterID != userID && barter.ResponderID != userID {
		return nil, ErrBarterNotParticipant
	}
	return barter, nil
}

// Create 发起交换：提供自己的商品，请求他人可换物且在售的商品
func (s *BarterService) Create(userID, offeredID, requestedID uint) (*models.BarterTransaction, error) {
	if offeredID == 0 || requestedID == 0 || offeredID == requestedID {
		return nil, ErrBarterInvalid
	}
	offered, err := s.itemRepo.GetByID(offeredID)
	if err != nil {
		return nil, err
	}
	if offered == nil {
		return nil, ErrItemNotFound
	}
	if offered.OwnerID != userID {
		return nil, ErrBarterOfferNotOwned
	}
	requested, err := s.itemRepo.GetByID(requestedID)
	if err != nil {
		return nil, err
	}
	if requested == nil {
		return nil, ErrItemNotFound
	}
	if requested.OwnerID == userID {
		return nil, ErrBarterSelfRequest
	}
	if !requested.BarterEligible() || !requested.IsAvailable {
		return nil, ErrBarterNotEligible
	}

	barter := &models.BarterTransaction{
		RequesterID:     userID,
		ResponderID:     requested.OwnerID,
		ItemOfferedID:   offered.ID,
		ItemRequestedID: requested.ID,
		Status:          constants.BarterStatusPending,
	}
	if err := s.barterRepo.Create(barter); err != nil {
		return nil, err
	}
	barter.ItemOffered = offered
	barter.ItemRequested = requested

	s.notifyBarter(barter, barter.ResponderID, constants.NotificationBarterRequest,
		"New barter request",
		fmt.Sprintf("Someone offered \"%s\" in exchange for your \"%s\".", offered.Title, requested.Title))
	return barter, nil
}

// Accept 响应方接受交换
func (s *BarterService) Accept(userID, id uint) (*models.BarterTransaction, error) {
	barter, err := s.respond(userID, id, constants.BarterStatusAccepted)
	if err != nil {
		return nil, err
	}
	s.notifyBarter(barter, barter.RequesterID, constants.NotificationBarterAccepted,
		"Barter request accepted",
		fmt.Sprintf("Your barter request #%d was accepted.", barter.ID))
	return barter, nil
}

// Reject 响应方拒绝交换
func (s *BarterService) Reject(userID, id uint) (*models.BarterTransaction, error) {
	barter, err := s.respond(userID, id, constants.BarterStatusRejected)
	if err != nil {
		return nil, err
	}
	s.notifyBarter(barter, barter.RequesterID, constants.NotificationBarterRejected,
		"Barter request rejected",
		fmt.Sprintf("Your barter request #%d was rejected.", barter.ID))
	return barter, nil
}

func (s *BarterService) respond(userID, id uint, status string) (*models.BarterTransaction, error) {
	barter, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if barter.ResponderID != userID {
		return nil, ErrBarterNotParticipant
	}
	affected, err := s.barterRepo.UpdateStatus(id, constants.BarterStatusPending, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrBarterStatusInvalid
	}
	barter.Status = status
	return barter, nil
}

// Complete 任一参与方完成交换，同事务下架双方商品
func (s *BarterService) Complete(userID, id uint) (*models.BarterTransaction, error) {
	barter, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	err = s.barterRepo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.barterRepo.WithTx(tx).UpdateStatus(id, constants.BarterStatusAccepted, constants.BarterStatusCompleted)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrBarterStatusInvalid
		}
		_, err = s.itemRepo.WithTx(tx).SetAvailability([]uint{barter.ItemOfferedID, barter.ItemRequestedID}, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	barter.Status = constants.BarterStatusCompleted
	if barter.ItemOffered != nil {
		barter.ItemOffered.IsAvailable = false
	}
	if barter.ItemRequested != nil {
		barter.ItemRequested.IsAvailable = false
	}
	return barter, nil
}

// Delete 发起方撤回待处理的交换
func (s *BarterService) Delete(userID, id uint) error {
	barter, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	if barter.RequesterID != userID {
		return ErrBarterNotParticipant
	}
	if barter.Status != constants.BarterStatusPending {
		return ErrBarterStatusInvalid
	}
	return s.barterRepo.Delete(id)
}

func (s *BarterService) notifyBarter(barter *models.BarterTransaction, recipientID uint, notificationType, title, message string) {
	barterID := barter.ID
	requestedID := barter.ItemRequestedID
	s.notifier.Notify(queue.NotificationDispatchPayload{
		UserID:          recipientID,
		Type:            notificationType,
		Title:           title,
		Message:         message,
		Priority:        constants.NotificationPriorityMedium,
		RelatedItemID:   &requestedID,
		RelatedBarterID: &barterID,
		Data: map[string]string{
			"barter_id": fmt.Sprintf("%d", barter.ID),
		},
	})
}
