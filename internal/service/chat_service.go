package service

import (
	"fmt"
	"strings"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/repository"
)

// ChatService 私信服务
type ChatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	notifier    *NotificationService
}

// NewChatService 创建私信服务
func NewChatService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, itemRepo repository.ItemRepository, notifier *NotificationService) *ChatService {
	return &ChatService{messageRepo: messageRepo, userRepo: userRepo, itemRepo: itemRepo, notifier: notifier}
}

// MessageListInput 私信列表参数
type MessageListInput struct {
	UserID   uint
	WithUser uint
	ItemID   uint
	Page     int
	PageSize int
}

// SendMessageInput 发送私信参数
type SendMessageInput struct {
	ReceiverID uint
	ItemID     *uint
	Text       string
}

// Conversation 会话摘要
type Conversation struct {
	User        *models.User    `json:"user"`
	LastMessage *models.Message `json:"last_message"`
}

// List 与当前用户相关的私信（最新优先）
func (s *ChatService) List(input MessageListInput) ([]models.Message, int64, error) {
	return s.messageRepo.List(repository.MessageListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		UserID:   input.UserID,
		WithUser: input.WithUser,
		ItemID:   input.ItemID,
	})
}

// Send 发送私信并通知接收者
func (s *ChatService) Send(senderID uint, input SendMessageInput) (*models.Message, error) {
	text := strings.TrimSpace(input.Text)
	if input.ReceiverID == 0 || text == "" {
		return nil, ErrMessageInvalid
	}
	if input.ReceiverID == senderID {
		return nil, ErrMessageSelf
	}
	receiver, err := s.userRepo.GetByID(input.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrUserNotFound
	}
	if input.ItemID != nil && *input.ItemID != 0 {
		item, err := s.itemRepo.GetByID(*input.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrItemNotFound
		}
	} else {
		input.ItemID = nil
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		ItemID:     input.ItemID,
		Text:       text,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	senderName := fmt.Sprintf("user #%d", senderID)
	if sender, err := s.userRepo.GetByID(senderID); err == nil && sender != nil {
		senderName = sender.Username
	}
	s.notifier.Notify(queue.NotificationDispatchPayload{
		UserID:        receiver.ID,
		Type:          constants.NotificationMessageReceived,
		Title:         "New message",
		Message:       fmt.Sprintf("%s: %s", senderName, truncateRunes(text, 100)),
		Priority:      constants.NotificationPriorityMedium,
		RelatedItemID: message.ItemID,
		Data: map[string]string{
			"sender": senderName,
		},
	})
	return message, nil
}

// Get 私信详情（收发双方可见）
func (s *ChatService) Get(userID, id uint) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message == nil || (message.SenderID != userID && message.ReceiverID != userID) {
		return nil, ErrMessageNotFound
	}
	return message, nil
}

// Delete 删除私信（仅发送者）
func (s *ChatService) Delete(userID, id uint) error {
	message, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	if message.SenderID != userID {
		return ErrForbidden
	}
	return s.messageRepo.Delete(id)
}

// Conversations 会话列表：每个对方一条，附最后一条消息
func (s *ChatService) Conversations(userID uint) ([]Conversation, error) {
	latest, err := s.messageRepo.ListLatestPerCounterpart(userID)
	if err != nil {
		return nil, err
	}
	result := make([]Conversation, 0, len(latest))
	for i := range latest {
		message := latest[i]
		counterpart := message.Receiver
		if message.ReceiverID == userID {
			counterpart = message.Sender
		}
		result = append(result, Conversation{User: counterpart, LastMessage: &message})
	}
	return result, nil
}
