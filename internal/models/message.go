package models

import "time"

// Message 私信
type Message struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SenderID   uint      `gorm:"index;not null" json:"sender_id"`
	ReceiverID uint      `gorm:"index;not null" json:"receiver_id"`
	ItemID     *uint     `gorm:"index" json:"item_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `gorm:"index" json:"timestamp"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Item     *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "chat_messages"
}
