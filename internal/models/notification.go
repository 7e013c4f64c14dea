package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeMessage NotificationType = "message"
)

type Notification struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	RecipientID string `gorm:"index;type:text;not null" json:"recipientId"`
	SenderID    string `gorm:"index;type:text;not null" json:"senderId"`

	Type NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Text string           `gorm:"type:text" json:"text"`

	PostID *string `gorm:"index;type:text" json:"postId,omitempty"`

	SenderPic  string `json:"senderPic"`
	SenderName string `json:"senderName"`

	IsRead bool `gorm:"default:false" json:"isRead"`

	Recipient User  `gorm:"foreignKey:RecipientID" json:"-"`
	Sender    User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Post      *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return
}
