package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct message between two users. Messages are
// append-only: there is no edit or delete path anywhere in the API.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	SenderID   string `gorm:"index;type:text;not null" json:"sender"`
	Sender     User   `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID string `gorm:"index;type:text;not null" json:"receiver"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"-"`

	Text string `gorm:"type:text;not null" json:"text"`

	// avatar snapshots the socket client sends along with the message
	SenderProfilePic   string `json:"senderProfilePic,omitempty"`
	ReceiverProfilePic string `json:"receiverProfilePic,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return
}
