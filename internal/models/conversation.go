package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation aggregates a participant pair: the pointer to the most
// recent message and one unread counter per participant.
//
// The pair is stored sorted (UserLowID < UserHighID) with a composite
// unique index, so {A,B} and {B,A} always resolve to the same row and
// at most one conversation can exist per pair.
type Conversation struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`

	UserLowID  string `gorm:"uniqueIndex:idx_conversation_pair;type:text;not null" json:"-"`
	UserHighID string `gorm:"uniqueIndex:idx_conversation_pair;type:text;not null" json:"-"`
	UserLow    User   `gorm:"foreignKey:UserLowID" json:"-"`
	UserHigh   User   `gorm:"foreignKey:UserHighID" json:"-"`

	LastMessageID *string  `gorm:"type:text" json:"-"`
	LastMessage   *Message `gorm:"foreignKey:LastMessageID" json:"lastMessage,omitempty"`

	UnreadLow  int `gorm:"not null;default:0" json:"-"`
	UnreadHigh int `gorm:"not null;default:0" json:"-"`

	// wire-format views derived from the stored columns
	Participants []string       `gorm:"-" json:"participants"`
	Unread       map[string]int `gorm:"-" json:"unread"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// AfterFind keeps the serialized shape (participants array, unread map)
// in sync with the sorted-pair columns.
func (c *Conversation) AfterFind(tx *gorm.DB) (err error) {
	c.syncViews()
	return
}

func (c *Conversation) syncViews() {
	c.Participants = []string{c.UserLowID, c.UserHighID}
	c.Unread = map[string]int{}
	if c.UnreadLow > 0 {
		c.Unread[c.UserLowID] = c.UnreadLow
	}
	if c.UnreadHigh > 0 {
		c.Unread[c.UserHighID] = c.UnreadHigh
	}
}

// SortPair orders two user IDs into the canonical (low, high) form
// used to key a conversation. Symmetric in its arguments.
func SortPair(a, b string) (low, high string) {
	if a <= b {
		return a, b
	}
	return b, a
}

// Involves reports whether user is one of the two participants.
func (c *Conversation) Involves(user string) bool {
	return c.UserLowID == user || c.UserHighID == user
}

// UnreadFor returns the unread counter for the given participant,
// defaulting to 0 for anyone else.
func (c *Conversation) UnreadFor(user string) int {
	switch user {
	case c.UserLowID:
		return c.UnreadLow
	case c.UserHighID:
		return c.UnreadHigh
	}
	return 0
}

// Other returns the participant that is not the given user.
func (c *Conversation) Other(user string) *User {
	if user == c.UserLowID {
		return &c.UserHigh
	}
	return &c.UserLow
}
