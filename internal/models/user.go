package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	FullName string `json:"fullName"`
	Phone    string `gorm:"index" json:"phone"`

	Gender        string `json:"gender"`
	Bio           string `json:"bio"`
	ProfilePicURL string `json:"profilePicUrl"`

	Password string `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Follow is one edge of the follow graph: follower -> followee.
type Follow struct {
	FollowerID string    `gorm:"primaryKey;type:text" json:"followerId"`
	FolloweeID string    `gorm:"primaryKey;type:text" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`

	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"-"`
}
