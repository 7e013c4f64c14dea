package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AuthorID string `gorm:"index;type:text;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Caption  string `gorm:"type:text" json:"caption"`
	MediaURL string `json:"mediaUrl"`
	// image or video, decided from the uploaded MIME type
	MediaType string `gorm:"type:text;default:'image'" json:"mediaType"`

	Tags pq.StringArray `gorm:"type:text[]" json:"tags"`

	AuthorProfilePicURL string `json:"authorProfilePicUrl"`

	Likes    []PostLike `gorm:"foreignKey:PostID" json:"-"`
	Comments []Comment  `gorm:"foreignKey:PostID" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// PostLike is one user's like on one post.
type PostLike struct {
	PostID    string    `gorm:"primaryKey;type:text" json:"postId"`
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PostID string `gorm:"index;type:text;not null" json:"postId"`
	UserID string `gorm:"index;type:text;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Text string `gorm:"type:text;not null" json:"text"`

	// profile pic snapshot taken at comment time, mirrors the feed payload
	UserCommentProfilePicURL string `json:"userCommentProfilePicUrl"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
