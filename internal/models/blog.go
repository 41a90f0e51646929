package models

import (
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CoverURL  string    `gorm:"type:text" json:"cover_url"`
	LikeCount int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

type BlogLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BlogID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blog_likes_blog_user" json:"blog_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blog_likes_blog_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Blog      Blog      `gorm:"foreignKey:BlogID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
