package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical profile row. The ID is never generated locally once
// token auth is in effect: it always equals the identity provider's subject
// claim, which is why there is no database-side default.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Username  string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	AvatarURL string    `gorm:"type:text" json:"avatar_url"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
