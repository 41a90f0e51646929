package models

import (
	"time"

	"github.com/google/uuid"
)

// UserBook is a reading-list entry tying one user to one book. The composite
// unique index makes the (user, book) pair unique at the store, so two
// concurrent adds for the same pair cannot both land.
type UserBook struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_books_user_book" json:"user_id"`
	BookID        uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_books_user_book" json:"book_id"`
	ReadingStatus ReadingStatus `gorm:"size:20;not null" json:"reading_status"`
	Progress      int           `gorm:"not null;default:0" json:"progress"`
	StartedAt     *time.Time    `json:"started_at"`
	CompletedAt   *time.Time    `json:"completed_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	User          User          `gorm:"foreignKey:UserID" json:"-"`
	Book          Book          `gorm:"foreignKey:BookID" json:"book,omitempty"`
}
