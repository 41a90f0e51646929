package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription follows another user's blogs and reviews.
type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair" json:"subscriber_id"`
	AuthorID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair" json:"author_id"`
	CreatedAt    time.Time `json:"created_at"`
	Subscriber   User      `gorm:"foreignKey:SubscriberID" json:"-"`
	Author       User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
