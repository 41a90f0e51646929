package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taletrail/taletrail-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadySubscribed = errors.New("already subscribed to this user")
	ErrNotSubscribed     = errors.New("not subscribed to this user")
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) Subscribe(subscriberID, authorID uuid.UUID) (*models.Subscription, error) {
	if subscriberID == authorID {
		return nil, ErrSelfSubscription
	}

	var author models.User
	if err := s.db.First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}

	var existing models.Subscription
	err := s.db.Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadySubscribed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}

	sub := models.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		AuthorID:     authorID,
		CreatedAt:    time.Now(),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return &sub, nil
}

func (s *SubscriptionService) ListMine(subscriberID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.Preload("Author").Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *SubscriptionService) Unsubscribe(subscriberID, authorID uuid.UUID) error {
	var sub models.Subscription
	err := s.db.Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotSubscribed
		}
		return fmt.Errorf("failed to look up subscription: %w", err)
	}
	if err := s.db.Delete(&sub).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
