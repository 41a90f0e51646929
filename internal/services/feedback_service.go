package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/models"
	"gorm.io/gorm"
)

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

func (s *FeedbackService) Create(userID uuid.UUID, req *dto.CreateFeedbackRequest) (*models.Feedback, error) {
	now := time.Now()
	feedback := models.Feedback{
		ID:        uuid.New(),
		UserID:    userID,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    "open",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &feedback, nil
}

func (s *FeedbackService) ListMine(userID uuid.UUID) ([]models.Feedback, error) {
	var items []models.Feedback
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}
