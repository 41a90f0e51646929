package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/models"
	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) Create(userID uuid.UUID, req *dto.CreateReviewRequest) (*models.Review, error) {
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, ErrBookNotFound
	}
	var book models.Book
	if err := s.db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}

	now := time.Now()
	review := models.Review{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) ListByBook(bookID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("book_id = ?", bookID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) Update(userID, id uuid.UUID, req *dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.ownedReview(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if len(updates) > 0 {
		if err := s.db.Model(review).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update review: %w", err)
		}
	}
	return review, nil
}

func (s *ReviewService) Delete(userID, id uuid.UUID) error {
	review, err := s.ownedReview(userID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// ownedReview scopes lookups to the owner, so someone else's review is
// indistinguishable from a missing one.
func (s *ReviewService) ownedReview(userID, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to look up review: %w", err)
	}
	return &review, nil
}
