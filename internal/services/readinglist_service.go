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
	ErrBookNotFound      = errors.New("book not found")
	ErrAlreadyInList     = errors.New("book already in list")
	ErrNotInList         = errors.New("book not found in list")
	ErrTooManyInProgress = errors.New("maximum of 3 books in progress")
)

const maxInProgress = 3

// ReadingListService owns the lifecycle of a (user, book) reading-status
// entry: creation, status transitions, progress clamping, timestamp
// derivation and the per-user in-progress cap.
type ReadingListService struct {
	db *gorm.DB
}

func NewReadingListService(db *gorm.DB) *ReadingListService {
	return &ReadingListService{db: db}
}

// AddBook creates a reading-list entry for the pair. The book must exist and
// the pair must not: the friendly duplicate check runs first, and the unique
// index on (user_id, book_id) backstops it against concurrent adds.
func (s *ReadingListService) AddBook(userID, bookID uuid.UUID, status models.ReadingStatus, progress int) (*models.UserBook, error) {
	var book models.Book
	if err := s.db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}

	var existing models.UserBook
	err := s.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyInList
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check reading list: %w", err)
	}

	if status == models.StatusInProgress {
		if err := s.checkInProgressCap(userID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	entry := models.UserBook{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyTransition(&entry, "", status, progress, now)

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to add book to list: %w", err)
	}
	return &entry, nil
}

// UpdateBook re-applies the transition table to an existing entry. The
// previous status decides whether timestamps are already set, so repeating a
// status never clobbers an existing startedAt.
func (s *ReadingListService) UpdateBook(userID, bookID uuid.UUID, status models.ReadingStatus, progress int) (*models.UserBook, error) {
	var entry models.UserBook
	if err := s.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInList
		}
		return nil, fmt.Errorf("failed to look up list entry: %w", err)
	}

	// The cap only applies when entering in_progress from another status.
	if status == models.StatusInProgress && entry.ReadingStatus != models.StatusInProgress {
		if err := s.checkInProgressCap(userID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	applyTransition(&entry, entry.ReadingStatus, status, progress, now)
	entry.UpdatedAt = now

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to update list entry: %w", err)
	}
	return &entry, nil
}

func (s *ReadingListService) RemoveBook(userID, bookID uuid.UUID) error {
	var entry models.UserBook
	if err := s.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInList
		}
		return fmt.Errorf("failed to look up list entry: %w", err)
	}
	if err := s.db.Delete(&entry).Error; err != nil {
		return fmt.Errorf("failed to remove list entry: %w", err)
	}
	return nil
}

func (s *ReadingListService) ListBooks(userID uuid.UUID) ([]models.UserBook, error) {
	var entries []models.UserBook
	err := s.db.Preload("Book").Where("user_id = ?", userID).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return entries, nil
}

func (s *ReadingListService) ListInProgress(userID uuid.UUID) ([]models.UserBook, error) {
	var entries []models.UserBook
	err := s.db.Preload("Book").
		Where("user_id = ? AND reading_status = ?", userID, models.StatusInProgress).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress books: %w", err)
	}
	return entries, nil
}

func (s *ReadingListService) checkInProgressCap(userID uuid.UUID) error {
	var count int64
	err := s.db.Model(&models.UserBook{}).
		Where("user_id = ? AND reading_status = ?", userID, models.StatusInProgress).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to count in-progress books: %w", err)
	}
	if count >= maxInProgress {
		return ErrTooManyInProgress
	}
	return nil
}

// applyTransition sets status, progress and the derived timestamps. It is
// applied identically on create (prev == "") and update. Progress is clamped
// to [0,100] before any status-specific override.
func applyTransition(entry *models.UserBook, prev, target models.ReadingStatus, progress int, now time.Time) {
	entry.ReadingStatus = target
	entry.Progress = clampProgress(progress)

	switch target {
	case models.StatusToRead:
		entry.StartedAt = nil
		entry.CompletedAt = nil
		entry.Progress = 0
	case models.StatusInProgress:
		if entry.StartedAt == nil {
			entry.StartedAt = &now
		}
		if prev == models.StatusCompleted {
			entry.CompletedAt = nil
		}
	case models.StatusCompleted:
		if entry.StartedAt == nil {
			entry.StartedAt = &now
		}
		if entry.CompletedAt == nil {
			entry.CompletedAt = &now
		}
		entry.Progress = 100
	case models.StatusDropped:
		entry.CompletedAt = nil
	}
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
