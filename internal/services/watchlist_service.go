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
	ErrAlreadyWatched = errors.New("book already on watchlist")
	ErrNotWatched     = errors.New("book not on watchlist")
)

type WatchlistService struct {
	db *gorm.DB
}

func NewWatchlistService(db *gorm.DB) *WatchlistService {
	return &WatchlistService{db: db}
}

func (s *WatchlistService) Add(userID, bookID uuid.UUID, note string) (*models.Watchlist, error) {
	var book models.Book
	if err := s.db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}

	var existing models.Watchlist
	err := s.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyWatched
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check watchlist: %w", err)
	}

	entry := models.Watchlist{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to add to watchlist: %w", err)
	}
	return &entry, nil
}

func (s *WatchlistService) ListMine(userID uuid.UUID) ([]models.Watchlist, error) {
	var entries []models.Watchlist
	err := s.db.Preload("Book").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return entries, nil
}

func (s *WatchlistService) Remove(userID, bookID uuid.UUID) error {
	var entry models.Watchlist
	err := s.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotWatched
		}
		return fmt.Errorf("failed to look up watchlist entry: %w", err)
	}
	if err := s.db.Delete(&entry).Error; err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	return nil
}
