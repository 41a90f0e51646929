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

var ErrNotBookOwner = errors.New("you can only modify your own books")

type BookService struct {
	db *gorm.DB
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

func (s *BookService) Create(userID uuid.UUID, req *dto.CreateBookRequest) (*models.Book, error) {
	authors, err := findByIDs[models.Author](s.db, req.AuthorIDs)
	if err != nil {
		return nil, err
	}
	publishers, err := findByIDs[models.Publisher](s.db, req.PublisherIDs)
	if err != nil {
		return nil, err
	}
	categories, err := findByIDs[models.Category](s.db, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	book := models.Book{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		CoverURL:        req.CoverURL,
		Language:        req.Language,
		PublicationYear: req.PublicationYear,
		CreatedBy:       userID,
		Authors:         authors,
		Publishers:      publishers,
		Categories:      categories,
		CreatedAt:       time.Now(),
	}

	if err := s.db.Create(&book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return &book, nil
}

func (s *BookService) Get(id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := s.db.Preload("Authors").Preload("Publishers").Preload("Categories").
		First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}
	return &book, nil
}

func (s *BookService) List(search string, limit, offset int) ([]models.Book, int64, error) {
	var books []models.Book
	var total int64

	query := s.db.Model(&models.Book{})
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	err := query.Preload("Authors").Preload("Categories").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&books).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	return books, total, nil
}

func (s *BookService) Update(userID, id uuid.UUID, req *dto.UpdateBookRequest) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}
	if book.CreatedBy != userID {
		return nil, ErrNotBookOwner
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CoverURL != nil {
		updates["cover_url"] = *req.CoverURL
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.PublicationYear != nil {
		updates["publication_year"] = *req.PublicationYear
	}
	if len(updates) > 0 {
		if err := s.db.Model(&book).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update book: %w", err)
		}
	}
	return &book, nil
}

func (s *BookService) Delete(userID, id uuid.UUID) error {
	var book models.Book
	if err := s.db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to look up book: %w", err)
	}
	if book.CreatedBy != userID {
		return ErrNotBookOwner
	}
	if err := s.db.Select("Authors", "Publishers", "Categories").Delete(&book).Error; err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

// findByIDs resolves a list of uuid strings into rows, failing with
// ErrNotFound when any id does not exist.
func findByIDs[T any](db *gorm.DB, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrNotFound
		}
		parsed = append(parsed, id)
	}
	var rows []T
	if err := db.Where("id IN ?", parsed).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve ids: %w", err)
	}
	if len(rows) != len(parsed) {
		return nil, ErrNotFound
	}
	return rows, nil
}
