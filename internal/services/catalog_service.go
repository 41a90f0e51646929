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

var ErrNotFound = errors.New("resource not found")

// CatalogService is plain CRUD over authors, publishers and categories.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) CreateAuthor(req *dto.CreateAuthorRequest) (*models.Author, error) {
	author := models.Author{ID: uuid.New(), Name: req.Name, Bio: req.Bio, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.db.Create(&author).Error; err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return &author, nil
}

func (s *CatalogService) ListAuthors() ([]models.Author, error) {
	var authors []models.Author
	if err := s.db.Order("name").Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

func (s *CatalogService) GetAuthor(id uuid.UUID) (*models.Author, error) {
	var author models.Author
	if err := s.db.First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}
	return &author, nil
}

func (s *CatalogService) UpdateAuthor(id uuid.UUID, req *dto.CreateAuthorRequest) (*models.Author, error) {
	author, err := s.GetAuthor(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"name": req.Name, "bio": req.Bio}
	if err := s.db.Model(author).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return author, nil
}

func (s *CatalogService) DeleteAuthor(id uuid.UUID) error {
	author, err := s.GetAuthor(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(author).Error; err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return nil
}

func (s *CatalogService) CreatePublisher(req *dto.CreatePublisherRequest) (*models.Publisher, error) {
	publisher := models.Publisher{ID: uuid.New(), Name: req.Name, Website: req.Website, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.db.Create(&publisher).Error; err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}
	return &publisher, nil
}

func (s *CatalogService) ListPublishers() ([]models.Publisher, error) {
	var publishers []models.Publisher
	if err := s.db.Order("name").Find(&publishers).Error; err != nil {
		return nil, fmt.Errorf("failed to list publishers: %w", err)
	}
	return publishers, nil
}

func (s *CatalogService) GetPublisher(id uuid.UUID) (*models.Publisher, error) {
	var publisher models.Publisher
	if err := s.db.First(&publisher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up publisher: %w", err)
	}
	return &publisher, nil
}

func (s *CatalogService) UpdatePublisher(id uuid.UUID, req *dto.CreatePublisherRequest) (*models.Publisher, error) {
	publisher, err := s.GetPublisher(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"name": req.Name, "website": req.Website}
	if err := s.db.Model(publisher).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update publisher: %w", err)
	}
	return publisher, nil
}

func (s *CatalogService) DeletePublisher(id uuid.UUID) error {
	publisher, err := s.GetPublisher(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(publisher).Error; err != nil {
		return fmt.Errorf("failed to delete publisher: %w", err)
	}
	return nil
}

func (s *CatalogService) CreateCategory(req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := models.Category{ID: uuid.New(), Name: req.Name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(id uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(category).Update("name", req.Name).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(id uuid.UUID) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
