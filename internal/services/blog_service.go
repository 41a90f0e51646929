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

var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrAlreadyLiked = errors.New("blog already liked")
	ErrNotLiked     = errors.New("blog not liked")
)

type BlogService struct {
	db *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

func (s *BlogService) Create(userID uuid.UUID, req *dto.CreateBlogRequest) (*models.Blog, error) {
	now := time.Now()
	blog := models.Blog{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		CoverURL:  req.CoverURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&blog).Error; err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return &blog, nil
}

func (s *BlogService) Get(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to look up blog: %w", err)
	}
	return &blog, nil
}

func (s *BlogService) List(limit, offset int) ([]models.Blog, int64, error) {
	var blogs []models.Blog
	var total int64

	if err := s.db.Model(&models.Blog{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&blogs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, total, nil
}

func (s *BlogService) Update(userID, id uuid.UUID, req *dto.UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.ownedBlog(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.CoverURL != nil {
		updates["cover_url"] = *req.CoverURL
	}
	if len(updates) > 0 {
		if err := s.db.Model(blog).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update blog: %w", err)
		}
	}
	return blog, nil
}

func (s *BlogService) Delete(userID, id uuid.UUID) error {
	blog, err := s.ownedBlog(userID, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("blog_id = ?", id).Delete(&models.BlogLike{})
		return tx.Delete(blog).Error
	})
}

// Like records the like and keeps the denormalized counter in step, inside
// one transaction. The unique (blog_id, user_id) index rejects double likes
// that race past the existence check.
func (s *BlogService) Like(userID, blogID uuid.UUID) error {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlogNotFound
		}
		return fmt.Errorf("failed to look up blog: %w", err)
	}

	var existing models.BlogLike
	err := s.db.Where("blog_id = ? AND user_id = ?", blogID, userID).First(&existing).Error
	if err == nil {
		return ErrAlreadyLiked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check like: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		like := models.BlogLike{ID: uuid.New(), BlogID: blogID, UserID: userID, CreatedAt: time.Now()}
		if err := tx.Create(&like).Error; err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}
		return tx.Model(&models.Blog{}).Where("id = ?", blogID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
}

func (s *BlogService) Unlike(userID, blogID uuid.UUID) error {
	var like models.BlogLike
	err := s.db.Where("blog_id = ? AND user_id = ?", blogID, userID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotLiked
		}
		return fmt.Errorf("failed to look up like: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&like).Error; err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		return tx.Model(&models.Blog{}).Where("id = ? AND like_count > 0", blogID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
}

func (s *BlogService) ownedBlog(userID, id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to look up blog: %w", err)
	}
	return &blog, nil
}
