package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoSubject = errors.New("token has no usable subject claim")

// IdentityService turns verified token claims into a guaranteed-to-exist
// profile row. Externally-authenticated identities never go through a
// separate signup step: the first authenticated request provisions the row.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// ResolveCurrentUser looks up the profile for the token's subject, creating
// it from the claims when absent. The insert is conditional (insert-if-absent
// on the primary key), so a concurrent first request for the same subject
// cannot produce a duplicate row; whoever loses the race reads the winner's.
func (s *IdentityService) ResolveCurrentUser(claims jwt.MapClaims) (*models.User, error) {
	id, err := subjectID(claims)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.First(&user, "id = ?", id).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	email, _ := claims["email"].(string)
	fullName, _ := claims["name"].(string)
	username, _ := claims["username"].(string)
	if username == "" && email != "" {
		username = strings.Split(email, "@")[0]
	}

	now := time.Now()
	user = models.User{
		ID:        id,
		Email:     email,
		Username:  username,
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}

	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to read provisioned user: %w", err)
	}
	return &user, nil
}

// ResolveCurrentUserID extracts and validates only the subject claim, with no
// store access. Used where an owner id is enough and a full profile row is
// not required.
func (s *IdentityService) ResolveCurrentUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	return subjectID(claims)
}

// UpdateProfile applies the non-nil fields and returns the updated row.
func (s *IdentityService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// DeleteUser removes the profile and everything hanging off it in one
// transaction.
func (s *IdentityService) DeleteUser(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
		tx.Where("user_id = ?", userID).Delete(&models.UserBook{})
		tx.Where("user_id = ?", userID).Delete(&models.Review{})
		tx.Where("user_id = ?", userID).Delete(&models.BlogLike{})
		tx.Where("user_id = ?", userID).Delete(&models.Blog{})
		tx.Where("user_id = ?", userID).Delete(&models.Feedback{})
		tx.Where("user_id = ?", userID).Delete(&models.Watchlist{})
		tx.Where("subscriber_id = ? OR author_id = ?", userID, userID).Delete(&models.Subscription{})
		return tx.Delete(&user).Error
	})
}

func subjectID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return uuid.Nil, ErrNoSubject
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrNoSubject
	}
	return id, nil
}
