package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/taletrail/taletrail-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Author{},
		&models.Publisher{},
		&models.Category{},
		&models.Book{},
		&models.UserBook{},
		&models.Review{},
		&models.Blog{},
		&models.BlogLike{},
		&models.Feedback{},
		&models.Watchlist{},
		&models.Subscription{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  email + "-user",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestBook(t *testing.T, db *gorm.DB, createdBy uuid.UUID, title string) *models.Book {
	t.Helper()

	book := models.Book{
		ID:        uuid.New(),
		Title:     title,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&book).Error)
	return &book
}
