package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taletrail/taletrail-backend/internal/config"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/middleware"
	"github.com/taletrail/taletrail-backend/internal/models"
	"github.com/taletrail/taletrail-backend/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.UserBook{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{JWTSecret: testSecret}
	identity := services.NewIdentityService(db)
	h := NewUserBookHandler(services.NewReadingListService(db), identity)

	app := fiber.New()
	group := app.Group("/api/user-book", middleware.JWTProtected(cfg))
	group.Get("/", h.List)
	group.Get("/in-progress", h.ListInProgress)
	group.Post("/", h.Add)
	group.Put("/:bookId", h.Update)
	group.Delete("/:bookId", h.Remove)

	return app, db
}

func signTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "reader@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, dto.Response) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope dto.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func seedBook(t *testing.T, db *gorm.DB, title string) *models.Book {
	t.Helper()

	book := models.Book{ID: uuid.New(), Title: title, CreatedBy: uuid.New(), CreatedAt: time.Now()}
	require.NoError(t, db.Create(&book).Error)
	return &book
}

func TestUserBookRoutes_RequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/user-book/", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, envelope.Success)
}

func TestUserBookRoutes_RejectBadSignature(t *testing.T) {
	app, _ := newTestApp(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/user-book/", signed, nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAddUserBook(t *testing.T) {
	app, db := newTestApp(t)
	book := seedBook(t, db, "The Trial")
	token := signTestToken(t, uuid.New())

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/user-book/", token, fiber.Map{
		"book_id":        book.ID.String(),
		"reading_status": "in_progress",
		"progress":       25,
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, envelope.Success)

	entry := envelope.Data.(map[string]interface{})
	assert.Equal(t, "in_progress", entry["reading_status"])
	assert.EqualValues(t, 25, entry["progress"])
	assert.NotNil(t, entry["started_at"])
}

func TestAddUserBook_UnknownStatus(t *testing.T) {
	app, db := newTestApp(t)
	book := seedBook(t, db, "The Trial")
	token := signTestToken(t, uuid.New())

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/user-book/", token, fiber.Map{
		"book_id":        book.ID.String(),
		"reading_status": "Reading",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, envelope.Success)
}

func TestAddUserBook_MissingBook(t *testing.T) {
	app, _ := newTestApp(t)
	token := signTestToken(t, uuid.New())

	resp, _ := doJSON(t, app, http.MethodPost, "/api/user-book/", token, fiber.Map{
		"book_id":        uuid.New().String(),
		"reading_status": "to_read",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddUserBook_Duplicate(t *testing.T) {
	app, db := newTestApp(t)
	book := seedBook(t, db, "The Trial")
	token := signTestToken(t, uuid.New())

	body := fiber.Map{"book_id": book.ID.String(), "reading_status": "to_read"}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/user-book/", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/user-book/", token, body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, envelope.Success)
}

func TestAddUserBook_InProgressCap(t *testing.T) {
	app, db := newTestApp(t)
	token := signTestToken(t, uuid.New())

	for _, title := range []string{"B1", "B2", "B3"} {
		book := seedBook(t, db, title)
		resp, _ := doJSON(t, app, http.MethodPost, "/api/user-book/", token, fiber.Map{
			"book_id":        book.ID.String(),
			"reading_status": "in_progress",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	fourth := seedBook(t, db, "B4")
	resp, envelope := doJSON(t, app, http.MethodPost, "/api/user-book/", token, fiber.Map{
		"book_id":        fourth.ID.String(),
		"reading_status": "in_progress",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope.Message, "in progress")
}

func TestUpdateUserBook(t *testing.T) {
	app, db := newTestApp(t)
	book := seedBook(t, db, "The Trial")
	token := signTestToken(t, uuid.New())

	resp, _ := doJSON(t, app, http.MethodPost, "/api/user-book/", token, fiber.Map{
		"book_id":        book.ID.String(),
		"reading_status": "in_progress",
		"progress":       40,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope := doJSON(t, app, http.MethodPut, "/api/user-book/"+book.ID.String(), token, fiber.Map{
		"reading_status": "completed",
		"progress":       10,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	entry := envelope.Data.(map[string]interface{})
	assert.Equal(t, "completed", entry["reading_status"])
	assert.EqualValues(t, 100, entry["progress"])
	assert.NotNil(t, entry["completed_at"])
}

func TestUpdateUserBook_NotInList(t *testing.T) {
	app, db := newTestApp(t)
	book := seedBook(t, db, "The Trial")
	token := signTestToken(t, uuid.New())

	resp, _ := doJSON(t, app, http.MethodPut, "/api/user-book/"+book.ID.String(), token, fiber.Map{
		"reading_status": "to_read",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemoveUserBook(t *testing.T) {
	app, db := newTestApp(t)
	book := seedBook(t, db, "The Trial")
	token := signTestToken(t, uuid.New())

	resp, _ := doJSON(t, app, http.MethodPost, "/api/user-book/", token, fiber.Map{
		"book_id":        book.ID.String(),
		"reading_status": "to_read",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/user-book/"+book.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/user-book/"+book.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListUserBooks_ScopedToTokenOwner(t *testing.T) {
	app, db := newTestApp(t)
	mine := signTestToken(t, uuid.New())
	theirs := signTestToken(t, uuid.New())
	book := seedBook(t, db, "The Trial")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/user-book/", mine, fiber.Map{
		"book_id":        book.ID.String(),
		"reading_status": "in_progress",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, envelope := doJSON(t, app, http.MethodGet, "/api/user-book/", mine, nil)
	assert.Len(t, envelope.Data, 1)

	_, envelope = doJSON(t, app, http.MethodGet, "/api/user-book/", theirs, nil)
	assert.Len(t, envelope.Data, 0)

	_, envelope = doJSON(t, app, http.MethodGet, "/api/user-book/in-progress", mine, nil)
	assert.Len(t, envelope.Data, 1)
}
