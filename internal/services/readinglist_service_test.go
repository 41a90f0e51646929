package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taletrail/taletrail-backend/internal/models"
)

func TestAddBook_ToRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	entry, err := svc.AddBook(user.ID, book.ID, models.StatusToRead, 55)

	require.NoError(t, err)
	assert.Equal(t, models.StatusToRead, entry.ReadingStatus)
	assert.Equal(t, 0, entry.Progress)
	assert.Nil(t, entry.StartedAt)
	assert.Nil(t, entry.CompletedAt)
}

func TestAddBook_InProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	entry, err := svc.AddBook(user.ID, book.ID, models.StatusInProgress, 40)

	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, entry.ReadingStatus)
	assert.Equal(t, 40, entry.Progress)
	assert.NotNil(t, entry.StartedAt)
	assert.Nil(t, entry.CompletedAt)
}

func TestAddBook_ClampsProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")

	over := createTestBook(t, db, user.ID, "Over")
	entry, err := svc.AddBook(user.ID, over.ID, models.StatusInProgress, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, entry.Progress)

	under := createTestBook(t, db, user.ID, "Under")
	entry, err = svc.AddBook(user.ID, under.ID, models.StatusDropped, -30)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Progress)
}

func TestAddBook_CompletedForcesProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	entry, err := svc.AddBook(user.ID, book.ID, models.StatusCompleted, 10)

	require.NoError(t, err)
	assert.Equal(t, 100, entry.Progress)
	assert.NotNil(t, entry.StartedAt)
	assert.NotNil(t, entry.CompletedAt)
}

func TestAddBook_BookNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")

	_, err := svc.AddBook(user.ID, uuid.New(), models.StatusToRead, 0)

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestAddBook_DuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	_, err := svc.AddBook(user.ID, book.ID, models.StatusToRead, 0)
	require.NoError(t, err)

	_, err = svc.AddBook(user.ID, book.ID, models.StatusInProgress, 20)
	assert.ErrorIs(t, err, ErrAlreadyInList)
}

func TestAddBook_InProgressCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")

	for i, title := range []string{"B1", "B2", "B3"} {
		book := createTestBook(t, db, user.ID, title)
		_, err := svc.AddBook(user.ID, book.ID, models.StatusInProgress, i*10)
		require.NoError(t, err, "book %s should fit under the cap", title)
	}

	fourth := createTestBook(t, db, user.ID, "B4")
	_, err := svc.AddBook(user.ID, fourth.ID, models.StatusInProgress, 0)
	assert.ErrorIs(t, err, ErrTooManyInProgress)

	// The cap is per user; another user is unaffected.
	other := createTestUser(t, db, "other@example.com")
	_, err = svc.AddBook(other.ID, fourth.ID, models.StatusInProgress, 0)
	assert.NoError(t, err)
}

func TestAddBook_CapFreedByDropping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")

	books := make([]*models.Book, 0, 4)
	for _, title := range []string{"B1", "B2", "B3", "B4"} {
		books = append(books, createTestBook(t, db, user.ID, title))
	}
	for _, book := range books[:3] {
		_, err := svc.AddBook(user.ID, book.ID, models.StatusInProgress, 0)
		require.NoError(t, err)
	}

	_, err := svc.AddBook(user.ID, books[3].ID, models.StatusInProgress, 0)
	require.ErrorIs(t, err, ErrTooManyInProgress)

	_, err = svc.UpdateBook(user.ID, books[0].ID, models.StatusDropped, 30)
	require.NoError(t, err)

	_, err = svc.AddBook(user.ID, books[3].ID, models.StatusInProgress, 0)
	assert.NoError(t, err)
}

func TestUpdateBook_CompletedKeepsStartedAt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	created, err := svc.AddBook(user.ID, book.ID, models.StatusInProgress, 40)
	require.NoError(t, err)
	require.NotNil(t, created.StartedAt)
	startedAt := *created.StartedAt

	// The requested progress is ignored on completion.
	updated, err := svc.UpdateBook(user.ID, book.ID, models.StatusCompleted, 10)

	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	require.NotNil(t, updated.StartedAt)
	assert.WithinDuration(t, startedAt, *updated.StartedAt, 0)
	assert.NotNil(t, updated.CompletedAt)
}

func TestUpdateBook_ReapplyingStatusKeepsStartedAt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	created, err := svc.AddBook(user.ID, book.ID, models.StatusInProgress, 20)
	require.NoError(t, err)
	startedAt := *created.StartedAt

	updated, err := svc.UpdateBook(user.ID, book.ID, models.StatusInProgress, 60)

	require.NoError(t, err)
	assert.Equal(t, 60, updated.Progress)
	assert.WithinDuration(t, startedAt, *updated.StartedAt, 0)
}

func TestUpdateBook_InProgressAfterCompletedClearsCompletedAt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	_, err := svc.AddBook(user.ID, book.ID, models.StatusCompleted, 0)
	require.NoError(t, err)

	updated, err := svc.UpdateBook(user.ID, book.ID, models.StatusInProgress, 50)

	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
	assert.NotNil(t, updated.StartedAt)
	assert.Equal(t, 50, updated.Progress)
}

func TestUpdateBook_ToReadResetsEverything(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	_, err := svc.AddBook(user.ID, book.ID, models.StatusCompleted, 0)
	require.NoError(t, err)

	updated, err := svc.UpdateBook(user.ID, book.ID, models.StatusToRead, 70)

	require.NoError(t, err)
	assert.Equal(t, 0, updated.Progress)
	assert.Nil(t, updated.StartedAt)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateBook_DroppedKeepsStartedAt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	created, err := svc.AddBook(user.ID, book.ID, models.StatusInProgress, 30)
	require.NoError(t, err)
	startedAt := *created.StartedAt

	updated, err := svc.UpdateBook(user.ID, book.ID, models.StatusDropped, 45)

	require.NoError(t, err)
	assert.Equal(t, models.StatusDropped, updated.ReadingStatus)
	assert.Equal(t, 45, updated.Progress)
	assert.WithinDuration(t, startedAt, *updated.StartedAt, 0)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateBook_CapOnlyAppliesWhenEnteringInProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")

	var last *models.Book
	for _, title := range []string{"B1", "B2", "B3"} {
		last = createTestBook(t, db, user.ID, title)
		_, err := svc.AddBook(user.ID, last.ID, models.StatusInProgress, 0)
		require.NoError(t, err)
	}

	// Already in progress: updating progress must not trip the cap.
	_, err := svc.UpdateBook(user.ID, last.ID, models.StatusInProgress, 80)
	assert.NoError(t, err)

	// A to_read entry moving into in_progress does.
	extra := createTestBook(t, db, user.ID, "B4")
	_, err = svc.AddBook(user.ID, extra.ID, models.StatusToRead, 0)
	require.NoError(t, err)
	_, err = svc.UpdateBook(user.ID, extra.ID, models.StatusInProgress, 0)
	assert.ErrorIs(t, err, ErrTooManyInProgress)
}

func TestUpdateBook_NotInList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	_, err := svc.UpdateBook(user.ID, book.ID, models.StatusToRead, 0)

	assert.ErrorIs(t, err, ErrNotInList)
}

func TestRemoveBook(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, user.ID, "The Trial")

	_, err := svc.AddBook(user.ID, book.ID, models.StatusToRead, 0)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveBook(user.ID, book.ID))

	entries, err := svc.ListBooks(user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, svc.RemoveBook(user.ID, book.ID), ErrNotInList)
}

func TestListInProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReadingListService(db)
	user := createTestUser(t, db, "reader@example.com")

	reading := createTestBook(t, db, user.ID, "Reading")
	queued := createTestBook(t, db, user.ID, "Queued")
	_, err := svc.AddBook(user.ID, reading.ID, models.StatusInProgress, 10)
	require.NoError(t, err)
	_, err = svc.AddBook(user.ID, queued.ID, models.StatusToRead, 0)
	require.NoError(t, err)

	entries, err := svc.ListInProgress(user.ID)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, reading.ID, entries[0].BookID)
	assert.Equal(t, "Reading", entries[0].Book.Title)
}
