package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/models"
)

func TestResolveCurrentUser_ProvisionsOnFirstSight(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)
	sub := uuid.New()

	claims := jwt.MapClaims{
		"sub":   sub.String(),
		"email": "kafka@example.com",
		"name":  "Franz Kafka",
	}

	user, err := svc.ResolveCurrentUser(claims)

	require.NoError(t, err)
	assert.Equal(t, sub, user.ID)
	assert.Equal(t, "kafka@example.com", user.Email)
	assert.Equal(t, "Franz Kafka", user.FullName)
	// Username falls back to the email local part.
	assert.Equal(t, "kafka", user.Username)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveCurrentUser_IdempotentAfterCreation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)
	sub := uuid.New()
	claims := jwt.MapClaims{"sub": sub.String(), "email": "kafka@example.com"}

	first, err := svc.ResolveCurrentUser(claims)
	require.NoError(t, err)

	// A later token may carry different optional claims; the stored row wins.
	claims["name"] = "Someone Else"
	second, err := svc.ResolveCurrentUser(claims)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Username, second.Username)
	assert.Empty(t, second.FullName)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveCurrentUser_UsernameClaimWins(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	claims := jwt.MapClaims{
		"sub":      uuid.New().String(),
		"email":    "kafka@example.com",
		"username": "the_hunger_artist",
	}

	user, err := svc.ResolveCurrentUser(claims)

	require.NoError(t, err)
	assert.Equal(t, "the_hunger_artist", user.Username)
}

func TestResolveCurrentUser_MissingSubject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	_, err := svc.ResolveCurrentUser(jwt.MapClaims{"email": "kafka@example.com"})
	assert.ErrorIs(t, err, ErrNoSubject)

	_, err = svc.ResolveCurrentUser(jwt.MapClaims{"sub": "not-a-uuid"})
	assert.ErrorIs(t, err, ErrNoSubject)
}

func TestResolveCurrentUserID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)
	sub := uuid.New()

	id, err := svc.ResolveCurrentUserID(jwt.MapClaims{"sub": sub.String()})

	require.NoError(t, err)
	assert.Equal(t, sub, id)

	// Claim-only path: nothing is written.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)
	user := createTestUser(t, db, "kafka@example.com")

	bio := "Writes about bureaucracy."
	updated, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Bio: &bio})

	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, user.Username, updated.Username)
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	bio := "nope"
	_, err := svc.UpdateProfile(uuid.New(), &dto.UpdateProfileRequest{Bio: &bio})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_CascadesOwnedRows(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)
	readingList := NewReadingListService(db)

	user := createTestUser(t, db, "kafka@example.com")
	book := createTestBook(t, db, user.ID, "The Castle")
	_, err := readingList.AddBook(user.ID, book.ID, models.StatusInProgress, 10)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))

	var users, entries int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.UserBook{}).Count(&entries).Error)
	assert.EqualValues(t, 0, users)
	assert.EqualValues(t, 0, entries)

	assert.ErrorIs(t, svc.DeleteUser(user.ID), ErrUserNotFound)
}
