package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taletrail/taletrail-backend/internal/config"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/models"
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
	return NewAuthService(db, cfg, NewIdentityService(db))
}

func TestSignup(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	resp, err := svc.Signup(&dto.SignupRequest{
		Email:    "milena@example.com",
		Password: "letters1920",
		FullName: "Milena Jesenska",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "milena@example.com", resp.User.Email)
	// Username defaults to the email local part.
	assert.Equal(t, "milena", resp.User.Username)

	// The access token is signed with the configured secret and carries
	// the user id as subject.
	token, err := jwt.Parse(resp.AccessToken, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
}

func TestSignup_EmailTaken(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	_, err := svc.Signup(&dto.SignupRequest{Email: "milena@example.com", Password: "letters1920"})
	require.NoError(t, err)

	_, err = svc.Signup(&dto.SignupRequest{Email: "milena@example.com", Password: "other-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_UsernameTaken(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	_, err := svc.Signup(&dto.SignupRequest{
		Email:    "milena@example.com",
		Username: "milena",
		Password: "letters1920",
	})
	require.NoError(t, err)

	_, err = svc.Signup(&dto.SignupRequest{
		Email:    "milena@other.example.com",
		Username: "milena",
		Password: "other-pass",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	_, err := svc.Signup(&dto.SignupRequest{Email: "milena@example.com", Password: "letters1920"})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "milena@example.com", Password: "letters1920"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "milena@example.com", resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	_, err := svc.Signup(&dto.SignupRequest{Email: "milena@example.com", Password: "letters1920"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "milena@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "letters1920"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	signup, err := svc.Signup(&dto.SignupRequest{Email: "milena@example.com", Password: "letters1920"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: signup.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, signup.RefreshToken, refreshed.RefreshToken)

	// The presented token is spent after rotation.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: signup.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The new one still works.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.NoError(t, err)
}

func TestRefresh_UnknownToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "never-issued"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	signup, err := svc.Signup(&dto.SignupRequest{Email: "milena@example.com", Password: "letters1920"})
	require.NoError(t, err)

	err = db.Model(&models.RefreshToken{}).
		Where("user_id = ?", signup.User.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: signup.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	signup, err := svc.Signup(&dto.SignupRequest{Email: "milena@example.com", Password: "letters1920"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: signup.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: signup.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	signup, err := svc.Signup(&dto.SignupRequest{Email: "milena@example.com", Password: "letters1920"})
	require.NoError(t, err)

	err = svc.DeleteAccount(signup.User.ID, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.DeleteAccount(signup.User.ID, "letters1920"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteAccount_ProvisionedProfileNeedsNoPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	user := createTestUser(t, db, "external@example.com")

	require.NoError(t, svc.DeleteAccount(user.ID, ""))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
