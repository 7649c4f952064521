package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gigmarket/api/config"
	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

func newAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg)
}

func registerReq(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    email,
		Password: "correct-horse-battery",
		Name:     "Test User",
		Role:     "freelancer",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	resp, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Empty(t, resp.User.Password)
	assert.Equal(t, models.RoleFreelancer, resp.User.Role)

	login, err := svc.Login(dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	claims, err := svc.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "freelancer", claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	_, err := svc.Register(registerReq("bob@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(registerReq("bob@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	_, err := svc.Register(registerReq("carol@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(dto.LoginRequest{Email: "carol@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	resp, err := svc.Register(registerReq("dave@example.com"))
	require.NoError(t, err)

	token, err := svc.Refresh(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)

	claims, err := svc.ValidateAccessToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	resp, err := svc.Register(registerReq("erin@example.com"))
	require.NoError(t, err)

	// Access tokens lack the refresh type marker.
	_, err = svc.Refresh(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	_, err := svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	cfg.RefreshTokenTTL = -time.Hour
	svc := newAuthService(db, cfg)

	resp, err := svc.Register(registerReq("frank@example.com"))
	require.NoError(t, err)

	_, err = svc.Refresh(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	resp, err := svc.Register(registerReq("grace@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(resp.RefreshToken))

	_, err = svc.Refresh(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// Logging out an unknown token is tolerated.
	assert.NoError(t, svc.Logout("already-gone"))
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	resp, err := svc.Register(registerReq("heidi@example.com"))
	require.NoError(t, err)

	second, err := svc.Login(dto.LoginRequest{Email: "heidi@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(resp.User.ID))

	_, err = svc.Refresh(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, err = svc.Refresh(second.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestValidateAccessTokenRejectsTampered(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, testConfig())

	resp, err := svc.Register(registerReq("ivan@example.com"))
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "different-secret"
	other := newAuthService(db, otherCfg)

	_, err = other.ValidateAccessToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
