package service_test

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) (service.AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return service.NewAuthService(store.Users(), testSecret, time.Hour, []string{"Boss@Example.com"}, logger.NewNop()), store
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "Ann", " Ann@Example.com ", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)

	token, loggedIn, err := auth.Login(ctx, "ANN@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	_, _, err = auth.Login(ctx, "ann@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	_, _, err = auth.Login(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}

func TestAuthService_RegisterAssignsAdminRole(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Register(context.Background(), "Boss", "boss@example.com", "long-enough")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestAuthService_RegisterRejectsDuplicates(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Ann", "ann@example.com", "correct-horse")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "Other Ann", "ANN@example.com", "another-pass")
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	auth, _ := newAuthService(t)
	tests := []struct {
		name, userName, email, password, field string
	}{
		{"empty name", "", "a@example.com", "password1", "name"},
		{"bad email", "A", "not-an-email", "password1", "email"},
		{"short password", "A", "a@example.com", "short", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Register(context.Background(), tt.userName, tt.email, tt.password)
			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestAuthService_ParseTokenRejectsForeignTokens(t *testing.T) {
	auth, _ := newAuthService(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &service.Claims{
		UserID: "u1",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = auth.ParseToken(signed)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &service.Claims{
		UserID: "u1",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err = expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = auth.ParseToken(signed)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAuthService_GetProfile(t *testing.T) {
	auth, store := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "Ann", "ann@example.com", "correct-horse")
	require.NoError(t, err)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Users().SetCurrentProgram(ctx, user.ID, "p1", &start))

	profile, err := auth.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", profile.CurrentProgramID)
	assert.Empty(t, profile.PasswordHash)

	_, err = auth.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
