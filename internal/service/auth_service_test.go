package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fryegg/api/internal/apperr"
	"fryegg/api/internal/config"
	"fryegg/api/internal/models"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			JWTAccessSecret: "test-secret",
			JWTAccessTTL:    time.Hour,
			SessionTTL:      time.Hour,
		},
	}
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeSessionStore, *fakeOccupantStore) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	occupants := newFakeOccupantStore()
	svc := NewAuthService(users, sessions, occupants, testConfig(), zerolog.Nop())
	return svc, users, sessions, occupants
}

func register(t *testing.T, svc *AuthService, email string, seat int) AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), RegisterInput{
		Email:       email,
		Password:    "correct horse battery",
		DisplayName: "달걀",
		Seat:        seat,
	})
	require.NoError(t, err)
	return result
}

func TestRegisterClaimsSeat(t *testing.T) {
	svc, _, _, occupants := newTestAuthService()

	result := register(t, svc, "egg@example.com", 7)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.SessionID)

	o, err := occupants.GetBySeat(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, o.ID)
	assert.Equal(t, "달걀", o.UserName)
	assert.NotEmpty(t, o.Title, "empty title falls back to a random one")
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "not-an-email",
		Password:    "pw123456",
		DisplayName: "x",
		Seat:        1,
	})
	assert.Equal(t, apperr.KindInvalidEmail, apperr.KindOf(err))
}

func TestRegisterRejectsReservedSeat(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "egg@example.com",
		Password:    "pw123456",
		DisplayName: "x",
		Seat:        4,
	})
	assert.Equal(t, apperr.KindSeatReserved, apperr.KindOf(err))
}

func TestRegisterRejectsTakenSeat(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	register(t, svc, "first@example.com", 12)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "second@example.com",
		Password:    "pw123456",
		DisplayName: "x",
		Seat:        12,
	})
	assert.Equal(t, apperr.KindSeatTaken, apperr.KindOf(err))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	register(t, svc, "egg@example.com", 1)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "EGG@example.com", // case-insensitive match
		Password:    "pw123456",
		DisplayName: "x",
		Seat:        2,
	})
	assert.Equal(t, apperr.KindUserExists, apperr.KindOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	register(t, svc, "egg@example.com", 1)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "egg@example.com",
		Password: "wrong",
	})
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(err))
}

func TestLoginUnconfirmedAccount(t *testing.T) {
	svc, users, _, _ := newTestAuthService()
	result := register(t, svc, "egg@example.com", 1)

	u, err := users.GetByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	u.Status = models.UserStatusUnconfirmed
	require.NoError(t, users.Create(context.Background(), u))

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "egg@example.com",
		Password: "correct horse battery",
	})
	assert.Equal(t, apperr.KindEmailNotConfirmed, apperr.KindOf(err))
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	result := register(t, svc, "egg@example.com", 1)

	user, claims, err := svc.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)
	assert.Equal(t, result.SessionID, claims.SessionID)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, sessions, _ := newTestAuthService()
	result := register(t, svc, "egg@example.com", 1)

	require.NoError(t, svc.Logout(context.Background(), result.SessionID))
	assert.Zero(t, sessions.count(), "session row must be gone, not just flagged")

	// The still-valid JWT no longer authenticates once its session row
	// is deleted.
	_, _, err := svc.Authenticate(context.Background(), result.Token)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	// Logging out twice is harmless.
	assert.NoError(t, svc.Logout(context.Background(), result.SessionID))
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, _, err := svc.Authenticate(context.Background(), "not.a.jwt")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestUpdateUserMissingIsNoop(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	name := "새이름"
	assert.NoError(t, svc.UpdateUser(context.Background(), "nobody", UserPatch{DisplayName: &name}))
}
