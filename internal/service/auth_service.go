package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"fryegg/api/internal/apperr"
	"fryegg/api/internal/config"
	"fryegg/api/internal/ids"
	"fryegg/api/internal/models"
	"fryegg/api/internal/repository"
	"fryegg/api/internal/seatmap"
	"fryegg/api/internal/security"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	users     UserStore
	sessions  SessionStore
	occupants OccupantStore
	cfg       *config.AppConfig
	log       zerolog.Logger
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	occupants OccupantStore,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		occupants: occupants,
		cfg:       cfg,
		log:       log,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Seat        int
	Title       string
	URL         string
	IPAddress   string
	UserAgent   string
}

type AuthResult struct {
	Token     string
	SessionID string
	User      models.User
}

// Register creates the user, claims their seat by inserting the occupant
// row, and opens a session.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if !emailPattern.MatchString(input.Email) {
		return AuthResult{}, apperr.New(apperr.KindInvalidEmail, nil)
	}
	if input.Password == "" {
		return AuthResult{}, apperr.New(apperr.KindBadInput, errors.New("password required"))
	}

	if err := seatmap.Validate(input.Seat); err != nil {
		if errors.Is(err, seatmap.ErrSeatReserved) {
			return AuthResult{}, apperr.New(apperr.KindSeatReserved, err)
		}
		return AuthResult{}, apperr.New(apperr.KindBadInput, err)
	}
	if utf8.RuneCountInString(input.Title) > seatmap.MaxTitleRunes {
		return AuthResult{}, apperr.New(apperr.KindBadInput, errors.New("title too long"))
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return AuthResult{}, apperr.New(apperr.KindUserExists, nil)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, apperr.New(apperr.KindUnknown, err)
	}

	if taken, err := s.occupants.GetBySeat(ctx, input.Seat); err == nil && taken.ID != "" {
		return AuthResult{}, apperr.New(apperr.KindSeatTaken, nil)
	} else if err != nil && !errors.Is(err, repository.ErrOccupantNotFound) {
		return AuthResult{}, apperr.New(apperr.KindUnknown, err)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, apperr.New(apperr.KindUnknown, err)
	}

	user := models.User{
		ID:           ids.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		DisplayName:  input.DisplayName,
		Status:       models.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, apperr.New(apperr.KindUnknown, err)
	}

	title := input.Title
	if title == "" {
		title = seatmap.RandomTitle()
	}
	occupant := models.Occupant{
		ID:       user.ID,
		Seat:     input.Seat,
		UserName: input.DisplayName,
		Title:    title,
	}
	if input.URL != "" {
		occupant.URL = &input.URL
	}
	if err := s.occupants.Create(ctx, occupant); err != nil {
		return AuthResult{}, apperr.New(apperr.KindUnknown, err)
	}

	return s.createSession(ctx, user, input.IPAddress, input.UserAgent)
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, nil)
		}
		return AuthResult{}, apperr.New(apperr.KindUnknown, err)
	}

	if user.Status == models.UserStatusUnconfirmed {
		return AuthResult{}, apperr.New(apperr.KindEmailNotConfirmed, nil)
	}
	if user.Status != models.UserStatusActive {
		return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, nil)
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, err)
	}

	return s.createSession(ctx, user, input.IPAddress, input.UserAgent)
}

func (s *AuthService) createSession(ctx context.Context, user models.User, ipAddress, userAgent string) (AuthResult, error) {
	sessionID := ids.New()

	token, err := security.GenerateAccessToken(
		s.cfg.Security.JWTAccessSecret,
		user.ID,
		sessionID,
		s.cfg.Security.JWTAccessTTL,
	)
	if err != nil {
		return AuthResult{}, apperr.New(apperr.KindUnknown, err)
	}

	session := models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: security.HashToken(token),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(s.cfg.Security.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return AuthResult{}, apperr.New(apperr.KindUnknown, err)
	}

	return AuthResult{
		Token:     token,
		SessionID: sessionID,
		User:      user,
	}, nil
}

// Authenticate resolves a bearer token to its user, requiring both a
// valid JWT and a live session row; a logged-out token is rejected even
// before it expires.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, *security.AccessClaims, error) {
	claims, err := security.ParseAccessToken(token, s.cfg.Security.JWTAccessSecret)
	if err != nil {
		return models.User{}, nil, apperr.New(apperr.KindUnauthorized, err)
	}

	session, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		return models.User{}, nil, apperr.New(apperr.KindUnauthorized, err)
	}
	if session.UserID != claims.UserID || session.ExpiresAt.Before(time.Now()) {
		return models.User{}, nil, apperr.New(apperr.KindUnauthorized, nil)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return models.User{}, nil, apperr.New(apperr.KindUnauthorized, err)
	}
	if user.Status != models.UserStatusActive {
		return models.User{}, nil, apperr.New(apperr.KindUnauthorized, nil)
	}

	return user, claims, nil
}

// Logout deletes the persisted session row, not just in-memory state, so
// the token cannot rehydrate a session later.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteByID(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}
		return apperr.New(apperr.KindUnknown, err)
	}
	return nil
}

type UserPatch struct {
	DisplayName *string
}

// UpdateUser merges the patch into the stored user; when no such user
// exists this is a no-op rather than an error.
func (s *AuthService) UpdateUser(ctx context.Context, userID string, patch UserPatch) error {
	if patch.DisplayName == nil {
		return nil
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return apperr.New(apperr.KindUnknown, err)
	}
	if err := s.users.UpdateDisplayName(ctx, userID, *patch.DisplayName); err != nil {
		return apperr.New(apperr.KindUnknown, err)
	}
	return nil
}

// RequestPasswordReset acknowledges the request without revealing
// whether the address is registered. Mail delivery is out of scope; the
// request is only logged.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailPattern.MatchString(email) {
		return apperr.New(apperr.KindInvalidEmail, nil)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		s.log.Info().Str("email", email).Msg("password reset requested")
	}
	return nil
}

// ResendVerification mirrors RequestPasswordReset for the confirmation
// mail.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailPattern.MatchString(email) {
		return apperr.New(apperr.KindInvalidEmail, nil)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil && user.Status == models.UserStatusUnconfirmed {
		s.log.Info().Str("email", email).Msg("verification mail resend requested")
	}
	return nil
}
