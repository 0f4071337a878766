package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sync"
	"time"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
)

// HashPassword returns the hex SHA-256 digest used for stored credentials.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

type session struct {
	userID    uint
	expiresAt time.Time
}

// AuthService verifies credentials against the users table and hands out
// opaque bearer tokens kept in an in-memory session map.
type AuthService struct {
	userRepo   ports.UserRepository
	log        *logger.Logger
	sessionTTL time.Duration

	mu       sync.RWMutex
	sessions map[string]session
}

func NewAuthService(userRepo ports.UserRepository, sessionTTL time.Duration, log *logger.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		log:        log,
		sessionTTL: sessionTTL,
		sessions:   make(map[string]session),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		s.log.Warnw("auth_login_unknown_user", "username", username)
		return nil, ErrAuthInvalidCredentials
	}

	digest := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.PasswordHash)) != 1 {
		s.log.Warnw("auth_login_bad_password", "username", username)
		return nil, ErrAuthInvalidCredentials
	}
	if user.Status != domain.UserStatusActive {
		s.log.Warnw("auth_login_inactive", "username", username, "status", user.Status)
		return nil, ErrAuthUserSuspended
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = session{userID: user.ID, expiresAt: time.Now().Add(s.sessionTTL)}
	s.mu.Unlock()

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Warnw("auth_last_login_update_failed", "username", username, "error", err)
	}

	s.log.Infow("auth_login_ok", "username", username, "user_id", user.ID)
	return &ports.LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *AuthService) Validate(token string) (*domain.User, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrAuthInvalidToken
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrAuthInvalidToken
	}

	user, err := s.userRepo.GetByID(context.Background(), sess.userID)
	if err != nil {
		return nil, ErrAuthInvalidToken
	}
	return user, nil
}
