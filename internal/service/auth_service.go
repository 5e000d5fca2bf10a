package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/model"
	"spendlog/internal/repository"
	"spendlog/internal/session"
)

const bcryptCost = 10

// AuthService handles signup, login and session resolution.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (user *model.User, sessionID string, err error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions *session.Manager
	store    session.StoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions *session.Manager, store session.StoreInterface) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		store:    store,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	// Check if the username is taken
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and opens a session, returning the signed token.
// Unknown users and wrong passwords surface the same error.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		logrus.WithField("username", username).Debug("login: unknown user")
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logrus.WithField("username", username).Debug("login: password mismatch")
		return "", nil, apperrors.ErrInvalidCredentials
	}

	sessionID, token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	if err := s.store.Put(ctx, sessionID, user.ID, session.Duration); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return token, user, nil
}

// Logout revokes the session behind the token. Tokens that no longer validate
// are treated as already logged out.
func (s *authService) Logout(ctx context.Context, token string) error {
	sessionID, err := s.sessions.ExtractSessionID(token)
	if err != nil {
		return nil
	}
	return s.store.Delete(ctx, sessionID)
}

// CurrentUser resolves a session token back to its user, checking both the
// signature and the server-side session record.
func (s *authService) CurrentUser(ctx context.Context, token string) (*model.User, string, error) {
	claims, err := s.sessions.Validate(token)
	if err != nil {
		return nil, "", apperrors.ErrInvalidSession
	}

	userID, err := s.store.Get(ctx, claims.ID)
	if err != nil || userID != claims.UserID {
		return nil, "", apperrors.ErrInvalidSession
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", apperrors.ErrInvalidSession
	}
	return user, claims.ID, nil
}
