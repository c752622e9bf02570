package service

import (
	"context"
	"errors"
	"time"

	"github.com/SmarthSarin/TaskMasterPro/internal/domain"
	"github.com/SmarthSarin/TaskMasterPro/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// Credentials is the request body for both registration and login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthService handles registration, login, and session resolution. Sessions
// are opaque tokens persisted server-side; the client only ever holds the
// token in a cookie.
type AuthService interface {
	// Register creates a user with a hashed password and logs them in.
	// Returns ErrUsernameTaken when the username already exists.
	Register(ctx context.Context, creds Credentials) (*domain.User, *domain.Session, error)

	// Login verifies the credentials and creates a fresh session. Returns
	// ErrInvalidCredentials on an unknown username or wrong password.
	Login(ctx context.Context, creds Credentials) (*domain.User, *domain.Session, error)

	// Logout destroys the session for the given token.
	Logout(ctx context.Context, token string) error

	// UserForToken resolves a session token to its user. Returns
	// ErrSessionNotFound for unknown or expired tokens.
	UserForToken(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	now      func() time.Time
}

// NewAuthService creates an auth service over the given repositories.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository) AuthService {
	return &authService{users: users, sessions: sessions, now: time.Now}
}

func (s *authService) Register(ctx context.Context, creds Credentials) (*domain.User, *domain.Session, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Username: creds.Username,
		Password: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) Login(ctx context.Context, creds Credentials) (*domain.User, *domain.Session, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByUsername(creds.Username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(token)
}

func (s *authService) UserForToken(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	user, err := s.users.FindByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

func (s *authService) createSession(userID uint) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func validateCredentials(creds Credentials) error {
	fields := make(map[string]string)
	if creds.Username == "" {
		fields["username"] = "Username is required"
	}
	if creds.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
