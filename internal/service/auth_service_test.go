package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceWithFakes() (*fakeUserRepo, *fakeSessionRepo, AuthService) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	return users, sessions, NewAuthService(users, sessions)
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	user, session, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected generated user id")
	}
	if user.Password == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored password is not a valid bcrypt hash of the input: %v", err)
	}
	if session == nil || session.Token == "" {
		t.Fatalf("expected a session to be created at registration")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	if _, _, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "a"}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, _, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "b"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	_, _, err := svc.Register(context.Background(), Credentials{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected errors for username and password, got %v", verr.Fields)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	if _, _, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "right"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	_, _, err := svc.Login(context.Background(), Credentials{Username: "nobody", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserForToken_RoundTrip(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	user, session, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "a"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	resolved, err := svc.UserForToken(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("UserForToken returned error: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, resolved.ID)
	}
}

func TestUserForToken_UnknownToken(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	_, err := svc.UserForToken(context.Background(), "no-such-token")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUserForToken_ExpiredSession(t *testing.T) {
	t.Parallel()

	_, sessions, svc := newAuthServiceWithFakes()

	_, session, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "a"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// Advance the session store's clock past the TTL.
	sessions.now = func() time.Time { return time.Now().Add(SessionTTL + time.Minute) }

	_, err = svc.UserForToken(context.Background(), session.Token)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for expired session, got %v", err)
	}
}

func TestLogout_InvalidatesToken(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	_, session, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "a"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.Logout(context.Background(), session.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	_, err = svc.UserForToken(context.Background(), session.Token)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestLogin_IssuesFreshToken(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthServiceWithFakes()

	_, first, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "a"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, second, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "a"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if first.Token == second.Token {
		t.Fatalf("expected a distinct token per login")
	}
}
