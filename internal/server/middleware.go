package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/SmarthSarin/TaskMasterPro/internal/domain"
	"github.com/SmarthSarin/TaskMasterPro/internal/service"
)

const sessionCookieName = "session_token"

type contextKey string

const (
	userContextKey  contextKey = "currentUser"
	tokenContextKey contextKey = "sessionToken"
)

// requireAuth resolves the session cookie to a user and stores both the
// user and the raw token on the request context. Requests without a live
// session are rejected with 401 before reaching the handler.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := s.authService.UserForToken(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				respondWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			log.Printf("Error resolving session: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to check session")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, tokenContextKey, cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the authenticated user placed on the context by
// requireAuth. Only valid on routes behind that middleware.
func currentUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

func sessionToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenContextKey).(string)
	return token
}
