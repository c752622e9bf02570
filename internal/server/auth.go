package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SmarthSarin/TaskMasterPro/internal/domain"
	"github.com/SmarthSarin/TaskMasterPro/internal/service"
)

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var creds service.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	user, session, err := s.authService.Register(r.Context(), creds)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondWithValidationError(w, verr)
		case errors.Is(err, service.ErrUsernameTaken):
			respondWithError(w, http.StatusBadRequest, "Username already exists")
		default:
			log.Printf("Error calling Register service: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	setSessionCookie(w, session)
	respondWithJSON(w, http.StatusCreated, user)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var creds service.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	user, session, err := s.authService.Login(r.Context(), creds)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondWithValidationError(w, verr)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		default:
			log.Printf("Error calling Login service: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	setSessionCookie(w, session)
	respondWithJSON(w, http.StatusOK, user)
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.authService.Logout(r.Context(), sessionToken(r)); err != nil {
		log.Printf("Error calling Logout service: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	clearSessionCookie(w)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, currentUser(r))
}

func setSessionCookie(w http.ResponseWriter, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
