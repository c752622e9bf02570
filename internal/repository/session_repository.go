package repository

import (
	"errors"
	"time"

	"github.com/SmarthSarin/TaskMasterPro/internal/domain"

	"gorm.io/gorm"
)

// SessionRepository defines the interface for login-session persistence.
type SessionRepository interface {
	// Create inserts the session row.
	Create(session *domain.Session) error
	// FindByToken returns the live session for the token, or nil when the
	// token is unknown or expired. Expired rows are removed on sight.
	FindByToken(token string) (*domain.Session, error)
	// Delete removes the session row for the token, if any.
	Delete(token string) error
	// DeleteExpired removes every session past its expiry.
	DeleteExpired() error
}

// gormSessionRepository implements SessionRepository using GORM.
type gormSessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db, now: time.Now}
}

func (r *gormSessionRepository) Create(session *domain.Session) error {
	return r.db.Create(session).Error
}

func (r *gormSessionRepository) FindByToken(token string) (*domain.Session, error) {
	var session domain.Session
	result := r.db.Where("token = ?", token).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if session.Expired(r.now()) {
		// Lazy cleanup; correctness does not depend on the background sweep.
		_ = r.db.Delete(&domain.Session{}, "token = ?", token).Error
		return nil, nil
	}
	return &session, nil
}

func (r *gormSessionRepository) Delete(token string) error {
	return r.db.Delete(&domain.Session{}, "token = ?", token).Error
}

func (r *gormSessionRepository) DeleteExpired() error {
	return r.db.Where("expires_at <= ?", r.now()).Delete(&domain.Session{}).Error
}
