package service

import (
	"errors"
	"time"

	"github.com/SmarthSarin/TaskMasterPro/internal/domain"

	"gorm.io/gorm"
)

// errStore stands in for an unreachable database.
var errStore = errors.New("store unavailable")

// fakeTaskRepo is an in-memory TaskRepository. Setting fail makes every
// method return errStore.
type fakeTaskRepo struct {
	tasks  map[uint]domain.Task
	nextID uint
	fail   bool
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uint]domain.Task), nextID: 1}
}

func (f *fakeTaskRepo) Create(task *domain.Task) error {
	if f.fail {
		return errStore
	}
	task.ID = f.nextID
	f.nextID++
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) FindByID(id uint) (*domain.Task, error) {
	if f.fail {
		return nil, errStore
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (f *fakeTaskRepo) FindByUser(userID uint) ([]domain.Task, error) {
	if f.fail {
		return nil, errStore
	}
	var out []domain.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(id uint, patch domain.TaskPatch) (*domain.Task, error) {
	if f.fail {
		return nil, errStore
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	f.tasks[id] = task
	return &task, nil
}

func (f *fakeTaskRepo) Delete(id uint) (bool, error) {
	if f.fail {
		return false, errStore
	}
	if _, ok := f.tasks[id]; !ok {
		return false, nil
	}
	delete(f.tasks, id)
	return true, nil
}

// fakeUserRepo is an in-memory UserRepository with the same uniqueness
// behavior as the real one: duplicate usernames yield gorm.ErrDuplicatedKey.
type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

// fakeSessionRepo is an in-memory SessionRepository. Expired rows are
// invisible to FindByToken, matching the GORM implementation.
type fakeSessionRepo struct {
	sessions map[string]domain.Session
	now      func() time.Time
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]domain.Session), now: time.Now}
}

func (f *fakeSessionRepo) Create(session *domain.Session) error {
	f.sessions[session.Token] = *session
	return nil
}

func (f *fakeSessionRepo) FindByToken(token string) (*domain.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	if session.Expired(f.now()) {
		delete(f.sessions, token)
		return nil, nil
	}
	return &session, nil
}

func (f *fakeSessionRepo) Delete(token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired() error {
	for token, session := range f.sessions {
		if session.Expired(f.now()) {
			delete(f.sessions, token)
		}
	}
	return nil
}
