package repository

import (
	"errors"

	"github.com/SmarthSarin/TaskMasterPro/internal/domain"

	"gorm.io/gorm"
)

// TaskRepository defines the interface for task data operations. It performs
// no ownership checks; callers filter or verify the owner themselves.
type TaskRepository interface {
	// Create inserts the task and fills in its generated ID.
	Create(task *domain.Task) error
	// FindByID returns the task with the given ID regardless of owner,
	// or nil if absent.
	FindByID(id uint) (*domain.Task, error)
	// FindByUser returns every task owned by the given user. Order is
	// unspecified; presentation decides ordering.
	FindByUser(userID uint) ([]domain.Task, error)
	// Update applies the present fields of the patch and returns the
	// updated row, or nil if no row has that ID.
	Update(id uint, patch domain.TaskPatch) (*domain.Task, error)
	// Delete removes the row and reports whether one was actually removed.
	Delete(id uint) (bool, error)
}

// gormTaskRepository implements TaskRepository using GORM.
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	return r.db.Create(task).Error
}

func (r *gormTaskRepository) FindByID(id uint) (*domain.Task, error) {
	var task domain.Task
	result := r.db.First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByUser(userID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.db.Where("user_id = ?", userID).Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func (r *gormTaskRepository) Update(id uint, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := r.FindByID(id)
	if err != nil || task == nil {
		return nil, err
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

	if patch.IsZero() {
		// Nothing to write; the row as stored is the answer.
		return task, nil
	}

	if err := r.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (r *gormTaskRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&domain.Task{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
