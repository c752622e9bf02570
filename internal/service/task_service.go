package service

import (
	"context"
	"unicode/utf8"

	"github.com/SmarthSarin/TaskMasterPro/internal/domain"
	"github.com/SmarthSarin/TaskMasterPro/internal/repository"
)

const maxTitleLength = 100

// CreateTaskRequest holds the data needed to create a new task. Status is
// optional and defaults to "pending".
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateTaskRequest is a partial update. Pointers distinguish a field that
// was omitted from one explicitly set, including set to the empty string.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (r UpdateTaskRequest) patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}

// TaskService contains the business logic for managing a user's tasks,
// including the owner-only rule: every operation is performed on behalf of
// an authenticated user, and tasks belonging to anyone else are off limits.
type TaskService interface {
	// CreateTask validates the request and inserts a task owned by userID.
	CreateTask(ctx context.Context, userID uint, req CreateTaskRequest) (*domain.Task, error)

	// ListTasks returns every task owned by userID.
	ListTasks(ctx context.Context, userID uint) ([]domain.Task, error)

	// UpdateTask applies a partial update to the task with the given ID.
	// Returns ErrTaskNotFound if no such task exists and ErrNotTaskOwner
	// if it belongs to a different user. An empty request is a no-op that
	// returns the task unchanged.
	UpdateTask(ctx context.Context, userID, taskID uint, req UpdateTaskRequest) (*domain.Task, error)

	// DeleteTask removes the task with the given ID, with the same
	// not-found and ownership behavior as UpdateTask.
	DeleteTask(ctx context.Context, userID, taskID uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a task service backed by the given repository.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) CreateTask(ctx context.Context, userID uint, req CreateTaskRequest) (*domain.Task, error) {
	fields := make(map[string]string)
	validateTitle(req.Title, fields)
	validateDescription(req.Description, fields)

	status := req.Status
	if status == "" {
		status = domain.StatusPending
	} else {
		validateStatus(status, fields)
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		UserID:      userID,
	}
	if err := s.repo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, userID uint) ([]domain.Task, error) {
	tasks, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *taskService) UpdateTask(ctx context.Context, userID, taskID uint, req UpdateTaskRequest) (*domain.Task, error) {
	if err := s.checkOwnership(taskID, userID); err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	if req.Title != nil {
		validateTitle(*req.Title, fields)
	}
	if req.Description != nil {
		validateDescription(*req.Description, fields)
	}
	if req.Status != nil {
		validateStatus(*req.Status, fields)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	updated, err := s.repo.Update(taskID, req.patch())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Deleted between the ownership check and the write.
		return nil, ErrTaskNotFound
	}
	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	if err := s.checkOwnership(taskID, userID); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// checkOwnership loads the task and verifies it belongs to userID. The
// not-found check runs first so callers probing other users' task IDs learn
// nothing beyond existence.
func (s *taskService) checkOwnership(taskID, userID uint) error {
	task, err := s.repo.FindByID(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if task.UserID != userID {
		return ErrNotTaskOwner
	}
	return nil
}

func validateTitle(title string, fields map[string]string) {
	if title == "" {
		fields["title"] = "Title is required"
	} else if utf8.RuneCountInString(title) > maxTitleLength {
		fields["title"] = "Title must be at most 100 characters"
	}
}

func validateDescription(description string, fields map[string]string) {
	if description == "" {
		fields["description"] = "Description is required"
	}
}

func validateStatus(status string, fields map[string]string) {
	if !domain.ValidStatus(status) {
		fields["status"] = "Status must be one of pending, in-progress, completed"
	}
}
