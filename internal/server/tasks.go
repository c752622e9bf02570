package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SmarthSarin/TaskMasterPro/internal/service"
)

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	tasks, err := s.taskService.ListTasks(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error calling ListTasks service: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req service.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := s.taskService.CreateTask(r.Context(), user.ID, req)
	if err != nil {
		s.writeTaskError(w, err, "Failed to create task")
		return
	}

	respondWithJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := s.taskService.UpdateTask(r.Context(), user.ID, id, req)
	if err != nil {
		s.writeTaskError(w, err, "Failed to update task")
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	if err := s.taskService.DeleteTask(r.Context(), user.ID, id); err != nil {
		s.writeTaskError(w, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func taskIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return 0, false
	}
	return uint(id), true
}

// writeTaskError is the single translation point from task service errors to
// HTTP status codes.
func (s *Server) writeTaskError(w http.ResponseWriter, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithValidationError(w, verr)
	case errors.Is(err, service.ErrTaskNotFound):
		respondWithError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrNotTaskOwner):
		respondWithError(w, http.StatusForbidden, "You do not own this task")
	default:
		log.Printf("Task service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
