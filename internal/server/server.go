package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/SmarthSarin/TaskMasterPro/internal/database"
	"github.com/SmarthSarin/TaskMasterPro/internal/service"
)

type Server struct {
	port        int
	taskService service.TaskService
	authService service.AuthService
	db          database.Service
}

func NewServer(taskService service.TaskService, authService service.AuthService, dbService database.Service) *http.Server {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		fmt.Printf("Warning: Invalid PORT environment variable '%s'. Using default 8080. Error: %v", portStr, err)
		port = 8080
	}

	appServer := &Server{
		port:        port,
		taskService: taskService,
		authService: authService,
		db:          dbService,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
