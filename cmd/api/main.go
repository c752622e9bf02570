package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SmarthSarin/TaskMasterPro/internal/database"
	"github.com/SmarthSarin/TaskMasterPro/internal/domain"
	"github.com/SmarthSarin/TaskMasterPro/internal/repository"
	"github.com/SmarthSarin/TaskMasterPro/internal/server"
	"github.com/SmarthSarin/TaskMasterPro/internal/service"

	_ "github.com/joho/godotenv/autoload"
)

const sessionSweepInterval = time.Hour

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// Give in-flight requests 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if dbService != nil {
		log.Println("Closing database connection pool...")
		if err := dbService.Close(); err != nil {
			log.Printf("Error closing database connection pool: %v", err)
		} else {
			log.Println("Database connection pool closed.")
		}
	}

	log.Println("Server exiting")

	done <- true
}

// sweepSessions periodically removes expired session rows. Session lookup
// ignores expired rows on its own, so this only keeps the table from growing.
func sweepSessions(ctx context.Context, sessions repository.SessionRepository) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.DeleteExpired(); err != nil {
				log.Printf("Error sweeping expired sessions: %v", err)
			}
		}
	}
}

func main() {
	dbService, err := database.New(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	gormDB := dbService.GetDB()

	log.Println("Running database auto-migration...")
	if err := gormDB.AutoMigrate(&domain.User{}, &domain.Task{}, &domain.Session{}); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}
	log.Println("Database auto-migration complete.")

	userRepo := repository.NewGormUserRepository(gormDB)
	taskRepo := repository.NewGormTaskRepository(gormDB)
	sessionRepo := repository.NewGormSessionRepository(gormDB)

	taskService := service.NewTaskService(taskRepo)
	authService := service.NewAuthService(userRepo, sessionRepo)

	apiServer := server.NewServer(taskService, authService, dbService)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go sweepSessions(sweepCtx, sessionRepo)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	log.Printf("Starting server on %s", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
