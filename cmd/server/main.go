package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task_portal/internal/api"
	"task_portal/internal/app/service"
	"task_portal/internal/common/security"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
	"task_portal/internal/platform/cache"
	"task_portal/internal/platform/config"
	"task_portal/internal/platform/database"
	"task_portal/internal/platform/storage"

	"github.com/google/uuid"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis (token revocation)
	cache.ConnectRedis()
	defer cache.CloseRedis()
	revocations := cache.NewRedisRevocations(cache.RDB)
	fmt.Println("Redis connected.")

	// 5. Initialize Blob Storage
	blobs, err := newBlobStore()
	if err != nil {
		log.Fatalf("Could not initialize blob storage: %v", err)
	}
	fmt.Println("Blob storage initialized.")

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	taskRepo := repository.NewPgTaskRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	attendanceRepo := repository.NewPgAttendanceRepository(database.DB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, revocations)
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo, submissionRepo, userRepo, database.DB)
	submissionService := service.NewSubmissionService(submissionRepo, taskRepo, blobs, database.DB)
	attendanceService := service.NewAttendanceService(attendanceRepo, blobs)

	// 8. Seed the first admin account if none exists
	if err := seedAdmin(context.Background(), userRepo); err != nil {
		log.Fatalf("Could not seed admin account: %v", err)
	}

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, taskService, submissionService, attendanceService, revocations)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}

func newBlobStore() (storage.BlobStore, error) {
	cfg := config.AppConfig
	switch cfg.StorageBackend {
	case "b2":
		return storage.NewB2Store(context.Background(), cfg.B2KeyID, cfg.B2AppKey, cfg.B2Bucket)
	default:
		return storage.NewLocalStore(cfg.UploadDir, cfg.FileBaseURL)
	}
}

// seedAdmin creates the initial admin user when the directory is empty of
// admins, so a fresh deployment can be logged into.
func seedAdmin(ctx context.Context, userRepo repository.UserRepository) error {
	admins, err := userRepo.List(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if len(admins) > 0 {
		return nil
	}

	hashed, err := security.HashPassword(config.AppConfig.SeedAdminPassword)
	if err != nil {
		return err
	}
	admin := &model.User{
		ID:             uuid.NewString(),
		Username:       config.AppConfig.SeedAdminUsername,
		HashedPassword: hashed,
		Role:           model.RoleAdmin,
		FullName:       "System Admin",
		CreatedAt:      time.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Seeded admin account %q.", admin.Username)
	return nil
}
