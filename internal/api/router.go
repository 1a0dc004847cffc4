package api

import (
	"net/http"
	"time"

	"task_portal/internal/api/handler"
	"task_portal/internal/api/middleware"
	"task_portal/internal/app/service"
	"task_portal/internal/common/security"
	"task_portal/internal/platform/cache"
	"task_portal/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	taskService *service.TaskService,
	submissionService *service.SubmissionService,
	attendanceService *service.AttendanceService,
	revocations cache.RevocationStore,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT Auth Middleware Setup. Verifies the "Authorization: Bearer T"
	// token and puts claims in context; Authenticator enforces them.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Locally stored uploads are served straight from the upload dir.
	if config.AppConfig.StorageBackend == "local" {
		fileServer := http.FileServer(http.Dir(config.AppConfig.UploadDir))
		r.Handle(config.AppConfig.FileBaseURL+"/*", http.StripPrefix(config.AppConfig.FileBaseURL+"/", fileServer))
	}

	// API v1 Routes
	authn := middleware.Authenticator(revocations)
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", func(r chi.Router) { authHandler.RegisterRoutes(r, authn) })

		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", func(r chi.Router) { userHandler.RegisterRoutes(r, authn) })

		taskHandler := handler.NewTaskHandler(taskService)
		v1.Route("/tasks", func(r chi.Router) { taskHandler.RegisterRoutes(r, authn) })

		submissionHandler := handler.NewSubmissionHandler(submissionService)
		v1.Route("/submissions", func(r chi.Router) { submissionHandler.RegisterRoutes(r, authn) })

		attendanceHandler := handler.NewAttendanceHandler(attendanceService)
		v1.Route("/attendance", func(r chi.Router) { attendanceHandler.RegisterRoutes(r, authn) })
	})

	return r
}
