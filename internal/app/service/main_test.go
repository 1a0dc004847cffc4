package service

import (
	"context"
	"os"
	"testing"
	"time"

	"task_portal/internal/common/security"
	"task_portal/internal/domain/model"
	memorydb "task_portal/internal/domain/repository/memory"
	"task_portal/internal/platform/cache"
	"task_portal/internal/platform/config"
	"task_portal/internal/platform/storage"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

type testEnv struct {
	db          *memorydb.DB
	blobs       *storage.MemoryStore
	revocations *cache.MemoryRevocations
	auth        *AuthService
	users       *UserService
	tasks       *TaskService
	submissions *SubmissionService
	attendance  *AttendanceService
}

func newTestEnv() *testEnv {
	db := memorydb.Open()
	userRepo := memorydb.NewUserRepository(db)
	taskRepo := memorydb.NewTaskRepository(db)
	submissionRepo := memorydb.NewSubmissionRepository(db)
	attendanceRepo := memorydb.NewAttendanceRepository(db)
	blobs := storage.NewMemoryStore()
	revocations := cache.NewMemoryRevocations()

	return &testEnv{
		db:          db,
		blobs:       blobs,
		revocations: revocations,
		auth:        NewAuthService(userRepo, revocations),
		users:       NewUserService(userRepo),
		tasks:       NewTaskService(taskRepo, submissionRepo, userRepo, nil),
		submissions: NewSubmissionService(submissionRepo, taskRepo, blobs, nil),
		attendance:  NewAttendanceService(attendanceRepo, blobs),
	}
}

func (e *testEnv) createUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), RegisterRequest{
		Username: username,
		Password: "s3cret-pass",
		FullName: "Test " + username,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("createUser(%s) failed: %v", username, err)
	}
	return resp.User
}

func (e *testEnv) createTask(t *testing.T, adminID string, assignedTo *string) *model.Task {
	t.Helper()
	task, err := e.tasks.Create(context.Background(), model.RoleAdmin, adminID, CreateTaskRequest{
		Title:        "Task " + uuid.NewString()[:8],
		Description:  "Do the thing.",
		AssignedToID: assignedTo,
		Deadline:     time.Now().Add(7 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("createTask failed: %v", err)
	}
	return task
}
