package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"task_portal/internal/app/policy"
	"task_portal/internal/common"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepo       repository.TaskRepository
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	db             *sql.DB // For transactions; nil when repos are not SQL-backed
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	db *sql.DB,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
		db:             db,
	}
}

type CreateTaskRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	AssignedToID *string   `json:"assigned_to_id"`
	Deadline     time.Time `json:"deadline" validate:"required"`
}

func (s *TaskService) Create(ctx context.Context, callerRole, callerID string, req CreateTaskRequest) (*model.Task, error) {
	if !policy.CanManageTasks(callerRole) {
		return nil, common.ErrForbidden
	}
	if err := common.CheckStruct(req); err != nil {
		return nil, err
	}
	if !req.Deadline.After(time.Now()) {
		return nil, common.Errorf("deadline must be in the future: %w", common.ErrValidation)
	}
	if req.AssignedToID != nil {
		if err := s.checkAssignee(ctx, *req.AssignedToID); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		Deadline:     req.Deadline,
		Status:       model.TaskStatusActive,
		CreatedBy:    callerID,
		CreatedAt:    time.Now(),
	}
	if err := s.taskRepo.Create(ctx, nil, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// List returns all tasks for admins and the visible subset for candidates,
// ordered by deadline ascending.
func (s *TaskService) List(ctx context.Context, callerRole, callerID string) ([]model.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if policy.IsAdmin(callerRole) {
		return tasks, nil
	}

	visible := []model.Task{}
	for _, t := range tasks {
		if policy.TaskVisible(&t, callerRole, callerID) {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

type UpdateTaskRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1"`
	Description  *string `json:"description" validate:"omitempty,min=1"`
	AssignedToID *string `json:"assigned_to_id"`
	// ClearAssignedTo reassigns the task to all candidates.
	ClearAssignedTo bool              `json:"clear_assigned_to"`
	Deadline        *time.Time        `json:"deadline"`
	Status          *model.TaskStatus `json:"status" validate:"omitempty,oneof=active archived"`
}

func (s *TaskService) Update(ctx context.Context, callerRole, id string, req UpdateTaskRequest) (*model.Task, error) {
	if !policy.CanManageTasks(callerRole) {
		return nil, common.ErrForbidden
	}
	if err := common.CheckStruct(req); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.ClearAssignedTo {
		task.AssignedToID = nil
		task.AssignedToName = nil
	} else if req.AssignedToID != nil {
		if err := s.checkAssignee(ctx, *req.AssignedToID); err != nil {
			return nil, err
		}
		task.AssignedToID = req.AssignedToID
	}
	if req.Deadline != nil {
		if !req.Deadline.After(time.Now()) {
			return nil, common.Errorf("deadline must be in the future: %w", common.ErrValidation)
		}
		task.Deadline = *req.Deadline
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete removes the task and all its submissions in one transaction.
// Deleting an absent task is a no-op.
func (s *TaskService) Delete(ctx context.Context, callerRole, id string) error {
	if !policy.CanManageTasks(callerRole) {
		return common.ErrForbidden
	}
	var tx *sql.Tx
	var err error
	if s.db != nil {
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()
	}

	if err := s.submissionRepo.DeleteByTaskID(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete submissions: %w", err)
	}
	if err := s.taskRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}
	log.Printf("Task %s deleted with its submissions.", id)
	return nil
}

func (s *TaskService) checkAssignee(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf("assigned user not found: %w", common.ErrBadRequest)
		}
		return err
	}
	if user.Role != model.RoleCandidate {
		return common.Errorf("task can only be assigned to a candidate: %w", common.ErrBadRequest)
	}
	return nil
}
