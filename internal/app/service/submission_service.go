package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"task_portal/internal/app/policy"
	"task_portal/internal/common"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
	"task_portal/internal/platform/storage"

	"github.com/google/uuid"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	taskRepo       repository.TaskRepository
	blobs          storage.BlobStore
	db             *sql.DB // For transactions; nil when repos are not SQL-backed
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	taskRepo repository.TaskRepository,
	blobs storage.BlobStore,
	db *sql.DB,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		taskRepo:       taskRepo,
		blobs:          blobs,
		db:             db,
	}
}

type CreateSubmissionInput struct {
	TaskID  string
	Content string
	File    *FileUpload
}

// Create records a candidate's work for a task. The candidate id is always
// the caller's own. The file, when present, is durably stored first; the
// submission row referencing its URL is the last write.
func (s *SubmissionService) Create(ctx context.Context, callerRole, callerID string, in CreateSubmissionInput) (*model.Submission, error) {
	if !policy.CanCreateSubmission(callerRole) {
		return nil, common.ErrForbidden
	}
	if in.TaskID == "" {
		return nil, common.Errorf("task id is required: %w", common.ErrValidation)
	}
	content := strings.TrimSpace(in.Content)
	if content == "" && in.File == nil {
		return nil, common.Errorf("no content or file: %w", common.ErrValidation)
	}

	task, err := s.taskRepo.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("task lookup failed: %w", err)
	}
	if !policy.TaskVisible(task, callerRole, callerID) {
		return nil, common.Errorf("task is not assigned to you: %w", common.ErrForbidden)
	}
	if task.Status == model.TaskStatusArchived {
		return nil, common.Errorf("task is archived: %w", common.ErrValidation)
	}

	// Duplicate check before the expensive blob write. The store's unique
	// constraint still backs this up against races.
	if _, err := s.submissionRepo.FindByTaskAndCandidate(ctx, in.TaskID, callerID); err == nil {
		return nil, common.Errorf("submission for this task already exists: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	submission := &model.Submission{
		ID:          uuid.NewString(),
		TaskID:      task.ID,
		CandidateID: callerID,
		SubmittedAt: time.Now(),
		Status:      model.SubmissionPending,
	}
	if content != "" {
		submission.Content = &content
	}
	if in.File != nil {
		blob, err := s.blobs.Store(ctx, in.File.Reader, in.File.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to store submission file: %w", err)
		}
		fileName := in.File.Name
		fileType := in.File.ContentType
		submission.FileURL = &blob.URL
		submission.FileName = &fileName
		submission.FileType = &fileType
	}

	var tx *sql.Tx
	if s.db != nil {
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()
	}

	if err := s.submissionRepo.Create(ctx, tx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	log.Printf("Submission %s created for task %s.", submission.ID, task.ID)
	return submission, nil
}

// List returns submissions joined with candidate and task identity,
// scoped to what the caller may see.
func (s *SubmissionService) List(ctx context.Context, callerRole, callerID, taskID, candidateID string) ([]model.Submission, error) {
	scopedCandidate, err := policy.ScopeSubmissionQuery(callerRole, callerID, candidateID)
	if err != nil {
		return nil, err
	}
	return s.submissionRepo.List(ctx, taskID, scopedCandidate)
}

type ReviewSubmissionRequest struct {
	Status   model.SubmissionStatus `json:"status" validate:"required,oneof=approved rejected"`
	Feedback *string                `json:"feedback"`
	Score    *int                   `json:"score" validate:"omitempty,min=0,max=100"`
}

// Review finalizes a submission: sets the status and attaches feedback and
// score. Re-reviewing an already-reviewed submission is permitted and
// overwrites the previous decision.
func (s *SubmissionService) Review(ctx context.Context, callerRole, id string, req ReviewSubmissionRequest) (*model.Submission, error) {
	if !policy.CanReviewSubmission(callerRole) {
		return nil, common.ErrForbidden
	}
	if err := common.CheckStruct(req); err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	submission.Status = req.Status
	submission.Feedback = req.Feedback
	submission.Score = req.Score

	if err := s.submissionRepo.Update(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}
	return submission, nil
}
