package memorydb

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"task_portal/internal/common"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
)

type submissionRepository struct {
	db *DB
}

func NewSubmissionRepository(db *DB) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, tx *sql.Tx, sub *model.Submission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, s := range r.db.submissions {
		if s.TaskID == sub.TaskID && s.CandidateID == sub.CandidateID {
			return fmt.Errorf("submission for this task already exists: %w", common.ErrConflict)
		}
	}
	r.db.submissions[sub.ID] = copySubmission(sub)
	return nil
}

func (r *submissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.submissions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copySubmission(s), nil
}

func (r *submissionRepository) FindByTaskAndCandidate(ctx context.Context, taskID, candidateID string) (*model.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.submissions {
		if s.TaskID == taskID && s.CandidateID == candidateID {
			return copySubmission(s), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *submissionRepository) List(ctx context.Context, taskID, candidateID string) ([]model.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	subs := []model.Submission{}
	for _, s := range r.db.submissions {
		if taskID != "" && s.TaskID != taskID {
			continue
		}
		if candidateID != "" && s.CandidateID != candidateID {
			continue
		}
		c := copySubmission(s)
		if u, ok := r.db.users[c.CandidateID]; ok {
			name := u.FullName
			c.CandidateName = &name
			c.CandidateRef = u.CandidateID
		}
		if t, ok := r.db.tasks[c.TaskID]; ok {
			title := t.Title
			c.TaskTitle = &title
		}
		subs = append(subs, *c)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].SubmittedAt.After(subs[j].SubmittedAt) })
	return subs, nil
}

func (r *submissionRepository) Update(ctx context.Context, sub *model.Submission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.submissions[sub.ID]
	if !ok {
		return common.ErrNotFound
	}
	existing.Status = sub.Status
	existing.Feedback = sub.Feedback
	existing.Score = sub.Score
	return nil
}

func (r *submissionRepository) DeleteByTaskID(ctx context.Context, tx *sql.Tx, taskID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for id, s := range r.db.submissions {
		if s.TaskID == taskID {
			delete(r.db.submissions, id)
		}
	}
	return nil
}
