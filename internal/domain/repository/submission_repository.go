package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"task_portal/internal/common"
	"task_portal/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type SubmissionRepository interface {
	Create(ctx context.Context, tx *sql.Tx, sub *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	FindByTaskAndCandidate(ctx context.Context, taskID, candidateID string) (*model.Submission, error)
	// List joins candidate and task identity for display. Empty filter
	// values mean "no filter".
	List(ctx context.Context, taskID, candidateID string) ([]model.Submission, error)
	Update(ctx context.Context, sub *model.Submission) error
	DeleteByTaskID(ctx context.Context, tx *sql.Tx, taskID string) error
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, tx *sql.Tx, s *model.Submission) error {
	query := `INSERT INTO submissions (id, task_id, candidate_id, content, file_url, file_name, file_type, submitted_at, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, s.ID, s.TaskID, s.CandidateID, s.Content, s.FileURL, s.FileName, s.FileType, s.SubmittedAt, s.Status)
	} else {
		_, err = r.db.ExecContext(ctx, query, s.ID, s.TaskID, s.CandidateID, s.Content, s.FileURL, s.FileName, s.FileType, s.SubmittedAt, s.Status)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // (task_id, candidate_id) unique
			return fmt.Errorf("submission for this task already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT id, task_id, candidate_id, content, file_url, file_name, file_type, submitted_at, status, feedback, score
	          FROM submissions WHERE id = $1`
	s := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.TaskID, &s.CandidateID, &s.Content, &s.FileURL, &s.FileName, &s.FileType,
		&s.SubmittedAt, &s.Status, &s.Feedback, &s.Score,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByID: %w", err)
	}
	return s, nil
}

func (r *pgSubmissionRepository) FindByTaskAndCandidate(ctx context.Context, taskID, candidateID string) (*model.Submission, error) {
	query := `SELECT id, task_id, candidate_id, content, file_url, file_name, file_type, submitted_at, status, feedback, score
	          FROM submissions WHERE task_id = $1 AND candidate_id = $2`
	s := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, taskID, candidateID).Scan(
		&s.ID, &s.TaskID, &s.CandidateID, &s.Content, &s.FileURL, &s.FileName, &s.FileType,
		&s.SubmittedAt, &s.Status, &s.Feedback, &s.Score,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByTaskAndCandidate: %w", err)
	}
	return s, nil
}

func (r *pgSubmissionRepository) List(ctx context.Context, taskID, candidateID string) ([]model.Submission, error) {
	query := `
        SELECT s.id, s.task_id, s.candidate_id, s.content, s.file_url, s.file_name, s.file_type,
               s.submitted_at, s.status, s.feedback, s.score,
               u.full_name, u.candidate_id, t.title
        FROM submissions s
        JOIN users u ON s.candidate_id = u.id
        JOIN tasks t ON s.task_id = t.id`

	var conditions []string
	var args []interface{}
	argID := 1
	if taskID != "" {
		conditions = append(conditions, fmt.Sprintf("s.task_id = $%d", argID))
		args = append(args, taskID)
		argID++
	}
	if candidateID != "" {
		conditions = append(conditions, fmt.Sprintf("s.candidate_id = $%d", argID))
		args = append(args, candidateID)
		argID++
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY s.submitted_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.List query: %w", err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.TaskID, &s.CandidateID, &s.Content, &s.FileURL, &s.FileName, &s.FileType,
			&s.SubmittedAt, &s.Status, &s.Feedback, &s.Score,
			&s.CandidateName, &s.CandidateRef, &s.TaskTitle); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.List scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.List rows.Err: %w", err)
	}
	return subs, nil
}

func (r *pgSubmissionRepository) Update(ctx context.Context, s *model.Submission) error {
	query := `UPDATE submissions SET status = $1, feedback = $2, score = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, s.Status, s.Feedback, s.Score, s.ID)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSubmissionRepository) DeleteByTaskID(ctx context.Context, tx *sql.Tx, taskID string) error {
	query := `DELETE FROM submissions WHERE task_id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, taskID)
	} else {
		_, err = r.db.ExecContext(ctx, query, taskID)
	}
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.DeleteByTaskID: %w", err)
	}
	return nil
}
