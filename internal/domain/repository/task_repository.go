package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"task_portal/internal/common"
	"task_portal/internal/domain/model"
)

type TaskRepository interface {
	Create(ctx context.Context, tx *sql.Tx, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	// List returns every task ordered by deadline ascending, with the
	// assignee's name joined in. Visibility filtering happens above.
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error
}

type pgTaskRepository struct {
	db *sql.DB
}

func NewPgTaskRepository(db *sql.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

func (r *pgTaskRepository) Create(ctx context.Context, tx *sql.Tx, t *model.Task) error {
	query := `INSERT INTO tasks (id, title, description, assigned_to_id, deadline, status, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, t.ID, t.Title, t.Description, t.AssignedToID, t.Deadline, t.Status, t.CreatedBy, t.CreatedAt)
	} else {
		_, err = r.db.ExecContext(ctx, query, t.ID, t.Title, t.Description, t.AssignedToID, t.Deadline, t.Status, t.CreatedBy, t.CreatedAt)
	}
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	query := `
        SELECT t.id, t.title, t.description, t.assigned_to_id, a.full_name,
               t.deadline, t.status, t.created_by, t.created_at
        FROM tasks t
        LEFT JOIN users a ON t.assigned_to_id = a.id
        WHERE t.id = $1`

	task := &model.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.AssignedToID, &task.AssignedToName,
		&task.Deadline, &task.Status, &task.CreatedBy, &task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTaskRepository.FindByID: %w", err)
	}
	return task, nil
}

func (r *pgTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	query := `
        SELECT t.id, t.title, t.description, t.assigned_to_id, a.full_name,
               t.deadline, t.status, t.created_by, t.created_at
        FROM tasks t
        LEFT JOIN users a ON t.assigned_to_id = a.id
        ORDER BY t.deadline ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTaskRepository.List query: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedToID, &t.AssignedToName,
			&t.Deadline, &t.Status, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTaskRepository.List scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTaskRepository.List rows.Err: %w", err)
	}
	return tasks, nil
}

func (r *pgTaskRepository) Update(ctx context.Context, t *model.Task) error {
	query := `UPDATE tasks SET
                title = $1, description = $2, assigned_to_id = $3, deadline = $4, status = $5
              WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, t.Title, t.Description, t.AssignedToID, t.Deadline, t.Status, t.ID)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the task row. Deleting an absent task is a no-op.
func (r *pgTaskRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, id)
	} else {
		_, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Delete: %w", err)
	}
	return nil
}
