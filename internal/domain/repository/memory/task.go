package memorydb

import (
	"context"
	"database/sql"
	"sort"

	"task_portal/internal/common"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
)

type taskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, tx *sql.Tx, task *model.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.tasks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r.withAssigneeName(t), nil
}

func (r *taskRepository) List(ctx context.Context) ([]model.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	tasks := []model.Task{}
	for _, t := range r.db.tasks {
		tasks = append(tasks, *r.withAssigneeName(t))
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Deadline.Before(tasks[j].Deadline) })
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.tasks[task.ID]; !ok {
		return common.ErrNotFound
	}
	r.db.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.tasks, id)
	return nil
}

func (r *taskRepository) withAssigneeName(t *model.Task) *model.Task {
	c := copyTask(t)
	if c.AssignedToID != nil {
		if u, ok := r.db.users[*c.AssignedToID]; ok {
			name := u.FullName
			c.AssignedToName = &name
		}
	}
	return c
}
