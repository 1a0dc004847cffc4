package memorydb

import (
	"context"
	"sort"

	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
)

type attendanceRepository struct {
	db *DB
}

func NewAttendanceRepository(db *DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, att *model.Attendance) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.attendance[att.ID] = copyAttendance(att)
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, userID, taskID string) ([]model.Attendance, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	records := []model.Attendance{}
	for _, a := range r.db.attendance {
		if userID != "" && a.UserID != userID {
			continue
		}
		if taskID != "" && (a.TaskID == nil || *a.TaskID != taskID) {
			continue
		}
		c := copyAttendance(a)
		if u, ok := r.db.users[c.UserID]; ok {
			name := u.FullName
			c.UserFullName = &name
		}
		records = append(records, *c)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].RecordedAt.After(records[j].RecordedAt) })
	return records, nil
}
