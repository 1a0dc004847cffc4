package repository

import (
	"context"
	"database/sql"
	"fmt"

	"task_portal/internal/domain/model"
)

// AttendanceRepository is append-only: records are created and queried,
// never mutated or deleted.
type AttendanceRepository interface {
	Create(ctx context.Context, att *model.Attendance) error
	List(ctx context.Context, userID, taskID string) ([]model.Attendance, error)
}

type pgAttendanceRepository struct {
	db *sql.DB
}

func NewPgAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &pgAttendanceRepository{db: db}
}

func (r *pgAttendanceRepository) Create(ctx context.Context, a *model.Attendance) error {
	query := `INSERT INTO attendance (id, user_id, task_id, recorded_at, photo_url, latitude, longitude, ip_address, device_details)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, a.TaskID, a.RecordedAt, a.PhotoURL, a.Latitude, a.Longitude, a.IPAddress, a.DeviceDetails)
	if err != nil {
		return fmt.Errorf("pgAttendanceRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAttendanceRepository) List(ctx context.Context, userID, taskID string) ([]model.Attendance, error) {
	query := `
        SELECT a.id, a.user_id, a.task_id, a.recorded_at, a.photo_url, a.latitude, a.longitude,
               a.ip_address, a.device_details, u.full_name
        FROM attendance a
        JOIN users u ON a.user_id = u.id`

	var conditions []string
	var args []interface{}
	argID := 1
	if userID != "" {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argID))
		args = append(args, userID)
		argID++
	}
	if taskID != "" {
		conditions = append(conditions, fmt.Sprintf("a.task_id = $%d", argID))
		args = append(args, taskID)
		argID++
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY a.recorded_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.List query: %w", err)
	}
	defer rows.Close()

	records := []model.Attendance{}
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.TaskID, &a.RecordedAt, &a.PhotoURL, &a.Latitude, &a.Longitude,
			&a.IPAddress, &a.DeviceDetails, &a.UserFullName); err != nil {
			return nil, fmt.Errorf("pgAttendanceRepository.List scan: %w", err)
		}
		records = append(records, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.List rows.Err: %w", err)
	}
	return records, nil
}
