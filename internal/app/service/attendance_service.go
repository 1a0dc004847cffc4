package service

import (
	"context"
	"fmt"
	"time"

	"task_portal/internal/app/policy"
	"task_portal/internal/common"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
	"task_portal/internal/platform/storage"

	"github.com/google/uuid"
)

type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	blobs          storage.BlobStore
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, blobs storage.BlobStore) *AttendanceService {
	return &AttendanceService{attendanceRepo: attendanceRepo, blobs: blobs}
}

type RecordAttendanceInput struct {
	TaskID        *string
	Photo         *FileUpload
	Latitude      *float64
	Longitude     *float64
	IPAddress     string
	DeviceDetails string
}

// Record appends an attestation to the ledger. Every attestation field must
// be present; there is no update or delete.
func (s *AttendanceService) Record(ctx context.Context, userID string, in RecordAttendanceInput) (*model.Attendance, error) {
	switch {
	case in.Photo == nil:
		return nil, common.Errorf("missing photo: %w", common.ErrValidation)
	case in.Latitude == nil:
		return nil, common.Errorf("missing latitude: %w", common.ErrValidation)
	case in.Longitude == nil:
		return nil, common.Errorf("missing longitude: %w", common.ErrValidation)
	case in.IPAddress == "":
		return nil, common.Errorf("missing ip address: %w", common.ErrValidation)
	case in.DeviceDetails == "":
		return nil, common.Errorf("missing device details: %w", common.ErrValidation)
	}

	blob, err := s.blobs.Store(ctx, in.Photo.Reader, in.Photo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to store attendance photo: %w", err)
	}

	record := &model.Attendance{
		ID:            uuid.NewString(),
		UserID:        userID,
		TaskID:        in.TaskID,
		RecordedAt:    time.Now(),
		PhotoURL:      blob.URL,
		Latitude:      *in.Latitude,
		Longitude:     *in.Longitude,
		IPAddress:     in.IPAddress,
		DeviceDetails: in.DeviceDetails,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return record, nil
}

// Query reads the ledger. Admin only.
func (s *AttendanceService) Query(ctx context.Context, callerRole, userID, taskID string) ([]model.Attendance, error) {
	if !policy.CanQueryAttendance(callerRole) {
		return nil, common.ErrForbidden
	}
	return s.attendanceRepo.List(ctx, userID, taskID)
}
