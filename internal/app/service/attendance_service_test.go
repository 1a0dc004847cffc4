package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"task_portal/internal/common"
	"task_portal/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attendancePhoto() *FileUpload {
	return &FileUpload{
		Reader:      strings.NewReader("jpeg bytes"),
		Name:        "selfie.jpg",
		ContentType: "image/jpeg",
	}
}

func TestRecordAttendance(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	cand := env.createUser(t, "cand", model.RoleCandidate)

	lat, lng := 40.7128, -74.0060
	rec, err := env.attendance.Record(ctx, cand.ID, RecordAttendanceInput{
		Photo:         attendancePhoto(),
		Latitude:      &lat,
		Longitude:     &lng,
		IPAddress:     "203.0.113.7",
		DeviceDetails: "Mozilla/5.0",
	})
	require.NoError(t, err)
	assert.Equal(t, cand.ID, rec.UserID)
	assert.Nil(t, rec.TaskID)
	assert.NotEmpty(t, rec.PhotoURL)
	assert.Equal(t, 40.7128, rec.Latitude)
	assert.Equal(t, -74.0060, rec.Longitude)
	assert.False(t, rec.RecordedAt.IsZero())
}

func TestRecordAttendanceMissingFields(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	cand := env.createUser(t, "cand", model.RoleCandidate)

	lat, lng := 1.0, 2.0
	complete := func() RecordAttendanceInput {
		return RecordAttendanceInput{
			Photo:         attendancePhoto(),
			Latitude:      &lat,
			Longitude:     &lng,
			IPAddress:     "203.0.113.7",
			DeviceDetails: "Mozilla/5.0",
		}
	}

	tests := []struct {
		name   string
		mutate func(*RecordAttendanceInput)
	}{
		{"missing photo", func(in *RecordAttendanceInput) { in.Photo = nil }},
		{"missing latitude", func(in *RecordAttendanceInput) { in.Latitude = nil }},
		{"missing longitude", func(in *RecordAttendanceInput) { in.Longitude = nil }},
		{"missing ip address", func(in *RecordAttendanceInput) { in.IPAddress = "" }},
		{"missing device details", func(in *RecordAttendanceInput) { in.DeviceDetails = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := complete()
			tc.mutate(&in)
			_, err := env.attendance.Record(ctx, cand.ID, in)
			assert.True(t, errors.Is(err, common.ErrValidation))
		})
	}
}

func TestQueryAttendanceFilters(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	alice := env.createUser(t, "alice", model.RoleCandidate)
	bob := env.createUser(t, "bob", model.RoleCandidate)
	task := env.createTask(t, admin.ID, nil)

	lat, lng := 1.0, 2.0
	record := func(userID string, taskID *string) {
		t.Helper()
		_, err := env.attendance.Record(ctx, userID, RecordAttendanceInput{
			TaskID:        taskID,
			Photo:         attendancePhoto(),
			Latitude:      &lat,
			Longitude:     &lng,
			IPAddress:     "203.0.113.7",
			DeviceDetails: "Mozilla/5.0",
		})
		require.NoError(t, err)
	}
	record(alice.ID, nil)
	record(alice.ID, &task.ID)
	record(bob.ID, &task.ID)

	all, err := env.attendance.Query(ctx, model.RoleAdmin, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	aliceOnly, err := env.attendance.Query(ctx, model.RoleAdmin, alice.ID, "")
	require.NoError(t, err)
	assert.Len(t, aliceOnly, 2)

	taskOnly, err := env.attendance.Query(ctx, model.RoleAdmin, "", task.ID)
	require.NoError(t, err)
	assert.Len(t, taskOnly, 2)

	both, err := env.attendance.Query(ctx, model.RoleAdmin, bob.ID, task.ID)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, bob.ID, both[0].UserID)
}

func TestQueryAttendanceIsAdminOnly(t *testing.T) {
	env := newTestEnv()

	_, err := env.attendance.Query(context.Background(), model.RoleCandidate, "", "")
	assert.True(t, errors.Is(err, common.ErrForbidden))
}
