// Package memorydb provides map-backed implementations of the repository
// interfaces. They mirror the constraints the SQL schema enforces (unique
// username/candidate id, one submission per task+candidate) so service and
// handler tests run without Postgres.
package memorydb

import (
	"sync"

	"task_portal/internal/domain/model"
)

type DB struct {
	mu          sync.RWMutex
	users       map[string]*model.User
	tasks       map[string]*model.Task
	submissions map[string]*model.Submission
	attendance  map[string]*model.Attendance
}

func Open() *DB {
	return &DB{
		users:       make(map[string]*model.User),
		tasks:       make(map[string]*model.Task),
		submissions: make(map[string]*model.Submission),
		attendance:  make(map[string]*model.Attendance),
	}
}

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

func copyTask(t *model.Task) *model.Task {
	c := *t
	return &c
}

func copySubmission(s *model.Submission) *model.Submission {
	c := *s
	return &c
}

func copyAttendance(a *model.Attendance) *model.Attendance {
	c := *a
	return &c
}
