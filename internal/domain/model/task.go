package model

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusActive   TaskStatus = "active"
	TaskStatusArchived TaskStatus = "archived"
)

type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AssignedToID *string    `json:"assigned_to_id,omitempty"` // nil means assigned to all candidates
	Deadline     time.Time  `json:"deadline"`
	Status       TaskStatus `json:"status"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`

	AssignedToName *string `json:"assigned_to_name,omitempty"` // For display
}
