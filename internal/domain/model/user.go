package model

import (
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleCandidate = "candidate"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	CandidateID    *string   `json:"candidate_id,omitempty"` // External candidate reference (e.g. "C-1042"), candidates only
	FullName       string    `json:"full_name"`
	CreatedAt      time.Time `json:"created_at"`
}
