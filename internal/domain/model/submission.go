package model

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

type Submission struct {
	ID          string           `json:"id"`
	TaskID      string           `json:"task_id"`
	CandidateID string           `json:"candidate_id"`
	Content     *string          `json:"content,omitempty"`
	FileURL     *string          `json:"file_url,omitempty"` // FileURL/FileName/FileType are set together
	FileName    *string          `json:"file_name,omitempty"`
	FileType    *string          `json:"file_type,omitempty"`
	SubmittedAt time.Time        `json:"submitted_at"`
	Status      SubmissionStatus `json:"status"`
	Feedback    *string          `json:"feedback,omitempty"`
	Score       *int             `json:"score,omitempty"`

	CandidateName *string `json:"candidate_name,omitempty"` // For display
	CandidateRef  *string `json:"candidate_ref,omitempty"`  // The candidate's external reference
	TaskTitle     *string `json:"task_title,omitempty"`     // For display
}
