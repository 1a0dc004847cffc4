package model

import "time"

// Attendance is an append-only attestation record. It is never updated or
// deleted once written.
type Attendance struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	TaskID        *string   `json:"task_id,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
	PhotoURL      string    `json:"photo_url"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	IPAddress     string    `json:"ip_address"`
	DeviceDetails string    `json:"device_details"`

	UserFullName *string `json:"user_full_name,omitempty"` // For display
}
