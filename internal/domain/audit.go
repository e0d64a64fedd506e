package domain

import "time"

// AuditEntry records an action against a resource. Audit writes are
// fire-and-forget: a failed write never fails the operation it describes.
type AuditEntry struct {
	ID           int64     `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Actor        string    `json:"actor"`
	OldValues    string    `json:"old_values,omitempty"`
	NewValues    string    `json:"new_values,omitempty"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedOn    time.Time `json:"created_on"`
}
