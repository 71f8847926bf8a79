package models

import "time"

// Audit actions recorded for entity mutations.
const (
	ActionCreate = "Create"
	ActionUpdate = "Update"
	ActionDelete = "Delete"
)

// AuditEntry represents one append-only audit log row.
type AuditEntry struct {
	ID         int       `json:"id"`
	EntityName string    `json:"entity_name"` // e.g. "Asset", "User"
	Action     string    `json:"action"`      // Create, Update, Delete
	Changes    string    `json:"changes"`
	UserName   string    `json:"user_name"`
	Timestamp  time.Time `json:"timestamp"`
}
