package repo

import (
	"context"

	"github.com/trackops/itam/internal/models"
)

// AuditRepo persists audit log entries. Entries are append-only and never
// updated or deleted.
type AuditRepo struct {
	db DBTX
}

func NewAuditRepo(db DBTX) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Insert(ctx context.Context, e models.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (entity_name, action, changes, user_name, timestamp)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.EntityName, e.Action, e.Changes, e.UserName, e.Timestamp,
	)
	return err
}

// List returns the newest limit entries by timestamp descending.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entity_name, action, changes, user_name, timestamp
		 FROM audit_log ORDER BY timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.EntityName, &e.Action, &e.Changes, &e.UserName, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
