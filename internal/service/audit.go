package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/trackops/itam/internal/metrics"
	"github.com/trackops/itam/internal/models"
	"github.com/trackops/itam/internal/repo"
)

// DefaultAuditLimit caps how many audit entries a read returns.
const DefaultAuditLimit = 100

// AuditService is the append-only sink for entity change records.
type AuditService struct {
	db *sql.DB
}

func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit entry with a server-assigned UTC timestamp.
// Callers pass the transaction of the enclosing mutation so the entry commits
// or rolls back together with it; an insert failure must fail that operation.
func (s *AuditService) Record(ctx context.Context, dbtx repo.DBTX, entityName, action, changes, userName string) error {
	err := repo.NewAuditRepo(dbtx).Insert(ctx, models.AuditEntry{
		EntityName: entityName,
		Action:     action,
		Changes:    changes,
		UserName:   userName,
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	metrics.IncAuditEntries()
	return nil
}

// Recent returns the newest entries by timestamp descending. Non-positive or
// oversized limits fall back to DefaultAuditLimit.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > DefaultAuditLimit {
		limit = DefaultAuditLimit
	}
	return repo.NewAuditRepo(s.db).List(ctx, limit)
}
