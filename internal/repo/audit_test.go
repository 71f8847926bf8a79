package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/trackops/itam/internal/models"
)

func TestAuditRepo_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO audit_log \(entity_name, action, changes, user_name, timestamp\)`).
		WithArgs("Asset", "Create", "Created asset: Laptop (SN: SN-1)", "alice", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewAuditRepo(db)
	err = repo.Insert(context.Background(), models.AuditEntry{
		EntityName: "Asset",
		Action:     models.ActionCreate,
		Changes:    "Created asset: Laptop (SN: SN-1)",
		UserName:   "alice",
		Timestamp:  now,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuditRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, entity_name, action, changes, user_name, timestamp\s+FROM audit_log ORDER BY timestamp DESC LIMIT \$1`).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "entity_name", "action", "changes", "user_name", "timestamp"}).
			AddRow(2, "Asset", "Delete", "Deleted asset ID 1: Laptop", "Admin", now).
			AddRow(1, "Asset", "Create", "Created asset: Laptop (SN: SN-1)", "alice", now.Add(-time.Minute)))

	repo := NewAuditRepo(db)
	entries, err := repo.List(context.Background(), 100)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].Action != "Delete" || entries[1].Action != "Create" {
		t.Errorf("unexpected entries: %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
