package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/trackops/itam/internal/models"
)

func newAssetService(t *testing.T) (*AssetService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return NewAssetService(db, NewAuditService(db)), mock, func() { db.Close() }
}

func TestAssetService_Create(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, serial_number, status, created_at FROM assets WHERE serial_number = \$1`).
		WithArgs("SN-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO assets \(name, serial_number, status, created_at\)`).
		WithArgs("Laptop", "SN-1", "InStock", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("Asset", "Create", "Created asset: Laptop (SN: SN-1)", "alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	asset, err := svc.Create(context.Background(),
		models.Asset{Name: "Laptop", SerialNumber: "SN-1"},
		models.Actor{Name: "alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if asset.ID != 10 || asset.Status != models.StatusInStock {
		t.Errorf("unexpected asset: %+v", asset)
	}
	if asset.CreatedAt.IsZero() || asset.CreatedAt.Location() != time.UTC {
		t.Errorf("expected UTC creation timestamp, got %v", asset.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetService_Create_EmptyName(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(),
			models.Asset{Name: name, SerialNumber: "X"},
			models.Actor{Name: "alice"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("name %q: expected ValidationError, got %v", name, err)
		}
		if !strings.Contains(verr.Error(), "name cannot be empty") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	}
	// Nothing may be persisted for rejected input.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetService_Create_DuplicateSerial(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, serial_number, status, created_at FROM assets WHERE serial_number = \$1`).
		WithArgs("SN-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "serial_number", "status", "created_at"}).
			AddRow(1, "Laptop", "SN-1", "InStock", now))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(),
		models.Asset{Name: "Other", SerialNumber: "SN-1"},
		models.Actor{Name: "bob"})
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !strings.Contains(cerr.Error(), "SN-1") {
		t.Errorf("unexpected message: %q", cerr.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetService_Create_SerialRace(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	// The pre-check sees no duplicate, but a concurrent insert wins the race
	// and the unique index rejects ours.
	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE serial_number = \$1`).
		WithArgs("SN-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO assets`).
		WithArgs("Laptop", "SN-1", "InStock", sqlmock.AnyArg()).
		WillReturnError(uniqueViolation())
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(),
		models.Asset{Name: "Laptop", SerialNumber: "SN-1"},
		models.Actor{Name: "alice"})
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetService_Update_NotFound(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM assets WHERE id = \$1 FOR UPDATE`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := svc.Update(context.Background(),
		models.Asset{ID: 999, Name: "Laptop", SerialNumber: "SN-1", Status: models.StatusInStock},
		models.Actor{Name: "alice"})
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetService_Update(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM assets WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "serial_number", "status", "created_at"}).
			AddRow(1, "Laptop", "SN-1", "InStock", now))
	mock.ExpectExec(`UPDATE assets SET name = \$1, serial_number = \$2, status = \$3 WHERE id = \$4`).
		WithArgs("Laptop Pro", "SN-1", "Retired", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("Asset", "Update", "Updated asset ID 1: Laptop Pro", "alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.Update(context.Background(),
		models.Asset{ID: 1, Name: "Laptop Pro", SerialNumber: "SN-1", Status: models.StatusRetired},
		models.Actor{Name: "alice"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetService_Delete_NotAdmin(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	err := svc.Delete(context.Background(), 1, models.Actor{Name: "mallory", IsAdmin: false})
	var perr *PermissionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PermissionError, got %v", err)
	}
	if !strings.Contains(perr.Error(), "administrators") {
		t.Errorf("unexpected message: %q", perr.Error())
	}
	// The check runs before any database access.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetService_Delete(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM assets WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "serial_number", "status", "created_at"}).
			AddRow(1, "Laptop", "SN-1", "InStock", now))
	mock.ExpectExec(`DELETE FROM assets WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("Asset", "Delete", "Deleted asset ID 1: Laptop", "root", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), 1, models.Actor{Name: "root", IsAdmin: true})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetService_Delete_AuditFailureAborts(t *testing.T) {
	svc, mock, done := newAssetService(t)
	defer done()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM assets WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "serial_number", "status", "created_at"}).
			AddRow(1, "Laptop", "SN-1", "InStock", now))
	mock.ExpectExec(`DELETE FROM assets WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), 1, models.Actor{Name: "root", IsAdmin: true})
	if err == nil {
		t.Fatal("expected error when the audit write fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
