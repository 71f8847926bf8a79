package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/trackops/itam/internal/models"
	"github.com/trackops/itam/internal/service"
)

func newTransactionHandler(t *testing.T) (*TransactionHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &TransactionHandler{Svc: service.NewTransactionService(db)}
	return h, mock, func() { db.Close() }
}

func TestCheckOut(t *testing.T) {
	h, mock, done := newTransactionHandler(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "serial_number", "status", "created_at"}).
			AddRow(1, "Laptop", "SN-1", "InStock", time.Now()))
	mock.ExpectExec(`UPDATE assets SET status = \$1 WHERE id = \$2`).
		WithArgs("InUse", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO asset_transactions`).
		WithArgs(1, "alice", "CheckOut", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	req := httptest.NewRequest("POST", "/transactions/check-out", bytes.NewBufferString(`{"asset_id":1}`))
	req = asActor(req, models.Actor{Name: "alice"})
	rr := httptest.NewRecorder()

	h.CheckOut(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var tr models.AssetTransaction
	if err := json.NewDecoder(rr.Body).Decode(&tr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tr.ID != 5 || tr.Type != models.TransactionCheckOut || tr.UserName != "alice" {
		t.Errorf("unexpected transaction: %+v", tr)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCheckOut_AssetInUse(t *testing.T) {
	h, mock, done := newTransactionHandler(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "serial_number", "status", "created_at"}).
			AddRow(1, "Laptop", "SN-1", "InUse", time.Now()))
	mock.ExpectRollback()

	req := httptest.NewRequest("POST", "/transactions/check-out", bytes.NewBufferString(`{"asset_id":1}`))
	req = asActor(req, models.Actor{Name: "bob"})
	rr := httptest.NewRecorder()

	h.CheckOut(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	want := "asset is not available for check-out. Current status: InUse"
	if msg := decodeError(t, rr.Body); msg != want {
		t.Errorf("error = %q, want %q", msg, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCheckIn_NotCheckedOut(t *testing.T) {
	h, mock, done := newTransactionHandler(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "serial_number", "status", "created_at"}).
			AddRow(1, "Laptop", "SN-1", "InStock", time.Now()))
	mock.ExpectRollback()

	req := httptest.NewRequest("POST", "/transactions/check-in", bytes.NewBufferString(`{"asset_id":1}`))
	req = asActor(req, models.Actor{Name: "alice"})
	rr := httptest.NewRecorder()

	h.CheckIn(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	want := "asset is not currently checked out. Current status: InStock"
	if msg := decodeError(t, rr.Body); msg != want {
		t.Errorf("error = %q, want %q", msg, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCheckOut_InvalidAssetID(t *testing.T) {
	h, _, done := newTransactionHandler(t)
	defer done()

	for _, body := range []string{`{}`, `{"asset_id":0}`, `{"asset_id":-3}`} {
		req := httptest.NewRequest("POST", "/transactions/check-out", bytes.NewBufferString(body))
		req = asActor(req, models.Actor{Name: "alice"})
		rr := httptest.NewRecorder()

		h.CheckOut(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestListTransactions_Empty(t *testing.T) {
	h, mock, done := newTransactionHandler(t)
	defer done()

	mock.ExpectQuery(`FROM asset_transactions t`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "user_name", "type", "date",
			"a_id", "a_name", "a_serial", "a_status", "a_created_at"}))

	rr := httptest.NewRecorder()
	h.ListTransactions(rr, httptest.NewRequest("GET", "/transactions", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := rr.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want []", got)
	}
}
