package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/trackops/itam/internal/models"
)

// TransactionRepo persists check-out/check-in records. Rows are append-only.
type TransactionRepo struct {
	db DBTX
}

func NewTransactionRepo(db DBTX) *TransactionRepo {
	return &TransactionRepo{db: db}
}

func (r *TransactionRepo) Create(ctx context.Context, assetID int, userName string, typ models.TransactionType, date time.Time) (models.AssetTransaction, error) {
	tr := models.AssetTransaction{
		AssetID:  assetID,
		UserName: userName,
		Type:     typ,
		Date:     date,
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO asset_transactions (asset_id, user_name, type, date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		assetID, userName, string(typ), date,
	).Scan(&tr.ID)
	return tr, err
}

// History returns all transactions newest first, each resolved with its asset.
// The join is LEFT so history survives asset deletion; Asset is nil then.
func (r *TransactionRepo) History(ctx context.Context) ([]models.AssetTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.asset_id, t.user_name, t.type, t.date,
		        a.id, a.name, a.serial_number, a.status, a.created_at
		 FROM asset_transactions t
		 LEFT JOIN assets a ON a.id = t.asset_id
		 ORDER BY t.date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.AssetTransaction
	for rows.Next() {
		var t models.AssetTransaction
		var (
			assetID   sql.NullInt64
			name      sql.NullString
			serial    sql.NullString
			status    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.AssetID, &t.UserName, &t.Type, &t.Date,
			&assetID, &name, &serial, &status, &createdAt); err != nil {
			return nil, err
		}
		if assetID.Valid {
			t.Asset = &models.Asset{
				ID:           int(assetID.Int64),
				Name:         name.String,
				SerialNumber: serial.String,
				Status:       models.Status(status.String),
				CreatedAt:    createdAt.Time,
			}
		}
		history = append(history, t)
	}
	return history, rows.Err()
}

// ListOverdueCheckouts returns, for every asset currently in use, its latest
// check-out when that check-out happened before cutoff.
func (r *TransactionRepo) ListOverdueCheckouts(ctx context.Context, cutoff time.Time) ([]models.AssetTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, asset_id, user_name, type, date, name, serial_number, status, created_at FROM (
		   SELECT DISTINCT ON (t.asset_id)
		          t.id, t.asset_id, t.user_name, t.type, t.date,
		          a.name, a.serial_number, a.status, a.created_at
		   FROM asset_transactions t
		   JOIN assets a ON a.id = t.asset_id
		   WHERE a.status = 'InUse' AND t.type = 'CheckOut'
		   ORDER BY t.asset_id, t.date DESC
		 ) last
		 WHERE date < $1
		 ORDER BY date`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overdue []models.AssetTransaction
	for rows.Next() {
		var t models.AssetTransaction
		var a models.Asset
		if err := rows.Scan(&t.ID, &t.AssetID, &t.UserName, &t.Type, &t.Date,
			&a.Name, &a.SerialNumber, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ID = t.AssetID
		t.Asset = &a
		overdue = append(overdue, t)
	}
	return overdue, rows.Err()
}
