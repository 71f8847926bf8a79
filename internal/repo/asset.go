package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/trackops/itam/internal/models"
)

const assetColumns = "id, name, serial_number, status, created_at"

// AssetRepo persists asset rows.
type AssetRepo struct {
	db DBTX
}

func NewAssetRepo(db DBTX) *AssetRepo {
	return &AssetRepo{db: db}
}

func (r *AssetRepo) Create(ctx context.Context, name, serialNumber string, status models.Status, createdAt time.Time) (models.Asset, error) {
	asset := models.Asset{
		Name:         name,
		SerialNumber: serialNumber,
		Status:       status,
		CreatedAt:    createdAt,
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO assets (name, serial_number, status, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, serialNumber, string(status), createdAt,
	).Scan(&asset.ID)
	return asset, err
}

func (r *AssetRepo) Get(ctx context.Context, id int) (models.Asset, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
}

// GetForUpdate reads the asset under a row lock. Callers must be inside a
// transaction; the lock serializes concurrent lifecycle transitions on the
// same asset until commit or rollback.
func (r *AssetRepo) GetForUpdate(ctx context.Context, id int) (models.Asset, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id))
}

func (r *AssetRepo) GetBySerialNumber(ctx context.Context, serialNumber string) (models.Asset, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE serial_number = $1`, serialNumber))
}

func (r *AssetRepo) List(ctx context.Context) ([]models.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.SerialNumber, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Update replaces the mutable fields of an asset. Returns sql.ErrNoRows when
// no asset has the given id.
func (r *AssetRepo) Update(ctx context.Context, asset models.Asset) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets SET name = $1, serial_number = $2, status = $3 WHERE id = $4`,
		asset.Name, asset.SerialNumber, string(asset.Status), asset.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AssetRepo) UpdateStatus(ctx context.Context, id int, status models.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes the asset row. Returns sql.ErrNoRows when no asset has the
// given id. Transactions and audit entries referencing the asset are kept.
func (r *AssetRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AssetRepo) scanOne(row *sql.Row) (models.Asset, error) {
	var a models.Asset
	err := row.Scan(&a.ID, &a.Name, &a.SerialNumber, &a.Status, &a.CreatedAt)
	return a, err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
