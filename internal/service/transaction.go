package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trackops/itam/internal/metrics"
	"github.com/trackops/itam/internal/models"
	"github.com/trackops/itam/internal/repo"
)

// TransactionService enforces the asset lifecycle state machine:
// InStock -> InUse on check-out, InUse -> InStock on check-in. Retired is a
// sink; both operations fail against a retired asset. Each transition locks
// the asset row, so concurrent attempts on one asset serialize and the loser
// observes an InvalidStateError.
type TransactionService struct {
	db *sql.DB
}

func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{db: db}
}

// CheckOut moves an InStock asset to InUse and records one CheckOut
// transaction attributed to userName, atomically.
func (s *TransactionService) CheckOut(ctx context.Context, assetID int, userName string) (models.AssetTransaction, error) {
	return s.transition(ctx, assetID, userName, models.TransactionCheckOut)
}

// CheckIn moves an InUse asset back to InStock and records one CheckIn
// transaction, atomically.
func (s *TransactionService) CheckIn(ctx context.Context, assetID int, userName string) (models.AssetTransaction, error) {
	return s.transition(ctx, assetID, userName, models.TransactionCheckIn)
}

func (s *TransactionService) transition(ctx context.Context, assetID int, userName string, typ models.TransactionType) (models.AssetTransaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.AssetTransaction{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	assets := repo.NewAssetRepo(tx)
	asset, err := assets.GetForUpdate(ctx, assetID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AssetTransaction{}, notFound(assetID)
	}
	if err != nil {
		return models.AssetTransaction{}, fmt.Errorf("read asset: %w", err)
	}

	var next models.Status
	switch typ {
	case models.TransactionCheckOut:
		if asset.Status != models.StatusInStock {
			return models.AssetTransaction{}, &InvalidStateError{
				Msg:     "asset is not available for check-out",
				Current: asset.Status,
			}
		}
		next = models.StatusInUse
	case models.TransactionCheckIn:
		if asset.Status != models.StatusInUse {
			return models.AssetTransaction{}, &InvalidStateError{
				Msg:     "asset is not currently checked out",
				Current: asset.Status,
			}
		}
		next = models.StatusInStock
	default:
		return models.AssetTransaction{}, &ValidationError{Msg: fmt.Sprintf("unknown transaction type '%s'", typ)}
	}

	if err := assets.UpdateStatus(ctx, assetID, next); err != nil {
		return models.AssetTransaction{}, fmt.Errorf("update status: %w", err)
	}

	record, err := repo.NewTransactionRepo(tx).Create(ctx, assetID, userName, typ, time.Now().UTC())
	if err != nil {
		return models.AssetTransaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.AssetTransaction{}, fmt.Errorf("commit: %w", err)
	}
	metrics.IncAssetTransaction(string(typ))
	return record, nil
}

// History returns all recorded transactions newest first, each resolved with
// its asset when the asset still exists.
func (s *TransactionService) History(ctx context.Context) ([]models.AssetTransaction, error) {
	return repo.NewTransactionRepo(s.db).History(ctx)
}
