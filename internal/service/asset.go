package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trackops/itam/internal/models"
	"github.com/trackops/itam/internal/repo"
)

// AssetService owns asset records and their creation invariants. Every
// mutation writes the asset and its audit entry in one database transaction.
type AssetService struct {
	db    *sql.DB
	audit *AuditService
}

func NewAssetService(db *sql.DB, audit *AuditService) *AssetService {
	return &AssetService{db: db, audit: audit}
}

func (s *AssetService) List(ctx context.Context) ([]models.Asset, error) {
	return repo.NewAssetRepo(s.db).List(ctx)
}

func (s *AssetService) Get(ctx context.Context, id int) (models.Asset, error) {
	asset, err := repo.NewAssetRepo(s.db).Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, notFound(id)
	}
	if err != nil {
		return models.Asset{}, fmt.Errorf("get asset: %w", err)
	}
	return asset, nil
}

// Create validates and persists a new asset. The name must be non-empty after
// trimming and the serial number unused. Status defaults to InStock.
func (s *AssetService) Create(ctx context.Context, asset models.Asset, actor models.Actor) (models.Asset, error) {
	name := strings.TrimSpace(asset.Name)
	if name == "" {
		return models.Asset{}, &ValidationError{Msg: "asset name cannot be empty"}
	}
	status := asset.Status
	if status == "" {
		status = models.StatusInStock
	}
	if !status.Valid() {
		return models.Asset{}, &ValidationError{Msg: fmt.Sprintf("invalid status '%s'", status)}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Asset{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	assets := repo.NewAssetRepo(tx)
	if _, err := assets.GetBySerialNumber(ctx, asset.SerialNumber); err == nil {
		return models.Asset{}, serialConflict(asset.SerialNumber)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, fmt.Errorf("check serial number: %w", err)
	}

	created, err := assets.Create(ctx, name, asset.SerialNumber, status, time.Now().UTC())
	if err != nil {
		// The unique index closes the race the pre-check leaves open.
		if isUniqueViolation(err) {
			return models.Asset{}, serialConflict(asset.SerialNumber)
		}
		return models.Asset{}, fmt.Errorf("insert asset: %w", err)
	}

	changes := fmt.Sprintf("Created asset: %s (SN: %s)", created.Name, created.SerialNumber)
	if err := s.audit.Record(ctx, tx, "Asset", models.ActionCreate, changes, actor.Name); err != nil {
		return models.Asset{}, fmt.Errorf("audit create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Asset{}, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

// Update replaces the mutable fields of an existing asset and records one
// Update audit entry atomically. Changing the serial number re-checks
// uniqueness against the other assets.
func (s *AssetService) Update(ctx context.Context, asset models.Asset, actor models.Actor) error {
	name := strings.TrimSpace(asset.Name)
	if name == "" {
		return &ValidationError{Msg: "asset name cannot be empty"}
	}
	if !asset.Status.Valid() {
		return &ValidationError{Msg: fmt.Sprintf("invalid status '%s'", asset.Status)}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	assets := repo.NewAssetRepo(tx)
	current, err := assets.GetForUpdate(ctx, asset.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(asset.ID)
	}
	if err != nil {
		return fmt.Errorf("read asset: %w", err)
	}

	if asset.SerialNumber != current.SerialNumber {
		if other, err := assets.GetBySerialNumber(ctx, asset.SerialNumber); err == nil && other.ID != asset.ID {
			return serialConflict(asset.SerialNumber)
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check serial number: %w", err)
		}
	}

	asset.Name = name
	if err := assets.Update(ctx, asset); err != nil {
		if isUniqueViolation(err) {
			return serialConflict(asset.SerialNumber)
		}
		return fmt.Errorf("update asset: %w", err)
	}

	changes := fmt.Sprintf("Updated asset ID %d: %s", asset.ID, name)
	if err := s.audit.Record(ctx, tx, "Asset", models.ActionUpdate, changes, actor.Name); err != nil {
		return fmt.Errorf("audit update: %w", err)
	}
	return tx.Commit()
}

// Delete removes an asset. Only administrators may delete; history rows
// referencing the asset are retained.
func (s *AssetService) Delete(ctx context.Context, id int, actor models.Actor) error {
	if !actor.IsAdmin {
		return &PermissionError{Msg: "only administrators can delete assets"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	assets := repo.NewAssetRepo(tx)
	asset, err := assets.GetForUpdate(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(id)
	}
	if err != nil {
		return fmt.Errorf("read asset: %w", err)
	}

	if err := assets.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}

	changes := fmt.Sprintf("Deleted asset ID %d: %s", id, asset.Name)
	if err := s.audit.Record(ctx, tx, "Asset", models.ActionDelete, changes, actor.Name); err != nil {
		return fmt.Errorf("audit delete: %w", err)
	}
	return tx.Commit()
}
