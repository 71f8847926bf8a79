package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/trackops/itam/internal/metrics"
	"github.com/trackops/itam/internal/repo"
)

// Run starts a cron job that reports assets checked out longer than
// overdueAfter. The job is read-only: it logs each overdue check-out and
// updates the assets_overdue gauge, but touches no lifecycle state.
// The returned cron can be stopped on shutdown.
func Run(db *sql.DB, spec string, overdueAfter time.Duration) (*cron.Cron, error) {
	transactions := repo.NewTransactionRepo(db)

	job := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cutoff := time.Now().UTC().Add(-overdueAfter)
		overdue, err := transactions.ListOverdueCheckouts(ctx, cutoff)
		if err != nil {
			slog.Error("overdue report failed", "error", err)
			return
		}

		metrics.SetAssetsOverdue(len(overdue))
		for _, t := range overdue {
			slog.Warn("asset overdue",
				"asset_id", t.AssetID,
				"asset_name", t.Asset.Name,
				"serial_number", t.Asset.SerialNumber,
				"checked_out_by", t.UserName,
				"checked_out_at", t.Date)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
