package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/logger"
)

const pendingMediaRetentionDays = 7

type MediaReconcileJobParams struct {
	Logger        *logger.Logger
	DB            txRunner
	MediaRepo     mediaReconcileRepo
	RetentionDays int
}

type mediaReconcileRepo interface {
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Media, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
}

// NewMediaReconcileJob sweeps upload intents that stayed pending past the
// retention window. The client asked for a signed URL and never confirmed,
// so the row is dead weight and its GCS key never became public.
func NewMediaReconcileJob(params MediaReconcileJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.MediaRepo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = pendingMediaRetentionDays
	}
	return &mediaReconcileJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.MediaRepo,
		retention: retention,
		now:       time.Now,
	}, nil
}

type mediaReconcileJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      mediaReconcileRepo
	retention int
	now       func() time.Time
}

func (j *mediaReconcileJob) Name() string { return "media-reconcile" }

// Run deletes each stale intent in its own transaction. One bad row must
// not block the rest of the sweep, so failures accumulate and surface
// together at the end.
func (j *mediaReconcileJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	rows, err := j.repo.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("query pending media: %w", err)
	}

	var (
		deleted  int64
		sweepErr error
	)
	for _, mediaRow := range rows {
		err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
			return j.repo.DeleteTx(tx, mediaRow.ID)
		})
		if err != nil {
			sweepErr = multierr.Append(sweepErr, fmt.Errorf("delete media %s: %w", mediaRow.ID, err))
			continue
		}
		deleted++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"candidates":     len(rows),
		"deleted":        deleted,
	})
	if sweepErr != nil {
		return fmt.Errorf("media reconcile (deleted %d of %d): %w", deleted, len(rows), sweepErr)
	}
	j.logg.Info(logCtx, "pending media reconcile complete")
	return nil
}
