package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/logger"
)

const staleCartRetentionDays = 90

type StaleCartJobParams struct {
	Logger        *logger.Logger
	DB            txRunner
	Store         staleCartStore
	RetentionDays int
}

type staleCartStore interface {
	PurgeStaleBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// NewStaleCartJob empties carts nobody has touched for the retention
// window. The cart rows stay so a returning shopper keeps their cart
// identity; only the items and derived totals go.
func NewStaleCartJob(params StaleCartJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = staleCartRetentionDays
	}
	return &staleCartJob{
		logg:      params.Logger,
		db:        params.DB,
		store:     params.Store,
		retention: retention,
		now:       time.Now,
	}, nil
}

type staleCartJob struct {
	logg      *logger.Logger
	db        txRunner
	store     staleCartStore
	retention int
	now       func() time.Time
}

func (j *staleCartJob) Name() string { return "stale-cart-purge" }

func (j *staleCartJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	var purged int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		count, err := j.store.PurgeStaleBefore(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		purged = count
		return nil
	})
	if err != nil {
		return fmt.Errorf("stale cart purge: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"carts_purged":   purged,
	})
	j.logg.Info(logCtx, "stale cart purge complete")
	return nil
}
