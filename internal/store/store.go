// Package store persists the last plan inputs so a later run can restore
// them. Every backend stores one snapshot and returns (nil, nil) from Load
// when nothing has been saved.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/iwvelando/debt-payoff/internal/config"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/payoff"
	"go.uber.org/zap"
)

// Snapshot is the saved shape of a plan's inputs.
type Snapshot struct {
	Debts        []payoff.Debt `json:"debts" yaml:"debts"`
	ExtraPayment float64       `json:"extraPayment" yaml:"extraPayment"`
	SavedAt      time.Time     `json:"savedAt" yaml:"savedAt"`
}

// Store loads and saves a single Snapshot.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, logger *zap.Logger, cfg config.StorageConfig) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case "", constants.StorageNone:
		s = Noop{}
	case constants.StorageMemory:
		s = NewMemory()
	case constants.StorageFile:
		s, err = NewFile(cfg.Path)
	case constants.StorageSQLite:
		s, err = OpenSQLite(ctx, cfg.Path, cfg.Key)
	case constants.StorageRedis:
		s, err = OpenRedis(ctx, cfg.RedisAddr, cfg.Key)
	default:
		err = fmt.Errorf("storage backend %q is not supported", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("opened plan store",
		zap.String("op", "store.Open"),
		zap.String("backend", cfg.Backend),
	)
	return s, nil
}

// prepare stamps and copies a snapshot before it is written.
func prepare(snapshot Snapshot) Snapshot {
	snapshot.Debts = payoff.CloneDebts(snapshot.Debts)
	if snapshot.SavedAt.IsZero() {
		snapshot.SavedAt = time.Now().UTC()
	}
	return snapshot
}

// Noop discards saves and never has a snapshot.
type Noop struct{}

// Load always reports that nothing was saved.
func (Noop) Load(ctx context.Context) (*Snapshot, error) {
	return nil, ctx.Err()
}

// Save discards the snapshot.
func (Noop) Save(ctx context.Context, _ Snapshot) error {
	return ctx.Err()
}

// Close is a no-op.
func (Noop) Close() error {
	return nil
}
