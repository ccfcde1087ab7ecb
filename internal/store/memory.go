package store

import (
	"context"
	"sync"

	"github.com/iwvelando/debt-payoff/pkg/payoff"
)

// Memory keeps the snapshot in process memory. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a copy of the saved snapshot.
func (m *Memory) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot == nil {
		return nil, nil
	}
	out := *m.snapshot
	out.Debts = payoff.CloneDebts(m.snapshot.Debts)
	return &out, nil
}

// Save replaces the stored snapshot.
func (m *Memory) Save(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot = prepare(snapshot)
	m.mu.Lock()
	m.snapshot = &snapshot
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
