// Package snapshot saves the whole mock store to durable storage and loads it
// back on the next launch.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/khula/internal/client/mockdata"
	"github.com/dmitrijs2005/khula/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/dmitrijs2005/khula/internal/logging"
)

const formatVersion = 1

type envelope struct {
	Version int            `json:"version"`
	State   mockdata.State `json:"state"`
}

// Bridge copies the store to and from one storage key. A nil *Bridge is a
// disabled bridge: every method is a no-op.
type Bridge struct {
	store *mockdata.Store
	repo  metadata.Repository
	log   logging.Logger
}

func NewBridge(store *mockdata.Store, repo metadata.Repository, log logging.Logger) *Bridge {
	return &Bridge{store: store, repo: repo, log: log.With("component", "snapshot")}
}

// Save writes the current store state. Errors are logged and also returned;
// callers are free to ignore them.
func (b *Bridge) Save(ctx context.Context) error {
	if b == nil {
		return nil
	}

	data, err := json.Marshal(envelope{Version: formatVersion, State: b.store.Export()})
	if err != nil {
		b.log.Error(ctx, "failed to encode app state", "error", err)
		return fmt.Errorf("encode app state: %w", err)
	}
	if err := b.repo.Set(ctx, common.StorageKeyAppState, data); err != nil {
		b.log.Warn(ctx, "failed to save app state", "error", err)
		return err
	}
	b.log.Debug(ctx, "app state saved", "bytes", len(data))
	return nil
}

// Restore loads the saved state into the store. It reports false when there
// is nothing to restore; on any error the store is left untouched.
func (b *Bridge) Restore(ctx context.Context) (bool, error) {
	if b == nil {
		return false, nil
	}

	data, err := b.repo.Get(ctx, common.StorageKeyAppState)
	if err != nil {
		b.log.Warn(ctx, "failed to load app state", "error", err)
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		b.log.Warn(ctx, "saved app state is unreadable", "error", err)
		return false, fmt.Errorf("decode app state: %w", err)
	}
	if env.Version != formatVersion {
		b.log.Warn(ctx, "saved app state has unsupported version", "version", env.Version)
		return false, fmt.Errorf("app state version %d not supported", env.Version)
	}

	b.store.Import(env.State)
	sum := b.store.Summary()
	b.log.Info(ctx, "app state restored",
		"users", sum.TotalUsers,
		"documents", sum.TotalDocuments,
		"applications", sum.TotalApplications,
		"session", sum.HasActiveSession)
	return true, nil
}

// Clear removes the saved state.
func (b *Bridge) Clear(ctx context.Context) error {
	if b == nil {
		return nil
	}
	if err := b.repo.Delete(ctx, common.StorageKeyAppState); err != nil {
		b.log.Warn(ctx, "failed to clear app state", "error", err)
		return err
	}
	return nil
}
