package db

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/farmpool/poold/logging"
)

const migrateBatchSize = 1024

// Migrate copies every key of the store found in oldDir into target and removes oldDir.
// A missing oldDir is not an error.
func Migrate(ctx context.Context, target KV, oldBackend Backend, oldDir string) error {
	log := logging.FromContext(ctx)
	log.Info(
		"attempting DB migration",
		zap.String("oldBackend", string(oldBackend)),
		zap.String("oldDir", oldDir),
	)

	if _, err := os.Stat(oldDir); os.IsNotExist(err) {
		log.Debug("skipping DB migration - old DB doesn't exist")
		return nil
	}
	old, err := Open(oldBackend, oldDir)
	if err != nil {
		return fmt.Errorf("opening old DB: %w", err)
	}
	defer old.Close()

	type kv struct{ key, value []byte }
	pending := make([]kv, 0, migrateBatchSize)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		err := target.Write(func(b Batch) {
			for _, e := range pending {
				b.Put(e.key, e.value)
			}
		})
		pending = pending[:0]
		return err
	}

	var copied int
	var writeErr error
	err = old.Iterate(nil, false, func(key, value []byte) bool {
		if ctx.Err() != nil {
			writeErr = ctx.Err()
			return false
		}
		pending = append(pending, kv{append([]byte(nil), key...), append([]byte(nil), value...)})
		copied++
		if len(pending) == migrateBatchSize {
			if writeErr = flush(); writeErr != nil {
				return false
			}
		}
		return true
	})
	if err == nil {
		err = writeErr
	}
	if err == nil {
		err = flush()
	}
	if err != nil {
		return fmt.Errorf("migrating keys: %w", err)
	}

	log.Info("removing the old DB", zap.Int("keys", copied))
	if err := old.Close(); err != nil {
		return fmt.Errorf("closing old DB: %w", err)
	}
	if err := os.RemoveAll(oldDir); err != nil {
		return fmt.Errorf("removing old DB: %w", err)
	}
	log.Info("DB migrated")
	return nil
}
