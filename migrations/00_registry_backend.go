package migrations

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/farmpool/poold/db"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/server"
)

// migrateRegistryBackend copies the farmer registry kept by another storage
// backend into the configured one.
func migrateRegistryBackend(ctx context.Context, cfg *server.Config) error {
	from := cfg.Registry.MigrateFrom
	if from == "" {
		return nil
	}
	if from == cfg.Registry.Backend && cfg.Registry.MigrateFromDir == cfg.RegistryDir() {
		return fmt.Errorf("registry migration source and target are both %s in %s", from, cfg.RegistryDir())
	}
	logging.FromContext(ctx).Info("migrating registry",
		zap.String("from", string(from)),
		zap.String("to", string(cfg.Registry.Backend)),
		zap.String("dir", cfg.RegistryDir()),
	)

	kv, err := db.Open(cfg.Registry.Backend, cfg.RegistryDir())
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}
	defer kv.Close()
	if err := db.Migrate(ctx, kv, from, cfg.Registry.MigrateFromDir); err != nil {
		return fmt.Errorf("migrating registry from %s: %w", cfg.Registry.MigrateFromDir, err)
	}
	return nil
}
