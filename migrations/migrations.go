// Package migrations brings the on-disk state of an older installation up to
// date before the server opens it.
package migrations

import (
	"context"

	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/server"
)

func Migrate(ctx context.Context, cfg *server.Config) error {
	ctx = logging.NewContext(ctx, logging.FromContext(ctx).Named("migrations"))
	if err := migrateRegistryBackend(ctx, cfg); err != nil {
		return err
	}
	return nil
}
