package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/farmpool/poold/logging"
)

func TestWithAddsFields(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.DebugLevel)
	ctx := logging.NewContext(context.Background(), zap.New(core))
	ctx = logging.With(ctx, zap.String("request_id", "abc"))

	logging.FromContext(ctx).Info("hello")
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "abc", logs.All()[0].ContextMap()["request_id"])
}

func TestFromContextWithoutLogger(t *testing.T) {
	t.Parallel()
	require.NotNil(t, logging.FromContext(context.Background()))
}

func TestLogFileIsWritten(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "poold.log")
	logger := logging.New(zap.ErrorLevel, path, true)
	logger.Debug("only in file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "only in file")
}
