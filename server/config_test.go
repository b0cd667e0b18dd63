package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmpool/poold/db"
)

func TestReadingNonExistingConfigFile(t *testing.T) {
	cfg := Config{
		ConfigFile: "non-existing-file",
	}
	_, err := ReadConfigFile(&cfg)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.ConfigFile = filepath.Join(dir, "config.ini")
	ini := `datadir = /tmp

[Pool]
min-difficulty = 20
partial-time-limit = 30s
difficulty-constant-factor = 1024

[Registry]
registry-backend = pebble

[Events]
kafka-broker = localhost:9092
kafka-broker = localhost:9093
`
	require.NoError(t, os.WriteFile(cfg.ConfigFile, []byte(ini), 0o600))

	cfg, err := ReadConfigFile(cfg)
	require.NoError(t, err)
	require.Equal(t, "/tmp", cfg.DataDir)
	require.EqualValues(t, 20, cfg.Pool.MinDifficulty)
	require.Equal(t, 30*time.Second, cfg.Pool.PartialTimeLimit)
	require.Equal(t, "1024", cfg.Pool.DifficultyConstantFactor.String())
	require.Equal(t, db.Pebble, cfg.Registry.Backend)
	require.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.Events.Brokers)
	// untouched options keep their defaults
	require.EqualValues(t, 10, cfg.Pool.DefaultDifficulty)
}

func TestReadConfigFilePathNotSet(t *testing.T) {
	cfg, err := ReadConfigFile(&Config{})
	require.NoError(t, err)
	require.Equal(t, &Config{}, cfg)
}

func TestSetupConfigMovesDirectoriesUnderPoolDir(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.PoolDir = t.TempDir()

	cfg, err := SetupConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cfg.PoolDir, defaultDataDirname), cfg.DataDir)
	require.Equal(t, filepath.Join(cfg.PoolDir, defaultLogDirname), cfg.LogDir)
	require.Equal(t, filepath.Join(cfg.PoolDir, defaultDbDirName), cfg.DbDir)
}

func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("POOLD_TEST_DIR", "/var/lib/poold")
	require.Equal(t, "/var/lib/poold/db", cleanAndExpandPath("$POOLD_TEST_DIR/./db/"))
	require.Empty(t, cleanAndExpandPath(""))
}
