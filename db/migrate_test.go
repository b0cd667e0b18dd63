package db_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/farmpool/poold/db"
)

var kvs = map[string][]byte{
	"key":  []byte("value"),
	"key2": []byte("value2"),
	"key3": []byte("value3"),
}

func TestMigrateLevelDBToPebble(t *testing.T) {
	oldDbPath := t.TempDir()
	oldDb, err := db.Open(db.LevelDB, oldDbPath)
	require.NoError(t, err)
	require.NoError(t, oldDb.Write(func(b db.Batch) {
		for k, v := range kvs {
			b.Put([]byte(k), v)
		}
	}))
	require.NoError(t, oldDb.Close())

	target, err := db.Open(db.Pebble, t.TempDir())
	require.NoError(t, err)
	defer target.Close()
	require.NoError(t, db.Migrate(context.Background(), target, db.LevelDB, oldDbPath))

	for k, v := range kvs {
		value, err := target.Get([]byte(k))
		require.NoError(t, err)
		require.Equal(t, v, value)
	}

	// old DB should be removed
	_, err = os.Stat(oldDbPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMigrateManyKeys(t *testing.T) {
	oldDbPath := t.TempDir()
	oldDb, err := db.Open(db.Pebble, oldDbPath)
	require.NoError(t, err)
	require.NoError(t, oldDb.Write(func(b db.Batch) {
		for i := 0; i < 3000; i++ {
			b.Put([]byte{byte(i >> 8), byte(i)}, []byte{1})
		}
	}))
	require.NoError(t, oldDb.Close())

	target := db.NewMemLevelDB()
	defer target.Close()
	require.NoError(t, db.Migrate(context.Background(), target, db.Pebble, oldDbPath))

	var count int
	require.NoError(t, target.Iterate(nil, false, func(_, _ []byte) bool {
		count++
		return true
	}))
	require.Equal(t, 3000, count)
}

func TestSkipMigrateSrcDoesntExist(t *testing.T) {
	target := db.NewMemLevelDB()
	defer target.Close()
	require.NoError(t, db.Migrate(context.Background(), target, db.LevelDB, filepath.Join(t.TempDir(), "missing")))
}
