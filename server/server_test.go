package server_test

// End to end tests running a pool server and interacting with it via
// its GRPC and HTTP APIs.

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/farmpool/poold/chain"
	chainmocks "github.com/farmpool/poold/chain/mocks"
	"github.com/farmpool/poold/db"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/migrations"
	primmocks "github.com/farmpool/poold/primitives/mocks"
	"github.com/farmpool/poold/registry"
	"github.com/farmpool/poold/rpc"
	"github.com/farmpool/poold/server"
	"github.com/farmpool/poold/shared"
	"github.com/farmpool/poold/types"
)

const randomHost = "localhost:0"

var target = types.Bytes32{0xaa}

func testConfig(t *testing.T) *server.Config {
	t.Helper()
	cfg := server.DefaultConfig()
	cfg.PoolDir = t.TempDir()
	cfg.RawRPCListener = randomHost
	cfg.RawRESTListener = randomHost
	cfg.Node.WalletURL = ""
	cfg.Link.RedisAddr = miniredis.RunT(t).Addr()
	address, err := shared.EncodePuzzleHash(target, "xch")
	require.NoError(t, err)
	cfg.Pool.TargetAddress = address
	cfg.Pool.Name = "test pool"

	cfg, err = server.SetupConfig(cfg)
	require.NoError(t, err)
	return cfg
}

type running struct {
	*server.Server
	client *rpc.Client
}

func spawnPool(t *testing.T, cfg *server.Config) *running {
	t.Helper()
	ctrl := gomock.NewController(t)
	node := chainmocks.NewMockFullNode(ctrl)
	node.EXPECT().GetBlockchainState(gomock.Any()).Return(&chain.BlockchainState{PeakHeight: 1000, Synced: true}, nil).AnyTimes()

	ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), zaptest.NewLogger(t)))
	srv, err := server.New(ctx, *cfg, server.WithNode(node), server.WithPrimitives(primmocks.NewMockPrimitives(ctrl)))
	require.NoError(t, err)

	var eg errgroup.Group
	eg.Go(func() error { return srv.Start(ctx) })
	t.Cleanup(func() {
		cancel()
		require.NoError(t, eg.Wait())
		require.NoError(t, srv.Close())
	})

	client, err := rpc.Dial(context.Background(), srv.GrpcAddr().String())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return &running{Server: srv, client: client}
}

func TestServerStart(t *testing.T) {
	t.Parallel()
	srv := spawnPool(t, testConfig(t))

	require.Eventually(t, func() bool {
		status, err := srv.client.Status(context.Background())
		return err == nil && status.Peak == 1000
	}, 5*time.Second, 10*time.Millisecond)

	info, err := srv.client.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, "test pool", info.Name)
	require.Equal(t, target, info.TargetPuzzleHash)

	resp, err := http.Get("http://" + srv.HTTPAddr().String() + "/pool_info")
	require.NoError(t, err)
	defer resp.Body.Close()
	var httpInfo types.PoolInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&httpInfo))
	require.Equal(t, *info, httpInfo)

	_, err = srv.client.Farmer(context.Background(), types.Bytes32{1})
	require.ErrorIs(t, err, types.ErrFarmerNotKnown)
}

func TestRegistryIsMigrated(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)

	oldDir := filepath.Join(t.TempDir(), "registry")
	kv, err := db.Open(db.LevelDB, oldDir)
	require.NoError(t, err)
	store := registry.NewStore(kv)
	record := &types.FarmerRecord{
		LauncherID:        types.Bytes32{1},
		DelayTime:         3600,
		SingletonTip:      &types.CoinSpend{Coin: types.Coin{Amount: 1}},
		SingletonTipState: &types.PoolState{Version: types.PoolProtocolVersion, State: types.FarmingToPool},
		Difficulty:        25,
		IsPoolMember:      true,
	}
	require.NoError(t, store.Create(context.Background(), record))
	require.NoError(t, store.Close())

	cfg.Registry.Backend = db.Pebble
	cfg.Registry.MigrateFrom = db.LevelDB
	cfg.Registry.MigrateFromDir = oldDir
	require.NoError(t, migrations.Migrate(context.Background(), cfg))
	srv := spawnPool(t, cfg)

	farmer, err := srv.client.Farmer(context.Background(), record.LauncherID)
	require.NoError(t, err)
	require.EqualValues(t, 25, farmer.Difficulty)
	require.EqualValues(t, 3600, farmer.DelayTime)
	require.True(t, farmer.IsPoolMember)
}

func TestNewRejectsInvalidGenesisChallenge(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Node.GenesisChallenge = "not hex"
	ctrl := gomock.NewController(t)
	_, err := server.New(
		context.Background(),
		*cfg,
		server.WithNode(chainmocks.NewMockFullNode(ctrl)),
		server.WithPrimitives(primmocks.NewMockPrimitives(ctrl)),
	)
	require.ErrorContains(t, err, "genesis challenge")
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Registry.Backend = "rocksdb"
	ctrl := gomock.NewController(t)
	_, err := server.New(
		context.Background(),
		*cfg,
		server.WithNode(chainmocks.NewMockFullNode(ctrl)),
		server.WithPrimitives(primmocks.NewMockPrimitives(ctrl)),
	)
	require.ErrorIs(t, err, db.ErrUnknownBackend)
}
