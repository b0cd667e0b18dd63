package singleton_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	chainmocks "github.com/farmpool/poold/chain/mocks"
	"github.com/farmpool/poold/db"
	primmocks "github.com/farmpool/poold/primitives/mocks"
	"github.com/farmpool/poold/registry"
	"github.com/farmpool/poold/singleton"
	"github.com/farmpool/poold/types"
)

var (
	launcherID      = types.Bytes32{0x1a}
	target          = types.Bytes32{0x7a}
	genesis         = types.Bytes32{0x6e}
	delayPuzzleHash = types.Bytes32{0xde}
)

const delayTime = 3600

type fixture struct {
	node     *chainmocks.MockFullNode
	prims    *primmocks.MockPrimitives
	store    *registry.Store
	resolver *singleton.Resolver
	peak     uint32
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		node:  chainmocks.NewMockFullNode(ctrl),
		prims: primmocks.NewMockPrimitives(ctrl),
		store: registry.NewStore(db.NewMemLevelDB()),
		peak:  100,
	}
	t.Cleanup(func() { f.store.Close() })
	cfg := singleton.Config{
		TargetPuzzleHash:              target,
		RelativeLockHeight:            100,
		ConfirmationSecurityThreshold: 6,
		GenesisChallenge:              genesis,
	}
	f.resolver = singleton.New(cfg, f.node, f.prims, f.store, func() uint32 { return f.peak })
	return f
}

func spend(i byte) *types.CoinSpend {
	return &types.CoinSpend{
		Coin:         types.Coin{ParentCoinInfo: types.Bytes32{0x50, i}, PuzzleHash: types.Bytes32{0x51, i}, Amount: 1},
		PuzzleReveal: types.HexBytes{i},
	}
}

func coin(i byte) *types.Coin {
	return &types.Coin{ParentCoinInfo: types.Bytes32{0xc0, i}, PuzzleHash: types.Bytes32{0xc1, i}, Amount: 1}
}

func poolState(state types.PoolSingletonState) *types.PoolState {
	return &types.PoolState{
		Version:            types.PoolProtocolVersion,
		State:              state,
		TargetPuzzleHash:   target,
		RelativeLockHeight: 100,
	}
}

func (f *fixture) register(t *testing.T, tip *types.CoinSpend, state *types.PoolState) {
	require.NoError(t, f.store.Create(context.Background(), &types.FarmerRecord{
		LauncherID:        launcherID,
		DelayTime:         delayTime,
		DelayPuzzleHash:   delayPuzzleHash,
		SingletonTip:      tip,
		SingletonTipState: state,
		Difficulty:        10,
		IsPoolMember:      true,
	}))
}

// expectUnspent makes c the current singleton coin following from.
func (f *fixture) expectUnspent(from *types.CoinSpend, c *types.Coin, state *types.PoolState) {
	f.prims.EXPECT().NextSingletonCoin(from).Return(c, nil)
	f.node.EXPECT().GetCoinRecord(gomock.Any(), c.Name()).Return(&types.CoinRecord{Coin: *c}, nil)
	f.prims.EXPECT().ValidatePuzzleHash(launcherID, delayPuzzleHash, uint64(delayTime), state, c.PuzzleHash, genesis).
		Return(true, nil)
}

// expectSpent makes c, spent by s at height, follow from.
func (f *fixture) expectSpent(from *types.CoinSpend, c *types.Coin, s *types.CoinSpend, height uint32, state *types.PoolState) {
	record := &types.CoinRecord{Coin: *c, Spent: true, SpentBlockIndex: height}
	f.prims.EXPECT().NextSingletonCoin(from).Return(c, nil)
	f.node.EXPECT().GetCoinRecord(gomock.Any(), c.Name()).Return(record, nil)
	f.node.EXPECT().GetCoinSpend(gomock.Any(), record).Return(s, nil)
	f.prims.EXPECT().PoolStateFromSpend(s).Return(state, nil)
}

func (f *fixture) expectLauncher(launcherSpend *types.CoinSpend, state *types.PoolState) {
	record := &types.CoinRecord{Coin: types.Coin{Amount: 1}, Spent: true, SpentBlockIndex: 10}
	f.node.EXPECT().GetCoinRecord(gomock.Any(), launcherID).Return(record, nil)
	f.node.EXPECT().GetCoinSpend(gomock.Any(), record).Return(launcherSpend, nil)
	f.prims.EXPECT().DelayedPuzzleInfo(launcherSpend).Return(uint64(delayTime), delayPuzzleHash, nil)
	f.prims.EXPECT().PoolStateFromSpend(launcherSpend).Return(state, nil)
}

func TestResolveUnregisteredFromLauncher(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	launcherSpend := spend(0)
	state := poolState(types.FarmingToPool)
	f.expectLauncher(launcherSpend, state)
	f.expectUnspent(launcherSpend, coin(1), state)

	got, err := f.resolver.Resolve(context.Background(), launcherID)
	require.NoError(t, err)
	require.True(t, got.IsMember)
	require.Equal(t, launcherSpend, got.BuriedTip)
	require.Equal(t, state, got.BuriedState)

	_, err = f.store.Get(context.Background(), launcherID)
	require.ErrorIs(t, err, registry.ErrNotFound)
}

func TestResolveKeepsOnlyBuriedSpends(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	tip := spend(0)
	farming := poolState(types.FarmingToPool)
	leaving := poolState(types.LeavingPool)
	f.register(t, tip, farming)

	// spent at 90: buried at peak 100 with threshold 6
	f.expectSpent(tip, coin(1), spend(1), 90, leaving)
	// spent at 99: not buried yet, and does not change the pool state
	f.expectSpent(spend(1), coin(2), spend(2), 99, nil)
	f.expectUnspent(spend(2), coin(3), leaving)
	// still inside the leave grace window
	f.node.EXPECT().GetCoinRecord(gomock.Any(), spend(1).Coin.Name()).
		Return(&types.CoinRecord{ConfirmedBlockIndex: 80}, nil)

	got, err := f.resolver.Resolve(context.Background(), launcherID)
	require.NoError(t, err)
	require.True(t, got.IsMember)
	require.Equal(t, spend(1), got.BuriedTip)
	require.Equal(t, leaving, got.BuriedState)
	require.Equal(t, leaving, got.LatestState)

	record, err := f.store.Get(context.Background(), launcherID)
	require.NoError(t, err)
	require.True(t, spend(1).Equal(record.SingletonTip))
	require.True(t, leaving.Equal(record.SingletonTipState))
	require.True(t, record.IsPoolMember)
}

func TestLeavingPoolAfterGraceWindow(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.peak = 300
	tip := spend(0)
	leaving := poolState(types.LeavingPool)
	f.register(t, tip, leaving)
	f.expectUnspent(tip, coin(1), leaving)
	f.node.EXPECT().GetCoinRecord(gomock.Any(), tip.Coin.Name()).
		Return(&types.CoinRecord{ConfirmedBlockIndex: 150}, nil)

	got, err := f.resolver.Resolve(context.Background(), launcherID)
	require.NoError(t, err)
	require.False(t, got.IsMember)

	record, err := f.store.Get(context.Background(), launcherID)
	require.NoError(t, err)
	require.False(t, record.IsPoolMember)
}

func TestMembership(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		state  func(*types.PoolState)
		member bool
	}{
		{"farming to pool", func(*types.PoolState) {}, true},
		{"wrong target", func(s *types.PoolState) { s.TargetPuzzleHash = types.Bytes32{1} }, false},
		{"wrong lock height", func(s *types.PoolState) { s.RelativeLockHeight = 5 }, false},
		{"wrong version", func(s *types.PoolState) { s.Version = 2 }, false},
		{"self pooling", func(s *types.PoolState) { s.State = types.SelfPooling }, false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			state := poolState(types.FarmingToPool)
			tc.state(state)
			f.register(t, spend(0), state)
			f.expectUnspent(spend(0), coin(1), state)

			got, err := f.resolver.Resolve(context.Background(), launcherID)
			require.NoError(t, err)
			require.Equal(t, tc.member, got.IsMember)
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()
	t.Run("unknown launcher", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.node.EXPECT().GetCoinRecord(gomock.Any(), launcherID).Return(nil, nil)
		_, err := f.resolver.Resolve(context.Background(), launcherID)
		require.ErrorIs(t, err, singleton.ErrNotFound)
	})
	t.Run("unspent launcher", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.node.EXPECT().GetCoinRecord(gomock.Any(), launcherID).Return(&types.CoinRecord{}, nil)
		_, err := f.resolver.Resolve(context.Background(), launcherID)
		require.ErrorIs(t, err, singleton.ErrNotFound)
	})
	t.Run("melted", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.register(t, spend(0), poolState(types.FarmingToPool))
		f.prims.EXPECT().NextSingletonCoin(spend(0)).Return(nil, nil)
		_, err := f.resolver.Resolve(context.Background(), launcherID)
		require.ErrorIs(t, err, singleton.ErrNotFound)
	})
	t.Run("invalid puzzle hash", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		state := poolState(types.FarmingToPool)
		f.register(t, spend(0), state)
		f.prims.EXPECT().NextSingletonCoin(spend(0)).Return(coin(1), nil)
		f.node.EXPECT().GetCoinRecord(gomock.Any(), coin(1).Name()).Return(&types.CoinRecord{Coin: *coin(1)}, nil)
		f.prims.EXPECT().ValidatePuzzleHash(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		_, err := f.resolver.Resolve(context.Background(), launcherID)
		require.ErrorIs(t, err, singleton.ErrNotFound)
	})
}

func TestConcurrentResolutionsShareOneLookup(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	launcherSpend := spend(0)
	state := poolState(types.FarmingToPool)
	record := &types.CoinRecord{Coin: types.Coin{Amount: 1}, Spent: true, SpentBlockIndex: 10}

	release := make(chan struct{})
	f.node.EXPECT().GetCoinRecord(gomock.Any(), launcherID).DoAndReturn(
		func(context.Context, types.Bytes32) (*types.CoinRecord, error) {
			<-release
			return record, nil
		}).Times(1)
	f.node.EXPECT().GetCoinSpend(gomock.Any(), record).Return(launcherSpend, nil).Times(1)
	f.prims.EXPECT().DelayedPuzzleInfo(launcherSpend).Return(uint64(delayTime), delayPuzzleHash, nil).Times(1)
	f.prims.EXPECT().PoolStateFromSpend(launcherSpend).Return(state, nil).Times(1)
	f.expectUnspent(launcherSpend, coin(1), state)

	const callers = 10
	results := make([]*singleton.State, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.resolver.Resolve(context.Background(), launcherID)
		}(i)
	}
	// let every caller join the resolution in flight
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, result := range results {
		require.NoError(t, errs[i])
		require.Same(t, results[0], result)
	}
	require.True(t, results[0].IsMember)
}

func TestCancelledCallerDoesNotFailSharedResolution(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	launcherSpend := spend(0)
	state := poolState(types.FarmingToPool)
	record := &types.CoinRecord{Coin: types.Coin{Amount: 1}, Spent: true, SpentBlockIndex: 10}

	started := make(chan struct{})
	release := make(chan struct{})
	f.node.EXPECT().GetCoinRecord(gomock.Any(), launcherID).DoAndReturn(
		func(ctx context.Context, _ types.Bytes32) (*types.CoinRecord, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return record, nil
		}).Times(1)
	f.node.EXPECT().GetCoinSpend(gomock.Any(), record).Return(launcherSpend, nil).Times(1)
	f.prims.EXPECT().DelayedPuzzleInfo(launcherSpend).Return(uint64(delayTime), delayPuzzleHash, nil).Times(1)
	f.prims.EXPECT().PoolStateFromSpend(launcherSpend).Return(state, nil).Times(1)
	f.expectUnspent(launcherSpend, coin(1), state)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := f.resolver.Resolve(ctx, launcherID)
		firstErr <- err
	}()
	<-started

	type result struct {
		state *singleton.State
		err   error
	}
	second := make(chan result, 1)
	go func() {
		state, err := f.resolver.Resolve(context.Background(), launcherID)
		second <- result{state, err}
	}()
	// let the second caller join the resolution in flight
	time.Sleep(100 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)
	close(release)

	res := <-second
	require.NoError(t, res.err)
	require.True(t, res.state.IsMember)
}
