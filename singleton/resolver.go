// Package singleton follows plot NFT singletons on chain to decide whether a
// farmer is currently pooling with us.
package singleton

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/farmpool/poold/chain"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/primitives"
	"github.com/farmpool/poold/registry"
	"github.com/farmpool/poold/types"
)

// ErrNotFound means the singleton does not exist, is not a valid plot NFT or no longer continues.
var ErrNotFound = errors.New("singleton not found")

var (
	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pool",
		Subsystem: "singleton",
		Name:      "resolutions_total",
		Help:      "Singleton resolutions by outcome.",
	}, []string{"result"})
	sharedResolutions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pool",
		Subsystem: "singleton",
		Name:      "shared_resolutions_total",
		Help:      "Resolve calls answered by a resolution already in flight.",
	})
)

type Config struct {
	// TargetPuzzleHash is where the singleton must send pool rewards.
	TargetPuzzleHash   types.Bytes32
	RelativeLockHeight uint32
	// ConfirmationSecurityThreshold is the number of blocks after which a spend is final.
	ConfirmationSecurityThreshold uint32
	GenesisChallenge              types.Bytes32
}

// State is the result of a resolution. It is shared between concurrent callers
// and must not be modified.
type State struct {
	BuriedTip   *types.CoinSpend
	BuriedState *types.PoolState
	// LatestState is the state of the most recent spend, buried or not.
	LatestState *types.PoolState
	IsMember    bool
}

type Resolver struct {
	cfg      Config
	node     chain.FullNode
	prims    primitives.Primitives
	registry registry.Registry
	peak     func() uint32

	inflight singleflight.Group
}

// New creates a resolver. peak returns the latest known chain height.
func New(
	cfg Config,
	node chain.FullNode,
	prims primitives.Primitives,
	reg registry.Registry,
	peak func() uint32,
) *Resolver {
	return &Resolver{
		cfg:      cfg,
		node:     node,
		prims:    prims,
		registry: reg,
		peak:     peak,
	}
}

// Resolve returns the buried state of the singleton and whether it pools with us.
// Concurrent calls for the same launcher id share one resolution. The resolution
// keeps running when a caller gives up, so callers that are still waiting get its result.
// If the farmer is registered and its buried state changed, the record is updated.
func (r *Resolver) Resolve(ctx context.Context, launcherID types.Bytes32) (*State, error) {
	ch := r.inflight.DoChan(string(launcherID[:]), func() (any, error) {
		return r.resolve(context.WithoutCancel(ctx), launcherID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			sharedResolutions.Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		// SAFETY: type assertion will never panic as resolve returns only `*State` values.
		return res.Val.(*State), nil
	}
}

func (r *Resolver) resolve(ctx context.Context, launcherID types.Bytes32) (*State, error) {
	logger := logging.FromContext(ctx).With(zap.Stringer("launcher_id", launcherID))
	record, err := r.registry.Get(ctx, launcherID)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		record = nil
	case err != nil:
		resolutions.WithLabelValues("error").Inc()
		return nil, err
	}

	peak := r.peak()
	tip, buried, latest, err := r.walk(ctx, launcherID, record, peak)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			resolutions.WithLabelValues("not_found").Inc()
		} else {
			resolutions.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	isMember, err := r.isMember(ctx, logger, tip, latest, peak)
	if err != nil {
		resolutions.WithLabelValues("error").Inc()
		return nil, err
	}
	logger.Debug("resolved singleton", zap.Bool("member", isMember), zap.Stringer("state", latest.State))
	if isMember {
		resolutions.WithLabelValues("member").Inc()
	} else {
		resolutions.WithLabelValues("not_member").Inc()
	}

	state := &State{BuriedTip: tip, BuriedState: buried, LatestState: latest, IsMember: isMember}
	if record != nil {
		if err := r.writeBack(ctx, launcherID, state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func changed(record *types.FarmerRecord, state *State) bool {
	return !record.SingletonTip.Equal(state.BuriedTip) ||
		!record.SingletonTipState.Equal(state.BuriedState) ||
		record.IsPoolMember != state.IsMember
}

func (r *Resolver) writeBack(ctx context.Context, launcherID types.Bytes32, state *State) error {
	unlock := r.registry.Lock(launcherID)
	defer unlock()
	record, err := r.registry.Get(ctx, launcherID)
	if err != nil {
		return err
	}
	if !changed(record, state) {
		return nil
	}
	logging.FromContext(ctx).Info("updating singleton state",
		zap.Stringer("launcher_id", launcherID),
		zap.Stringer("state", state.BuriedState.State),
		zap.Bool("member", state.IsMember),
	)
	return r.registry.UpdateSingletonState(ctx, launcherID, state.BuriedTip, state.BuriedState, state.IsMember)
}

// walk follows the singleton from the last known spend to its unspent coin. It returns the
// latest buried spend and state, and the latest state.
func (r *Resolver) walk(
	ctx context.Context,
	launcherID types.Bytes32,
	record *types.FarmerRecord,
	peak uint32,
) (*types.CoinSpend, *types.PoolState, *types.PoolState, error) {
	var (
		lastSpend       *types.CoinSpend
		savedState      *types.PoolState
		delayTime       uint64
		delayPuzzleHash types.Bytes32
	)
	if record == nil {
		launcher, err := r.node.GetCoinRecord(ctx, launcherID)
		switch {
		case err != nil:
			return nil, nil, nil, err
		case launcher == nil:
			return nil, nil, nil, fmt.Errorf("%w: launcher coin %s unknown", ErrNotFound, launcherID)
		case !launcher.Spent:
			return nil, nil, nil, fmt.Errorf("%w: launcher coin %s not spent", ErrNotFound, launcherID)
		}
		if lastSpend, err = r.node.GetCoinSpend(ctx, launcher); err != nil {
			return nil, nil, nil, err
		}
		if lastSpend == nil {
			return nil, nil, nil, fmt.Errorf("%w: no spend of launcher coin %s", ErrNotFound, launcherID)
		}
		if delayTime, delayPuzzleHash, err = r.prims.DelayedPuzzleInfo(lastSpend); err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if savedState, err = r.prims.PoolStateFromSpend(lastSpend); err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	} else {
		lastSpend = record.SingletonTip
		savedState = record.SingletonTipState
		delayTime = record.DelayTime
		delayPuzzleHash = record.DelayPuzzleHash
	}
	if lastSpend == nil || savedState == nil {
		return nil, nil, nil, fmt.Errorf("%w: no pool state for %s", ErrNotFound, launcherID)
	}

	savedSpend := lastSpend
	latestState := savedState
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		next, err := r.prims.NextSingletonCoin(lastSpend)
		if err != nil {
			return nil, nil, nil, err
		}
		if next == nil {
			// the singleton was melted
			return nil, nil, nil, fmt.Errorf("%w: singleton %s ended", ErrNotFound, launcherID)
		}
		nextRecord, err := r.node.GetCoinRecord(ctx, next.Name())
		if err != nil {
			return nil, nil, nil, err
		}
		if nextRecord == nil {
			return nil, nil, nil, fmt.Errorf("singleton coin %s unknown to the node", next.Name())
		}
		if !nextRecord.Spent {
			ok, err := r.prims.ValidatePuzzleHash(
				launcherID, delayPuzzleHash, delayTime, latestState,
				nextRecord.Coin.PuzzleHash, r.cfg.GenesisChallenge,
			)
			if err != nil {
				return nil, nil, nil, err
			}
			if !ok {
				return nil, nil, nil, fmt.Errorf("%w: invalid singleton puzzle hash %s", ErrNotFound, nextRecord.Coin.PuzzleHash)
			}
			break
		}

		if lastSpend, err = r.node.GetCoinSpend(ctx, nextRecord); err != nil {
			return nil, nil, nil, err
		}
		if lastSpend == nil {
			return nil, nil, nil, fmt.Errorf("no spend of singleton coin %s", next.Name())
		}
		poolState, err := r.prims.PoolStateFromSpend(lastSpend)
		if err != nil {
			return nil, nil, nil, err
		}
		if poolState != nil {
			latestState = poolState
		}
		if r.buried(peak, nextRecord.SpentBlockIndex) {
			savedSpend = lastSpend
			savedState = latestState
		}
	}
	return savedSpend, savedState, latestState, nil
}

func (r *Resolver) buried(peak, height uint32) bool {
	return int64(peak)-int64(r.cfg.ConfirmationSecurityThreshold) >= int64(height)
}

func (r *Resolver) isMember(
	ctx context.Context,
	logger *zap.Logger,
	buriedTip *types.CoinSpend,
	latest *types.PoolState,
	peak uint32,
) (bool, error) {
	switch {
	case latest.TargetPuzzleHash != r.cfg.TargetPuzzleHash:
		logger.Info("wrong target puzzle hash", zap.Stringer("target_puzzle_hash", latest.TargetPuzzleHash))
		return false, nil
	case latest.RelativeLockHeight != r.cfg.RelativeLockHeight:
		logger.Info("wrong relative lock height", zap.Uint32("relative_lock_height", latest.RelativeLockHeight))
		return false, nil
	case latest.Version != types.PoolProtocolVersion:
		logger.Info("wrong pool protocol version", zap.Uint8("version", latest.Version))
		return false, nil
	case latest.State == types.SelfPooling:
		logger.Info("singleton is self pooling")
		return false, nil
	case latest.State == types.LeavingPool:
		tip, err := r.node.GetCoinRecord(ctx, buriedTip.Coin.Name())
		if err != nil {
			return false, err
		}
		if tip == nil {
			return false, fmt.Errorf("singleton tip %s unknown to the node", buriedTip.Coin.Name())
		}
		if int64(peak)-int64(tip.ConfirmedBlockIndex) > int64(r.cfg.RelativeLockHeight) {
			logger.Info("singleton got enough confirmations to leave the pool")
			return false, nil
		}
	}
	return true, nil
}
