// Package pool admits partials submitted by farmers, credits them once they are
// safe from reorgs and keeps farmer records up to date.
package pool

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/farmpool/poold/chain"
	"github.com/farmpool/poold/difficulty"
	"github.com/farmpool/poold/events"
	"github.com/farmpool/poold/link"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/primitives"
	"github.com/farmpool/poold/registry"
	"github.com/farmpool/poold/shared"
	"github.com/farmpool/poold/signing"
	"github.com/farmpool/poold/singleton"
	"github.com/farmpool/poold/types"
)

// Services are the collaborators of the pool.
type Services struct {
	Node       chain.FullNode
	Wallet     chain.Wallet
	Primitives primitives.Primitives
	Verifier   signing.Verifier
	Registry   registry.Registry
	Linker     link.AccountLinker
	Events     *events.Sink
}

type Pool struct {
	cfg              Config
	targetPuzzleHash types.Bytes32
	genesis          types.Bytes32
	difficulty       difficulty.Params
	itersLimit       uint64

	node     chain.FullNode
	wallet   chain.Wallet
	prims    primitives.Primitives
	verifier signing.Verifier
	registry registry.Registry
	linker   link.AccountLinker
	events   *events.Sink
	resolver *singleton.Resolver

	peak         atomic.Uint32
	walletSynced atomic.Bool

	pending chan pendingPartial
	// proof of space hashes of recently credited partials
	recent *lru.Cache
	// confirmation checks in flight
	checks sync.WaitGroup

	cooldowns *cooldowns
	clock     func() time.Time
}

type option func(*Pool)

// WithClock replaces the wall clock used for receipt times and authentication tokens.
func WithClock(clock func() time.Time) option {
	return func(p *Pool) {
		p.clock = clock
	}
}

// WithGenesisChallenge sets the genesis challenge of the chain the singletons live on.
func WithGenesisChallenge(genesis types.Bytes32) option {
	return func(p *Pool) {
		p.genesis = genesis
	}
}

func New(cfg Config, svc Services, opts ...option) (*Pool, error) {
	targetPuzzleHash, err := shared.DecodePuzzleHash(cfg.TargetAddress)
	if err != nil {
		return nil, fmt.Errorf("decoding target address: %w", err)
	}
	if cfg.DifficultyConstantFactor.Int == nil {
		cfg.DifficultyConstantFactor = BigInt{new(big.Int).Set(shared.DefaultDifficultyConstantFactor)}
	}
	if cfg.DefaultDifficulty < cfg.MinDifficulty {
		return nil, fmt.Errorf("default difficulty %d is below the minimum %d", cfg.DefaultDifficulty, cfg.MinDifficulty)
	}
	recent, err := lru.New(cfg.RecentPointsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating recent points cache: %w", err)
	}

	p := &Pool{
		cfg:              cfg,
		targetPuzzleHash: targetPuzzleHash,
		difficulty:       cfg.difficultyParams(),
		itersLimit:       shared.IterationsLimit(cfg.PoolSubSlotIters),
		node:             svc.Node,
		wallet:           svc.Wallet,
		prims:            svc.Primitives,
		verifier:         svc.Verifier,
		registry:         svc.Registry,
		linker:           svc.Linker,
		events:           svc.Events,
		pending:          make(chan pendingPartial, cfg.ConfirmationQueueSize),
		recent:           recent,
		cooldowns:        newCooldowns(),
		clock:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.resolver = singleton.New(
		singleton.Config{
			TargetPuzzleHash:              targetPuzzleHash,
			RelativeLockHeight:            cfg.RelativeLockHeight,
			ConfirmationSecurityThreshold: cfg.ConfirmationSecurityThreshold,
			GenesisChallenge:              p.genesis,
		},
		svc.Node,
		svc.Primitives,
		svc.Registry,
		p.Peak,
	)
	return p, nil
}

// Peak returns the latest chain height seen by the peak loop.
func (p *Pool) Peak() uint32 {
	return p.peak.Load()
}

func (p *Pool) WalletSynced() bool {
	return p.walletSynced.Load()
}

func (p *Pool) Info() types.PoolInfo {
	return types.PoolInfo{
		Description:                p.cfg.Description,
		Fee:                        p.cfg.Fee,
		LogoURL:                    p.cfg.LogoURL,
		MinimumDifficulty:          p.cfg.MinDifficulty,
		Name:                       p.cfg.Name,
		ProtocolVersion:            types.PoolProtocolVersion,
		RelativeLockHeight:         p.cfg.RelativeLockHeight,
		TargetPuzzleHash:           p.targetPuzzleHash,
		AuthenticationTokenTimeout: p.cfg.AuthenticationTokenTimeout,
	}
}

// Status is a snapshot of the pool for operators.
type Status struct {
	Peak            uint32
	WalletSynced    bool
	PendingPartials int
	Cooldowns       int
}

func (p *Pool) Status() Status {
	return Status{
		Peak:            p.Peak(),
		WalletSynced:    p.WalletSynced(),
		PendingPartials: len(p.pending),
		Cooldowns:       p.cooldowns.size(),
	}
}

// Run logs into the wallet, reads the chain peak and then keeps the peak up to
// date and confirms admitted partials until ctx is cancelled.
func (p *Pool) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("pool")
	ctx = logging.NewContext(ctx, logger)
	defer p.cooldowns.stop()

	if p.wallet != nil {
		if err := p.wallet.LogIn(ctx, p.cfg.WalletFingerprint); err != nil {
			return fmt.Errorf("logging into wallet: %w", err)
		}
	}
	if err := p.updatePeak(ctx); err != nil {
		return fmt.Errorf("reading chain peak: %w", err)
	}
	logger.Info("pool started", zap.Uint32("peak", p.Peak()), zap.Object("config", p.cfg))

	var eg errgroup.Group
	eg.Go(func() error {
		p.peakLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		p.confirmLoop(ctx)
		return nil
	})
	err := eg.Wait()
	p.checks.Wait()
	logger.Info("pool stopped")
	return err
}

func (p *Pool) peakLoop(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("peak")
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping peak loop")
			return
		case <-time.After(p.cfg.PeakInterval):
		}
		if err := p.updatePeak(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("failed to update chain peak", zap.Error(err))
		}
	}
}

func (p *Pool) updatePeak(ctx context.Context) error {
	state, err := p.node.GetBlockchainState(ctx)
	if err != nil {
		return err
	}
	p.peak.Store(state.PeakHeight)
	peakHeight.Set(float64(state.PeakHeight))
	if p.wallet == nil {
		return nil
	}
	synced, err := p.wallet.Synced(ctx)
	if err != nil {
		return fmt.Errorf("reading wallet sync state: %w", err)
	}
	p.walletSynced.Store(synced)
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
