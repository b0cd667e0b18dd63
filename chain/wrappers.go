package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/types"
)

const MaxBackoff = time.Second * 30

// caching keeps coin spends, which never change once the spending block is buried.
type caching struct {
	FullNode
	spends *lru.Cache
}

type spendKey struct {
	coinID types.Bytes32
	height uint32
}

func (c *caching) GetCoinSpend(ctx context.Context, record *types.CoinRecord) (*types.CoinSpend, error) {
	key := spendKey{record.Coin.Name(), record.SpentBlockIndex}
	if spend, ok := c.spends.Get(key); ok {
		logging.FromContext(ctx).Debug("retrieved coin spend from the cache", zap.Stringer("coin", key.coinID))
		// SAFETY: type assertion will never panic as we insert only `*types.CoinSpend` values.
		return spend.(*types.CoinSpend), nil
	}
	spend, err := c.FullNode.GetCoinSpend(ctx, record)
	if err == nil && spend != nil {
		c.spends.Add(key, spend)
	}
	return spend, err
}

// NewCaching caches up to size coin spends fetched through node.
func NewCaching(size int, node FullNode) (FullNode, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &caching{FullNode: node, spends: cache}, nil
}

// retrying repeats node calls that failed to reach the node.
// Answers of the node, including "not found", are returned immediately.
type retrying struct {
	backoffBase       time.Duration
	backoffMultiplier float64
	maxRetries        uint
	node              FullNode
}

func retry[T any](ctx context.Context, r *retrying, method string, call func() (T, error)) (T, error) {
	logger := logging.FromContext(ctx).With(zap.String("method", method))
	timer := time.NewTimer(0)
	<-timer.C
	delay := r.backoffBase

	var (
		result T
		err    error
	)
	for attempt := uint(0); ; attempt++ {
		result, err = call()
		if err == nil || !errors.Is(err, ErrRPC) || attempt+1 >= r.maxRetries {
			return result, err
		}
		timer.Reset(delay)
		logger.Info("retrying node call", zap.Uint("retry", attempt+1), zap.Duration("delay", delay), zap.Error(err))
		select {
		case <-timer.C:
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			logger.Debug("retry interrupted", zap.Error(ctx.Err()))
			return result, fmt.Errorf("%w: %v", err, ctx.Err())
		}
		delay = time.Duration(float64(delay) * r.backoffMultiplier)
		if delay > MaxBackoff {
			delay = MaxBackoff
		}
	}
}

func (r *retrying) GetBlockchainState(ctx context.Context) (*BlockchainState, error) {
	return retry(ctx, r, "get_blockchain_state", func() (*BlockchainState, error) {
		return r.node.GetBlockchainState(ctx)
	})
}

func (r *retrying) GetTimingAnchor(ctx context.Context, spHash types.Bytes32, eos bool) (*types.TimingAnchor, error) {
	return retry(ctx, r, "get_recent_signage_point_or_eos", func() (*types.TimingAnchor, error) {
		return r.node.GetTimingAnchor(ctx, spHash, eos)
	})
}

func (r *retrying) GetCoinRecord(ctx context.Context, coinID types.Bytes32) (*types.CoinRecord, error) {
	return retry(ctx, r, "get_coin_record_by_name", func() (*types.CoinRecord, error) {
		return r.node.GetCoinRecord(ctx, coinID)
	})
}

func (r *retrying) GetCoinSpend(ctx context.Context, record *types.CoinRecord) (*types.CoinSpend, error) {
	return retry(ctx, r, "get_puzzle_and_solution", func() (*types.CoinSpend, error) {
		return r.node.GetCoinSpend(ctx, record)
	})
}

// NewRetrying makes up to maxRetries attempts per call, backing off exponentially.
func NewRetrying(node FullNode, maxRetries uint, backoffBase time.Duration, backoffMultiplier float64) FullNode {
	if maxRetries == 0 {
		maxRetries = 1
	}
	return &retrying{
		maxRetries:        maxRetries,
		node:              node,
		backoffBase:       backoffBase,
		backoffMultiplier: backoffMultiplier,
	}
}
