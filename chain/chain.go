// Package chain talks to the full node and wallet services.
package chain

import (
	"context"
	"errors"

	"github.com/farmpool/poold/types"
)

// ErrRPC reports a failed call to a node or wallet service.
var ErrRPC = errors.New("rpc call failed")

//go:generate mockgen -package mocks -destination mocks/chain.go . FullNode,Wallet

type BlockchainState struct {
	PeakHeight uint32
	Synced     bool
}

// FullNode queries the blockchain. Lookups of things the node does not know
// return a nil result and a nil error.
type FullNode interface {
	GetBlockchainState(ctx context.Context) (*BlockchainState, error)
	// GetTimingAnchor looks up a signage point, or an end of sub slot by its challenge hash.
	GetTimingAnchor(ctx context.Context, spHash types.Bytes32, endOfSubSlot bool) (*types.TimingAnchor, error)
	GetCoinRecord(ctx context.Context, coinID types.Bytes32) (*types.CoinRecord, error)
	// GetCoinSpend returns how a spent coin was spent.
	GetCoinSpend(ctx context.Context, record *types.CoinRecord) (*types.CoinSpend, error)
}

type Wallet interface {
	LogIn(ctx context.Context, fingerprint uint32) error
	Synced(ctx context.Context) (bool, error)
}
