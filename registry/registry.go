// Package registry persists farmer records and their confirmed partials.
package registry

import (
	"context"
	"errors"
	"time"

	"github.com/farmpool/poold/types"
)

var (
	ErrNotFound      = errors.New("farmer not found")
	ErrAlreadyExists = errors.New("farmer already exists")
)

//go:generate mockgen -package mocks -destination mocks/registry.go . Registry

// Registry stores one FarmerRecord per launcher id.
//
// Single calls are atomic. Sequences that read a record and write it back must
// hold Lock for that launcher id; calls made while holding it must not lock again.
type Registry interface {
	Get(ctx context.Context, launcherID types.Bytes32) (*types.FarmerRecord, error)
	// Create fails with ErrAlreadyExists if the launcher id is known.
	Create(ctx context.Context, record *types.FarmerRecord) error
	// Update replaces the farmer controlled fields: authentication key, payout
	// instructions and difficulty.
	Update(ctx context.Context, record *types.FarmerRecord) error
	UpdateDifficulty(ctx context.Context, launcherID types.Bytes32, difficulty uint64) error
	UpdateSingletonState(
		ctx context.Context,
		launcherID types.Bytes32,
		tip *types.CoinSpend,
		state *types.PoolState,
		isMember bool,
	) error
	// AddPartial records a confirmed partial and credits its difficulty as points.
	AddPartial(ctx context.Context, launcherID types.Bytes32, timestamp time.Time, difficulty uint64) error
	// RecentPartials returns up to count confirmed partials, most recent first.
	RecentPartials(ctx context.Context, launcherID types.Bytes32, count int) ([]types.Partial, error)
	// Lock blocks until no other sequence holds the lock of launcherID.
	Lock(launcherID types.Bytes32) (unlock func())
	Close() error
}
