package types

import "fmt"

// PoolProtocolVersion is the pool protocol version this pool speaks.
const PoolProtocolVersion uint8 = 1

type PoolSingletonState uint8

const (
	SelfPooling   PoolSingletonState = 1
	LeavingPool   PoolSingletonState = 2
	FarmingToPool PoolSingletonState = 3
)

func (s PoolSingletonState) String() string {
	switch s {
	case SelfPooling:
		return "SELF_POOLING"
	case LeavingPool:
		return "LEAVING_POOL"
	case FarmingToPool:
		return "FARMING_TO_POOL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

// PoolState is the pool membership state committed in a plot NFT singleton.
type PoolState struct {
	Version            uint8              `json:"version"`
	State              PoolSingletonState `json:"state"`
	TargetPuzzleHash   Bytes32            `json:"target_puzzle_hash"`
	OwnerPubkey        G1Element          `json:"owner_pubkey"`
	PoolURL            *string            `json:"pool_url"`
	RelativeLockHeight uint32             `json:"relative_lock_height"`
}

func (p *PoolState) Bytes() []byte {
	var e Encoder
	e.Uint8(p.Version)
	e.Uint8(uint8(p.State))
	e.Raw(p.TargetPuzzleHash[:])
	e.Raw(p.OwnerPubkey[:])
	e.OptionalString(p.PoolURL)
	e.Uint32(p.RelativeLockHeight)
	return e.Data()
}

func ParsePoolState(data []byte) (*PoolState, error) {
	d := NewDecoder(data)
	var p PoolState
	p.Version = d.Uint8()
	p.State = PoolSingletonState(d.Uint8())
	d.Raw(p.TargetPuzzleHash[:])
	d.Raw(p.OwnerPubkey[:])
	p.PoolURL = d.OptionalString()
	p.RelativeLockHeight = d.Uint32()
	if err := d.Finish(); err != nil {
		return nil, fmt.Errorf("parsing pool state: %w", err)
	}
	return &p, nil
}

func (p *PoolState) Equal(other *PoolState) bool {
	if p == nil || other == nil {
		return p == other
	}
	return string(p.Bytes()) == string(other.Bytes())
}
