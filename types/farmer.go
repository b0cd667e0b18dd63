package types

import "time"

// FarmerRecord is everything the pool keeps about one plot NFT.
type FarmerRecord struct {
	LauncherID              Bytes32
	P2SingletonPuzzleHash   Bytes32
	DelayTime               uint64
	DelayPuzzleHash         Bytes32
	AuthenticationPublicKey G1Element
	SingletonTip            *CoinSpend
	SingletonTipState       *PoolState
	Points                  uint64
	Difficulty              uint64
	PayoutInstructions      string
	IsPoolMember            bool
}

// Partial is a confirmed partial in a farmer's history.
type Partial struct {
	Timestamp  time.Time
	Difficulty uint64
}
