// Package primitives exposes the chain specific cryptography the pool relies on:
// proof of space verification and decoding of plot NFT singleton puzzles.
package primitives

import (
	"errors"

	"github.com/farmpool/poold/types"
)

var ErrMalformed = errors.New("malformed input")

//go:generate mockgen -package mocks -destination mocks/primitives.go . Primitives

type Primitives interface {
	// VerifyProofOfSpace returns the quality string of the proof, or nil if the proof is invalid.
	VerifyProofOfSpace(proof *types.ProofOfSpace, challenge, spHash types.Bytes32) (*types.Bytes32, error)
	// PoolStateFromSpend returns the pool state committed by a singleton spend,
	// or nil if the spend does not change it.
	PoolStateFromSpend(spend *types.CoinSpend) (*types.PoolState, error)
	// NextSingletonCoin returns the singleton coin created by spend, or nil
	// if the singleton does not continue.
	NextSingletonCoin(spend *types.CoinSpend) (*types.Coin, error)
	// DelayedPuzzleInfo extracts the escape delay parameters from the launcher spend.
	DelayedPuzzleInfo(launcherSpend *types.CoinSpend) (delayTime uint64, delayPuzzleHash types.Bytes32, err error)
	// LauncherToP2PuzzleHash derives the puzzle hash pool rewards of the singleton are paid to.
	LauncherToP2PuzzleHash(launcherID types.Bytes32, delayTime uint64, delayPuzzleHash types.Bytes32) (types.Bytes32, error)
	// ValidatePuzzleHash checks that puzzleHash is the singleton puzzle for the given state.
	ValidatePuzzleHash(
		launcherID, delayPuzzleHash types.Bytes32,
		delayTime uint64,
		state *types.PoolState,
		puzzleHash, genesisChallenge types.Bytes32,
	) (bool, error)
}
