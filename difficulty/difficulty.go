// Package difficulty adjusts the difficulty of a farmer so that it sends a
// target number of partials per time window.
package difficulty

import (
	"math/big"
	"time"

	"github.com/farmpool/poold/types"
)

const (
	// A farmer silent for this long gets its difficulty divided by 5.
	longSilence = 3 * time.Hour
	// A farmer silent for this long gets its difficulty divided by 1.5.
	shortSilence = time.Hour
)

type Params struct {
	// TargetCount is the number of partials a farmer should send per TimeTarget.
	TargetCount   int
	TimeTarget    time.Duration
	MinDifficulty uint64
}

// Next returns the difficulty the farmer should use from now on.
// Recent partials are ordered newest first and hold at most TargetCount entries.
func (p Params) Next(recent []types.Partial, current uint64, now time.Time) uint64 {
	// A single partial is no rate, not even a silent one.
	if len(recent) < 2 {
		return p.floor(current)
	}
	// Partials sent at an older difficulty say nothing about the current one.
	for _, partial := range recent {
		if partial.Difficulty != current {
			return p.floor(current)
		}
	}

	silence := now.Sub(recent[0].Timestamp)
	switch {
	case silence > longSilence:
		return p.floor(current / 5)
	case silence > shortSilence:
		return p.floor(current/3*2 + current%3*2/3)
	}

	taken := recent[0].Timestamp.Sub(recent[len(recent)-1].Timestamp)
	if len(recent) < p.TargetCount && taken < p.TimeTarget {
		return p.floor(current)
	}
	if taken <= 0 {
		return p.floor(current)
	}
	if taken < p.TimeTarget {
		// extrapolate the time it would take to send TargetCount partials
		taken = time.Duration(int64(taken) * int64(p.TargetCount) / int64(len(recent)))
	}

	next := new(big.Int).SetUint64(current)
	next.Mul(next, big.NewInt(int64(p.TimeTarget)))
	next.Quo(next, big.NewInt(int64(taken)))
	if !next.IsUint64() {
		return p.floor(current)
	}
	return p.floor(next.Uint64())
}

func (p Params) floor(difficulty uint64) uint64 {
	if difficulty < p.MinDifficulty {
		return p.MinDifficulty
	}
	return difficulty
}
