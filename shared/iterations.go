package shared

import (
	"math"
	"math/big"
)

// DefaultDifficultyConstantFactor is the mainnet difficulty constant factor (2^67).
var DefaultDifficultyConstantFactor = new(big.Int).Lsh(big.NewInt(1), 67)

// DefaultPoolSubSlotIters is the number of iterations in a pool sub slot.
const DefaultPoolSubSlotIters uint64 = 37_600_000_000

// IterationsLimit is the per-difficulty ceiling of required iterations a partial may need.
// It must be the same for every pool in the network.
func IterationsLimit(poolSubSlotIters uint64) uint64 {
	return poolSubSlotIters / 64
}

// ExpectedPlotSize returns the expected number of entries of a plot of size k:
// (2k + 1) * 2^(k-1).
func ExpectedPlotSize(k uint8) *big.Int {
	size := new(big.Int).Lsh(big.NewInt(1), uint(k)-1)
	return size.Mul(size, big.NewInt(int64(2*int(k)+1)))
}

// RequiredIterations computes how many iterations a proof with the given quality needs
// at the given difficulty. The result is never below 1.
func RequiredIterations(
	difficultyConstantFactor *big.Int,
	quality, spHash [HashSize]byte,
	size uint8,
	difficulty uint64,
) uint64 {
	spQuality := StdHash(quality[:], spHash[:])

	numerator := new(big.Int).SetUint64(difficulty)
	numerator.Mul(numerator, difficultyConstantFactor)
	numerator.Mul(numerator, new(big.Int).SetBytes(spQuality[:]))

	denominator := new(big.Int).Lsh(big.NewInt(1), 256)
	denominator.Mul(denominator, ExpectedPlotSize(size))

	iters := numerator.Quo(numerator, denominator)
	switch {
	case !iters.IsUint64():
		return math.MaxUint64
	case iters.Uint64() < 1:
		return 1
	default:
		return iters.Uint64()
	}
}
