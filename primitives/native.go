package primitives

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/farmpool/poold/types"
)

// maxPoolStateSize bounds a serialized PoolState; the pool url is at most a few hundred bytes.
const maxPoolStateSize = 4096

const coinSize = 32 + 32 + 8

var ErrNative = errors.New("native primitive failed")

// Native implements Primitives with the shared library built from the chain's rust crates.
// Every function returns 1 on success, 0 for "no result" and a negative code on failure.
// Slices are passed as pointers with lengths; spends are serialized with CoinSpend.Bytes.
type Native struct {
	lib uintptr

	verifyProofOfSpace func(proof *byte, proofLen uint64, challenge, spHash, qualityOut *byte) int32
	poolStateFromSpend func(spend *byte, spendLen uint64, out *byte, outCap uint64, outLen *uint64) int32
	nextSingletonCoin  func(spend *byte, spendLen uint64, coinOut *byte) int32
	delayedPuzzleInfo  func(spend *byte, spendLen uint64, delayTimeOut *uint64, delayPuzzleHashOut *byte) int32
	launcherToP2       func(launcherID *byte, delayTime uint64, delayPuzzleHash, out *byte) int32
	validatePuzzleHash func(
		launcherID, delayPuzzleHash *byte,
		delayTime uint64,
		state *byte, stateLen uint64,
		puzzleHash, genesisChallenge *byte,
	) int32
}

// OpenNative loads the library at path.
func OpenNative(path string) (*Native, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("loading primitives library %s: %w", path, err)
	}
	n := &Native{lib: lib}
	purego.RegisterLibFunc(&n.verifyProofOfSpace, lib, "pool_verify_proof_of_space")
	purego.RegisterLibFunc(&n.poolStateFromSpend, lib, "pool_state_from_spend")
	purego.RegisterLibFunc(&n.nextSingletonCoin, lib, "pool_next_singleton_coin")
	purego.RegisterLibFunc(&n.delayedPuzzleInfo, lib, "pool_delayed_puzzle_info")
	purego.RegisterLibFunc(&n.launcherToP2, lib, "pool_launcher_to_p2_puzzle_hash")
	purego.RegisterLibFunc(&n.validatePuzzleHash, lib, "pool_validate_puzzle_hash")
	return n, nil
}

func (n *Native) Close() error {
	return purego.Dlclose(n.lib)
}

var empty byte

// bytesPtr returns a pointer to the first byte of s, never nil.
func bytesPtr(s []byte) *byte {
	if len(s) == 0 {
		return &empty
	}
	return &s[0]
}

func checkResult(name string, code int32) (bool, error) {
	switch {
	case code == 1:
		return true, nil
	case code == 0:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s returned %d", ErrNative, name, code)
	}
}

func (n *Native) VerifyProofOfSpace(proof *types.ProofOfSpace, challenge, spHash types.Bytes32) (*types.Bytes32, error) {
	data := proof.Bytes()
	var quality types.Bytes32
	code := n.verifyProofOfSpace(
		bytesPtr(data), uint64(len(data)),
		bytesPtr(challenge[:]), bytesPtr(spHash[:]), bytesPtr(quality[:]),
	)
	ok, err := checkResult("verify_proof_of_space", code)
	if !ok || err != nil {
		return nil, err
	}
	return &quality, nil
}

func (n *Native) PoolStateFromSpend(spend *types.CoinSpend) (*types.PoolState, error) {
	data := spend.Bytes()
	out := make([]byte, maxPoolStateSize)
	var outLen uint64
	code := n.poolStateFromSpend(
		bytesPtr(data), uint64(len(data)),
		bytesPtr(out), uint64(len(out)), &outLen,
	)
	ok, err := checkResult("pool_state_from_spend", code)
	if !ok || err != nil {
		return nil, err
	}
	if outLen > uint64(len(out)) {
		return nil, fmt.Errorf("%w: pool state of %d bytes", ErrMalformed, outLen)
	}
	return types.ParsePoolState(out[:outLen])
}

func (n *Native) NextSingletonCoin(spend *types.CoinSpend) (*types.Coin, error) {
	data := spend.Bytes()
	out := make([]byte, coinSize)
	code := n.nextSingletonCoin(bytesPtr(data), uint64(len(data)), bytesPtr(out))
	ok, err := checkResult("next_singleton_coin", code)
	if !ok || err != nil {
		return nil, err
	}
	return decodeCoin(out)
}

func decodeCoin(data []byte) (*types.Coin, error) {
	if len(data) != coinSize {
		return nil, fmt.Errorf("%w: coin of %d bytes", ErrMalformed, len(data))
	}
	var coin types.Coin
	copy(coin.ParentCoinInfo[:], data[:32])
	copy(coin.PuzzleHash[:], data[32:64])
	coin.Amount = binary.BigEndian.Uint64(data[64:])
	return &coin, nil
}

func (n *Native) DelayedPuzzleInfo(launcherSpend *types.CoinSpend) (uint64, types.Bytes32, error) {
	data := launcherSpend.Bytes()
	var (
		delayTime       uint64
		delayPuzzleHash types.Bytes32
	)
	code := n.delayedPuzzleInfo(
		bytesPtr(data), uint64(len(data)),
		&delayTime, bytesPtr(delayPuzzleHash[:]),
	)
	ok, err := checkResult("delayed_puzzle_info", code)
	switch {
	case err != nil:
		return 0, types.Bytes32{}, err
	case !ok:
		return 0, types.Bytes32{}, fmt.Errorf("%w: launcher spend has no delay info", ErrMalformed)
	}
	return delayTime, delayPuzzleHash, nil
}

func (n *Native) LauncherToP2PuzzleHash(launcherID types.Bytes32, delayTime uint64, delayPuzzleHash types.Bytes32) (types.Bytes32, error) {
	var out types.Bytes32
	code := n.launcherToP2(bytesPtr(launcherID[:]), delayTime, bytesPtr(delayPuzzleHash[:]), bytesPtr(out[:]))
	ok, err := checkResult("launcher_to_p2_puzzle_hash", code)
	if err == nil && !ok {
		err = fmt.Errorf("%w: launcher_to_p2_puzzle_hash returned no result", ErrNative)
	}
	return out, err
}

func (n *Native) ValidatePuzzleHash(
	launcherID, delayPuzzleHash types.Bytes32,
	delayTime uint64,
	state *types.PoolState,
	puzzleHash, genesisChallenge types.Bytes32,
) (bool, error) {
	stateData := state.Bytes()
	code := n.validatePuzzleHash(
		bytesPtr(launcherID[:]), bytesPtr(delayPuzzleHash[:]),
		delayTime,
		bytesPtr(stateData), uint64(len(stateData)),
		bytesPtr(puzzleHash[:]), bytesPtr(genesisChallenge[:]),
	)
	return checkResult("validate_puzzle_hash", code)
}
