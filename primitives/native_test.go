package primitives

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/farmpool/poold/types"
)

func TestDecodeCoin(t *testing.T) {
	t.Parallel()
	data := make([]byte, coinSize)
	data[0] = 1
	data[32] = 2
	binary.BigEndian.PutUint64(data[64:], 1750000000000)

	coin, err := decodeCoin(data)
	require.NoError(t, err)
	require.Equal(t, &types.Coin{ParentCoinInfo: types.Bytes32{1}, PuzzleHash: types.Bytes32{2}, Amount: 1750000000000}, coin)

	_, err = decodeCoin(data[:10])
	require.ErrorIs(t, err, ErrMalformed)
}

func TestCheckResult(t *testing.T) {
	t.Parallel()
	ok, err := checkResult("f", 1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = checkResult("f", 0)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = checkResult("f", -3)
	require.ErrorIs(t, err, ErrNative)
}

func TestBytesPtr(t *testing.T) {
	t.Parallel()
	require.NotNil(t, bytesPtr(nil))
	require.NotNil(t, bytesPtr([]byte{}))
	b := []byte{1, 2}
	require.Same(t, &b[0], bytesPtr(b))
}

func TestOpenMissingLibrary(t *testing.T) {
	t.Parallel()
	_, err := OpenNative(filepath.Join(t.TempDir(), "libmissing.so"))
	require.Error(t, err)
}
