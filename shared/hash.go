package shared

import (
	"github.com/minio/sha256-simd" // simd optimized sha256 computation
)

// HashSize is the size of every digest produced by StdHash.
const HashSize = sha256.Size

// StdHash returns the sha256 digest of the concatenation of data.
func StdHash(data ...[]byte) [HashSize]byte {
	hasher := sha256.New()
	for _, d := range data {
		_, _ = hasher.Write(d)
	}
	var digest [HashSize]byte
	hasher.Sum(digest[:0])
	return digest
}
