// Package signing verifies BLS12-381 signatures of the augmented scheme
// farmers sign their requests with.
package signing

import (
	"errors"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/farmpool/poold/types"
)

var (
	ErrSeedTooShort     = errors.New("seed must be at least 32 bytes")
	ErrSignatureInvalid = errors.New("signature is invalid")
)

var augDST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_AUG_")

//go:generate mockgen -package mocks -destination mocks/verifier.go . Verifier

type Verifier interface {
	// Verify checks a signature of msg by pk.
	Verify(pk types.G1Element, msg []byte, sig types.G2Element) bool
	// AggregateVerify checks an aggregate of one signature per (pk, msg) pair.
	AggregateVerify(pks []types.G1Element, msgs [][]byte, sig types.G2Element) bool
}

// BLS verifies signatures of the AugSchemeMPL scheme, where every message is
// prefixed with the signer's public key.
type BLS struct{}

func augment(pk types.G1Element, msg []byte) []byte {
	out := make([]byte, 0, len(pk)+len(msg))
	return append(append(out, pk[:]...), msg...)
}

func (BLS) Verify(pk types.G1Element, msg []byte, sig types.G2Element) bool {
	return BLS{}.AggregateVerify([]types.G1Element{pk}, [][]byte{msg}, sig)
}

func (BLS) AggregateVerify(pks []types.G1Element, msgs [][]byte, sig types.G2Element) bool {
	if len(pks) == 0 || len(pks) != len(msgs) {
		return false
	}
	signature := new(blst.P2Affine).Uncompress(sig[:])
	if signature == nil {
		return false
	}
	keys := make([]*blst.P1Affine, len(pks))
	augmented := make([]blst.Message, len(pks))
	for i, pk := range pks {
		if keys[i] = new(blst.P1Affine).Uncompress(pk[:]); keys[i] == nil {
			return false
		}
		augmented[i] = augment(pk, msgs[i])
	}
	return signature.AggregateVerify(true, keys, true, augmented, augDST)
}

// SecretKey signs with the augmented scheme.
type SecretKey struct {
	sk *blst.SecretKey
	pk types.G1Element
}

// KeyGen derives a secret key from a seed of at least 32 bytes.
func KeyGen(seed []byte) (*SecretKey, error) {
	if len(seed) < 32 {
		return nil, ErrSeedTooShort
	}
	sk := blst.KeyGen(seed)
	var pk types.G1Element
	copy(pk[:], new(blst.P1Affine).From(sk).Compress())
	return &SecretKey{sk: sk, pk: pk}, nil
}

func (k *SecretKey) PublicKey() types.G1Element {
	return k.pk
}

func (k *SecretKey) Sign(msg []byte) types.G2Element {
	var sig types.G2Element
	copy(sig[:], new(blst.P2Affine).Sign(k.sk, augment(k.pk, msg), augDST).Compress())
	return sig
}

// Aggregate combines signatures into one.
func Aggregate(sigs ...types.G2Element) (types.G2Element, error) {
	var out types.G2Element
	points := make([]*blst.P2Affine, len(sigs))
	for i, sig := range sigs {
		if points[i] = new(blst.P2Affine).Uncompress(sig[:]); points[i] == nil {
			return out, fmt.Errorf("%w: signature %d", ErrSignatureInvalid, i)
		}
	}
	agg := new(blst.P2Aggregate)
	if !agg.Aggregate(points, true) {
		return out, ErrSignatureInvalid
	}
	copy(out[:], agg.ToAffine().Compress())
	return out, nil
}
