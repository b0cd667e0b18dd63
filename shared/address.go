package shared

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

var ErrInvalidAddress = errors.New("invalid address")

// DecodePuzzleHash decodes a bech32m address (e.g. xch1...) into its puzzle hash.
func DecodePuzzleHash(address string) ([HashSize]byte, error) {
	var ph [HashSize]byte
	_, data, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return ph, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if version != bech32.VersionM {
		return ph, fmt.Errorf("%w: not a bech32m address", ErrInvalidAddress)
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return ph, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(decoded) != HashSize {
		return ph, fmt.Errorf("%w: puzzle hash has %d bytes", ErrInvalidAddress, len(decoded))
	}
	copy(ph[:], decoded)
	return ph, nil
}

// EncodePuzzleHash encodes a puzzle hash as a bech32m address with the given prefix.
func EncodePuzzleHash(ph [HashSize]byte, prefix string) (string, error) {
	data, err := bech32.ConvertBits(ph[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(prefix, data)
}
