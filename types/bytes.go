package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Bytes32 is a 32 byte value such as a launcher id, a puzzle hash or a coin name.
type Bytes32 [32]byte

// G1Element is a compressed BLS12-381 G1 point (public key).
type G1Element [48]byte

// G2Element is a compressed BLS12-381 G2 point (signature).
type G2Element [96]byte

// HexBytes is a variable length byte string encoded as 0x-prefixed hex in JSON.
type HexBytes []byte

func decodeHex(text []byte) ([]byte, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(string(text), "0x"), "0X")
	return hex.DecodeString(s)
}

func decodeFixed(dst, text []byte) error {
	raw, err := decodeHex(text)
	if err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}

func encodeHex(b []byte) []byte {
	out := make([]byte, 2+hex.EncodedLen(len(b)))
	copy(out, "0x")
	hex.Encode(out[2:], b)
	return out
}

// Bytes32FromHex parses a (optionally 0x-prefixed) hex string.
func Bytes32FromHex(s string) (Bytes32, error) {
	var b Bytes32
	err := b.UnmarshalText([]byte(s))
	return b, err
}

func (b Bytes32) String() string { return hex.EncodeToString(b[:]) }

func (b Bytes32) MarshalText() ([]byte, error) { return encodeHex(b[:]), nil }

func (b *Bytes32) UnmarshalText(text []byte) error { return decodeFixed(b[:], text) }

func (g G1Element) String() string { return hex.EncodeToString(g[:]) }

func (g G1Element) MarshalText() ([]byte, error) { return encodeHex(g[:]), nil }

func (g *G1Element) UnmarshalText(text []byte) error { return decodeFixed(g[:], text) }

func (g G2Element) String() string { return hex.EncodeToString(g[:]) }

func (g G2Element) MarshalText() ([]byte, error) { return encodeHex(g[:]), nil }

func (g *G2Element) UnmarshalText(text []byte) error { return decodeFixed(g[:], text) }

func (h HexBytes) String() string { return hex.EncodeToString(h) }

func (h HexBytes) MarshalText() ([]byte, error) { return encodeHex(h), nil }

func (h *HexBytes) UnmarshalText(text []byte) error {
	raw, err := decodeHex(text)
	if err != nil {
		return err
	}
	*h = raw
	return nil
}
