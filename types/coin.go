package types

import (
	"encoding/binary"
	"math/bits"

	"github.com/farmpool/poold/shared"
)

type Coin struct {
	ParentCoinInfo Bytes32 `json:"parent_coin_info"`
	PuzzleHash     Bytes32 `json:"puzzle_hash"`
	Amount         uint64  `json:"amount"`
}

// Name is the coin id: hash of the parent, the puzzle hash and the amount
// encoded as a minimal signed big endian integer.
func (c Coin) Name() Bytes32 {
	return shared.StdHash(c.ParentCoinInfo[:], c.PuzzleHash[:], amountBytes(c.Amount))
}

func amountBytes(amount uint64) []byte {
	if amount == 0 {
		return nil
	}
	// one extra bit for the sign
	n := (bits.Len64(amount) + 8) >> 3
	var buf [9]byte
	binary.BigEndian.PutUint64(buf[1:], amount)
	return buf[9-n:]
}

func (c *Coin) encode(e *Encoder) {
	e.Raw(c.ParentCoinInfo[:])
	e.Raw(c.PuzzleHash[:])
	e.Uint64(c.Amount)
}

func (c *Coin) decode(d *Decoder) {
	d.Raw(c.ParentCoinInfo[:])
	d.Raw(c.PuzzleHash[:])
	c.Amount = d.Uint64()
}

type CoinRecord struct {
	Coin                Coin   `json:"coin"`
	ConfirmedBlockIndex uint32 `json:"confirmed_block_index"`
	SpentBlockIndex     uint32 `json:"spent_block_index"`
	Spent               bool   `json:"spent"`
	Coinbase            bool   `json:"coinbase"`
	Timestamp           uint64 `json:"timestamp"`
}

// CoinSpend is a spent coin with the revealed puzzle and the solution it was spent with.
type CoinSpend struct {
	Coin         Coin     `json:"coin"`
	PuzzleReveal HexBytes `json:"puzzle_reveal"`
	Solution     HexBytes `json:"solution"`
}

// Bytes serializes the spend. Puzzle and solution are length prefixed.
func (s *CoinSpend) Bytes() []byte {
	var e Encoder
	s.Coin.encode(&e)
	e.Bytes(s.PuzzleReveal)
	e.Bytes(s.Solution)
	return e.Data()
}

func ParseCoinSpend(data []byte) (*CoinSpend, error) {
	d := NewDecoder(data)
	var s CoinSpend
	s.Coin.decode(d)
	s.PuzzleReveal = d.Bytes()
	s.Solution = d.Bytes()
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *CoinSpend) Equal(other *CoinSpend) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Coin == other.Coin &&
		string(s.PuzzleReveal) == string(other.PuzzleReveal) &&
		string(s.Solution) == string(other.Solution)
}
