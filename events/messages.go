package events

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var ErrMalformedMessage = errors.New("malformed event message")

// FarmerFlag tells consumers which change a FarmerMsg carries.
type FarmerFlag uint32

const (
	FarmerAdded FarmerFlag = iota
	FarmerUpdated
	FarmerSingletonChanged
	FarmerDifficultyChanged
)

// ShareMsg credits a confirmed partial to an account.
type ShareMsg struct {
	LauncherID string
	Difficulty uint64
	Timestamp  uint64
	UserID     uint64
}

const (
	shareLauncherID protowire.Number = 1
	shareDifficulty protowire.Number = 2
	shareTimestamp  protowire.Number = 3
	shareUserID     protowire.Number = 4
)

func (m *ShareMsg) Marshal() []byte {
	var b []byte
	b = appendString(b, shareLauncherID, m.LauncherID)
	b = appendVarint(b, shareDifficulty, m.Difficulty)
	b = appendVarint(b, shareTimestamp, m.Timestamp)
	b = appendVarint(b, shareUserID, m.UserID)
	return b
}

func (m *ShareMsg) Unmarshal(b []byte) error {
	*m = ShareMsg{}
	return consume(b, func(num protowire.Number, v uint64, raw []byte) {
		switch num {
		case shareLauncherID:
			m.LauncherID = string(raw)
		case shareDifficulty:
			m.Difficulty = v
		case shareTimestamp:
			m.Timestamp = v
		case shareUserID:
			m.UserID = v
		}
	})
}

// FarmerMsg mirrors a farmer record change. Empty strings, empty byte slices and
// zero counters are left out of the encoding.
type FarmerMsg struct {
	LauncherID              string
	SingletonPuzzleHash     string
	DelayTime               uint64
	DelayPuzzleHash         string
	AuthenticationPublicKey []byte
	SingletonTip            []byte
	SingletonTipState       []byte
	Points                  uint64
	Difficulty              uint64
	PayoutInstructions      string
	IsPoolMember            bool
	Timestamp               uint64
	Flag                    FarmerFlag
}

const (
	farmerLauncherID protowire.Number = iota + 1
	farmerSingletonPuzzleHash
	farmerDelayTime
	farmerDelayPuzzleHash
	farmerAuthenticationPublicKey
	farmerSingletonTip
	farmerSingletonTipState
	farmerPoints
	farmerDifficulty
	farmerPayoutInstructions
	farmerIsPoolMember
	farmerTimestamp
	farmerFlag
)

func (m *FarmerMsg) Marshal() []byte {
	var b []byte
	b = appendString(b, farmerLauncherID, m.LauncherID)
	if m.SingletonPuzzleHash != "" {
		b = appendString(b, farmerSingletonPuzzleHash, m.SingletonPuzzleHash)
	}
	if m.DelayTime != 0 {
		b = appendVarint(b, farmerDelayTime, m.DelayTime)
	}
	if m.DelayPuzzleHash != "" {
		b = appendString(b, farmerDelayPuzzleHash, m.DelayPuzzleHash)
	}
	for _, f := range []struct {
		num   protowire.Number
		value []byte
	}{
		{farmerAuthenticationPublicKey, m.AuthenticationPublicKey},
		{farmerSingletonTip, m.SingletonTip},
		{farmerSingletonTipState, m.SingletonTipState},
	} {
		if len(f.value) > 0 {
			b = protowire.AppendTag(b, f.num, protowire.BytesType)
			b = protowire.AppendBytes(b, f.value)
		}
	}
	if m.Points != 0 {
		b = appendVarint(b, farmerPoints, m.Points)
	}
	if m.Difficulty != 0 {
		b = appendVarint(b, farmerDifficulty, m.Difficulty)
	}
	if m.PayoutInstructions != "" {
		b = appendString(b, farmerPayoutInstructions, m.PayoutInstructions)
	}
	b = appendVarint(b, farmerIsPoolMember, protowire.EncodeBool(m.IsPoolMember))
	b = appendVarint(b, farmerTimestamp, m.Timestamp)
	b = appendVarint(b, farmerFlag, uint64(m.Flag))
	return b
}

func (m *FarmerMsg) Unmarshal(b []byte) error {
	*m = FarmerMsg{}
	return consume(b, func(num protowire.Number, v uint64, raw []byte) {
		switch num {
		case farmerLauncherID:
			m.LauncherID = string(raw)
		case farmerSingletonPuzzleHash:
			m.SingletonPuzzleHash = string(raw)
		case farmerDelayTime:
			m.DelayTime = v
		case farmerDelayPuzzleHash:
			m.DelayPuzzleHash = string(raw)
		case farmerAuthenticationPublicKey:
			m.AuthenticationPublicKey = append([]byte(nil), raw...)
		case farmerSingletonTip:
			m.SingletonTip = append([]byte(nil), raw...)
		case farmerSingletonTipState:
			m.SingletonTipState = append([]byte(nil), raw...)
		case farmerPoints:
			m.Points = v
		case farmerDifficulty:
			m.Difficulty = v
		case farmerPayoutInstructions:
			m.PayoutInstructions = string(raw)
		case farmerIsPoolMember:
			m.IsPoolMember = protowire.DecodeBool(v)
		case farmerTimestamp:
			m.Timestamp = v
		case farmerFlag:
			m.Flag = FarmerFlag(v)
		}
	})
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// consume walks the fields of b. Varint fields are passed in v, length delimited
// fields in raw. Unknown fields are skipped.
func consume(b []byte, field func(num protowire.Number, v uint64, raw []byte)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformedMessage, protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %v", ErrMalformedMessage, num, protowire.ParseError(n))
			}
			field(num, v, nil)
			b = b[n:]
		case protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %v", ErrMalformedMessage, num, protowire.ParseError(n))
			}
			field(num, 0, raw)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %v", ErrMalformedMessage, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}
