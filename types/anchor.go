package types

import "time"

// ClassgroupElement is a serialized VDF output.
type ClassgroupElement struct {
	Data HexBytes `json:"data"`
}

const classgroupElementSize = 100

type VDFInfo struct {
	Challenge          Bytes32           `json:"challenge"`
	NumberOfIterations uint64            `json:"number_of_iterations"`
	Output             ClassgroupElement `json:"output"`
}

func (v *VDFInfo) encode(e *Encoder) {
	e.Raw(v.Challenge[:])
	e.Uint64(v.NumberOfIterations)
	var out [classgroupElementSize]byte
	copy(out[:], v.Output.Data)
	e.Raw(out[:])
}

// ChallengeChainSubSlot closes a sub slot of the challenge chain. Its hash is the challenge
// of proofs anchored at an end of sub slot.
type ChallengeChainSubSlot struct {
	ChallengeChainEndOfSlotVDF       VDFInfo  `json:"challenge_chain_end_of_slot_vdf"`
	InfusedChallengeChainSubSlotHash *Bytes32 `json:"infused_challenge_chain_sub_slot_hash"`
	SubepochSummaryHash              *Bytes32 `json:"subepoch_summary_hash"`
	NewSubSlotIters                  *uint64  `json:"new_sub_slot_iters"`
	NewDifficulty                    *uint64  `json:"new_difficulty"`
}

func (c *ChallengeChainSubSlot) Hash() Bytes32 {
	var e Encoder
	c.ChallengeChainEndOfSlotVDF.encode(&e)
	e.OptionalBytes32(c.InfusedChallengeChainSubSlotHash)
	e.OptionalBytes32(c.SubepochSummaryHash)
	e.OptionalUint64(c.NewSubSlotIters)
	e.OptionalUint64(c.NewDifficulty)
	return e.Hash()
}

// TimingAnchor is the node's view of a signage point or end of sub slot.
type TimingAnchor struct {
	Reverted   bool
	ReceivedAt time.Time
	// Challenge the proof of space must answer.
	Challenge Bytes32
}
