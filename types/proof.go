package types

type ProofOfSpace struct {
	Challenge              Bytes32    `json:"challenge"`
	PoolPublicKey          *G1Element `json:"pool_public_key"`
	PoolContractPuzzleHash *Bytes32   `json:"pool_contract_puzzle_hash"`
	PlotPublicKey          G1Element  `json:"plot_public_key"`
	Size                   uint8      `json:"size"`
	Proof                  HexBytes   `json:"proof"`
}

func (p *ProofOfSpace) encode(e *Encoder) {
	e.Raw(p.Challenge[:])
	e.OptionalG1(p.PoolPublicKey)
	e.OptionalBytes32(p.PoolContractPuzzleHash)
	e.Raw(p.PlotPublicKey[:])
	e.Uint8(p.Size)
	e.Bytes(p.Proof)
}

func (p *ProofOfSpace) Bytes() []byte {
	var e Encoder
	p.encode(&e)
	return e.Data()
}

// Hash identifies the proof. Two submissions of the same proof share it.
func (p *ProofOfSpace) Hash() Bytes32 {
	var e Encoder
	p.encode(&e)
	return e.Hash()
}
