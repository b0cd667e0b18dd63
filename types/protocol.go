package types

type PostPartialPayload struct {
	LauncherID          Bytes32      `json:"launcher_id"`
	AuthenticationToken uint64       `json:"authentication_token"`
	ProofOfSpace        ProofOfSpace `json:"proof_of_space"`
	SPHash              Bytes32      `json:"sp_hash"`
	EndOfSubSlot        bool         `json:"end_of_sub_slot"`
	HarvesterID         Bytes32      `json:"harvester_id"`
}

// Hash is the message signed by both the plot key and the authentication key.
func (p *PostPartialPayload) Hash() Bytes32 {
	var e Encoder
	e.Raw(p.LauncherID[:])
	e.Uint64(p.AuthenticationToken)
	p.ProofOfSpace.encode(&e)
	e.Raw(p.SPHash[:])
	e.Bool(p.EndOfSubSlot)
	e.Raw(p.HarvesterID[:])
	return e.Hash()
}

type PostPartialRequest struct {
	Payload            PostPartialPayload `json:"payload"`
	AggregateSignature G2Element          `json:"aggregate_signature"`
}

type PostPartialResponse struct {
	NewDifficulty uint64 `json:"new_difficulty"`
}

type PostFarmerPayload struct {
	LauncherID              Bytes32   `json:"launcher_id"`
	AuthenticationToken     uint64    `json:"authentication_token"`
	AuthenticationPublicKey G1Element `json:"authentication_public_key"`
	PayoutInstructions      string    `json:"payout_instructions"`
	SuggestedDifficulty     *uint64   `json:"suggested_difficulty"`
}

func (p *PostFarmerPayload) Hash() Bytes32 {
	var e Encoder
	e.Raw(p.LauncherID[:])
	e.Uint64(p.AuthenticationToken)
	e.Raw(p.AuthenticationPublicKey[:])
	e.Text(p.PayoutInstructions)
	e.OptionalUint64(p.SuggestedDifficulty)
	return e.Hash()
}

type PostFarmerRequest struct {
	Payload   PostFarmerPayload `json:"payload"`
	Signature G2Element         `json:"signature"`
}

type PostFarmerResponse struct {
	WelcomeMessage string `json:"welcome_message"`
}

type PutFarmerPayload struct {
	LauncherID              Bytes32    `json:"launcher_id"`
	AuthenticationToken     uint64     `json:"authentication_token"`
	AuthenticationPublicKey *G1Element `json:"authentication_public_key"`
	PayoutInstructions      *string    `json:"payout_instructions"`
	SuggestedDifficulty     *uint64    `json:"suggested_difficulty"`
}

func (p *PutFarmerPayload) Hash() Bytes32 {
	var e Encoder
	e.Raw(p.LauncherID[:])
	e.Uint64(p.AuthenticationToken)
	e.OptionalG1(p.AuthenticationPublicKey)
	e.OptionalString(p.PayoutInstructions)
	e.OptionalUint64(p.SuggestedDifficulty)
	return e.Hash()
}

type PutFarmerRequest struct {
	Payload   PutFarmerPayload `json:"payload"`
	Signature G2Element        `json:"signature"`
}

// PutFarmerResponse reports, per requested field, whether the new value was accepted.
// Fields that were not part of the request are nil.
type PutFarmerResponse struct {
	AuthenticationPublicKey *bool `json:"authentication_public_key,omitempty"`
	PayoutInstructions      *bool `json:"payout_instructions,omitempty"`
	SuggestedDifficulty     *bool `json:"suggested_difficulty,omitempty"`
}

type GetFarmerRequest struct {
	LauncherID          Bytes32   `json:"launcher_id"`
	AuthenticationToken uint64    `json:"authentication_token"`
	Signature           G2Element `json:"signature"`
}

type GetFarmerResponse struct {
	AuthenticationPublicKey G1Element `json:"authentication_public_key"`
	PayoutInstructions      string    `json:"payout_instructions"`
	CurrentDifficulty       uint64    `json:"current_difficulty"`
	CurrentPoints           uint64    `json:"current_points"`
}

// AuthenticationPayload is signed by the farmer authentication key for
// requests that carry no payload of their own.
type AuthenticationPayload struct {
	MethodName          string
	LauncherID          Bytes32
	TargetPuzzleHash    Bytes32
	AuthenticationToken uint64
}

func (p *AuthenticationPayload) Hash() Bytes32 {
	var e Encoder
	e.Text(p.MethodName)
	e.Raw(p.LauncherID[:])
	e.Raw(p.TargetPuzzleHash[:])
	e.Uint64(p.AuthenticationToken)
	return e.Hash()
}

type PoolInfo struct {
	Description                string  `json:"description"`
	Fee                        float64 `json:"fee"`
	LogoURL                    string  `json:"logo_url"`
	MinimumDifficulty          uint64  `json:"minimum_difficulty"`
	Name                       string  `json:"name"`
	ProtocolVersion            uint8   `json:"protocol_version"`
	RelativeLockHeight         uint32  `json:"relative_lock_height"`
	TargetPuzzleHash           Bytes32 `json:"target_puzzle_hash"`
	AuthenticationTokenTimeout uint8   `json:"authentication_token_timeout"`
}

// ErrorResponse is the body returned for any rejected request.
type ErrorResponse struct {
	ErrorCode    ErrorCode `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
}
