// Package api holds the messages of the operator gRPC service.
package api

import (
	"errors"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/farmpool/poold/types"
)

const (
	ServiceName = "pool.v1.Operator"
	// ErrorCodeKey is the trailer carrying the pool error code of a failed call.
	ErrorCodeKey = "pool-error-code"
)

var ErrMissingLauncherID = errors.New("launcher id must be set")

type InfoRequest struct{}

type StatusRequest struct{}

type StatusResponse struct {
	Peak            uint32 `json:"peak"`
	WalletSynced    bool   `json:"wallet_synced"`
	PendingPartials int    `json:"pending_partials"`
	Cooldowns       int    `json:"cooldowns"`
}

type FarmerRequest struct {
	LauncherID types.Bytes32 `json:"launcher_id"`
}

func (r *FarmerRequest) Validate() error {
	if r.LauncherID == (types.Bytes32{}) {
		return ErrMissingLauncherID
	}
	return nil
}

type FarmerResponse struct {
	LauncherID              types.Bytes32   `json:"launcher_id"`
	P2SingletonPuzzleHash   types.Bytes32   `json:"p2_singleton_puzzle_hash"`
	DelayTime               uint64          `json:"delay_time"`
	DelayPuzzleHash         types.Bytes32   `json:"delay_puzzle_hash"`
	AuthenticationPublicKey types.G1Element `json:"authentication_public_key"`
	OwnerPublicKey          types.G1Element `json:"owner_public_key"`
	PoolState               string          `json:"pool_state"`
	Points                  uint64          `json:"points"`
	Difficulty              uint64          `json:"difficulty"`
	PayoutInstructions      string          `json:"payout_instructions"`
	IsPoolMember            bool            `json:"is_pool_member"`
}

func FromFarmerRecord(r *types.FarmerRecord) *FarmerResponse {
	resp := &FarmerResponse{
		LauncherID:              r.LauncherID,
		P2SingletonPuzzleHash:   r.P2SingletonPuzzleHash,
		DelayTime:               r.DelayTime,
		DelayPuzzleHash:         r.DelayPuzzleHash,
		AuthenticationPublicKey: r.AuthenticationPublicKey,
		Points:                  r.Points,
		Difficulty:              r.Difficulty,
		PayoutInstructions:      r.PayoutInstructions,
		IsPoolMember:            r.IsPoolMember,
	}
	if s := r.SingletonTipState; s != nil {
		resp.OwnerPublicKey = s.OwnerPubkey
		resp.PoolState = s.State.String()
	}
	return resp
}

// ToStatus converts err into a gRPC status. Pool errors keep their code in
// the returned trailer.
func ToStatus(err error) (error, metadata.MD) {
	var perr *types.PoolError
	if !errors.As(err, &perr) {
		return status.Error(codes.Internal, err.Error()), nil
	}
	code := codes.FailedPrecondition
	switch perr.Code {
	case types.FarmerNotKnown:
		code = codes.NotFound
	case types.ServerException:
		code = codes.Internal
	}
	return status.Error(code, perr.Message), metadata.Pairs(ErrorCodeKey, strconv.Itoa(int(perr.Code)))
}

// FromStatus restores the pool error of a failed call from its trailer.
func FromStatus(err error, trailer metadata.MD) error {
	values := trailer.Get(ErrorCodeKey)
	if len(values) == 0 {
		return err
	}
	code, perr := strconv.ParseUint(values[0], 10, 16)
	if perr != nil {
		return err
	}
	return &types.PoolError{Code: types.ErrorCode(code), Message: status.Convert(err).Message()}
}
