package pool

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/farmpool/poold/events"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/registry"
	"github.com/farmpool/poold/shared"
	"github.com/farmpool/poold/types"
)

// pendingPartial is an admitted partial waiting to be credited.
type pendingPartial struct {
	partial    types.PostPartialRequest
	receivedAt time.Time
	// difficulty of the farmer when the partial was received
	points uint64
	puid   uint64
}

// SubmitPartial authenticates a partial and runs it through admission. It returns
// the difficulty the farmer should use from now on.
func (p *Pool) SubmitPartial(ctx context.Context, req *types.PostPartialRequest) (difficulty uint64, err error) {
	receivedAt := p.clock()
	defer func() { partialsReceived.WithLabelValues(resultLabel(err)).Inc() }()

	launcherID := req.Payload.LauncherID
	if !shared.ValidateAuthenticationToken(req.Payload.AuthenticationToken, receivedAt, p.cfg.AuthenticationTokenTimeout) {
		return 0, types.NewPoolError(types.InvalidAuthenticationToken,
			"authentication token %d invalid for farmer %s", req.Payload.AuthenticationToken, launcherID)
	}
	record, err := p.registry.Get(ctx, launcherID)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return 0, types.NewPoolError(types.FarmerNotKnown, "farmer with launcher id %s not known", launcherID)
	case err != nil:
		return 0, err
	}
	return p.ProcessPartial(ctx, req, record, receivedAt)
}

// ProcessPartial checks a partial of a known farmer and queues it for confirmation.
// Checks run in order and the first failure is returned.
func (p *Pool) ProcessPartial(
	ctx context.Context,
	req *types.PostPartialRequest,
	record *types.FarmerRecord,
	receivedAt time.Time,
) (uint64, error) {
	payload := &req.Payload
	launcherID := payload.LauncherID
	logger := logging.FromContext(ctx).With(zap.Stringer("launcher_id", launcherID))

	puid, linked, err := p.linker.LookupAccount(ctx, launcherID)
	if err != nil {
		return 0, err
	}
	if !linked {
		return 0, types.NewPoolError(types.NotFound, "launcher id %s is not linked to an account", launcherID)
	}

	message := payload.Hash()
	if !p.verifier.AggregateVerify(
		[]types.G1Element{payload.ProofOfSpace.PlotPublicKey, record.AuthenticationPublicKey},
		[][]byte{message[:], message[:]},
		req.AggregateSignature,
	) {
		return 0, types.NewPoolError(types.InvalidSignature, "the aggregate signature is invalid %s", req.AggregateSignature)
	}

	contract := payload.ProofOfSpace.PoolContractPuzzleHash
	if contract == nil || *contract != record.P2SingletonPuzzleHash {
		return 0, types.NewPoolError(types.InvalidP2SingletonPuzzleHash,
			"invalid pool contract puzzle hash %v", contract)
	}

	anchor, err := p.timingAnchor(ctx, payload)
	if err != nil {
		return 0, err
	}

	if latency := receivedAt.Sub(anchor.ReceivedAt); latency > p.cfg.PartialTimeLimit {
		return 0, types.NewPoolError(types.TooLate,
			"received partial in %s, the response must happen in less than %s", latency, p.cfg.PartialTimeLimit)
	}

	quality, err := p.prims.VerifyProofOfSpace(&payload.ProofOfSpace, anchor.Challenge, payload.SPHash)
	if err != nil {
		return 0, err
	}
	if quality == nil {
		return 0, types.NewPoolError(types.InvalidProof, "invalid proof of space %s", payload.SPHash)
	}

	current := record.Difficulty
	iters := shared.RequiredIterations(
		p.cfg.DifficultyConstantFactor.Int, *quality, payload.SPHash, payload.ProofOfSpace.Size, current,
	)
	if iters >= p.itersLimit {
		return 0, types.NewPoolError(types.ProofNotGoodEnough,
			"proof of space has required iters %d, too high for difficulty %d", iters, current)
	}

	if err := p.enqueue(ctx, pendingPartial{partial: *req, receivedAt: receivedAt, points: current, puid: puid}); err != nil {
		return 0, err
	}
	logger.Debug("partial admitted", zap.Uint64("difficulty", current), zap.Uint64("iters", iters))

	return p.adjustDifficulty(ctx, launcherID, receivedAt)
}

// timingAnchor looks up the signage point or end of sub slot of the partial.
// An unknown anchor is looked up once more after a delay as it may not have reached the node yet.
func (p *Pool) timingAnchor(ctx context.Context, payload *types.PostPartialPayload) (*types.TimingAnchor, error) {
	anchor, err := p.node.GetTimingAnchor(ctx, payload.SPHash, payload.EndOfSubSlot)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		if err := sleep(ctx, p.cfg.AnchorRetryDelay); err != nil {
			return nil, err
		}
		if anchor, err = p.node.GetTimingAnchor(ctx, payload.SPHash, payload.EndOfSubSlot); err != nil {
			return nil, err
		}
	}
	if anchor == nil || anchor.Reverted {
		return nil, types.NewPoolError(types.NotFound, "did not find signage point or end of sub slot %s", payload.SPHash)
	}
	return anchor, nil
}

// adjustDifficulty recomputes the difficulty from the confirmed partials and
// stores it if it changed. It returns the current difficulty.
func (p *Pool) adjustDifficulty(ctx context.Context, launcherID types.Bytes32, now time.Time) (uint64, error) {
	unlock := p.registry.Lock(launcherID)
	defer unlock()

	record, err := p.registry.Get(ctx, launcherID)
	if err != nil {
		return 0, err
	}
	recent, err := p.registry.RecentPartials(ctx, launcherID, p.cfg.NumberOfPartialsTarget)
	if err != nil {
		return 0, err
	}
	next := p.difficulty.Next(recent, record.Difficulty, now)
	if next == record.Difficulty {
		return next, nil
	}
	if err := p.registry.UpdateDifficulty(ctx, launcherID, next); err != nil {
		return 0, err
	}
	difficultyChanges.Inc()
	logging.FromContext(ctx).Info("updated difficulty",
		zap.Stringer("launcher_id", launcherID),
		zap.Uint64("from", record.Difficulty),
		zap.Uint64("to", next),
		zap.Int("recent_partials", len(recent)),
	)
	p.events.Farmer(ctx, &events.FarmerMsg{
		LauncherID: launcherID.String(),
		Difficulty: next,
		Timestamp:  uint64(now.Unix()),
		Flag:       events.FarmerDifficultyChanged,
	})
	return next, nil
}
