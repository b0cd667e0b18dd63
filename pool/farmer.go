package pool

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/farmpool/poold/events"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/registry"
	"github.com/farmpool/poold/shared"
	"github.com/farmpool/poold/singleton"
	"github.com/farmpool/poold/types"
)

// MinDelayTime is the shortest escape delay of a plot NFT the pool accepts, in seconds.
const MinDelayTime = 3600

func (p *Pool) checkToken(launcherID types.Bytes32, token uint64) error {
	if shared.ValidateAuthenticationToken(token, p.clock(), p.cfg.AuthenticationTokenTimeout) {
		return nil
	}
	return types.NewPoolError(types.InvalidAuthenticationToken,
		"authentication token %d invalid for farmer %s", token, launcherID)
}

// memberState resolves the singleton of a farmer and requires it to pool with us.
func (p *Pool) memberState(ctx context.Context, launcherID types.Bytes32) (*singleton.State, error) {
	state, err := p.resolver.Resolve(ctx, launcherID)
	switch {
	case errors.Is(err, singleton.ErrNotFound):
		return nil, types.NewPoolError(types.InvalidSingleton, "invalid singleton %s", launcherID)
	case err != nil:
		return nil, err
	case !state.IsMember:
		return nil, types.NewPoolError(types.InvalidSingleton, "singleton %s is not assigned to this pool", launcherID)
	}
	return state, nil
}

func validPayoutInstructions(payout string) bool {
	_, err := types.Bytes32FromHex(payout)
	return err == nil
}

// AddFarmer registers the farmer of a plot NFT that pools with us.
func (p *Pool) AddFarmer(ctx context.Context, req *types.PostFarmerRequest) (resp *types.PostFarmerResponse, err error) {
	defer func() { farmerRequests.WithLabelValues("add", resultLabel(err)).Inc() }()
	payload := &req.Payload
	launcherID := payload.LauncherID
	logger := logging.FromContext(ctx).With(zap.Stringer("launcher_id", launcherID))

	if err := p.checkToken(launcherID, payload.AuthenticationToken); err != nil {
		return nil, err
	}
	switch _, err := p.registry.Get(ctx, launcherID); {
	case err == nil:
		return nil, types.NewPoolError(types.FarmerAlreadyKnown, "farmer with launcher id %s already known", launcherID)
	case !errors.Is(err, registry.ErrNotFound):
		return nil, err
	}

	state, err := p.memberState(ctx, launcherID)
	if err != nil {
		return nil, err
	}

	difficulty := p.cfg.DefaultDifficulty
	if payload.SuggestedDifficulty != nil && *payload.SuggestedDifficulty >= p.cfg.MinDifficulty {
		difficulty = *payload.SuggestedDifficulty
	}

	if !validPayoutInstructions(payload.PayoutInstructions) {
		return nil, types.NewPoolError(types.InvalidPayoutInstructions,
			"payout instructions must be a puzzle hash for this pool")
	}

	hash := payload.Hash()
	if !p.verifier.Verify(state.BuriedState.OwnerPubkey, hash[:], req.Signature) {
		return nil, types.NewPoolError(types.InvalidSignature, "invalid signature")
	}

	launcher, err := p.node.GetCoinRecord(ctx, launcherID)
	if err != nil {
		return nil, err
	}
	if launcher == nil || !launcher.Spent {
		return nil, types.NewPoolError(types.InvalidSingleton, "launcher coin %s is not spent", launcherID)
	}
	launcherSpend, err := p.node.GetCoinSpend(ctx, launcher)
	if err != nil {
		return nil, err
	}
	if launcherSpend == nil {
		return nil, types.NewPoolError(types.InvalidSingleton, "no spend of launcher coin %s", launcherID)
	}
	delayTime, delayPuzzleHash, err := p.prims.DelayedPuzzleInfo(launcherSpend)
	if err != nil {
		return nil, fmt.Errorf("reading delay of launcher %s: %w", launcherID, err)
	}
	if delayTime < MinDelayTime {
		return nil, types.NewPoolError(types.DelayTimeTooShort,
			"delay time too short, must be at least %d seconds", MinDelayTime)
	}
	p2PuzzleHash, err := p.prims.LauncherToP2PuzzleHash(launcherID, delayTime, delayPuzzleHash)
	if err != nil {
		return nil, fmt.Errorf("deriving p2 singleton puzzle hash of %s: %w", launcherID, err)
	}

	record := &types.FarmerRecord{
		LauncherID:              launcherID,
		P2SingletonPuzzleHash:   p2PuzzleHash,
		DelayTime:               delayTime,
		DelayPuzzleHash:         delayPuzzleHash,
		AuthenticationPublicKey: payload.AuthenticationPublicKey,
		SingletonTip:            state.BuriedTip,
		SingletonTipState:       state.BuriedState,
		Difficulty:              difficulty,
		PayoutInstructions:      payload.PayoutInstructions,
		IsPoolMember:            true,
	}
	unlock := p.registry.Lock(launcherID)
	err = p.registry.Create(ctx, record)
	unlock()
	switch {
	case errors.Is(err, registry.ErrAlreadyExists):
		return nil, types.NewPoolError(types.FarmerAlreadyKnown, "farmer with launcher id %s already known", launcherID)
	case err != nil:
		return nil, err
	}
	logger.Info("added farmer", zap.Uint64("difficulty", difficulty), zap.String("payout", payload.PayoutInstructions))

	p.events.Farmer(ctx, &events.FarmerMsg{
		LauncherID:              launcherID.String(),
		SingletonPuzzleHash:     p2PuzzleHash.String(),
		DelayTime:               delayTime,
		DelayPuzzleHash:         delayPuzzleHash.String(),
		AuthenticationPublicKey: payload.AuthenticationPublicKey[:],
		SingletonTip:            state.BuriedTip.Bytes(),
		SingletonTipState:       state.BuriedState.Bytes(),
		Difficulty:              difficulty,
		PayoutInstructions:      payload.PayoutInstructions,
		IsPoolMember:            true,
		Timestamp:               uint64(p.clock().Unix()),
		Flag:                    events.FarmerAdded,
	})
	return &types.PostFarmerResponse{WelcomeMessage: p.cfg.WelcomeMessage}, nil
}

// UpdateFarmer changes the farmer controlled fields of a record. Each requested
// field is reported as accepted or not. After an update the farmer cannot update
// again until the cooldown has passed.
func (p *Pool) UpdateFarmer(ctx context.Context, req *types.PutFarmerRequest) (resp *types.PutFarmerResponse, err error) {
	defer func() { farmerRequests.WithLabelValues("update", resultLabel(err)).Inc() }()
	payload := &req.Payload
	launcherID := payload.LauncherID

	if p.cooldowns.active(launcherID) {
		return nil, types.NewPoolError(types.RequestFailed, "cannot update farmer %s yet", launcherID)
	}
	if err := p.checkToken(launcherID, payload.AuthenticationToken); err != nil {
		return nil, err
	}
	switch _, err := p.registry.Get(ctx, launcherID); {
	case errors.Is(err, registry.ErrNotFound):
		return nil, types.NewPoolError(types.FarmerNotKnown, "farmer with launcher id %s not known", launcherID)
	case err != nil:
		return nil, err
	}

	state, err := p.memberState(ctx, launcherID)
	if err != nil {
		return nil, err
	}
	hash := payload.Hash()
	if !p.verifier.Verify(state.BuriedState.OwnerPubkey, hash[:], req.Signature) {
		return nil, types.NewPoolError(types.InvalidSignature, "invalid signature")
	}

	unlock := p.registry.Lock(launcherID)
	defer unlock()
	record, err := p.registry.Get(ctx, launcherID)
	if err != nil {
		return nil, err
	}
	resp = p.applyUpdate(record, payload)

	if !p.cooldowns.start(launcherID, p.cfg.FarmerUpdateCooldown) {
		return nil, types.NewPoolError(types.RequestFailed, "cannot update farmer %s yet", launcherID)
	}
	if err := p.registry.Update(ctx, record); err != nil {
		p.cooldowns.cancel(launcherID)
		return nil, err
	}
	logging.FromContext(ctx).Info("updated farmer",
		zap.Stringer("launcher_id", launcherID),
		zap.Stringer("authentication_public_key", record.AuthenticationPublicKey),
		zap.String("payout", record.PayoutInstructions),
		zap.Uint64("difficulty", record.Difficulty),
	)

	p.events.Farmer(ctx, &events.FarmerMsg{
		LauncherID:              launcherID.String(),
		AuthenticationPublicKey: record.AuthenticationPublicKey[:],
		Difficulty:              record.Difficulty,
		PayoutInstructions:      record.PayoutInstructions,
		IsPoolMember:            record.IsPoolMember,
		Timestamp:               uint64(p.clock().Unix()),
		Flag:                    events.FarmerUpdated,
	})
	return resp, nil
}

// applyUpdate sets the accepted fields of payload on record.
func (p *Pool) applyUpdate(record *types.FarmerRecord, payload *types.PutFarmerPayload) *types.PutFarmerResponse {
	var resp types.PutFarmerResponse
	if key := payload.AuthenticationPublicKey; key != nil {
		accepted := record.AuthenticationPublicKey != *key
		resp.AuthenticationPublicKey = &accepted
		if accepted {
			record.AuthenticationPublicKey = *key
		}
	}
	if payout := payload.PayoutInstructions; payout != nil {
		accepted := record.PayoutInstructions != *payout && validPayoutInstructions(*payout)
		resp.PayoutInstructions = &accepted
		if accepted {
			record.PayoutInstructions = *payout
		}
	}
	if difficulty := payload.SuggestedDifficulty; difficulty != nil {
		accepted := record.Difficulty != *difficulty && *difficulty >= p.cfg.MinDifficulty
		resp.SuggestedDifficulty = &accepted
		if accepted {
			record.Difficulty = *difficulty
		}
	}
	return &resp
}

// GetFarmer returns the record of a farmer that proves ownership of its authentication key.
func (p *Pool) GetFarmer(ctx context.Context, req *types.GetFarmerRequest) (resp *types.GetFarmerResponse, err error) {
	defer func() { farmerRequests.WithLabelValues("get", resultLabel(err)).Inc() }()
	launcherID := req.LauncherID

	record, err := p.registry.Get(ctx, launcherID)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return nil, types.NewPoolError(types.FarmerNotKnown, "farmer with launcher id %s not known", launcherID)
	case err != nil:
		return nil, err
	}
	if err := p.checkToken(launcherID, req.AuthenticationToken); err != nil {
		return nil, err
	}
	message := types.AuthenticationPayload{
		MethodName:          "get_farmer",
		LauncherID:          launcherID,
		TargetPuzzleHash:    p.targetPuzzleHash,
		AuthenticationToken: req.AuthenticationToken,
	}
	hash := message.Hash()
	if !p.verifier.Verify(record.AuthenticationPublicKey, hash[:], req.Signature) {
		return nil, types.NewPoolError(types.InvalidSignature,
			"failed to verify signature %s for launcher id %s", req.Signature, launcherID)
	}
	return &types.GetFarmerResponse{
		AuthenticationPublicKey: record.AuthenticationPublicKey,
		PayoutInstructions:      record.PayoutInstructions,
		CurrentDifficulty:       record.Difficulty,
		CurrentPoints:           record.Points,
	}, nil
}

// Farmer returns the record of a farmer without authentication. It serves operators.
func (p *Pool) Farmer(ctx context.Context, launcherID types.Bytes32) (*types.FarmerRecord, error) {
	record, err := p.registry.Get(ctx, launcherID)
	if errors.Is(err, registry.ErrNotFound) {
		return nil, types.NewPoolError(types.FarmerNotKnown, "farmer with launcher id %s not known", launcherID)
	}
	return record, err
}
