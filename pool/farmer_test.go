package pool_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	chainmocks "github.com/farmpool/poold/chain/mocks"
	"github.com/farmpool/poold/events"
	linkmocks "github.com/farmpool/poold/link/mocks"
	"github.com/farmpool/poold/pool"
	primmocks "github.com/farmpool/poold/primitives/mocks"
	regmocks "github.com/farmpool/poold/registry/mocks"
	"github.com/farmpool/poold/shared"
	signmocks "github.com/farmpool/poold/signing/mocks"
	"github.com/farmpool/poold/types"
)

var (
	launcherSpend  = &types.CoinSpend{Coin: types.Coin{ParentCoinInfo: types.Bytes32{0x11}, Amount: 1}}
	launcherRecord = &types.CoinRecord{Coin: types.Coin{Amount: 1}, Spent: true, SpentBlockIndex: 10}
)

func ptr[T any](v T) *T { return &v }

func newFarmerRequest(suggested *uint64) *types.PostFarmerRequest {
	return &types.PostFarmerRequest{
		Payload: types.PostFarmerPayload{
			LauncherID:              launcherID,
			AuthenticationToken:     shared.AuthenticationToken(now, 5),
			AuthenticationPublicKey: authKey,
			PayoutInstructions:      target.String(),
			SuggestedDifficulty:     suggested,
		},
		Signature: signature,
	}
}

// expectLauncher makes the launcher of an unregistered farmer resolve to a
// member singleton with the given escape delay.
func (tt *tester) expectLauncher(delay uint64, state *types.PoolState) {
	tt.node.EXPECT().GetCoinRecord(gomock.Any(), launcherID).Return(launcherRecord, nil).AnyTimes()
	tt.node.EXPECT().GetCoinSpend(gomock.Any(), launcherRecord).Return(launcherSpend, nil).AnyTimes()
	tt.prims.EXPECT().DelayedPuzzleInfo(launcherSpend).Return(delay, delayPH, nil).AnyTimes()
	tt.prims.EXPECT().PoolStateFromSpend(launcherSpend).Return(state, nil)
	tt.prims.EXPECT().NextSingletonCoin(launcherSpend).Return(nextCoin, nil)
	tt.node.EXPECT().GetCoinRecord(gomock.Any(), nextCoin.Name()).Return(&types.CoinRecord{Coin: *nextCoin}, nil)
	tt.prims.EXPECT().ValidatePuzzleHash(launcherID, delayPH, delay, state, nextCoin.PuzzleHash, genesis).Return(true, nil)
}

func TestAddFarmer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		suggested  *uint64
		difficulty uint64
	}{
		{"default difficulty", nil, 10},
		{"suggestion below minimum", ptr(uint64(5)), 10},
		{"suggested difficulty", ptr(uint64(50)), 50},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tt := newTester(t)
			req := newFarmerRequest(tc.suggested)
			hash := req.Payload.Hash()
			tt.expectLauncher(3600, memberState())
			tt.verifier.EXPECT().Verify(ownerKey, hash[:], signature).Return(true)
			tt.prims.EXPECT().LauncherToP2PuzzleHash(launcherID, uint64(3600), delayPH).Return(p2, nil)

			resp, err := tt.AddFarmer(context.Background(), req)
			require.NoError(t, err)
			require.Equal(t, tt.cfg.WelcomeMessage, resp.WelcomeMessage)

			record, err := tt.store.Get(context.Background(), launcherID)
			require.NoError(t, err)
			require.Equal(t, tc.difficulty, record.Difficulty)
			require.Equal(t, p2, record.P2SingletonPuzzleHash)
			require.Equal(t, authKey, record.AuthenticationPublicKey)
			require.True(t, launcherSpend.Equal(record.SingletonTip))
			require.True(t, record.IsPoolMember)

			published := tt.events.Messages(farmersTopic)
			require.Len(t, published, 1)
			var msg events.FarmerMsg
			require.NoError(t, msg.Unmarshal(published[0].Value))
			require.Equal(t, events.FarmerAdded, msg.Flag)
			require.Equal(t, p2.String(), msg.SingletonPuzzleHash)
			require.Equal(t, tc.difficulty, msg.Difficulty)
		})
	}
}

func TestAddFarmerRejections(t *testing.T) {
	t.Parallel()
	t.Run("already known", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		tt.register(t, 10)
		_, err := tt.AddFarmer(context.Background(), newFarmerRequest(nil))
		require.ErrorIs(t, err, types.ErrFarmerAlreadyKnown)
	})
	t.Run("stale token", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		req := newFarmerRequest(nil)
		req.Payload.AuthenticationToken = 0
		_, err := tt.AddFarmer(context.Background(), req)
		require.ErrorIs(t, err, types.ErrInvalidAuthenticationToken)
	})
	t.Run("unknown singleton", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		tt.node.EXPECT().GetCoinRecord(gomock.Any(), launcherID).Return(nil, nil)
		_, err := tt.AddFarmer(context.Background(), newFarmerRequest(nil))
		require.ErrorIs(t, err, types.ErrInvalidSingleton)
	})
	t.Run("pooling elsewhere", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		state := memberState()
		state.TargetPuzzleHash = types.Bytes32{0x01}
		tt.expectLauncher(3600, state)
		_, err := tt.AddFarmer(context.Background(), newFarmerRequest(nil))
		require.ErrorIs(t, err, types.ErrInvalidSingleton)
	})
	t.Run("invalid payout instructions", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		tt.expectLauncher(3600, memberState())
		req := newFarmerRequest(nil)
		req.Payload.PayoutInstructions = "xch1notapuzzlehash"
		_, err := tt.AddFarmer(context.Background(), req)
		require.ErrorIs(t, err, types.ErrInvalidPayoutInstructions)
	})
	t.Run("invalid signature", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		tt.expectLauncher(3600, memberState())
		tt.verifier.EXPECT().Verify(ownerKey, gomock.Any(), signature).Return(false)
		_, err := tt.AddFarmer(context.Background(), newFarmerRequest(nil))
		require.ErrorIs(t, err, types.ErrInvalidSignature)
	})
	t.Run("delay too short", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		tt.expectLauncher(600, memberState())
		tt.verifier.EXPECT().Verify(ownerKey, gomock.Any(), signature).Return(true)
		_, err := tt.AddFarmer(context.Background(), newFarmerRequest(nil))
		require.ErrorIs(t, err, types.ErrDelayTimeTooShort)

		_, err = tt.store.Get(context.Background(), launcherID)
		require.Error(t, err)
	})
}

func newUpdateRequest(payload types.PutFarmerPayload) *types.PutFarmerRequest {
	payload.LauncherID = launcherID
	payload.AuthenticationToken = shared.AuthenticationToken(now, 5)
	return &types.PutFarmerRequest{Payload: payload, Signature: signature}
}

func TestUpdateFarmer(t *testing.T) {
	t.Parallel()
	tt := newTester(t)
	tt.register(t, 10)
	newKey := types.G1Element{0xa1}
	req := newUpdateRequest(types.PutFarmerPayload{
		AuthenticationPublicKey: &newKey,
		PayoutInstructions:      ptr(target.String()),
		SuggestedDifficulty:     ptr(uint64(5)),
	})
	hash := req.Payload.Hash()
	tt.expectMember()
	tt.verifier.EXPECT().Verify(ownerKey, hash[:], signature).Return(true)

	resp, err := tt.UpdateFarmer(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, &types.PutFarmerResponse{
		AuthenticationPublicKey: ptr(true),
		PayoutInstructions:      ptr(false),
		SuggestedDifficulty:     ptr(false),
	}, resp)

	record, err := tt.store.Get(context.Background(), launcherID)
	require.NoError(t, err)
	require.Equal(t, newKey, record.AuthenticationPublicKey)
	require.EqualValues(t, 10, record.Difficulty)

	published := tt.events.Messages(farmersTopic)
	require.Len(t, published, 1)
	var msg events.FarmerMsg
	require.NoError(t, msg.Unmarshal(published[0].Value))
	require.Equal(t, events.FarmerUpdated, msg.Flag)
	require.Equal(t, newKey[:], msg.AuthenticationPublicKey)

	// blocked by the cooldown
	_, err = tt.UpdateFarmer(context.Background(), req)
	require.ErrorIs(t, err, types.ErrRequestFailed)
}

func TestUpdateFarmerInCooldownDoesNotTouchStorage(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reg := regmocks.NewMockRegistry(ctrl)
	node := chainmocks.NewMockFullNode(ctrl)
	prims := primmocks.NewMockPrimitives(ctrl)
	verifier := signmocks.NewMockVerifier(ctrl)
	clock := &clock{t: now}
	p, err := pool.New(testConfig(t), pool.Services{
		Node:       node,
		Primitives: prims,
		Verifier:   verifier,
		Registry:   reg,
		Linker:     linkmocks.NewMockAccountLinker(ctrl),
		Events:     events.NewSink(events.NewMemory(), events.Topics{}),
	}, pool.WithClock(clock.Now), pool.WithGenesisChallenge(genesis))
	require.NoError(t, err)

	record := &types.FarmerRecord{
		LauncherID:              launcherID,
		DelayTime:               3600,
		DelayPuzzleHash:         delayPH,
		AuthenticationPublicKey: authKey,
		SingletonTip:            tipSpend,
		SingletonTipState:       memberState(),
		Difficulty:              10,
		IsPoolMember:            true,
	}
	req := newUpdateRequest(types.PutFarmerPayload{SuggestedDifficulty: ptr(uint64(20))})

	// the update itself, the resolution and its write back check, and the locked re-read
	reg.EXPECT().Get(gomock.Any(), launcherID).Return(record, nil).Times(4)
	reg.EXPECT().Lock(launcherID).Return(func() {}).Times(2)
	reg.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	prims.EXPECT().NextSingletonCoin(tipSpend).Return(nextCoin, nil)
	node.EXPECT().GetCoinRecord(gomock.Any(), nextCoin.Name()).Return(&types.CoinRecord{Coin: *nextCoin}, nil)
	prims.EXPECT().ValidatePuzzleHash(launcherID, delayPH, uint64(3600), memberState(), nextCoin.PuzzleHash, genesis).
		Return(true, nil)
	verifier.EXPECT().Verify(ownerKey, gomock.Any(), signature).Return(true)

	resp, err := p.UpdateFarmer(context.Background(), req)
	require.NoError(t, err)
	require.True(t, *resp.SuggestedDifficulty)

	// any registry call now fails the test
	_, err = p.UpdateFarmer(context.Background(), req)
	require.ErrorIs(t, err, types.ErrRequestFailed)
}

func TestUpdateFarmerCooldownExpires(t *testing.T) {
	t.Parallel()
	tt := newTester(t, func(cfg *pool.Config) { cfg.FarmerUpdateCooldown = 20 * time.Millisecond })
	tt.register(t, 10)
	req := newUpdateRequest(types.PutFarmerPayload{SuggestedDifficulty: ptr(uint64(20))})
	tt.expectMember()
	tt.verifier.EXPECT().Verify(ownerKey, gomock.Any(), signature).Return(true).Times(2)

	_, err := tt.UpdateFarmer(context.Background(), req)
	require.NoError(t, err)

	// the singleton did not move, so the recorded tip is followed again
	tt.expectMember()
	require.Eventually(t, func() bool {
		_, err := tt.UpdateFarmer(context.Background(), req)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestUpdateFarmerRejections(t *testing.T) {
	t.Parallel()
	t.Run("unknown farmer", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		_, err := tt.UpdateFarmer(context.Background(), newUpdateRequest(types.PutFarmerPayload{}))
		require.ErrorIs(t, err, types.ErrFarmerNotKnown)
	})
	t.Run("invalid signature", func(t *testing.T) {
		t.Parallel()
		tt := newTester(t)
		tt.register(t, 10)
		tt.expectMember()
		tt.verifier.EXPECT().Verify(ownerKey, gomock.Any(), signature).Return(false)
		_, err := tt.UpdateFarmer(context.Background(), newUpdateRequest(types.PutFarmerPayload{}))
		require.ErrorIs(t, err, types.ErrInvalidSignature)

		// a rejected update does not start a cooldown
		tt.expectMember()
		tt.verifier.EXPECT().Verify(ownerKey, gomock.Any(), signature).Return(true)
		_, err = tt.UpdateFarmer(context.Background(), newUpdateRequest(types.PutFarmerPayload{}))
		require.NoError(t, err)
	})
}

func TestGetFarmer(t *testing.T) {
	t.Parallel()
	tt := newTester(t)
	tt.register(t, 10)
	require.NoError(t, tt.store.AddPartial(context.Background(), launcherID, now, 10))
	token := shared.AuthenticationToken(now, 5)
	message := types.AuthenticationPayload{
		MethodName:          "get_farmer",
		LauncherID:          launcherID,
		TargetPuzzleHash:    target,
		AuthenticationToken: token,
	}
	hash := message.Hash()
	tt.verifier.EXPECT().Verify(authKey, hash[:], signature).Return(true)

	resp, err := tt.GetFarmer(context.Background(), &types.GetFarmerRequest{
		LauncherID:          launcherID,
		AuthenticationToken: token,
		Signature:           signature,
	})
	require.NoError(t, err)
	require.Equal(t, &types.GetFarmerResponse{
		AuthenticationPublicKey: authKey,
		PayoutInstructions:      target.String(),
		CurrentDifficulty:       10,
		CurrentPoints:           10,
	}, resp)
}

func TestGetFarmerRejections(t *testing.T) {
	t.Parallel()
	tt := newTester(t)
	_, err := tt.GetFarmer(context.Background(), &types.GetFarmerRequest{LauncherID: launcherID})
	require.ErrorIs(t, err, types.ErrFarmerNotKnown)

	tt.register(t, 10)
	_, err = tt.GetFarmer(context.Background(), &types.GetFarmerRequest{LauncherID: launcherID})
	require.ErrorIs(t, err, types.ErrInvalidAuthenticationToken)

	tt.verifier.EXPECT().Verify(authKey, gomock.Any(), signature).Return(false)
	_, err = tt.GetFarmer(context.Background(), &types.GetFarmerRequest{
		LauncherID:          launcherID,
		AuthenticationToken: shared.AuthenticationToken(now, 5),
		Signature:           signature,
	})
	require.ErrorIs(t, err, types.ErrInvalidSignature)
}

func TestFarmerForOperators(t *testing.T) {
	t.Parallel()
	tt := newTester(t)
	_, err := tt.Farmer(context.Background(), launcherID)
	require.ErrorIs(t, err, types.ErrFarmerNotKnown)

	tt.register(t, 10)
	record, err := tt.Farmer(context.Background(), launcherID)
	require.NoError(t, err)
	require.Equal(t, launcherID, record.LauncherID)
	require.EqualValues(t, 10, record.Difficulty)
}

func TestStatus(t *testing.T) {
	t.Parallel()
	tt := newTester(t)
	tt.register(t, 10)
	tt.expectMember()
	tt.verifier.EXPECT().Verify(ownerKey, gomock.Any(), signature).Return(true)
	_, err := tt.UpdateFarmer(context.Background(), newUpdateRequest(types.PutFarmerPayload{}))
	require.NoError(t, err)

	require.Equal(t, pool.Status{Cooldowns: 1}, tt.Status())
}
