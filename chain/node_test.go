package chain_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmpool/poold/chain"
	"github.com/farmpool/poold/types"
)

// fakeService answers RPC endpoints with canned JSON bodies.
func fakeService(t *testing.T, handlers map[string]func(req map[string]any) any) string {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.URL.Path[1:]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		req := map[string]any{}
		require.NoError(t, json.Unmarshal(body, &req))
		require.NoError(t, json.NewEncoder(w).Encode(handler(req)))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newNode(t *testing.T, url string) *chain.Node {
	node, err := chain.NewNode(chain.RPCConfig{URL: url, Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(node.Close)
	return node
}

func TestGetBlockchainState(t *testing.T) {
	t.Parallel()
	url := fakeService(t, map[string]func(map[string]any) any{
		"get_blockchain_state": func(map[string]any) any {
			return map[string]any{
				"success": true,
				"blockchain_state": map[string]any{
					"peak": map[string]any{"height": 1234},
					"sync": map[string]any{"synced": true},
				},
			}
		},
	})
	state, err := newNode(t, url).GetBlockchainState(context.Background())
	require.NoError(t, err)
	require.Equal(t, &chain.BlockchainState{PeakHeight: 1234, Synced: true}, state)
}

func TestGetTimingAnchor(t *testing.T) {
	t.Parallel()
	spHash := types.Bytes32{1}
	challenge := types.Bytes32{2}
	eos := types.ChallengeChainSubSlot{ChallengeChainEndOfSlotVDF: types.VDFInfo{Challenge: types.Bytes32{3}, NumberOfIterations: 7}}

	url := fakeService(t, map[string]func(map[string]any) any{
		"get_recent_signage_point_or_eos": func(req map[string]any) any {
			if sp, ok := req["sp_hash"]; ok {
				if sp != "0x"+spHash.String() {
					return map[string]any{"success": false, "error": "Did not find signage point"}
				}
				return map[string]any{
					"success":       true,
					"signage_point": map[string]any{"cc_vdf": types.VDFInfo{Challenge: challenge}},
					"time_received": 1700000000.5,
					"reverted":      false,
				}
			}
			return map[string]any{
				"success":       true,
				"eos":           map[string]any{"challenge_chain": eos},
				"time_received": 1700000001,
				"reverted":      true,
			}
		},
	})
	node := newNode(t, url)

	anchor, err := node.GetTimingAnchor(context.Background(), spHash, false)
	require.NoError(t, err)
	require.Equal(t, challenge, anchor.Challenge)
	require.False(t, anchor.Reverted)
	require.Equal(t, time.Unix(1700000000, 500_000_000), anchor.ReceivedAt)

	anchor, err = node.GetTimingAnchor(context.Background(), types.Bytes32{9}, false)
	require.NoError(t, err)
	require.Nil(t, anchor)

	anchor, err = node.GetTimingAnchor(context.Background(), spHash, true)
	require.NoError(t, err)
	require.Equal(t, eos.Hash(), anchor.Challenge)
	require.True(t, anchor.Reverted)
}

func TestCoinRecordAndSpend(t *testing.T) {
	t.Parallel()
	coin := types.Coin{ParentCoinInfo: types.Bytes32{1}, PuzzleHash: types.Bytes32{2}, Amount: 1}
	spend := types.CoinSpend{Coin: coin, PuzzleReveal: types.HexBytes{0xff}, Solution: types.HexBytes{0x80}}

	url := fakeService(t, map[string]func(map[string]any) any{
		"get_coin_record_by_name": func(req map[string]any) any {
			if req["name"] != "0x"+coin.Name().String() {
				return map[string]any{"success": false, "error": "not found"}
			}
			return map[string]any{"success": true, "coin_record": types.CoinRecord{
				Coin: coin, ConfirmedBlockIndex: 10, SpentBlockIndex: 20, Spent: true,
			}}
		},
		"get_puzzle_and_solution": func(req map[string]any) any {
			require.Equal(t, "0x"+coin.Name().String(), req["coin_id"])
			require.EqualValues(t, 20, req["height"])
			return map[string]any{"success": true, "coin_solution": spend}
		},
	})
	node := newNode(t, url)

	record, err := node.GetCoinRecord(context.Background(), coin.Name())
	require.NoError(t, err)
	require.Equal(t, uint32(10), record.ConfirmedBlockIndex)
	require.True(t, record.Spent)

	missing, err := node.GetCoinRecord(context.Background(), types.Bytes32{5})
	require.NoError(t, err)
	require.Nil(t, missing)

	got, err := node.GetCoinSpend(context.Background(), record)
	require.NoError(t, err)
	require.True(t, spend.Equal(got))

	got, err = node.GetCoinSpend(context.Background(), &types.CoinRecord{Coin: coin})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUnreachableNode(t *testing.T) {
	t.Parallel()
	srv := httptest.NewTLSServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newNode(t, url).GetCoinRecord(context.Background(), types.Bytes32{})
	require.ErrorIs(t, err, chain.ErrRPC)
}

func TestWallet(t *testing.T) {
	t.Parallel()
	url := fakeService(t, map[string]func(map[string]any) any{
		"log_in": func(req map[string]any) any {
			return map[string]any{"success": req["fingerprint"] == float64(42)}
		},
		"get_sync_status": func(map[string]any) any {
			return map[string]any{"success": true, "synced": true, "syncing": false}
		},
	})
	wallet, err := chain.NewWallet(chain.RPCConfig{URL: url})
	require.NoError(t, err)
	defer wallet.Close()

	require.NoError(t, wallet.LogIn(context.Background(), 42))
	require.Error(t, wallet.LogIn(context.Background(), 1))

	synced, err := wallet.Synced(context.Background())
	require.NoError(t, err)
	require.True(t, synced)
}
