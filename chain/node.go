package chain

import (
	"context"
	"fmt"

	"github.com/farmpool/poold/types"
)

// Node is a FullNode backed by the full node RPC service.
type Node struct {
	rpc *rpcClient
}

func NewNode(cfg RPCConfig) (*Node, error) {
	rpc, err := newRPCClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Node{rpc: rpc}, nil
}

func (n *Node) Close() {
	n.rpc.close()
}

func (n *Node) GetBlockchainState(ctx context.Context) (*BlockchainState, error) {
	var resp struct {
		BlockchainState struct {
			Peak *struct {
				Height uint32 `json:"height"`
			} `json:"peak"`
			Sync struct {
				Synced bool `json:"synced"`
			} `json:"sync"`
		} `json:"blockchain_state"`
	}
	if err := n.rpc.call(ctx, "get_blockchain_state", struct{}{}, &resp); err != nil {
		return nil, err
	}
	if resp.BlockchainState.Peak == nil {
		return nil, fmt.Errorf("%w: node has no peak yet", ErrRPC)
	}
	return &BlockchainState{
		PeakHeight: resp.BlockchainState.Peak.Height,
		Synced:     resp.BlockchainState.Sync.Synced,
	}, nil
}

func (n *Node) GetTimingAnchor(ctx context.Context, spHash types.Bytes32, endOfSubSlot bool) (*types.TimingAnchor, error) {
	request := map[string]types.Bytes32{"sp_hash": spHash}
	if endOfSubSlot {
		request = map[string]types.Bytes32{"challenge_hash": spHash}
	}
	var resp struct {
		SignagePoint *struct {
			CCVDF types.VDFInfo `json:"cc_vdf"`
		} `json:"signage_point"`
		EOS *struct {
			ChallengeChain types.ChallengeChainSubSlot `json:"challenge_chain"`
		} `json:"eos"`
		TimeReceived float64 `json:"time_received"`
		Reverted     bool    `json:"reverted"`
	}
	err := n.rpc.call(ctx, "get_recent_signage_point_or_eos", request, &resp)
	switch {
	case isServiceError(err):
		return nil, nil
	case err != nil:
		return nil, err
	}

	anchor := &types.TimingAnchor{
		Reverted:   resp.Reverted,
		ReceivedAt: unixSeconds(resp.TimeReceived),
	}
	switch {
	case resp.SignagePoint != nil:
		anchor.Challenge = resp.SignagePoint.CCVDF.Challenge
	case resp.EOS != nil:
		anchor.Challenge = resp.EOS.ChallengeChain.Hash()
	default:
		return nil, fmt.Errorf("%w: response has neither signage point nor end of sub slot", ErrRPC)
	}
	return anchor, nil
}

func (n *Node) GetCoinRecord(ctx context.Context, coinID types.Bytes32) (*types.CoinRecord, error) {
	var resp struct {
		CoinRecord types.CoinRecord `json:"coin_record"`
	}
	err := n.rpc.call(ctx, "get_coin_record_by_name", map[string]types.Bytes32{"name": coinID}, &resp)
	switch {
	case isServiceError(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &resp.CoinRecord, nil
}

func (n *Node) GetCoinSpend(ctx context.Context, record *types.CoinRecord) (*types.CoinSpend, error) {
	if !record.Spent {
		return nil, nil
	}
	request := struct {
		CoinID types.Bytes32 `json:"coin_id"`
		Height uint32        `json:"height"`
	}{record.Coin.Name(), record.SpentBlockIndex}
	var resp struct {
		CoinSolution types.CoinSpend `json:"coin_solution"`
	}
	err := n.rpc.call(ctx, "get_puzzle_and_solution", request, &resp)
	switch {
	case isServiceError(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &resp.CoinSolution, nil
}
