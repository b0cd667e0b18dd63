package chain

import (
	"context"
	"fmt"
)

// WalletClient is a Wallet backed by the wallet RPC service.
type WalletClient struct {
	rpc *rpcClient
}

func NewWallet(cfg RPCConfig) (*WalletClient, error) {
	rpc, err := newRPCClient(cfg)
	if err != nil {
		return nil, err
	}
	return &WalletClient{rpc: rpc}, nil
}

func (w *WalletClient) Close() {
	w.rpc.close()
}

func (w *WalletClient) LogIn(ctx context.Context, fingerprint uint32) error {
	request := struct {
		Fingerprint uint32 `json:"fingerprint"`
	}{fingerprint}
	if err := w.rpc.call(ctx, "log_in", request, nil); err != nil {
		return fmt.Errorf("logging in with fingerprint %d: %w", fingerprint, err)
	}
	return nil
}

func (w *WalletClient) Synced(ctx context.Context) (bool, error) {
	var resp struct {
		Synced bool `json:"synced"`
	}
	if err := w.rpc.call(ctx, "get_sync_status", struct{}{}, &resp); err != nil {
		return false, err
	}
	return resp.Synced, nil
}
