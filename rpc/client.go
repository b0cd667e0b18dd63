package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/farmpool/poold/rpc/api"
	"github.com/farmpool/poold/types"
)

// Client calls the operator service of a running pool.
type Client struct {
	conn *grpc.ClientConn
}

func Dial(ctx context.Context, target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	}, opts...)
	conn, err := grpc.DialContext(ctx, target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	var trailer metadata.MD
	err := c.conn.Invoke(ctx, "/"+api.ServiceName+"/"+method, in, out, grpc.Trailer(&trailer))
	if err != nil {
		return api.FromStatus(err, trailer)
	}
	return nil
}

func (c *Client) Info(ctx context.Context) (*types.PoolInfo, error) {
	out := new(types.PoolInfo)
	if err := c.invoke(ctx, "Info", &api.InfoRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Status(ctx context.Context) (*api.StatusResponse, error) {
	out := new(api.StatusResponse)
	if err := c.invoke(ctx, "Status", &api.StatusRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Farmer(ctx context.Context, launcherID types.Bytes32) (*api.FarmerResponse, error) {
	out := new(api.FarmerResponse)
	if err := c.invoke(ctx, "Farmer", &api.FarmerRequest{LauncherID: launcherID}, out); err != nil {
		return nil, err
	}
	return out, nil
}
