package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/farmpool/poold/pool"
	"github.com/farmpool/poold/rpc/api"
	"github.com/farmpool/poold/types"
)

//go:generate mockgen -package mocks -destination mocks/rpc.go . Pool

// Pool is what the request surfaces need from the pool.
type Pool interface {
	Info() types.PoolInfo
	Status() pool.Status
	Farmer(ctx context.Context, launcherID types.Bytes32) (*types.FarmerRecord, error)
	SubmitPartial(ctx context.Context, req *types.PostPartialRequest) (uint64, error)
	AddFarmer(ctx context.Context, req *types.PostFarmerRequest) (*types.PostFarmerResponse, error)
	UpdateFarmer(ctx context.Context, req *types.PutFarmerRequest) (*types.PutFarmerResponse, error)
	GetFarmer(ctx context.Context, req *types.GetFarmerRequest) (*types.GetFarmerResponse, error)
}

type OperatorServer interface {
	Info(context.Context, *api.InfoRequest) (*types.PoolInfo, error)
	Status(context.Context, *api.StatusRequest) (*api.StatusResponse, error)
	Farmer(context.Context, *api.FarmerRequest) (*api.FarmerResponse, error)
}

// operatorServer is the gRPC front end for pool operators.
type operatorServer struct {
	pool Pool
}

// A compile time check to ensure that operatorServer fully implements
// the OperatorServer gRPC service.
var _ OperatorServer = (*operatorServer)(nil)

func NewOperatorServer(p Pool) OperatorServer {
	return &operatorServer{pool: p}
}

func (s *operatorServer) Info(context.Context, *api.InfoRequest) (*types.PoolInfo, error) {
	info := s.pool.Info()
	return &info, nil
}

func (s *operatorServer) Status(context.Context, *api.StatusRequest) (*api.StatusResponse, error) {
	st := s.pool.Status()
	return &api.StatusResponse{
		Peak:            st.Peak,
		WalletSynced:    st.WalletSynced,
		PendingPartials: st.PendingPartials,
		Cooldowns:       st.Cooldowns,
	}, nil
}

func (s *operatorServer) Farmer(ctx context.Context, in *api.FarmerRequest) (*api.FarmerResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, types.NewPoolError(types.RequestFailed, "%v", err)
	}
	record, err := s.pool.Farmer(ctx, in.LauncherID)
	if err != nil {
		return nil, err
	}
	return api.FromFarmerRecord(record), nil
}

func unary[Req, Resp any](
	name string,
	call func(OperatorServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + api.ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(OperatorServer), ctx, req.(*Req))
				if err != nil {
					st, trailer := api.ToStatus(err)
					if trailer != nil {
						_ = grpc.SetTrailer(ctx, trailer)
					}
					return nil, st
				}
				return resp, nil
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			return interceptor(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}, handler)
		},
	}
}

var operatorServiceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*OperatorServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Info", OperatorServer.Info),
		unary("Status", OperatorServer.Status),
		unary("Farmer", OperatorServer.Farmer),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterOperatorServer(s grpc.ServiceRegistrar, srv OperatorServer) {
	s.RegisterService(&operatorServiceDesc, srv)
}

// ServerCodec makes a gRPC server speak the JSON encoding of the operator service.
func ServerCodec() grpc.ServerOption {
	return grpc.ForceServerCodec(jsonCodec{})
}
