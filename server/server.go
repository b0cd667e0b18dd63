package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	grpcmw "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/farmpool/poold/chain"
	"github.com/farmpool/poold/db"
	"github.com/farmpool/poold/events"
	"github.com/farmpool/poold/link"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/pool"
	"github.com/farmpool/poold/primitives"
	"github.com/farmpool/poold/registry"
	"github.com/farmpool/poold/rpc"
	"github.com/farmpool/poold/signing"
	"github.com/farmpool/poold/types"
)

type Server struct {
	cfg  Config
	pool *pool.Pool

	rpcListener     net.Listener
	restListener    net.Listener
	metricsListener net.Listener

	closers []func() error
}

type options struct {
	node   chain.FullNode
	wallet chain.Wallet
	prims  primitives.Primitives
}

type Option func(*options)

// WithNode replaces the full node RPC client.
func WithNode(node chain.FullNode) Option {
	return func(o *options) {
		o.node = node
	}
}

// WithWallet replaces the wallet RPC client.
func WithWallet(wallet chain.Wallet) Option {
	return func(o *options) {
		o.wallet = wallet
	}
}

// WithPrimitives replaces the native primitives library.
func WithPrimitives(prims primitives.Primitives) Option {
	return func(o *options) {
		o.prims = prims
	}
}

func listen(raw string) (net.Listener, error) {
	addr, err := net.ResolveTCPAddr("tcp", raw)
	if err != nil {
		return nil, err
	}
	lis, err := net.Listen(addr.Network(), addr.String())
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %v", err)
	}
	return lis, nil
}

func New(ctx context.Context, cfg Config, opts ...Option) (srv *Server, err error) {
	logger := logging.FromContext(ctx)
	s := &Server{cfg: cfg}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if s.rpcListener, err = listen(cfg.RawRPCListener); err != nil {
		return nil, err
	}
	s.closers = append(s.closers, s.rpcListener.Close)
	if s.restListener, err = listen(cfg.RawRESTListener); err != nil {
		return nil, err
	}
	s.closers = append(s.closers, s.restListener.Close)
	if cfg.MetricsPort != nil {
		if s.metricsListener, err = listen(net.JoinHostPort("", strconv.Itoa(int(*cfg.MetricsPort)))); err != nil {
			return nil, err
		}
		s.closers = append(s.closers, s.metricsListener.Close)
	}

	genesis, err := types.Bytes32FromHex(cfg.Node.GenesisChallenge)
	if err != nil {
		return nil, fmt.Errorf("parsing genesis challenge: %w", err)
	}

	node := o.node
	if node == nil {
		client, err := chain.NewNode(cfg.Node.rpcConfig(cfg.Node.NodeURL))
		if err != nil {
			return nil, fmt.Errorf("creating node client: %w", err)
		}
		s.closers = append(s.closers, func() error { client.Close(); return nil })
		node = chain.NewRetrying(client, cfg.Node.MaxRetries, cfg.Node.RetryBackoff, cfg.Node.RetryMultiplier)
	}
	if node, err = chain.NewCaching(cfg.Node.CoinSpendCache, node); err != nil {
		return nil, err
	}

	wallet := o.wallet
	if wallet == nil && cfg.Node.WalletURL != "" {
		client, err := chain.NewWallet(cfg.Node.rpcConfig(cfg.Node.WalletURL))
		if err != nil {
			return nil, fmt.Errorf("creating wallet client: %w", err)
		}
		s.closers = append(s.closers, func() error { client.Close(); return nil })
		wallet = client
	}

	prims := o.prims
	if prims == nil {
		native, err := primitives.OpenNative(cfg.Primitives.Library)
		if err != nil {
			return nil, fmt.Errorf("loading primitives: %w", err)
		}
		s.closers = append(s.closers, native.Close)
		prims = native
	}

	store, err := s.openRegistry()
	if err != nil {
		return nil, err
	}

	redis := link.NewRedis(link.RedisConfig{
		Addr:     cfg.Link.RedisAddr,
		Password: cfg.Link.RedisPassword,
		DB:       cfg.Link.RedisDB,
	})
	s.closers = append(s.closers, redis.Close)
	if err := redis.Ping(ctx); err != nil {
		logger.Warn("account link store unreachable", zap.String("addr", cfg.Link.RedisAddr), zap.Error(err))
	}

	var publisher events.Publisher = events.Discard{}
	if len(cfg.Events.Brokers) > 0 {
		publisher = events.NewKafka(events.KafkaConfig{
			Brokers:      cfg.Events.Brokers,
			BatchTimeout: cfg.Events.BatchTimeout,
		}, logger)
	} else {
		logger.Info("no kafka broker configured, accounting events are dropped")
	}
	sink := events.NewSink(publisher, events.Topics{Shares: cfg.Events.SharesTopic, Farmers: cfg.Events.FarmersTopic})
	s.closers = append(s.closers, sink.Close)

	s.pool, err = pool.New(cfg.Pool, pool.Services{
		Node:       node,
		Wallet:     wallet,
		Primitives: prims,
		Verifier:   signing.BLS{},
		Registry:   store,
		Linker:     link.NewCached(redis, cfg.Link.CacheTTL),
		Events:     sink,
	}, pool.WithGenesisChallenge(genesis))
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	return s, nil
}

func (c NodeConfig) rpcConfig(url string) chain.RPCConfig {
	return chain.RPCConfig{URL: url, CertFile: c.CertFile, KeyFile: c.KeyFile, Timeout: c.Timeout}
}

func (s *Server) openRegistry() (*registry.Store, error) {
	kv, err := db.Open(s.cfg.Registry.Backend, s.cfg.RegistryDir())
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	store := registry.NewStore(kv, registry.WithPartialRetention(2*s.cfg.Pool.TimeTarget))
	s.closers = append(s.closers, store.Close)
	return store, nil
}

// Close releases every resource in the reverse order of acquisition.
func (s *Server) Close() error {
	var result *multierror.Error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && !errors.Is(err, net.ErrClosed) {
			result = multierror.Append(result, err)
		}
	}
	s.closers = nil
	return result.ErrorOrNil()
}

// GrpcAddr returns the address that server is listening on for GRPC.
func (s *Server) GrpcAddr() net.Addr {
	return s.rpcListener.Addr()
}

// HTTPAddr returns the address farmers connect to.
func (s *Server) HTTPAddr() net.Addr {
	return s.restListener.Addr()
}

// Start runs the pool and its request surfaces until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	serverGroup, ctx := errgroup.WithContext(ctx)

	logger := logging.FromContext(ctx)

	logger.Info("starting pool", zap.Object("config", s.cfg.Pool), zap.Object("node", s.cfg.Node))
	serverGroup.Go(func() error {
		return s.pool.Run(ctx)
	})

	metrics := grpc_prometheus.NewServerMetrics()
	metrics.EnableHandlingTimeHistogram(grpc_prometheus.WithHistogramBuckets(prometheus.ExponentialBuckets(0.001, 2, 16)))
	grpcServer := grpc.NewServer(
		rpc.ServerCodec(),
		grpc.UnaryInterceptor(grpcmw.ChainUnaryServer(
			loggerInterceptor(logger),
			metrics.UnaryServerInterceptor(),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(func(p any) error {
				logger.Error("panic in GRPC handler", zap.Any("panic", p), zap.Stack("stack"))
				return status.Error(codes.Internal, "internal error")
			})),
		)),
		// XXX: this is done to prevent routers from cleaning up our connections (e.g aws load balances..)
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     time.Minute * 120,
			MaxConnectionAge:      time.Minute * 180,
			MaxConnectionAgeGrace: time.Minute * 10,
			Time:                  time.Minute,
			Timeout:               time.Minute * 3,
		}),
	)
	rpc.RegisterOperatorServer(grpcServer, rpc.NewOperatorServer(s.pool))
	metrics.InitializeMetrics(grpcServer)
	if err := prometheus.Register(metrics); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return err
		}
	}

	// Start the gRPC server listening for HTTP/2 connections.
	serverGroup.Go(func() error {
		logger.Sugar().Infof("GRPC server listening on %s", s.rpcListener.Addr())
		return grpcServer.Serve(s.rpcListener)
	})

	servers := []*http.Server{{
		Handler:           rpc.NewFarmerHandler(s.pool, logger.Named("http")),
		ReadHeaderTimeout: time.Second * 5,
	}}
	listeners := []net.Listener{s.restListener}
	if s.metricsListener != nil {
		servers = append(servers, &http.Server{Handler: promhttp.Handler(), ReadHeaderTimeout: time.Second * 5})
		listeners = append(listeners, s.metricsListener)
	}
	for i, server := range servers {
		server := server
		lis := listeners[i]
		serverGroup.Go(func() error {
			logger.Sugar().Infof("HTTP server listening on %s", lis.Addr())
			err := server.Serve(lis)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
	}

	// Wait for the server to shut down gracefully
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	grpcServer.GracefulStop()
	for _, server := range servers {
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Sugar().Errorf("failed to shutdown server: %s", err)
		}
	}
	if err := serverGroup.Wait(); err != nil {
		logger.Sugar().Errorf("error when waiting to shutdown servers: %s", err)
		return err
	}
	return nil
}

// loggerInterceptor returns UnaryServerInterceptor handler to log all RPC server incoming requests.
func loggerInterceptor(
	logger *zap.Logger,
) func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		logger := logger.Named(info.FullMethod).With(zap.Stringer("request_id", uuid.New()))
		ctx = logging.NewContext(ctx, logger)

		if peer, ok := peer.FromContext(ctx); ok {
			logger.Debug("new GRPC", zap.Stringer("from", peer.Addr), zap.Any("message", req))
		}

		resp, err := handler(ctx, req)
		if err != nil {
			logger.Info("FAILURE", zap.Error(err))
		}
		return resp, err
	}
}
