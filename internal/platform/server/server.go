package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	grpchandler "github.com/ogurasousui/codex-usuario-api/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-usuario-api/internal/adapters/grpc/usuariov1"
	httphandler "github.com/ogurasousui/codex-usuario-api/internal/adapters/http/handler"
	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/config"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/metrics"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const defaultShutdownTimeout = 30 * time.Second

// Deps はサーバー構築に必要な依存関係です。
type Deps struct {
	GRPCAddr    string
	HTTP        config.HTTPConfig
	UserService user.UseCase
	Logger      *slog.Logger

	Recorder       metrics.Recorder
	MetricsHandler http.Handler
}

// Server は gRPC サーバーと REST API サーバーのライフサイクルを管理します。
type Server struct {
	grpcAddr        string
	httpAddr        string
	shutdownTimeout time.Duration
	logger          *slog.Logger

	grpcServer *grpc.Server
	httpServer *http.Server
}

// New は両サーバーを構築します。opts は gRPC サーバーに追加で渡されます。
func New(deps Deps, opts ...grpc.ServerOption) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(grpchandler.UnaryServerInterceptors(logger, deps.Recorder)...),
	}, opts...)
	grpcSrv := grpc.NewServer(opts...)
	usuariov1.RegisterUsuarioServiceServer(grpcSrv, grpchandler.NewUserGrpcHandler(deps.UserService))

	shutdownTimeout := deps.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	router := httphandler.NewRouter(httphandler.RouterDeps{
		UserService:    deps.UserService,
		Logger:         logger,
		Recorder:       deps.Recorder,
		MetricsHandler: deps.MetricsHandler,
	})

	return &Server{
		grpcAddr:        deps.GRPCAddr,
		httpAddr:        deps.HTTP.ListenAddr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		grpcServer:      grpcSrv,
		httpServer: &http.Server{
			Handler:      router,
			ReadTimeout:  deps.HTTP.ReadTimeout,
			WriteTimeout: deps.HTTP.WriteTimeout,
			ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
	}
}

// Run は設定されたアドレスで待ち受け、コンテキストがキャンセルされると両サーバーを停止します。
func (s *Server) Run(ctx context.Context) error {
	grpcLis, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.grpcAddr, err)
	}

	httpLis, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}

	return s.Serve(ctx, grpcLis, httpLis)
}

// Serve は渡されたリスナーで両サーバーを起動します。
// いずれかが異常終了した場合はもう一方も停止し、最初のエラーを返します。
func (s *Server) Serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("gRPC server listening", slog.String("addr", grpcLis.Addr().String()))
		if err := s.grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.logger.Info("HTTP server listening", slog.String("addr", httpLis.Addr().String()))
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

func (s *Server) shutdown() error {
	s.logger.Info("shutting down servers")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	httpErr := s.httpServer.Shutdown(ctx)

	select {
	case <-stopped:
	case <-ctx.Done():
		s.grpcServer.Stop()
		<-stopped
	}

	if httpErr != nil {
		return fmt.Errorf("shutdown HTTP: %w", httpErr)
	}
	return nil
}
