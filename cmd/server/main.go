package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/codex-usuario-api/internal/adapters/repository/memory"
	"github.com/ogurasousui/codex-usuario-api/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/config"
	pg "github.com/ogurasousui/codex-usuario-api/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/logger"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/metrics"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, effectiveConfigPath(*configPath)); err != nil {
		slog.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	level, _ := cfg.Log.SlogLevel()
	log := logger.SetupDefault(os.Stdout, level)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	repo, tx, cleanup, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	userSvc := user.NewService(repo, nil, tx)

	srv := server.New(server.Deps{
		GRPCAddr:       cfg.Server.ListenAddr,
		HTTP:           cfg.HTTP,
		UserService:    userSvc,
		Logger:         log,
		Recorder:       collector,
		MetricsHandler: metrics.Handler(reg),
	})

	return srv.Run(ctx)
}

// newStore は storage.driver に応じたリポジトリとトランザクション制御を返します。
func newStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (user.Repository, user.TransactionManager, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("using in-memory store; data is lost on restart")
		return memory.NewUserRepository(), nil, func() {}, nil
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return postgres.NewUserRepository(dbPool), pg.NewTransactionManager(dbPool), dbPool.Close, nil
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}
