package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/marks/internal/config"
	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/httpserver"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/importer"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/scheduler"
	"github.com/MrSnakeDoc/marks/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/marks/internal/store/redis"
	"github.com/MrSnakeDoc/marks/internal/store/sqlite"
	"github.com/MrSnakeDoc/marks/internal/usecase"
	"github.com/MrSnakeDoc/marks/internal/utils"
	"github.com/MrSnakeDoc/marks/internal/version"
)

// store is what every backend adapter provides.
type store interface {
	domain.BookmarkRepository
	domain.Pinger
}

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	closer   io.Closer // nil for the memory store
	importer *importer.Importer
	server   *httpserver.Server
}

// New opens the configured store and wires use cases, importer and HTTP
// server. Close releases the store.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	if cfg.LogLevel == "debug" {
		loggerClient.Debugf("cfg: %+v", cfg.Redacted())
	}

	st, closer, err := openStore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}
	loggerClient.Info("bookmark store ready", logger.String("store", cfg.Store))

	set := usecase.NewSet(st, loggerClient.With(logger.String("component", "usecase")))

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		Bookmarks:    set,
		Store:        st,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		closer:   closer,
		importer: importer.New(set.Create, loggerClient.With(logger.String("component", "importer"))),
		server:   httpserver.New(cfg, loggerClient, d),
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store, io.Closer, error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("memory store selected, bookmarks are lost on restart")
		return memory.NewRepository(), nil, nil

	case config.StoreSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLiteDriver, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		log.Info("sqlite opened",
			logger.String("driver", repo.Driver()),
			logger.String("path", cfg.SQLitePath))
		return repo, repo, nil

	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisstore.NewRepository(client, redisstore.WithPrefix(cfg.RedisPrefix)), client, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// Import loads path and creates its bookmarks through the regular use case.
func (a *App) Import(ctx context.Context, path string, format importer.Format) (importer.Result, error) {
	return a.importer.ImportFile(ctx, path, format)
}

// Server exposes the HTTP server, mainly for tests.
func (a *App) Server() *httpserver.Server { return a.server }

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext imports the seed file (if any, then on every reload tick), serves HTTP until ctx is done
// and stops the server within ShutdownTimeout.
func (a *App) RunContext(ctx context.Context) error {
	a.logger.Info("starting marks",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("addr", a.cfg.ListenPort),
		logger.String("base_path", a.cfg.BasePath))

	if a.cfg.SeedFile != "" {
		seed := scheduler.NewSeedReloader(a.importer, a.cfg.SeedFile,
			a.logger.With(logger.String("component", "seed")), a.cfg.SeedReloadInterval)
		if err := seed.Start(ctx); err != nil {
			return err
		}
		defer seed.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("http server error: %w", err)
	}

	a.logger.Info("✅ marks stopped cleanly")
	return nil
}

// Close releases the store connection.
func (a *App) Close() {
	if a.closer != nil {
		utils.CloseLogged(a.closer, a.cfg.Store, a.logger)
	}
	_ = a.logger.Sync()
}
