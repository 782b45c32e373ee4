// Package main runs the numbers game Telnet server.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/countdown/internal/config"
	"github.com/cory-johannsen/countdown/internal/frontend/handlers"
	"github.com/cory-johannsen/countdown/internal/frontend/telnet"
	"github.com/cory-johannsen/countdown/internal/game/rules"
	"github.com/cory-johannsen/countdown/internal/observability"
	"github.com/cory-johannsen/countdown/internal/server"
	"github.com/cory-johannsen/countdown/internal/storage/postgres"
	"github.com/cory-johannsen/countdown/internal/storage/results"
	"github.com/cory-johannsen/countdown/internal/storage/sqlite"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and COUNTDOWN_ environment only when empty)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting countdown",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("storage", cfg.Storage.Driver),
	)

	r := rules.Default()
	if cfg.Game.RulesFile != "" {
		r, err = rules.Load(cfg.Game.RulesFile)
		if err != nil {
			logger.Fatal("loading rules", zap.String("path", cfg.Game.RulesFile), zap.Error(err))
		}
	}
	logger.Info("rules loaded",
		zap.Ints("large", r.Large),
		zap.Ints("small", r.Small),
		zap.Int("target_min", r.TargetMin),
		zap.Int("target_max", r.TargetMax),
	)

	ctx := context.Background()
	lifecycle := server.NewLifecycle(logger)

	store, err := openStore(ctx, cfg, lifecycle, logger)
	if err != nil {
		logger.Fatal("opening results store", zap.Error(err))
	}

	gameHandler := handlers.NewGameHandler(r, store, handlers.Options{
		Seed:        cfg.Game.Seed,
		RecentLimit: cfg.Storage.RecentLimit,
	}, logger)
	telnetAcceptor := telnet.NewAcceptor(cfg.Telnet, gameHandler, logger)

	lifecycle.Add("telnet", &server.FuncService{
		StartFn: func() error {
			return telnetAcceptor.ListenAndServe()
		},
		StopFn: func() {
			telnetAcceptor.Stop()
		},
	})

	if cfg.Health.Enabled {
		health := server.NewHealthServer(cfg.Health.Addr(), logger)
		lifecycle.Add("health", health)
		lifecycle.Notify(health)
	}

	logger.Info("countdown initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Uint64("seed", cfg.Game.Seed),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Defaults()
	}
	return config.Load(path)
}

// openStore builds the results store selected by cfg.Storage.Driver and
// registers a lifecycle service that owns its connections.
func openStore(ctx context.Context, cfg config.Config, lifecycle *server.Lifecycle, logger *zap.Logger) (results.Store, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
			zap.Duration("elapsed", time.Since(dbStart)),
		)

		done := make(chan struct{})
		lifecycle.Add("postgres", &server.FuncService{
			StartFn: func() error {
				ticker := time.NewTicker(30 * time.Second)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return nil
					case <-ticker.C:
						if err := pool.Health(ctx, 5*time.Second); err != nil {
							logger.Warn("database health check failed", zap.Error(err))
						}
					}
				}
			},
			StopFn: func() {
				close(done)
				pool.Close()
			},
		})
		return postgres.NewResultRepository(pool.DB()), nil

	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened", zap.String("path", cfg.Storage.SQLitePath))
		lifecycle.Add("sqlite", closer(store, "sqlite", logger))
		return store, nil

	default:
		return results.Nop{}, nil
	}
}

// closer adapts a store with nothing to run into a service that closes it on
// shutdown.
func closer(c io.Closer, name string, logger *zap.Logger) server.Service {
	done := make(chan struct{})
	return &server.FuncService{
		StartFn: func() error {
			<-done
			return nil
		},
		StopFn: func() {
			close(done)
			if err := c.Close(); err != nil {
				logger.Warn("closing store", zap.String("store", name), zap.Error(err))
			}
		},
	}
}
