package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpgo/fire-projector/internal/cache"
	"github.com/rpgo/fire-projector/internal/calculation"
	"github.com/rpgo/fire-projector/internal/config"
	"github.com/rpgo/fire-projector/internal/domain"
	"github.com/rpgo/fire-projector/internal/server"
	"github.com/rpgo/fire-projector/internal/service"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr, configFile string
	var maxYears int
	var verbose bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser calculator and JSON API",
		Long: `Serve the calculator over HTTP. Settings come from FIREPROJ_* environment
variables; flags override them. With FIREPROJ_REDIS_ADDR set, results are
cached in Redis, otherwise in memory. The year bound comes from --max-years,
then FIREPROJ_MAX_YEARS, then the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("config") {
				cfg.ConfigFile = configFile
			}
			if verbose {
				cfg.Verbose = true
			}
			explicit := maxYearsFromEnv()
			if cmd.Flags().Changed("max-years") {
				if maxYears <= 0 || maxYears > config.MaxYearsLimit {
					return fmt.Errorf("--max-years must be between 1 and %d", config.MaxYearsLimit)
				}
				cfg.MaxYears = maxYears
				explicit = true
			}
			return runServe(cmd, cfg, explicit)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "configuration file providing form defaults")
	cmd.Flags().IntVar(&maxYears, "max-years", 0, "year bound for projections (overrides environment and configuration)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

func maxYearsFromEnv() bool {
	v, ok := os.LookupEnv("FIREPROJ_MAX_YEARS")
	return ok && v != ""
}

// serveMaxYears returns the configuration file's year bound unless one was
// given explicitly through the environment or a flag.
func serveMaxYears(cfg config.ServerConfig, defaults *domain.Configuration, explicit bool) int {
	if explicit || defaults == nil || defaults.Projection.MaxYears <= 0 {
		return cfg.MaxYears
	}
	return defaults.Projection.MaxYears
}

func runServe(cmd *cobra.Command, cfg config.ServerConfig, explicitMaxYears bool) error {
	logger := calculation.NewStdLogger(cmd.ErrOrStderr(), cfg.Verbose)

	defaults, err := loadConfiguration(cfg.ConfigFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := newCache(ctx, cfg, logger)
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	maxYears := serveMaxYears(cfg, defaults, explicitMaxYears)
	logger.Debugf("projections bounded at %d years", maxYears)
	engine := calculation.NewProjectionEngineWithMaxYears(maxYears)
	engine.SetLogger(logger)
	svc := service.NewProjectionService(engine, store, logger, defaults.Display)

	var limiter *server.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = server.NewRateLimiter(cfg.RateLimit, cfg.RateRefill)
		defer limiter.Stop()
	}

	srv := server.New(server.Options{
		Service:        svc,
		Defaults:       defaults.Parameters,
		Display:        defaults.Display,
		Logger:         logger,
		Limiter:        limiter,
		RequestTimeout: cfg.RequestTimeout,
	})
	return srv.ListenAndServe(ctx, cfg.Addr, cfg.ReadTimeout, cfg.WriteTimeout)
}

// newCache prefers Redis when configured and reachable.
func newCache(ctx context.Context, cfg config.ServerConfig, logger calculation.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(cfg.CacheSize)
	}
	rc := cache.NewRedisCache(cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		logger.Warnf("redis at %s unavailable, using in-memory cache: %v", cfg.RedisAddr, err)
		_ = rc.Close()
		return cache.NewMemoryCache(cfg.CacheSize)
	}
	logger.Infof("caching projections in redis at %s", cfg.RedisAddr)
	return rc
}
