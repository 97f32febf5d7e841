package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/microviz/pkg/cache"
	"github.com/matzehuels/microviz/pkg/pipeline"
	"github.com/matzehuels/microviz/pkg/server"
)

// Cache backends accepted by serve.
const (
	backendMemory = "memory"
	backendRedis  = "redis"
	backendFile   = "file"
	backendNone   = "none"
)

// redisPrefix scopes every key the server writes to a shared Redis.
const redisPrefix = appName + ":"

// shutdownTimeout bounds graceful shutdown after an interrupt.
const shutdownTimeout = 10 * time.Second

// serveConfig is the server configuration after env and flags are merged.
type serveConfig struct {
	addr      string
	backend   string
	redisURL  string
	cacheSize int
	cacheTTL  time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := serveConfig{
		addr:      server.DefaultAddr,
		backend:   backendMemory,
		cacheSize: cache.DefaultMemoryEntries,
		cacheTTL:  pipeline.DefaultTTL,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render server",
		Long: `Serve runs the HTTP render server until interrupted.

Settings come from flags, then MICROVIZ_* environment variables, then a .env
file in the working directory:

  MICROVIZ_ADDR         listen address (default :8080)
  MICROVIZ_CACHE        memory, redis, file or none (default memory)
  MICROVIZ_REDIS_URL    redis:// URL for the redis backend
  MICROVIZ_CACHE_SIZE   entries kept by the memory backend
  MICROVIZ_CACHE_TTL    lifetime of cached entries, e.g. 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if err := applyEnv(cmd, &cfg); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.addr, "addr", cfg.addr, "listen address")
	cmd.Flags().StringVar(&cfg.backend, "cache", cfg.backend, "cache backend: memory, redis, file, none")
	cmd.Flags().StringVar(&cfg.redisURL, "redis-url", "", "Redis URL for the redis backend")
	cmd.Flags().IntVar(&cfg.cacheSize, "cache-size", cfg.cacheSize, "entries kept by the memory backend")
	cmd.Flags().DurationVar(&cfg.cacheTTL, "cache-ttl", cfg.cacheTTL, "lifetime of cached entries")

	return cmd
}

// applyEnv fills every flag the user did not set from its environment
// variable.
func applyEnv(cmd *cobra.Command, cfg *serveConfig) error {
	set := func(flag, env string, apply func(string) error) error {
		if cmd.Flags().Changed(flag) {
			return nil
		}
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			return nil
		}
		if err := apply(v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		return nil
	}

	if err := set("addr", "MICROVIZ_ADDR", func(v string) error {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		cfg.addr = v
		return nil
	}); err != nil {
		return err
	}
	if err := set("cache", "MICROVIZ_CACHE", func(v string) error {
		cfg.backend = strings.ToLower(v)
		return nil
	}); err != nil {
		return err
	}
	if err := set("redis-url", "MICROVIZ_REDIS_URL", func(v string) error {
		cfg.redisURL = v
		return nil
	}); err != nil {
		return err
	}
	if err := set("cache-size", "MICROVIZ_CACHE_SIZE", func(v string) error {
		n, err := strconv.Atoi(v)
		cfg.cacheSize = n
		return err
	}); err != nil {
		return err
	}
	return set("cache-ttl", "MICROVIZ_CACHE_TTL", func(v string) error {
		d, err := time.ParseDuration(v)
		cfg.cacheTTL = d
		return err
	})
}

// newServeCache opens the configured backend and the keyer that goes with it.
func newServeCache(ctx context.Context, cfg serveConfig) (cache.Cache, cache.Keyer, error) {
	switch cfg.backend {
	case backendMemory:
		mc, err := cache.NewMemoryCache(cfg.cacheSize)
		if err != nil {
			return nil, nil, err
		}
		return mc, nil, nil
	case backendRedis:
		if cfg.redisURL == "" {
			return nil, nil, fmt.Errorf("redis cache needs --redis-url or MICROVIZ_REDIS_URL")
		}
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.redisURL})
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(nil, redisPrefix), nil
	case backendFile:
		c, err := newCache(false)
		return c, nil, err
	case backendNone:
		return cache.NewNullCache(), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown cache backend %q (want memory, redis, file or none)", cfg.backend)
}

func (c *CLI) runServe(ctx context.Context, cfg serveConfig) error {
	logger := loggerFromContext(ctx)

	store, keyer, err := newServeCache(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, keyer, logger)
	if cfg.cacheTTL > 0 {
		runner.TTL = cfg.cacheTTL
	}
	defer runner.Close()

	srv := server.New(server.Config{Addr: cfg.addr, Runner: runner, Logger: logger})

	printKeyValue("Address", cfg.addr)
	printKeyValue("Cache", cfg.backend)
	printNextStep("Render a chart", fmt.Sprintf("curl -X POST --data @chart.json 'http://localhost%s/v1/render?format=svg'", listenPort(cfg.addr)))

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

// listenPort returns the ":port" suffix of addr.
func listenPort(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ":" + addr
}
