package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/microviz/pkg/cache"
	"github.com/matzehuels/microviz/pkg/engine"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/observability"
	"github.com/matzehuels/microviz/pkg/sink"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so several goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to every cache write. Zero means entries never expire.
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer means DefaultKeyer and a nil cache
// means NullCache (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Execute runs compute → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	start := time.Now()
	m, hit, err := r.ComputeWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	result.Model = m
	result.Stats.ComputeTime = time.Since(start)
	result.Stats.Marks = len(m.Marks)
	result.Stats.Warnings = len(m.Stats.Warnings)
	result.CacheInfo.ModelHit = hit

	modelData, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	result.ModelHash = cache.Hash(modelData)

	opts.Logger.Debug("computed model",
		"type", opts.Input.Spec.Type(),
		"marks", result.Stats.Marks,
		"warnings", result.Stats.Warnings,
		"cached", hit,
		"duration", result.Stats.ComputeTime)

	start = time.Now()
	artifacts, renderHit, err := r.renderModel(ctx, m, result.ModelHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Debug("rendered outputs",
		"formats", formatNames(opts.Formats),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeWithCacheInfo computes the render model, reusing a cached model for
// an identical input. The bool reports a cache hit.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, opts Options) (model.RenderModel, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return model.RenderModel{}, false, err
	}

	inputHash, hashErr := InputHash(opts.Input)
	if hashErr != nil {
		opts.Logger.Debug("input not cacheable", "error", hashErr)
	}
	key := r.Keyer.ModelKey(inputHash)

	if hashErr == nil && !opts.Refresh {
		if m, ok := r.cachedModel(ctx, key, opts.Logger); ok {
			return m, true, nil
		}
	}

	tag := string(opts.Input.Spec.Type())
	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, tag)
	start := time.Now()
	m, err := engine.Compute(opts.Input)
	hooks.OnComputeComplete(ctx, tag, len(m.Marks), len(m.Stats.Warnings), time.Since(start), err)
	if err != nil {
		return model.RenderModel{}, false, err
	}

	if hashErr == nil {
		if data, err := json.Marshal(m); err == nil {
			r.store(ctx, "model", key, data, opts.Logger)
		}
	}
	return m, false, nil
}

// Compute is ComputeWithCacheInfo without the cache hit info.
func (r *Runner) Compute(ctx context.Context, opts Options) (model.RenderModel, error) {
	m, _, err := r.ComputeWithCacheInfo(ctx, opts)
	return m, err
}

func (r *Runner) cachedModel(ctx context.Context, key string, logger *log.Logger) (model.RenderModel, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "model")
		return model.RenderModel{}, false
	}
	var m model.RenderModel
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Debug("discarding corrupt cached model", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, "model")
		return model.RenderModel{}, false
	}
	observability.Cache().OnCacheHit(ctx, "model")
	return m, true
}

// RenderWithCacheInfo renders m in every requested format. The bool reports
// whether all artifacts came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m model.RenderModel, opts Options) (map[sink.Format][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, false, fmt.Errorf("encode model: %w", err)
	}
	return r.renderModel(ctx, m, cache.Hash(data), opts)
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, m model.RenderModel, opts Options) (map[sink.Format][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

func (r *Runner) renderModel(ctx context.Context, m model.RenderModel, modelHash string, opts Options) (map[sink.Format][]byte, bool, error) {
	artifacts := make(map[sink.Format][]byte, len(opts.Formats))
	var missing []sink.Format
	for _, f := range opts.Formats {
		key := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(f))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[f] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, f)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	names := formatNames(missing)
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, names)
	start := time.Now()

	rendered := make([][]byte, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range missing {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := sink.Render(m, f, opts.SinkOptions())
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			rendered[i] = data
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, names, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for i, f := range missing {
		artifacts[f] = rendered[i]
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(f)), rendered[i], opts.Logger)
	}
	return artifacts, false, nil
}

// store writes to the cache. Failures are logged, never returned: a broken
// cache must not fail a render.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
