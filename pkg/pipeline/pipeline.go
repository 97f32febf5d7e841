// Package pipeline runs the compute → render flow shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline has two stages around the stateless engine:
//
//  1. Compute: [engine.Compute] on a [model.Input], memoized under a hash of
//     the canonical input
//  2. Render: one or more sinks (SVG, JSON, PNG) on the resulting model,
//     rendered concurrently and memoized per format and sink options
//
// The engine never sees the cache; memoization is entirely the runner's
// business.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   in,
//	    Formats: []sink.Format{sink.FormatSVG, sink.FormatPNG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[sink.FormatSVG]
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microviz/pkg/cache"
	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 1.0

	// MaxScale bounds the PNG scale factor.
	MaxScale = 8.0

	// DefaultTTL is how long models and artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []sink.Format{sink.FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Input is the engine input. Input.Spec is required.
	Input model.Input

	// Render options
	Formats []sink.Format
	Scale   float64
	Title   string
	Class   string

	// Refresh skips cache reads; results are still written.
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the computed render model.
	Model model.RenderModel

	// ModelHash is the content hash of the model's JSON encoding.
	ModelHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[sink.Format][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Warnings returns the model's diagnostics.
func (r *Result) Warnings() []diag.Warning {
	return r.Model.Stats.Warnings
}

// Stats contains run statistics.
type Stats struct {
	Marks       int
	Warnings    int
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	ModelHit  bool // Whether the model came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if model.MissingSpec(o.Input.Spec) {
		return errors.New(errors.ErrCodeInvalidInput, "input spec is required")
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRender checks and defaults the render options only, for
// rendering a model that was computed elsewhere.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	for _, f := range o.Formats {
		if _, err := sink.ParseFormat(string(f)); err != nil {
			return err
		}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if math.IsNaN(o.Scale) || o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %v out of range (0, %v]", o.Scale, MaxScale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SinkOptions returns the sink options for rendering.
func (o *Options) SinkOptions() sink.Options {
	return sink.Options{Scale: o.Scale, Title: o.Title, Class: o.Class}
}

// ArtifactKeyOpts returns cache key options for one output format. Options a
// format ignores are left out so that, say, the JSON artifact is shared
// across PNG scales.
func (o *Options) ArtifactKeyOpts(f sink.Format) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: string(f)}
	switch f {
	case sink.FormatSVG:
		k.Title, k.Class = o.Title, o.Class
	case sink.FormatPNG:
		k.Scale = o.Scale
	}
	return k
}

func formatNames(fs []sink.Format) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}
