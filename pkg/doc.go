// Package pkg provides the libraries behind microviz, a chart computation
// engine for small inline charts.
//
// # Overview
//
// microviz turns a chart type, its options and its data into a render model:
// a deterministic, render-agnostic list of marks (rect, circle, line, path,
// text), paint defs and an accessibility tree. Renderers never compute
// geometry; they only draw marks.
//
// # Architecture
//
//	input document (.json / .toml / .yaml)
//	         ↓
//	    [io] decode into a model.Input
//	         ↓
//	    [engine] dispatch to a [charts] handler, normalize, lay out
//	         ↓
//	    model.RenderModel (marks, defs, a11y, warnings)
//	         ↓
//	    [sink] SVG / JSON / PNG
//
// [pipeline] wraps the engine and sinks with caching ([cache]) and is shared
// by the CLI and the HTTP [server].
//
// # Quick Start
//
//	in, err := io.Load("usage.json")
//	if err != nil {
//	    return err
//	}
//	m, err := engine.Compute(in)
//	if err != nil {
//	    return err // unknown chart type or spec mismatch
//	}
//	svg := sink.RenderSVG(m)
//
// # Main Packages
//
// [model] - Input, spec, data, mark, def and accessibility types.
//
// [engine] - The stateless compute entry point and the chart type registry.
//
// [charts] - One handler per chart type plus the shared option resolvers.
//
// [normalize], [alloc], [geom], [snap], [a11y] - Data normalization,
// largest-remainder allocation, arc and layout geometry, number formatting
// and accessibility summaries.
//
// [diag] and [errors] - Recoverable warnings and fatal error codes.
//
// [io], [sink], [cache], [pipeline], [server] - Document decoding, renderers,
// cache backends, orchestration and the HTTP API.
package pkg
