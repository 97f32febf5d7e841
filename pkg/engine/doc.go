// Package engine is the single entry point of the chart engine.
//
// [Compute] resolves the handler for the spec's type tag, builds the layout,
// runs the handler's steps and assembles an immutable [model.RenderModel]:
//
//  1. Resolve the handler; an unknown tag is a fatal error.
//  2. Resolve size and padding (defaults when absent or invalid) and build
//     the layout.
//  3. Resolve options and normalize the data. Neither step fails.
//  4. If the data is empty, emit no marks and an EMPTY_DATA warning;
//     otherwise generate marks and defs.
//  5. Drop marks with non-finite coordinates, flag marks outside the
//     canvas, apply the style class and emphasis state.
//  6. Build the accessibility tree and cap warnings at 25.
//
// Compute is a pure function of its input. It reads no clock, no random
// source and no mutable globals, so it is safe for concurrent use and its
// output can be memoized on full input equality.
//
// The registry is built from [charts.All] at package initialization, keyed by
// the tag each handler declares. A duplicate tag or a failing handler check
// panics when the package loads.
package engine
