// Package sink renders a [model.RenderModel] to bytes.
//
// Sinks are ordinary consumers of the engine's output: they read the marks,
// defs and accessibility tree and never call back into the engine.
//
//   - [RenderSVG]: standalone SVG document. Output is byte-identical for equal
//     models, so it can be cached and diffed.
//   - [RenderJSON]: the model itself, indented. Marks and defs carry their
//     "type" discriminator and decode back with json.Unmarshal.
//   - [RenderPNG]: software rasterization through github.com/gogpu/gg.
//
// # PNG Limitations
//
// The PNG sink covers what the built-in chart types emit. Text marks are drawn
// with the embedded font from package fonts and are never clipped. Gradient
// and pattern paints fall back to their first stop or hatch color, masks and
// filters are ignored, and only hex colors are understood. Clip rects are
// honored for shapes.
//
// [Render] dispatches on a [Format] and is what the pipeline and HTTP server
// use.
package sink
