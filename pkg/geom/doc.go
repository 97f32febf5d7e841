// Package geom builds the geometry shared by the chart types: SVG path data,
// annular and pie wedges, dashed ring segments and slice-and-dice packing.
//
// All functions are pure. Angles are in radians with 0 on the positive
// x-axis and -π/2 at twelve o'clock; because the canvas y-axis points down,
// increasing angles run clockwise on screen.
//
// # Wedges
//
// [Wedge] emits outer arc, radial line, inner arc in reverse, close. An SVG
// arc command cannot describe a full circle, so a sweep of 2π is split at
// its midpoint into two half arcs per radius. A full donut therefore has four
// arc commands and a full pie two. A sweep is treated as full once its outer
// endpoints are within [MinChord], where snapping would merge them.
// The large-arc flag is derived from each arc's own sweep.
//
// # Rings
//
// [RingDashes] turns segments into dash-array / dash-offset pairs for
// stroked circles. Every dash starts where the previous dash and its gap
// ended, and the first dash starts at twelve o'clock.
//
// # Packing
//
// [SliceDice] recursively cuts a rectangle along its longer side. Cuts land
// on whole pixels relative to the rectangle origin and always leave at least
// one pixel for the remaining segments.
package geom
