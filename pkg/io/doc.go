// Package io loads chart input documents.
//
// # Document Format
//
// A document names the chart type and carries everything one compute call
// needs:
//
//	{
//	  "type": "stacked-bar",
//	  "spec": {"gap": 1, "radius": 2},
//	  "data": [
//	    {"name": "A", "color": "#f00", "pct": 40},
//	    {"name": "B", "color": "#0f0", "pct": 60}
//	  ],
//	  "size": {"width": 200, "height": 12},
//	  "state": {"hover": 1},
//	  "theme": {"palette": ["#111", "#222"]},
//	  "idPrefix": "usage"
//	}
//
// Only "type" is required. The data shape is inferred: an array of numbers is
// a series (null entries are kept as gaps), an array of objects is a segment
// list, and an object is a record.
//
// The same structure can be written in TOML or YAML. The format is chosen by
// file extension (.json, .toml, .yaml, .yml); see [FormatFromPath].
//
//	type = "sparkline"
//	data = [3, 1, 4, 1, 5]
//
//	[size]
//	width = 120
//	height = 24
//
// TOML has no null, so series gaps can only be expressed in JSON or YAML.
//
// # Loading
//
// [Load] reads a file and returns the decoded [model.Input]. [Read] does the
// same from an io.Reader, and [Parse] from bytes. [Document.Input] converts an
// already-decoded document, which is what the HTTP server uses.
//
// Errors carry codes from package errors: INVALID_FORMAT for unknown
// extensions, FILE_NOT_FOUND for missing files, UNKNOWN_CHART_TYPE for a bad
// "type", and INVALID_INPUT for anything that fails to decode.
package io
