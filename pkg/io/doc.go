// Package io provides JSON import and export for resolved scenes.
//
// # Overview
//
// A scene file is the checkpoint between planning and rendering: plan a
// boundary once, then re-render it to any format without re-sampling.
// The format is designed for:
//
//   - Splitting the pipeline: 'plan' writes a scene, 'render' reads it
//   - Caching: scene bytes are stable, so they hash and compare cleanly
//   - Inspection: every drawn coordinate is visible in plain JSON
//
// # JSON Format
//
// A scene is a single object:
//
//	{
//	  "frame": {"width": 1600, "height": 2010, "margin": 48},
//	  "silhouette": [
//	    [{"x": 48, "y": 1962}, {"x": 1552, "y": 1962}, {"x": 800, "y": 48}]
//	  ],
//	  "icons": [
//	    {"x": 420.5, "y": 811.25, "kind": "broadleaf", "color": "#2d6a4f", "size": 13.5}
//	  ],
//	  "provenance": {"source": "uk.geojson", "seed": 42, "points": 1}
//	}
//
// All coordinates are output pixels with the origin at the top-left
// corner and y growing downward. Silhouette rings are closed implicitly;
// holes are separate rings filled with the even-odd rule. Icon sizes are
// the pixel scale applied to the unit-space sprite outlines.
//
// The provenance block records how the scene was produced. It is carried
// along verbatim and never interpreted by sinks.
//
// # Import
//
// Use [ImportJSON] to read a scene from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate the decoded scene: a drawable
// frame, at least one silhouette ring with three or more points, and
// well-formed icons. Malformed input returns DATA_LOAD_ERROR.
//
// # Export
//
// Use [ExportJSON] to write a scene to a file, or [WriteJSON] to write
// to any io.Writer. [MarshalScene] returns the same bytes without
// touching the filesystem; the pipeline hashes those bytes to key the
// artifact cache, which is why the encoding must stay deterministic.
package io
