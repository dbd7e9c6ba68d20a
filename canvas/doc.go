// Package canvas defines the narrow host-canvas contract that the
// command-stream recorder in package record is built against: matrices,
// rectangles, paths, paints, bitmaps, and sub-pictures.
//
// These types model the drawing primitives a caller hands to a Recorder.
// They deliberately stop at data plus the operations the recorder needs
// (bounds, equality, canonical serialization) — rasterization, GPU
// submission, font shaping, and pixel storage belong to other subsystems
// and are out of scope here, the way gg's own internal/gpu, internal/raster
// and text/ packages are unrelated to its recording/ package.
package canvas
