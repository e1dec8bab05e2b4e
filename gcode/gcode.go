// Package gcode implements the comment-metadata extraction engine. It scans
// the free-text comment lines a slicer embeds in a G-code file and recovers
// inventory metrics (filament length and mass, estimated print time, slicer
// identity) despite inconsistent labels, units, and encodings across
// dialects.
//
// The engine is best-effort by design: unrecognized lines and values that
// fail to normalize are skipped, never errors. The only hard failure is a
// stream-level read error. A G-code file is processed in a single pass; no
// motion commands are interpreted.
package gcode
