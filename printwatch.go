// Package printwatch extracts inventory metrics (filament usage, estimated
// print time, slicer identity) from the comment metadata that slicers embed
// in 3D-printer G-code files. It tolerates the differing comment dialects of
// PrusaSlicer, Bambu Studio, OrcaSlicer and Cura, exports results to
// JSON/CSV, keeps a local extraction history, and can watch a folder for
// newly sliced files.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., gcode/, sqlite/, watch/).
package printwatch
