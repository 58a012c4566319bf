// Package config loads and validates YAML scenarios for the roadnet engine.
//
// A Scenario names the world (glyph layout rows or an OSM extract), its seed,
// zone occupancy, and one section per engine stage. Sections mirror the
// stage configs with YAML tags; Default fills every section from the stage
// DefaultConfig so a scenario file only lists what it changes.
//
// Validation uses go-playground/validator struct tags plus a few cross-field
// checks. Every failure is reported against the YAML path of the field and
// wraps ErrInvalidConfig. This is the only place a malformed configuration
// surfaces as an error; the engine packages themselves are total.
//
// Load accepts plain files and snappy-compressed ".sz" files.
package config
