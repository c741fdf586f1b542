// Package config defines the configuration surface for tracelight.
//
// Configuration is loaded in three layers: built-in defaults, an optional
// YAML file, and TRACELIGHT_* environment variable overrides. Environment
// variables always win. Absence of the file, or of any individual setting,
// is never an error.
package config
