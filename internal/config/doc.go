// Package config loads and validates the TOML configuration. Every
// component receives its settings from here rather than reading ambient
// process state; the output directory in particular is threaded explicitly
// through the whole pipeline.
package config
