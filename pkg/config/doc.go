// Package config loads daemon configuration from a YAML file with
// environment variable overrides.
//
// Precedence is built-in defaults, then the YAML file, then OLA_* environment
// variables. Validation runs after all sources are applied so a config is
// either fully valid or rejected as a whole.
package config
