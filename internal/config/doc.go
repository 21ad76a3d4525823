// Package config loads and merges the application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Priority: values parsed first win during the merge (mergo keeps non-zero
// fields), so environment variables override flags, which override the
// JSON file. A .env file, when present, is loaded into the environment by
// the caller before GetStructuredConfig runs.
package config
