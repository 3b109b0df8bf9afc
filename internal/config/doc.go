// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file.
package config
