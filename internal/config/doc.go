// Package config loads, merges and validates the service configuration.
// Sources in increasing precedence: built-in defaults, an optional YAML file,
// a .env file, GTASK_-prefixed environment variables and command-line flags.
package config
