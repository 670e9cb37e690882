// Package config loads application configuration from defaults, an optional
// config file, and RECITE_-prefixed environment variables, and validates the
// result.
package config
