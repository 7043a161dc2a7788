// Package config loads the application configuration from environment
// variables (X13_ prefix) layered over an optional YAML file, applies
// struct-tag defaults, and validates the result before anything else
// starts.
package config
