// Package config loads engine configuration from YAML files and the
// environment. It resolves a config file and an optional .env file, merges
// environment variables through viper, and validates the result.
package config
