package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/lyteflow/lyteflow/logger"
	"github.com/lyteflow/lyteflow/pipe"
)

// Config holds everything needed to assemble and run a pipe system.
type Config struct {
	// Name identifies the system in logs and reports.
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	// Verbose enables per-element flow logging.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	// MaxParallel bounds concurrent element execution; values below 2
	// select the sequential engine.
	MaxParallel int `yaml:"max_parallel" mapstructure:"max_parallel" validate:"gte=0"`
	// Definitions lists pipe-system definition files to load.
	Definitions []string `yaml:"definitions" mapstructure:"definitions" validate:"dive,required"`
	// Logging configures the structured logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "pipesystem"
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// SystemOptions converts the configuration into pipe system options,
// constructing the logger from the logging section.
func (c *Config) SystemOptions() pipe.Options {
	return pipe.Options{
		Name:        c.Name,
		Verbose:     c.Verbose,
		MaxParallel: c.MaxParallel,
		Logger:      logger.New(&c.Logging, c.Name),
	}
}
