package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/charttrend/internal/analyzer"
)

type Config struct {
	Strategy  string          `yaml:"strategy" default:"edge-slope" validate:"oneof=edge-slope region-contrast"`
	Workers   int             `yaml:"workers" validate:"gte=1,lte=256"` // see MaxWorkers
	PDFDPI    int             `yaml:"pdf_dpi" default:"150" validate:"gte=36,lte=1200"`
	ShowStats bool            `yaml:"show_stats"`
	Log       LogConfig       `yaml:"log"`
	Analyzer  analyzer.Params `yaml:"analyzer"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"warn" validate:"oneof=trace debug info warn error disabled"`
	Format string `yaml:"format" default:"console" validate:"oneof=console json"`
}

// MaxWorkers is the largest accepted worker count
const MaxWorkers = 256

var validate = validator.New()

// defaultWorkers is one worker per CPU, capped at MaxWorkers
func defaultWorkers(cpus int) int {
	if cpus > MaxWorkers {
		return MaxWorkers
	}
	if cpus < 1 {
		return 1
	}
	return cpus
}

// Default returns the built-in configuration
func Default() (*Config, error) {
	c := &Config{Analyzer: analyzer.DefaultParams()}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers(runtime.NumCPU())
	}
	return c, nil
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
// Keys missing from the file keep their default value; unknown keys are rejected.
// The result is not validated so that flag overrides can be applied first.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return c, nil
}

// Validate checks value ranges and cross-field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
