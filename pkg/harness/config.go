package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by DefaultConfig and for zero-valued Config fields.
const (
	DefaultSamples       = 1000
	DefaultInputs        = 1000
	DefaultMaxLen        = 12
	DefaultMaxFailures   = 10
	DefaultMaxMismatches = 10
)

// Config describes one harness run. It is usually read from a check.yaml file.
type Config struct {
	// Samples is the number of strings drawn from the generator. Zero skips
	// sampling; DefaultConfig and ParseConfig start from DefaultSamples.
	Samples int `yaml:"samples" json:"samples"`
	// Seed makes the run reproducible. Zero picks a random seed.
	Seed uint64 `yaml:"seed" json:"seed"`

	// Patterns are tallied against every sample with search semantics.
	Patterns []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`

	// Reference is a pattern equivalent to the automaton. It is anchored
	// on both ends before use.
	Reference string `yaml:"reference,omitempty" json:"reference,omitempty"`
	// Alphabet for random reference inputs. Empty uses the automaton's labels.
	Alphabet string `yaml:"alphabet,omitempty" json:"alphabet,omitempty"`
	// Inputs is the number of random reference inputs.
	Inputs int `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	// MaxLen bounds the length of random reference inputs.
	MaxLen int `yaml:"max_len,omitempty" json:"max_len,omitempty"`

	// Workers bounds parallel matching. Zero uses GOMAXPROCS.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	MaxFailures   int `yaml:"max_failures,omitempty" json:"max_failures,omitempty"`
	MaxMismatches int `yaml:"max_mismatches,omitempty" json:"max_mismatches,omitempty"`
}

// DefaultConfig returns the config an empty check.yaml describes.
func DefaultConfig() Config {
	return Config{Samples: DefaultSamples}
}

// ParseConfig decodes a YAML (or JSON) config over DefaultConfig.
// Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read harness config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Samples < 0:
		return fmt.Errorf("%w: samples must not be negative", ErrInvalidConfig)
	case c.Inputs < 0:
		return fmt.Errorf("%w: inputs must not be negative", ErrInvalidConfig)
	case c.MaxLen < 0:
		return fmt.Errorf("%w: max_len must not be negative", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// withDefaults fills zero fields other than Samples.
func (c Config) withDefaults() Config {
	if c.Inputs == 0 {
		c.Inputs = DefaultInputs
	}
	if c.MaxLen == 0 {
		c.MaxLen = DefaultMaxLen
	}
	if c.MaxFailures == 0 {
		c.MaxFailures = DefaultMaxFailures
	}
	if c.MaxMismatches == 0 {
		c.MaxMismatches = DefaultMaxMismatches
	}
	return c
}
