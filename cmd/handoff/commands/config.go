package commands

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teenjuna/handoff"
)

// RunConfig describes a run. It can be loaded from a YAML file and is overridden by flags.
type RunConfig struct {
	Policy    handoff.Policy `yaml:"policy"`
	Producers int            `yaml:"producers"`
	Consumers int            `yaml:"consumers"`
	Items     int            `yaml:"items"`
	Pace      time.Duration  `yaml:"pace"`
	Jitter    float64        `yaml:"jitter"`
	Timeout   time.Duration  `yaml:"timeout"`
	Journal   string         `yaml:"journal"`
	Metrics   bool           `yaml:"metrics"`
}

func defaultRunConfig() RunConfig {
	return RunConfig{
		Policy:    handoff.Fixed(4),
		Producers: 1,
		Consumers: 1,
		Items:     10,
		Jitter:    0.1,
	}
}

// LoadRunConfig reads a YAML run file on top of the defaults.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := defaultRunConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read run file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse run file: %w", err)
	}

	return cfg, cfg.validate()
}

func (c RunConfig) validate() error {
	switch {
	case c.Producers < 1:
		return fmt.Errorf("producers can't be < 1")
	case c.Consumers < 1:
		return fmt.Errorf("consumers can't be < 1")
	case c.Items < 0:
		return fmt.Errorf("items can't be < 0")
	case c.Pace < 0:
		return fmt.Errorf("pace can't be < 0")
	case c.Jitter < 0 || c.Jitter >= 1:
		return fmt.Errorf("jitter must be in [0, 1)")
	case c.Timeout < 0:
		return fmt.Errorf("timeout can't be < 0")
	}
	if _, err := c.Policy.MarshalText(); err != nil {
		return err
	}
	return nil
}
