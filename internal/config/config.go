// Package config handles YAML run configuration parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"rapbench/internal/report"
)

// Config is the root configuration structure for a detector run.
type Config struct {
	Workload             string           `yaml:"workload"`
	Tasks                int              `yaml:"tasks"`
	BlockingTasks        int              `yaml:"blocking_tasks"`
	HeartbeatInterval    time.Duration    `yaml:"heartbeat_interval"`
	StallThresholdFactor float64          `yaml:"stall_threshold_factor"`
	SpawnRate            int              `yaml:"spawn_rate"`
	Criteria             *report.Criteria `yaml:"criteria,omitempty"`
	Output               string           `yaml:"output"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
