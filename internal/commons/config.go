package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"woosync/internal/config"
)

// LoadConfig reads a full configuration from a YAML file. It is an
// alternative to the env-driven config.Load for deployments that mount
// a config file instead of environment variables.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
