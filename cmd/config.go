package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	v1 "github.com/flanksource/workflow-db/api/v1"
)

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// ParseConfig reads and validates an export config file ("-" for stdin).
func ParseConfig(configFile string) (v1.ExportConfig, error) {
	var config v1.ExportConfig

	data, err := readFile(configFile)
	if err != nil {
		return config, fmt.Errorf("error reading %s: %w", configFile, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("error parsing %s: %w", configFile, err)
	}

	if config.Output.Dir == "" {
		config.Output.Dir = filepath.Join(os.TempDir(), "workflow-db")
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", configFile, err)
	}
	return config, nil
}
