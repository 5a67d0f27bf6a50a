// Package config provides configuration loading and management.
package config

import (
	"os"

	"github.com/tejasp2022/handfoundationmodel/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for handmesh.
type Config struct {
	// Input/Output
	VideoPath string `yaml:"video_path"`
	OutputDir string `yaml:"output_dir"`

	// Sampling
	FPSSample int `yaml:"fps_sample"`

	// Model
	Device         string `yaml:"device"`
	CheckpointPath string `yaml:"checkpoint_path"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir:      "results",
		FPSSample:      2,
		Device:         "cuda",
		CheckpointPath: orchestrator.DefaultCheckpointPath,
		DebugDir:       "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
// Values not present in the file keep their defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		VideoPath:      c.VideoPath,
		FPSSample:      c.FPSSample,
		OutputDir:      c.OutputDir,
		Device:         c.Device,
		CheckpointPath: c.CheckpointPath,
	}
}
