// Package project handles everything around the compiler core: the
// typegen.yaml configuration, source file discovery, project
// scaffolding, and the build history used to clean up stale output.
package project

import (
	"fmt"

	"github.com/spf13/viper"
)

// TargetConfig is one code generation target
type TargetConfig struct {
	Language string `mapstructure:"language"`
	Output   string `mapstructure:"output"`
}

// Config represents the typegen configuration
type Config struct {
	ProjectName string         `mapstructure:"project_name"`
	SourceDir   string         `mapstructure:"source_dir"`
	Targets     []TargetConfig `mapstructure:"targets"`
}

// LoadConfig loads typegen.yaml from the given directory
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("source_dir", "schemas")

	v.SetConfigName("typegen")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("no typegen.yaml found in %s - are you in a typegen project? (run 'typegen init')", dir)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// validateConfig checks the loaded configuration
func validateConfig(config *Config) error {
	if len(config.Targets) == 0 {
		return fmt.Errorf("typegen.yaml declares no targets")
	}
	for _, t := range config.Targets {
		if t.Language == "" {
			return fmt.Errorf("target with empty language in typegen.yaml")
		}
		if t.Output == "" {
			return fmt.Errorf("target %q has no output directory", t.Language)
		}
	}
	return nil
}
