package config

import (
	"fmt"
	"os"
	"time"

	"github.com/toolsathi/toolsathi/pkg/models"
	"gopkg.in/yaml.v3"
)

// Config holds all ToolSathi configuration.
type Config struct {
	Listen   string             `yaml:"listen"`
	DBPath   string             `yaml:"db_path"`
	Generate GenerateConfig     `yaml:"generate"`
	Cache    CacheConfig        `yaml:"cache"`
	Quota    QuotaConfig        `yaml:"quota"`
	Audit    models.AuditConfig `yaml:"audit"`
}

// GenerateConfig defines the generative-text provider.
// Models is an ordered fallback chain: the first model that answers wins.
type GenerateConfig struct {
	APIKey  string        `yaml:"api_key"`
	Models  []string      `yaml:"models"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig controls the generation cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// QuotaConfig controls daily generation quotas.
type QuotaConfig struct {
	Enabled  bool                 `yaml:"enabled"`
	Policies []models.QuotaPolicy `yaml:"policies"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen: ":3000",
		DBPath: "toolsathi.db",
		Generate: GenerateConfig{
			Models:  []string{"gemini-2.5-flash"},
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Quota: QuotaConfig{
			Enabled: false,
		},
		Audit: models.AuditConfig{
			Enabled:       true,
			MaxOutputSize: 8192,
			RetentionDays: 30,
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Generate.Models) == 0 {
		cfg.Generate.Models = Default().Generate.Models
	}
	if cfg.Audit.DBPath == "" {
		cfg.Audit.DBPath = cfg.DBPath
	}

	return cfg, nil
}
