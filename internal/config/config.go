package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rtmali/rangefe/internal/logger"
)

// Collision policies for rename, move and paste.
const (
	CollisionFail      = "fail"
	CollisionOverwrite = "overwrite"
)

const (
	minPreviewLines = 10
	maxPreviewLines = 10000
	configFileName  = "config.yaml"
)

// Config holds all rangefe settings
type Config struct {
	ShowHidden      bool   `yaml:"show_hidden"`
	CollisionPolicy string `yaml:"collision_policy"`
	PreviewMaxLines int    `yaml:"preview_max_lines"`
	SyntaxTheme     string `yaml:"syntax_theme"`
	MarkdownStyle   string `yaml:"markdown_style"`
	TimeFormat      string `yaml:"time_format"`
	LogLevel        string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ShowHidden:      true,
		CollisionPolicy: CollisionFail,
		PreviewMaxLines: 500,
		SyntaxTheme:     "monokai",
		MarkdownStyle:   "dark",
		TimeFormat:      "2006-01-02 15:04:05",
		LogLevel:        "info",
	}
}

// Load reads config from ~/.config/rangefe/config.yaml. It never fails:
// missing or broken files fall back to defaults.
func Load() *Config {
	defaultConfig := Default()

	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to resolve config path: %v", err)
		return defaultConfig
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if err := Save(defaultConfig); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return defaultConfig
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", configPath, err)
		return defaultConfig
	}

	config.validate(defaultConfig)
	return config
}

func (c *Config) validate(defaults *Config) {
	switch c.CollisionPolicy {
	case CollisionFail, CollisionOverwrite:
	default:
		logger.Warn("Unknown collision_policy %q, using %q", c.CollisionPolicy, defaults.CollisionPolicy)
		c.CollisionPolicy = defaults.CollisionPolicy
	}

	if c.PreviewMaxLines <= 0 {
		c.PreviewMaxLines = defaults.PreviewMaxLines
	} else if c.PreviewMaxLines < minPreviewLines {
		logger.Warn("preview_max_lines too low (%d), using minimum of %d", c.PreviewMaxLines, minPreviewLines)
		c.PreviewMaxLines = minPreviewLines
	} else if c.PreviewMaxLines > maxPreviewLines {
		logger.Warn("preview_max_lines too high (%d), using maximum of %d", c.PreviewMaxLines, maxPreviewLines)
		c.PreviewMaxLines = maxPreviewLines
	}

	if c.SyntaxTheme == "" {
		c.SyntaxTheme = defaults.SyntaxTheme
	}
	if c.MarkdownStyle == "" {
		c.MarkdownStyle = defaults.MarkdownStyle
	}
	if c.TimeFormat == "" {
		c.TimeFormat = defaults.TimeFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// Save writes config to ~/.config/rangefe/config.yaml
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", filepath.Dir(configPath), err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", configPath, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := logger.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
