package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtmali/rangefe/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

func TestLoadDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Load()
	require.NotNil(t, cfg)

	assert.True(t, cfg.ShowHidden)
	assert.Equal(t, CollisionFail, cfg.CollisionPolicy)
	assert.Equal(t, 500, cfg.PreviewMaxLines)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.TimeFormat)

	// First run writes the defaults so users can edit them.
	_, err := os.Stat(filepath.Join(home, ".config", "rangefe", "config.yaml"))
	assert.NoError(t, err)
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.ShowHidden = false
	cfg.CollisionPolicy = CollisionOverwrite
	cfg.PreviewMaxLines = 42
	cfg.SyntaxTheme = "dracula"

	require.NoError(t, Save(cfg))

	loaded := Load()
	assert.Equal(t, cfg, loaded)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, c *Config)
	}{
		{
			name: "preview lines too low",
			yaml: "preview_max_lines: 3\n",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, minPreviewLines, c.PreviewMaxLines)
			},
		},
		{
			name: "preview lines too high",
			yaml: "preview_max_lines: 999999\n",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, maxPreviewLines, c.PreviewMaxLines)
			},
		},
		{
			name: "unknown collision policy",
			yaml: "collision_policy: merge\n",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, CollisionFail, c.CollisionPolicy)
			},
		},
		{
			name: "partial file keeps other defaults",
			yaml: "show_hidden: false\n",
			check: func(t *testing.T, c *Config) {
				assert.False(t, c.ShowHidden)
				assert.Equal(t, "monokai", c.SyntaxTheme)
				assert.Equal(t, "info", c.LogLevel)
			},
		},
		{
			name: "invalid yaml falls back to defaults",
			yaml: "show_hidden: [unclosed\n",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, Default(), c)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)

			dir := filepath.Join(home, ".config", "rangefe")
			require.NoError(t, os.MkdirAll(dir, 0755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.yaml), 0644))

			tt.check(t, Load())
		})
	}
}
