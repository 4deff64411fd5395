package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// WeeklyMicroTarget is the number of micro releases expected per week.
	WeeklyMicroTarget int `json:"weekly_micro_target"`

	// WeeklyPluginTarget is the number of plugin builds expected per week.
	WeeklyPluginTarget int `json:"weekly_plugin_target"`

	// MonthlyMajorTarget is the number of major releases expected per month.
	MonthlyMajorTarget int `json:"monthly_major_target"`

	// MonthlyPluginTarget is the number of plugin builds expected per month.
	MonthlyPluginTarget int `json:"monthly_plugin_target"`

	// Bind is the address the API server listens on.
	Bind string `json:"bind,omitempty"`

	// Port is the API server port.
	Port int `json:"port,omitempty"`

	// MaxUploadBytes caps the size of a single uploaded media file.
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty"`

	// LogMode selects the logger configuration ("dev" or "prod").
	LogMode string `json:"log_mode,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration. The goal targets
// mirror the tracker's cadence: one micro release and one plugin build a
// week, one major release and four plugin builds a month.
func DefaultConfig() *Config {
	return &Config{
		WeeklyMicroTarget:   1,
		WeeklyPluginTarget:  1,
		MonthlyMajorTarget:  1,
		MonthlyPluginTarget: 4,
		Bind:                "127.0.0.1",
		Port:                5000,
		MaxUploadBytes:      64 << 20,
		LogMode:             "dev",
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir().
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and
// deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.WeeklyMicroTarget = pickInt(base.WeeklyMicroTarget, overlay.WeeklyMicroTarget)
	result.WeeklyPluginTarget = pickInt(base.WeeklyPluginTarget, overlay.WeeklyPluginTarget)
	result.MonthlyMajorTarget = pickInt(base.MonthlyMajorTarget, overlay.MonthlyMajorTarget)
	result.MonthlyPluginTarget = pickInt(base.MonthlyPluginTarget, overlay.MonthlyPluginTarget)
	result.Port = pickInt(base.Port, overlay.Port)

	result.Bind = overlay.Bind
	if result.Bind == "" {
		result.Bind = base.Bind
	}
	result.LogMode = overlay.LogMode
	if result.LogMode == "" {
		result.LogMode = base.LogMode
	}
	result.MaxUploadBytes = overlay.MaxUploadBytes
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = base.MaxUploadBytes
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func pickInt(base, overlay int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes
// duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
