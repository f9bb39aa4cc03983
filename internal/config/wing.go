package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chordline-aero/wingloft/internal/units"
)

// DefaultConfigPath is the path to the canonical wing defaults file.
// This is the single source of truth for all default generation values.
const DefaultConfigPath = "config/wingloft.defaults.json"

// WingConfig represents the root configuration for surface generation and
// chart rendering. The schema matches the /api/config endpoint so the same
// JSON serves both startup configuration and inspection at runtime.
type WingConfig struct {
	// Surface params
	MaxDegree *int `json:"max_degree,omitempty"`
	SamplesU  *int `json:"samples_u,omitempty"`
	SamplesV  *int `json:"samples_v,omitempty"`

	// Chart params
	ChartTheme  *string `json:"chart_theme,omitempty"`
	ChartWidth  *string `json:"chart_width,omitempty"`  // CSS size like "900px"
	ChartHeight *string `json:"chart_height,omitempty"` // CSS size like "900px"

	// Output params
	OutputDir *string `json:"output_dir,omitempty"`
	DBPath    *string `json:"db_path,omitempty"`
	Units     *string `json:"units,omitempty"`
}

// Helper functions to create pointers
func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// EmptyWingConfig returns a WingConfig with all fields set to nil.
// Use LoadWingConfig to load actual values from a config file.
func EmptyWingConfig() *WingConfig {
	return &WingConfig{}
}

// DefaultWingConfig returns a WingConfig with every field populated with
// its default value.
func DefaultWingConfig() *WingConfig {
	return &WingConfig{
		MaxDegree:   ptrInt(3),
		SamplesU:    ptrInt(50),
		SamplesV:    ptrInt(50),
		ChartTheme:  ptrString("dark"),
		ChartWidth:  ptrString("900px"),
		ChartHeight: ptrString("900px"),
		OutputDir:   ptrString("out"),
		DBPath:      ptrString("wingloft.db"),
		Units:       ptrString(units.Meters),
	}
}

// LoadWingConfig loads a WingConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadWingConfig(path string) (*WingConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyWingConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical wing defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *WingConfig {
	// Try paths from current dir up to repo root
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadWingConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// validateChartSize checks that a chart dimension looks like a CSS size,
// either pixels ("900px") or a percentage ("100%").
func validateChartSize(key, value string) error {
	digits, ok := strings.CutSuffix(value, "px")
	if !ok {
		digits, ok = strings.CutSuffix(value, "%")
	}
	if ok {
		if n, err := strconv.Atoi(digits); err == nil && n > 0 {
			return nil
		}
	}
	return fmt.Errorf("%s must look like '900px' or '100%%', got %q", key, value)
}

// Validate checks that the configuration values are valid.
func (c *WingConfig) Validate() error {
	// Validate MaxDegree if set
	if c.MaxDegree != nil {
		if *c.MaxDegree < 1 || *c.MaxDegree > 3 {
			return fmt.Errorf("max_degree must be between 1 and 3, got %d", *c.MaxDegree)
		}
	}

	// Validate sample counts if set
	if c.SamplesU != nil {
		if *c.SamplesU < 2 {
			return fmt.Errorf("samples_u must be at least 2, got %d", *c.SamplesU)
		}
	}
	if c.SamplesV != nil {
		if *c.SamplesV < 2 {
			return fmt.Errorf("samples_v must be at least 2, got %d", *c.SamplesV)
		}
	}

	// Validate chart sizes can be parsed if set
	if c.ChartWidth != nil && *c.ChartWidth != "" {
		if err := validateChartSize("chart_width", *c.ChartWidth); err != nil {
			return err
		}
	}
	if c.ChartHeight != nil && *c.ChartHeight != "" {
		if err := validateChartSize("chart_height", *c.ChartHeight); err != nil {
			return err
		}
	}

	// Validate display units if set
	if c.Units != nil && *c.Units != "" {
		if !units.IsValid(*c.Units) {
			return fmt.Errorf("units must be one of %s, got %q", units.GetValidUnitsString(), *c.Units)
		}
	}

	return nil
}

// GetMaxDegree returns the max_degree value or the default.
func (c *WingConfig) GetMaxDegree() int {
	if c.MaxDegree == nil {
		return 3 // default
	}
	return *c.MaxDegree
}

// GetSamplesU returns the samples_u value or the default.
func (c *WingConfig) GetSamplesU() int {
	if c.SamplesU == nil {
		return 50 // default
	}
	return *c.SamplesU
}

// GetSamplesV returns the samples_v value or the default.
func (c *WingConfig) GetSamplesV() int {
	if c.SamplesV == nil {
		return 50 // default
	}
	return *c.SamplesV
}

// GetChartTheme returns the chart_theme value or the default.
func (c *WingConfig) GetChartTheme() string {
	if c.ChartTheme == nil || *c.ChartTheme == "" {
		return "dark" // default
	}
	return *c.ChartTheme
}

// GetChartWidth returns the chart_width value or the default.
func (c *WingConfig) GetChartWidth() string {
	if c.ChartWidth == nil || *c.ChartWidth == "" {
		return "900px" // default
	}
	return *c.ChartWidth
}

// GetChartHeight returns the chart_height value or the default.
func (c *WingConfig) GetChartHeight() string {
	if c.ChartHeight == nil || *c.ChartHeight == "" {
		return "900px" // default
	}
	return *c.ChartHeight
}

// GetOutputDir returns the output_dir value or the default.
func (c *WingConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "out" // default
	}
	return *c.OutputDir
}

// GetDBPath returns the db_path value or the default.
func (c *WingConfig) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return "wingloft.db" // default
	}
	return *c.DBPath
}

// GetUnits returns the units value or the default.
func (c *WingConfig) GetUnits() string {
	if c.Units == nil || *c.Units == "" {
		return units.Meters // default
	}
	return *c.Units
}
