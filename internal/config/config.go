package config

import (
	"os"
	"strconv"
	"strings"

	"oncosense/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data        DataConfig
	Analysis    AnalysisConfig
	Interaction InteractionConfig
	Logging     LoggingConfig
}

// DataConfig holds input and output locations
type DataConfig struct {
	DatasetPath string
	SaveRoot    string
	// WriteImportantSheet writes the filtered L table back into the workbook
	WriteImportantSheet bool
	ImportantSheetName  string
}

// AnalysisConfig holds the statistical parameters
type AnalysisConfig struct {
	FixedColumn         string
	PValue              float64
	EdgePercent         float64
	ImportanceThreshold int
	// ErrorLimitOverride replaces the workbook's ErrorLimitLambda when set
	ErrorLimitOverride *float64
}

// InteractionConfig controls how cell lines and compound roles are confirmed
type InteractionConfig struct {
	Interactive        bool
	CellLines          []string
	ControlCompounds   []string
	TreatmentCompounds []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it.
// Callers load a .env file first (see cmd/oncosense).
func Load() (*Config, error) {
	config := &Config{
		Data:        *loadDataConfig(),
		Analysis:    *loadAnalysisConfig(),
		Interaction: *loadInteractionConfig(),
		Logging:     LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Data: DataConfig{
			SaveRoot:           ".",
			ImportantSheetName: "important_L",
		},
		Analysis: AnalysisConfig{
			FixedColumn:         "time",
			PValue:              0.05,
			EdgePercent:         0.1,
			ImportanceThreshold: 2,
		},
		Logging: LoggingConfig{Level: "INFO"},
	}
}

func loadDataConfig() *DataConfig {
	defaults := Default().Data
	return &DataConfig{
		DatasetPath:         getEnvOrDefault("DATASET_PATH", ""),
		SaveRoot:            getEnvOrDefault("SAVE_ROOT", defaults.SaveRoot),
		WriteImportantSheet: getEnvBoolOrDefault("WRITE_IMPORTANT_SHEET", false),
		ImportantSheetName:  getEnvOrDefault("IMPORTANT_SHEET_NAME", defaults.ImportantSheetName),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	defaults := Default().Analysis
	cfg := &AnalysisConfig{
		FixedColumn:         getEnvOrDefault("FIXED_COLUMN", defaults.FixedColumn),
		PValue:              getEnvFloatOrDefault("P_VALUE", defaults.PValue),
		EdgePercent:         getEnvFloatOrDefault("EDGE_PERCENT", defaults.EdgePercent),
		ImportanceThreshold: getEnvIntOrDefault("IMPORTANCE_THRESHOLD", defaults.ImportanceThreshold),
	}
	if value := os.Getenv("ERROR_LIMIT_LAMBDA"); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			cfg.ErrorLimitOverride = &f
		}
	}
	return cfg
}

func loadInteractionConfig() *InteractionConfig {
	return &InteractionConfig{
		Interactive:        getEnvBoolOrDefault("INTERACTIVE", false),
		CellLines:          getEnvListOrDefault("CELL_LINES", nil),
		ControlCompounds:   getEnvListOrDefault("CONTROL_COMPOUNDS", nil),
		TreatmentCompounds: getEnvListOrDefault("TREATMENT_COMPOUNDS", nil),
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Analysis.FixedColumn != "time" && c.Analysis.FixedColumn != "dosage" {
		return errors.ConfigInvalid("FIXED_COLUMN must be 'time' or 'dosage'")
	}
	if c.Analysis.PValue <= 0 || c.Analysis.PValue >= 1 {
		return errors.ConfigInvalid("P_VALUE must be in (0, 1)")
	}
	if c.Analysis.EdgePercent <= 0 || c.Analysis.EdgePercent > 1 {
		return errors.ConfigInvalid("EDGE_PERCENT must be in (0, 1]")
	}
	if c.Analysis.ImportanceThreshold < 0 {
		return errors.ConfigInvalid("IMPORTANCE_THRESHOLD must not be negative")
	}
	if c.Data.SaveRoot == "" {
		return errors.ConfigInvalid("SAVE_ROOT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma separated variable, dropping blanks
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return SplitList(value)
}

// SplitList splits a comma separated list, trimming and dropping blanks
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
