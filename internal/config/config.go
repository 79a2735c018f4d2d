package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/compliance"
)

// DrillCalendarOverride pins a drill type's planning calendar to an RRULE
// instead of its plain frequency in days
type DrillCalendarOverride struct {
	DrillTypeID string `yaml:"drillTypeID" validate:"required"`
	RRule       string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`
	CompanyID   string `yaml:"companyID" validate:"required"`

	// ReviewIntervalDays is the review cycle applied when a document is
	// first approved; defaults to one year
	ReviewIntervalDays int `yaml:"reviewIntervalDays,omitempty" validate:"omitempty,min=1"`

	// ReviewUrgentDays / ReviewWarningDays are the document review band
	// cutpoints; defaults 30 and 60
	ReviewUrgentDays  int `yaml:"reviewUrgentDays,omitempty" validate:"omitempty,min=1"`
	ReviewWarningDays int `yaml:"reviewWarningDays,omitempty" validate:"omitempty,min=1"`

	ReportWindowDays    int `yaml:"reportWindowDays,omitempty" validate:"omitempty,min=1"`
	PlanningHorizonDays int `yaml:"planningHorizonDays,omitempty" validate:"omitempty,min=1"`

	DrillCalendarOverrides []DrillCalendarOverride `yaml:"drillCalendarOverrides,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from fleet_compliance_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.ReviewWarningDays <= cfg.ReviewUrgentDays {
		return fmt.Errorf("config validation failed: reviewWarningDays (%d) must exceed reviewUrgentDays (%d)",
			cfg.ReviewWarningDays, cfg.ReviewUrgentDays)
	}

	for i, override := range cfg.DrillCalendarOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in drillCalendarOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// ReviewCutpoints returns the configured document review band thresholds
func (c *Config) ReviewCutpoints() compliance.ReviewCutpoints {
	return compliance.ReviewCutpoints{
		UrgentWithinDays:  c.ReviewUrgentDays,
		WarningWithinDays: c.ReviewWarningDays,
	}
}

// CalendarOverrides returns the RRULE overrides keyed by drill type id
func (c *Config) CalendarOverrides() map[string]string {
	overrides := make(map[string]string, len(c.DrillCalendarOverrides))
	for _, o := range c.DrillCalendarOverrides {
		overrides[o.DrillTypeID] = o.RRule
	}
	return overrides
}

func applyDefaults(cfg *Config) {
	if cfg.ReviewIntervalDays == 0 {
		cfg.ReviewIntervalDays = 365
	}
	if cfg.ReviewUrgentDays == 0 {
		cfg.ReviewUrgentDays = 30
	}
	if cfg.ReviewWarningDays == 0 {
		cfg.ReviewWarningDays = 60
	}
	if cfg.ReportWindowDays == 0 {
		cfg.ReportWindowDays = 90
	}
	if cfg.PlanningHorizonDays == 0 {
		cfg.PlanningHorizonDays = 90
	}
}

// findConfigFile searches for fleet_compliance_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "fleet_compliance_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
