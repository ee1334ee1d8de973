// Package config loads user settings from a TOML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/alexanderramin/timetrack/internal/domain"
)

type Config struct {
	Account  string         `toml:"account"`
	Database DatabaseConfig `toml:"database"`
	Work     WorkConfig     `toml:"work"`
	Leave    LeaveConfig    `toml:"leave"`
	Display  DisplayConfig  `toml:"display"`
	Log      LogConfig      `toml:"log"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// WorkConfig holds the expected working time. A daily figure wins over a
// weekly one; with neither set a day expects eight hours.
type WorkConfig struct {
	ExpectedDailyHours  *float64 `toml:"expected_daily_hours"`
	ExpectedWeeklyHours *float64 `toml:"expected_weekly_hours"`
}

type LeaveConfig struct {
	VacationDaysPerYear   float64 `toml:"vacation_days_per_year"`
	VacationDaysCarryover float64 `toml:"vacation_days_carryover"`
	CountUnapproved       bool    `toml:"count_unapproved_leave"`
}

type DisplayConfig struct {
	TimeFormat    domain.TimeFormat `toml:"time_format"` // "hh:mm" or "decimal"
	DecimalPlaces int               `toml:"decimal_places"`
}

type LogConfig struct {
	UseCases bool `toml:"use_cases"`
}

func DefaultConfig() Config {
	return Config{
		Account: "default",
		Leave: LeaveConfig{
			VacationDaysPerYear: 25,
			CountUnapproved:     true,
		},
		Display: DisplayConfig{
			TimeFormat:    domain.FormatHHMM,
			DecimalPlaces: 1,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "timetrack"), nil
}

// ConfigPath honours TIMETRACK_CONFIG before the per-user default.
func ConfigPath() (string, error) {
	if v := os.Getenv("TIMETRACK_CONFIG"); v != "" {
		return v, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at ConfigPath.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields the defaults.
// Environment overrides apply in both cases.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Database.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.Database.Path = filepath.Join(home, ".timetrack", "timetrack.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TIMETRACK_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TIMETRACK_ACCOUNT"); v != "" {
		cfg.Account = v
	}
	if v := os.Getenv("TIMETRACK_TIME_FORMAT"); v != "" {
		cfg.Display.TimeFormat = domain.TimeFormat(v)
	}
	if v := os.Getenv("TIMETRACK_LOG_USECASES"); v != "" {
		cfg.Log.UseCases, _ = strconv.ParseBool(v)
	}
}

func (c *Config) Validate() error {
	if c.Account == "" {
		return fmt.Errorf("config: account must not be empty: %w", domain.ErrValidation)
	}
	switch c.Display.TimeFormat {
	case domain.FormatHHMM, domain.FormatDecimal:
	default:
		return fmt.Errorf("config: unknown time_format %q: %w", c.Display.TimeFormat, domain.ErrValidation)
	}
	if c.Display.DecimalPlaces < 0 || c.Display.DecimalPlaces > 6 {
		return fmt.Errorf("config: decimal_places must be within 0..6: %w", domain.ErrValidation)
	}
	for name, v := range map[string]*float64{
		"expected_daily_hours":  c.Work.ExpectedDailyHours,
		"expected_weekly_hours": c.Work.ExpectedWeeklyHours,
	} {
		if v != nil && (*v < 0 || *v > 168) {
			return fmt.Errorf("config: %s out of range: %w", name, domain.ErrValidation)
		}
	}
	if c.Leave.VacationDaysPerYear < 0 || c.Leave.VacationDaysCarryover < 0 {
		return fmt.Errorf("config: vacation days must not be negative: %w", domain.ErrValidation)
	}
	return nil
}

// Settings is the read-only view the accounting services consume.
func (c *Config) Settings() domain.Settings {
	return domain.Settings{
		ExpectedDailyHours:    c.Work.ExpectedDailyHours,
		ExpectedWeeklyHours:   c.Work.ExpectedWeeklyHours,
		VacationDaysPerYear:   c.Leave.VacationDaysPerYear,
		VacationDaysCarryover: c.Leave.VacationDaysCarryover,
		TimeDisplayFormat:     c.Display.TimeFormat,
		DecimalPlaces:         c.Display.DecimalPlaces,
		CountUnapprovedLeave:  c.Leave.CountUnapproved,
	}
}
