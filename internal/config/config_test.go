package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TIMETRACK_DB", "/tmp/tt.db")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Account)
	assert.Equal(t, "/tmp/tt.db", cfg.Database.Path)
	s := cfg.Settings()
	assert.Equal(t, domain.FormatHHMM, s.TimeDisplayFormat)
	assert.Equal(t, int64(8*3600), s.ExpectedDailySeconds())
	assert.True(t, s.CountUnapprovedLeave)
	assert.Equal(t, 25.0, s.VacationDaysPerYear)
}

func TestLoadFile_ParsesSections(t *testing.T) {
	t.Setenv("TIMETRACK_DB", "")
	path := writeConfig(t, `
account = "alice"

[database]
path = "/data/tt.db"

[work]
expected_weekly_hours = 38.5

[leave]
vacation_days_per_year = 30
vacation_days_carryover = 2.5
count_unapproved_leave = false

[display]
time_format = "decimal"
decimal_places = 2

[log]
use_cases = true
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.Account)
	assert.Equal(t, "/data/tt.db", cfg.Database.Path)
	assert.Nil(t, cfg.Work.ExpectedDailyHours)
	require.NotNil(t, cfg.Work.ExpectedWeeklyHours)
	assert.True(t, cfg.Log.UseCases)

	s := cfg.Settings()
	assert.Equal(t, int64(38.5*3600/5), s.ExpectedDailySeconds())
	assert.Equal(t, 32.5, s.VacationDaysPerYear+s.VacationDaysCarryover)
	assert.False(t, s.CountUnapprovedLeave)
	assert.Equal(t, domain.FormatDecimal, s.TimeDisplayFormat)
	assert.Equal(t, 2, s.DecimalPlaces)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `account = "alice"`)
	t.Setenv("TIMETRACK_ACCOUNT", "bob")
	t.Setenv("TIMETRACK_DB", "/env/tt.db")
	t.Setenv("TIMETRACK_TIME_FORMAT", "decimal")
	t.Setenv("TIMETRACK_LOG_USECASES", "1")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.Account)
	assert.Equal(t, "/env/tt.db", cfg.Database.Path)
	assert.Equal(t, domain.FormatDecimal, cfg.Display.TimeFormat)
	assert.True(t, cfg.Log.UseCases)
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Setenv("TIMETRACK_DB", "/tmp/tt.db")
	t.Setenv("TIMETRACK_TIME_FORMAT", "")

	_, err := LoadFile(writeConfig(t, `[display]
time_format = "fortnights"`))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = LoadFile(writeConfig(t, `account = `))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, `[work]
expected_daily_hours = -1`))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("TIMETRACK_CONFIG", "/etc/tt.toml")
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/tt.toml", path)
}
