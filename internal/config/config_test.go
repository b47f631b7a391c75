package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/galicia-weather-report/internal/weather"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"OPEN_METEO_ARCHIVE_URL", "HTTP_TIMEOUT", "HTTP_MAX_RETRIES",
		"AVERAGE_POLICY", "REPORT_SCHEDULE", "PORT", "VERBOSE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://archive-api.open-meteo.com/v1/archive", cfg.ArchiveURL)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.HTTPMaxRetries)
	assert.Equal(t, weather.AverageZeroFill, cfg.AveragePolicy)
	assert.Equal(t, "24h", cfg.ReportSchedule)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 0, cfg.Backoff().MaxRetries)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPEN_METEO_ARCHIVE_URL", "http://localhost:9000/v1/archive")
	t.Setenv("HTTP_TIMEOUT", "30s")
	t.Setenv("HTTP_MAX_RETRIES", "2")
	t.Setenv("AVERAGE_POLICY", "SKIP")
	t.Setenv("REPORT_SCHEDULE", "0 6 * * *")
	t.Setenv("VERBOSE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/v1/archive", cfg.ArchiveURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.Backoff().MaxRetries)
	assert.Equal(t, weather.AverageSkipIncomplete, cfg.AveragePolicy)
	assert.True(t, cfg.Verbose)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"HTTP_TIMEOUT":           "soon",
		"AVERAGE_POLICY":         "median",
		"OPEN_METEO_ARCHIVE_URL": "not a url",
		"HTTP_MAX_RETRIES":       "-1",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// TestLoadIgnoresCommandKeys verifies that keys read only by watch and serve
// do not stop the interactive report from loading.
func TestLoadIgnoresCommandKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORT_SCHEDULE", "every tuesday")
	t.Setenv("PORT", "http")

	cfg, err := Load()
	require.NoError(t, err)

	_, _, err = cfg.Schedule()
	assert.ErrorContains(t, err, "REPORT_SCHEDULE")

	_, err = cfg.ListenAddr()
	assert.ErrorContains(t, err, "PORT")
}

func TestScheduleAndListenAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORT_SCHEDULE", "0 6 * * *")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	interval, expr, err := cfg.Schedule()
	require.NoError(t, err)
	assert.Zero(t, interval)
	assert.Equal(t, "0 6 * * *", expr)

	addr, err := cfg.ListenAddr()
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)
}

func TestParseSchedule(t *testing.T) {
	d, expr, err := ParseSchedule("90m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)
	assert.Empty(t, expr)

	d, expr, err = ParseSchedule(" */15 * * * * ")
	require.NoError(t, err)
	assert.Zero(t, d)
	assert.Equal(t, "*/15 * * * *", expr)

	_, _, err = ParseSchedule("-5m")
	assert.Error(t, err)

	_, _, err = ParseSchedule("61 * * * *")
	assert.Error(t, err)
}
