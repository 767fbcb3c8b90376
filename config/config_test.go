package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
electrical:
  sun_hours_per_day: 6
api:
  addr: ":9090"
metrics:
  prometheus_enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6.0, cfg.Electrical.SunHoursPerDay)
	assert.Equal(t, 2.0, cfg.Electrical.DaysAutonomy, "unset values take defaults")
	assert.Equal(t, ":9090", cfg.API.Addr)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, "2112", cfg.Metrics.PrometheusPort)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"electrical": {"max_voltage_drop_percent": 5}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Electrical.MaxVoltageDropPercent)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", `x = 1`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `api: {addr: ":8080"}`)
	t.Setenv("BG_API__ADDR", ":7070")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.API.Addr)
}

func TestLoadRejectsInvalidElectrical(t *testing.T) {
	path := writeConfig(t, "config.yaml", `electrical: {sun_hours_per_day: 30}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5.0, cfg.Electrical.SunHoursPerDay)
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.Equal(t, "boatgrid/report", cfg.MQTT.Topic)
}
