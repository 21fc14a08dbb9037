package config

import (
	"os"
	"path/filepath"
	"testing"

	"glscene/internal/texture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skyview.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, texture.DefaultSchedule(), cfg.Sky.Schedule())
	assert.Len(t, cfg.Skybox.Day, 6)
	assert.Equal(t, "night_nz.png", cfg.Skybox.Night[5])
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[assets]
search_path = ["/srv/sky"]

[skybox]
day = ["a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg"]

[sky]
sunrise_start = 5.5
step = 0.01

[viewer]
clock_speed = 2.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/sky"}, cfg.Assets.SearchPath)
	assert.Equal(t, "a.jpg", cfg.Skybox.Day[0])
	assert.Equal(t, Default().Skybox.Night, cfg.Skybox.Night)
	assert.Equal(t, float32(5.5), cfg.Sky.SunriseStart)
	assert.Equal(t, float32(10), cfg.Sky.SunriseEnd)
	assert.Equal(t, float32(0.01), cfg.Sky.Schedule().Increment)
	assert.Equal(t, float32(2), cfg.Viewer.ClockSpeed)
	assert.Equal(t, 1280, cfg.Viewer.Width)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[viewer]\nfulscreen = true\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fulscreen")
}

func TestLoadValidates(t *testing.T) {
	path := writeConfig(t, `
[skybox]
night = ["only.png"]

[sky]
sunset_start = 9.0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skybox.night lists 1 faces")
	assert.Contains(t, err.Error(), "sunrise window ends after sunset starts")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRuntimeSettingsClamp(t *testing.T) {
	defer Apply(Default().Viewer)

	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, MaxFPSLimit, GetFPSLimit())

	SetClockSpeed(-1)
	assert.Equal(t, float32(0), GetClockSpeed())
	SetClockSpeed(100)
	assert.Equal(t, float32(MaxClockSpeed), GetClockSpeed())

	Apply(Viewer{FPSLimit: 30, ClockSpeed: 1.5})
	assert.Equal(t, 30, GetFPSLimit())
	assert.Equal(t, float32(1.5), GetClockSpeed())
}
