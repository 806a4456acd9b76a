package beanfall

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, ProfileThrown, cfg.Field.Profile)
	assert.Equal(t, 20, cfg.Field.Count)
	assert.Equal(t, DefaultTriggerConfig(), cfg.Trigger)
	assert.Equal(t, DefaultAssetPath, cfg.Asset)
	require.NotNil(t, cfg.Table)
	assert.True(t, *cfg.Table)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
window:
  title: rain
  width: 1024
  height: 768
seed: 7
field:
  profile: rain
  count: 60
  falling:
    spreadX: 10
    startY: {min: 12, max: 20}
    startZ: {min: -5, max: 0}
    scale: {min: 0.2, max: 0.3}
    spin: 0.01
    delay: {min: 0, max: 2}
    fallSpeed: {min: 1, max: 2}
trigger:
  threshold: 0.5
camera:
  position: [0, 15, 10]
  fov: 60
lights:
  - kind: ambient
    intensity: 0.3
  - kind: point
    position: {x: 0, y: 10, z: 0}
    intensity: 1
    color: "#FFAA00"
    distance: 30
table: false
`)
	cfg, err := ParseConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "rain", cfg.Window.Title)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, ProfileFalling, cfg.Field.Profile)
	assert.Equal(t, 60, cfg.Field.Count)
	assert.Equal(t, Range{1, 2}, cfg.Field.Falling.FallSpeed)
	assert.Equal(t, 0.5, cfg.Trigger.Threshold)
	assert.Equal(t, Vec3{0, 15, 10}, cfg.Camera.Position)
	assert.Equal(t, 60.0, cfg.Camera.FOV)
	assert.Equal(t, 0.1, cfg.Camera.Near)

	lg, err := cfg.Lighting()
	require.NoError(t, err)
	require.Len(t, lg.Lights, 2)
	assert.Equal(t, LightPoint, lg.Lights[1].Kind)
	assert.Equal(t, Vec3{0, 10, 0}, lg.Lights[1].Position)
	assert.InDelta(t, 1.0, lg.Lights[1].Color.R, 1e-9)
	assert.True(t, lg.Lights[1].Enabled)

	hc := cfg.HostConfig()
	assert.False(t, hc.Table)
	assert.Equal(t, 1024, hc.Width)
	assert.Equal(t, cfg.Field, hc.Field)
}

func TestParseConfig_PartialOverrides(t *testing.T) {
	cfg, err := ParseConfig([]byte("field:\n  thrown:\n    delay: {min: 0, max: 1}\n"))
	require.NoError(t, err)
	want := DefaultThrownRanges()
	want.Delay = Range{0, 1}
	assert.Equal(t, want, cfg.Field.Thrown)
	assert.Equal(t, 20, cfg.Field.Count)

	cfg, err = ParseConfig([]byte("trigger:\n  rootMargin: {bottom: -200}\n"))
	require.NoError(t, err)
	assert.Equal(t, Margin{Bottom: -200}, cfg.Trigger.RootMargin)
	assert.Equal(t, 0.3, cfg.Trigger.Threshold)

	cfg, err = ParseConfig([]byte("field: {profile: falling}\n"))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Field.Count)
	assert.Equal(t, DefaultFallingRanges(), cfg.Field.Falling)
	assert.True(t, *cfg.Table)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "window: [1, 2"},
		{"bad profile", "field: {profile: bounce}"},
		{"bad vector", "camera: {position: [1, 2]}"},
		{"count too large", "field: {count: 1000}"},
		{"bad threshold", "trigger: {threshold: 1.5}"},
		{"bad light kind", "lights: [{kind: spot, intensity: 1}]"},
		{"bad light color", "lights: [{kind: ambient, color: '#zz0000'}]"},
		{"negative tps", "window: {tps: -1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_ValidationWrapsSentinel(t *testing.T) {
	_, err := ParseConfig([]byte("field: {count: 1000}"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beanfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 3\nfield: {profile: thrown, count: 5}\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Field.Count)
	assert.Equal(t, uint64(3), cfg.Seed)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Profile = ProfileFalling
	cfg.Field.Count = 40
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "profile: falling")

	back, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Field, back.Field)
	assert.Equal(t, cfg.Camera.Position, back.Camera.Position)
}

func TestColorFromHex(t *testing.T) {
	c, err := ColorFromHex("#6B4423")
	require.NoError(t, err)
	assert.InDelta(t, 0x6B/255.0, c.R, 1e-9)
	assert.Equal(t, 1.0, c.A)

	c, err = ColorFromHex("ffffff80")
	require.NoError(t, err)
	assert.InDelta(t, 0x80/255.0, c.A, 1e-9)

	_, err = ColorFromHex("#123")
	assert.Error(t, err)
}
