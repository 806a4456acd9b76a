package beanfall

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSpecs_ThrownWithinRanges(t *testing.T) {
	cfg := DefaultFieldConfig(ProfileThrown)
	specs := GenerateSpecs(cfg, NewRand(3))
	require.Len(t, specs, 20)

	tr := cfg.Thrown
	for i, s := range specs {
		assert.Greater(t, s.Scale, 0.0, "bean %d scale", i)
		assert.True(t, tr.Scale.Contains(s.Scale), "bean %d scale %g", i, s.Scale)
		assert.GreaterOrEqual(t, s.StartDelay, 0.0, "bean %d delay", i)
		assert.True(t, tr.Delay.Contains(s.StartDelay), "bean %d delay %g", i, s.StartDelay)

		assert.Equal(t, tr.StartY, s.StartPosition.Y)
		assert.LessOrEqual(t, abs(s.StartPosition.X), tr.StartJitterX)
		assert.True(t, tr.StartZ.Contains(s.StartPosition.Z))
		assert.True(t, tr.RestY.Contains(s.FinalPosition.Y))

		assert.LessOrEqual(t, abs(s.RotationSpeed.X), tr.Spin.X)
		assert.LessOrEqual(t, abs(s.RotationSpeed.Y), tr.Spin.Y)
		assert.LessOrEqual(t, abs(s.RotationSpeed.Z), tr.Spin.Z)

		// Landing spots sit in a fan of radius at most Distance.Max plus
		// the jitter.
		reach := tr.Distance.Max + tr.LandingJitter
		assert.LessOrEqual(t, abs(s.FinalPosition.X), reach)
		assert.LessOrEqual(t, abs(s.FinalPosition.Z), reach)
	}
}

func TestGenerateSpecs_FallingWithinRanges(t *testing.T) {
	cfg := DefaultFieldConfig(ProfileFalling)
	specs := GenerateSpecs(cfg, NewRand(5))
	require.Len(t, specs, 40)

	fr := cfg.Falling
	for _, s := range specs {
		assert.Greater(t, s.Scale, 0.0)
		assert.GreaterOrEqual(t, s.StartDelay, 0.0)
		assert.True(t, fr.FallSpeed.Contains(s.FallSpeed))
		assert.True(t, fr.StartY.Contains(s.StartPosition.Y))
		assert.True(t, fr.StartZ.Contains(s.StartPosition.Z))
		assert.LessOrEqual(t, abs(s.StartPosition.X), fr.SpreadX)
	}
}

func TestGenerateSpecs_Deterministic(t *testing.T) {
	cfg := DefaultFieldConfig(ProfileThrown)
	assert.Equal(t, GenerateSpecs(cfg, NewRand(99)), GenerateSpecs(cfg, NewRand(99)))
	assert.NotEqual(t, GenerateSpecs(cfg, NewRand(99)), GenerateSpecs(cfg, NewRand(100)))
}

func TestFieldConfig_Defaults(t *testing.T) {
	cfg := FieldConfig{}
	cfg.applyDefaults()
	assert.Equal(t, ProfileThrown, cfg.Profile)
	assert.Equal(t, 20, cfg.Count)
	assert.Equal(t, DefaultThrownRanges(), cfg.Thrown)

	cfg = FieldConfig{Profile: ProfileFalling}
	cfg.applyDefaults()
	assert.Equal(t, 40, cfg.Count)
}

func TestFieldConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FieldConfig)
	}{
		{"negative count", func(c *FieldConfig) { c.Count = -1 }},
		{"too many", func(c *FieldConfig) { c.Count = MaxParticles + 1 }},
		{"unknown profile", func(c *FieldConfig) { c.Profile = Profile(9) }},
		{"zero scale", func(c *FieldConfig) { c.Thrown.Scale = Range{0, 1} }},
		{"negative delay", func(c *FieldConfig) { c.Thrown.Delay = Range{-1, 1} }},
		{"inverted range", func(c *FieldConfig) { c.Thrown.Distance = Range{5, 1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFieldConfig(ProfileThrown)
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}

	assert.NoError(t, DefaultFieldConfig(ProfileThrown).Validate())
	assert.NoError(t, DefaultFieldConfig(ProfileFalling).Validate())
}

func TestFieldConfig_FallingNeedsPositiveSpeed(t *testing.T) {
	cfg := DefaultFieldConfig(ProfileFalling)
	cfg.Falling.FallSpeed = Range{0, 1}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestParseProfile(t *testing.T) {
	for in, want := range map[string]Profile{
		"thrown": ProfileThrown, "spill": ProfileThrown, "A": ProfileThrown,
		"falling": ProfileFalling, "rain": ProfileFalling, " b ": ProfileFalling,
	} {
		got, err := ParseProfile(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseProfile("bounce")
	assert.Error(t, err)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
