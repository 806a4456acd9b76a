package beanfall

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("beanfall: invalid config")

// MaxParticles bounds FieldConfig.Count.
const MaxParticles = 200

// ParticleSpec holds the randomized parameters of one bean. It is generated
// once when its field is built and never mutated afterward.
type ParticleSpec struct {
	// StartPosition is where the bean waits before it starts moving.
	StartPosition Vec3 `yaml:"startPosition"`
	// FinalPosition is the resting spot on the table (ProfileThrown only).
	FinalPosition Vec3 `yaml:"finalPosition,omitempty"`
	// Scale is the uniform model scale, always > 0.
	Scale float64 `yaml:"scale"`
	// RotationSpeed is the per-frame angular increment in radians per axis.
	RotationSpeed Vec3 `yaml:"rotationSpeed"`
	// StartDelay is the time in seconds between activation and this bean
	// starting to move.
	StartDelay float64 `yaml:"startDelay"`
	// FallSpeed is the descent rate factor (ProfileFalling only).
	FallSpeed float64 `yaml:"fallSpeed,omitempty"`
	// DriftPhase offsets the sideways drift so beans do not sway in lockstep
	// (ProfileFalling only).
	DriftPhase float64 `yaml:"driftPhase,omitempty"`
}

// ThrownRanges describes the spill pattern: beans leave a small cluster
// above and behind the table and land scattered across it.
type ThrownRanges struct {
	// StartJitterX is the half-width of the start cluster along X.
	StartJitterX float64 `yaml:"startJitterX"`
	// StartY is the release height.
	StartY float64 `yaml:"startY"`
	// StartZ is the start depth range.
	StartZ Range `yaml:"startZ"`
	// Spread is the half-angle of the landing fan in radians.
	Spread float64 `yaml:"spread"`
	// Distance is the throw distance range.
	Distance Range `yaml:"distance"`
	// DepthFactor flattens the landing fan along Z.
	DepthFactor float64 `yaml:"depthFactor"`
	// LandingJitter is the half-width of extra scatter added to X and Z.
	LandingJitter float64 `yaml:"landingJitter"`
	// RestY is the resting height range.
	RestY Range `yaml:"restY"`
	// Scale is the bean scale range.
	Scale Range `yaml:"scale"`
	// Spin holds the half-widths of the per-axis rotation speed.
	Spin Vec3 `yaml:"spin"`
	// Delay is the start delay range in seconds.
	Delay Range `yaml:"delay"`
}

// FallingRanges describes the rain pattern: beans start spread across the
// top of the view and fall past the bottom edge.
type FallingRanges struct {
	// SpreadX is the half-width of the start band along X.
	SpreadX float64 `yaml:"spreadX"`
	// StartY is the start height range.
	StartY Range `yaml:"startY"`
	// StartZ is the start depth range.
	StartZ Range `yaml:"startZ"`
	// Scale is the bean scale range.
	Scale Range `yaml:"scale"`
	// Spin is the half-width of the rotation speed on every axis.
	Spin float64 `yaml:"spin"`
	// Delay is the start delay range in seconds.
	Delay Range `yaml:"delay"`
	// FallSpeed is the fall speed range.
	FallSpeed Range `yaml:"fallSpeed"`
}

// FieldConfig controls how a particle field is generated.
type FieldConfig struct {
	// Profile selects the kinematic rule set for every bean.
	Profile Profile `yaml:"profile"`
	// Count is the number of beans. Zero selects the profile default.
	Count int `yaml:"count"`
	// Thrown holds the ProfileThrown ranges.
	Thrown ThrownRanges `yaml:"thrown"`
	// Falling holds the ProfileFalling ranges.
	Falling FallingRanges `yaml:"falling"`
}

// DefaultThrownRanges returns the spill pattern of the coffee landing page.
func DefaultThrownRanges() ThrownRanges {
	return ThrownRanges{
		StartJitterX:  2,
		StartY:        8,
		StartZ:        Range{-15, -12},
		Spread:        math.Pi * 0.3,
		Distance:      Range{6, 31},
		DepthFactor:   0.7,
		LandingJitter: 1,
		RestY:         Range{0, 0.2},
		Scale:         Range{0.3, 0.5},
		Spin:          Vec3{0.04, 0.01, 0.04},
		Delay:         Range{0, 0.3},
	}
}

// DefaultFallingRanges returns the rain pattern.
func DefaultFallingRanges() FallingRanges {
	return FallingRanges{
		SpreadX:   15,
		StartY:    Range{10, 22},
		StartZ:    Range{-10, 0},
		Scale:     Range{0.3, 0.5},
		Spin:      0.02,
		Delay:     Range{0, 4},
		FallSpeed: Range{0.5, 1.5},
	}
}

// DefaultFieldConfig returns a complete config for profile p.
func DefaultFieldConfig(p Profile) FieldConfig {
	cfg := FieldConfig{Profile: p}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero-valued fields with the profile defaults.
func (c *FieldConfig) applyDefaults() {
	if c.Count == 0 {
		switch c.Profile {
		case ProfileFalling:
			c.Count = 40
		default:
			c.Count = 20
		}
	}
	if c.Thrown == (ThrownRanges{}) {
		c.Thrown = DefaultThrownRanges()
	}
	if c.Falling == (FallingRanges{}) {
		c.Falling = DefaultFallingRanges()
	}
}

// Validate reports the first invalid field. Errors wrap ErrInvalidConfig.
func (c FieldConfig) Validate() error {
	if c.Profile != ProfileThrown && c.Profile != ProfileFalling {
		return fmt.Errorf("%w: profile %v", ErrInvalidConfig, c.Profile)
	}
	if c.Count < 1 || c.Count > MaxParticles {
		return fmt.Errorf("%w: count %d outside [1, %d]", ErrInvalidConfig, c.Count, MaxParticles)
	}
	switch c.Profile {
	case ProfileThrown:
		t := c.Thrown
		if err := checkRanges(map[string]Range{
			"thrown.startZ": t.StartZ, "thrown.distance": t.Distance,
			"thrown.restY": t.RestY,
		}); err != nil {
			return err
		}
		if err := checkPositive("thrown.scale", t.Scale); err != nil {
			return err
		}
		if err := checkDelay("thrown.delay", t.Delay); err != nil {
			return err
		}
	case ProfileFalling:
		f := c.Falling
		if err := checkRanges(map[string]Range{
			"falling.startY": f.StartY, "falling.startZ": f.StartZ,
		}); err != nil {
			return err
		}
		if err := checkPositive("falling.scale", f.Scale); err != nil {
			return err
		}
		if err := checkPositive("falling.fallSpeed", f.FallSpeed); err != nil {
			return err
		}
		if err := checkDelay("falling.delay", f.Delay); err != nil {
			return err
		}
	}
	return nil
}

func checkRanges(ranges map[string]Range) error {
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s min %g > max %g", ErrInvalidConfig, name, r.Min, r.Max)
		}
	}
	return nil
}

func checkPositive(name string, r Range) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %g > max %g", ErrInvalidConfig, name, r.Min, r.Max)
	}
	if r.Min <= 0 {
		return fmt.Errorf("%w: %s must be > 0", ErrInvalidConfig, name)
	}
	return nil
}

func checkDelay(name string, r Range) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %g > max %g", ErrInvalidConfig, name, r.Min, r.Max)
	}
	if r.Min < 0 {
		return fmt.Errorf("%w: %s must be >= 0", ErrInvalidConfig, name)
	}
	return nil
}

// GenerateSpecs draws cfg.Count particle specs from rng. Every field is an
// independent uniform draw; the same seed yields the same batch.
func GenerateSpecs(cfg FieldConfig, rng *Rand) []ParticleSpec {
	specs := make([]ParticleSpec, cfg.Count)
	for i := range specs {
		switch cfg.Profile {
		case ProfileFalling:
			specs[i] = spawnFalling(cfg.Falling, rng)
		default:
			specs[i] = spawnThrown(cfg.Thrown, rng)
		}
	}
	return specs
}

// spawnThrown places a bean in the release cluster and picks its landing
// spot inside a fan that opens toward the camera.
func spawnThrown(t ThrownRanges, rng *Rand) ParticleSpec {
	angle := rng.Signed(t.Spread)
	dist := t.Distance.Random(rng)
	landX := math.Sin(angle) * dist
	landZ := math.Cos(angle) * dist * t.DepthFactor

	return ParticleSpec{
		StartPosition: Vec3{
			X: rng.Signed(t.StartJitterX),
			Y: t.StartY,
			Z: t.StartZ.Random(rng),
		},
		FinalPosition: Vec3{
			X: landX + rng.Signed(t.LandingJitter),
			Y: t.RestY.Random(rng),
			Z: landZ + rng.Signed(t.LandingJitter),
		},
		Scale: t.Scale.Random(rng),
		RotationSpeed: Vec3{
			X: rng.Signed(t.Spin.X),
			Y: rng.Signed(t.Spin.Y),
			Z: rng.Signed(t.Spin.Z),
		},
		StartDelay: t.Delay.Random(rng),
	}
}

func spawnFalling(f FallingRanges, rng *Rand) ParticleSpec {
	return ParticleSpec{
		StartPosition: Vec3{
			X: rng.Signed(f.SpreadX),
			Y: f.StartY.Random(rng),
			Z: f.StartZ.Random(rng),
		},
		Scale: f.Scale.Random(rng),
		RotationSpeed: Vec3{
			X: rng.Signed(f.Spin),
			Y: rng.Signed(f.Spin),
			Z: rng.Signed(f.Spin),
		},
		StartDelay: f.Delay.Random(rng),
		FallSpeed:  f.FallSpeed.Random(rng),
		DriftPhase: rng.Range(0, 2*math.Pi),
	}
}
