package beanfall

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Thrown profile constants.
const (
	ThrowDuration = 2.5  // seconds from release to forced rest
	ThrowVelocity = 3.0  // initial upward velocity
	ThrowGravity  = 15.0 // downward acceleration
	SettleEpsilon = 0.1  // height above rest that counts as landed
	thrownSpinX   = 4.0
	thrownSpinY   = 2.0
	thrownSpinZ   = 4.0
)

// Falling profile constants.
const (
	FallSpeedFactor = 3.0   // world units per second per unit of FallSpeed
	DriftAmplitude  = 0.6   // sideways sway, world units
	DriftFrequency  = 1.2   // sway angular frequency, rad/s
	VanishHeight    = -20.0 // beans below this height are gone
)

// Phase is the lifecycle stage of one bean.
type Phase uint8

const (
	PhaseIdle      Phase = iota // waiting for activation plus its start delay
	PhaseAnimating              // moving
	PhaseDone                   // settled or faded out; terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAnimating:
		return "animating"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// RuntimeState is everything about a bean that changes while it animates.
type RuntimeState struct {
	Phase Phase
	// StartedAt is the scene time the bean left PhaseIdle. Only meaningful
	// once Phase is PhaseAnimating or PhaseDone.
	StartedAt float64
	// Position is the current world position.
	Position Vec3
	// Rotation is the accumulated Euler rotation in radians.
	Rotation Vec3
	// Visible is false once a falling bean has left the scene.
	Visible bool
}

// NewRuntimeState returns the idle state of a freshly generated bean.
func NewRuntimeState(spec ParticleSpec) RuntimeState {
	return RuntimeState{
		Phase:    PhaseIdle,
		Position: spec.StartPosition,
		Visible:  true,
	}
}

// Step advances one bean by one frame. now is the scene time since mount,
// shared by every bean this frame, and act is the field's activation
// snapshot. An idle bean starts on the first frame where the latch has fired
// and now exceeds its StartDelay, so a field revealed long after mount starts
// all at once. Step has no side effects; it returns the new state.
func Step(profile Profile, spec ParticleSpec, st RuntimeState, act Activation, now float64) RuntimeState {
	switch st.Phase {
	case PhaseDone:
		return st
	case PhaseIdle:
		if !act.Fired || now <= spec.StartDelay {
			return st
		}
		st.Phase = PhaseAnimating
		st.StartedAt = now
	}

	elapsed := now - st.StartedAt
	switch profile {
	case ProfileFalling:
		return stepFalling(spec, st, elapsed)
	default:
		return stepThrown(spec, st, elapsed)
	}
}

// stepThrown eases the bean horizontally toward its landing spot while it
// follows a ballistic arc vertically, tumbling on the way. It never goes
// below the resting height and snaps to FinalPosition when it lands or when
// ThrowDuration runs out.
func stepThrown(spec ParticleSpec, st RuntimeState, elapsed float64) RuntimeState {
	if elapsed >= ThrowDuration {
		return settle(spec, st)
	}

	p := elapsed / ThrowDuration
	h := float64(ease.OutQuad(float32(p), 0, 1, 1))

	from, to := spec.StartPosition, spec.FinalPosition
	y := from.Y + ThrowVelocity*elapsed - 0.5*ThrowGravity*elapsed*elapsed
	st.Position = Vec3{
		X: lerp(from.X, to.X, h),
		Y: math.Max(y, to.Y),
		Z: lerp(from.Z, to.Z, h),
	}
	st.Rotation = st.Rotation.Add(spec.RotationSpeed.Mul(Vec3{thrownSpinX, thrownSpinY, thrownSpinZ}))

	// Only a descending bean can land; the release point may already sit
	// near the rest height.
	descending := elapsed > ThrowVelocity/ThrowGravity
	if descending && st.Position.Y <= to.Y+SettleEpsilon {
		return settle(spec, st)
	}
	return st
}

func settle(spec ParticleSpec, st RuntimeState) RuntimeState {
	st.Position = spec.FinalPosition
	st.Phase = PhaseDone
	return st
}

// stepFalling drops the bean at a constant rate with a bounded sideways
// sway. Depth never changes. Below VanishHeight the bean is done and hidden.
func stepFalling(spec ParticleSpec, st RuntimeState, elapsed float64) RuntimeState {
	start := spec.StartPosition
	sway := math.Sin(DriftFrequency*elapsed+spec.DriftPhase) - math.Sin(spec.DriftPhase)
	st.Position = Vec3{
		X: start.X + DriftAmplitude*sway,
		Y: start.Y - elapsed*spec.FallSpeed*FallSpeedFactor,
		Z: start.Z,
	}
	st.Rotation = st.Rotation.Add(spec.RotationSpeed)

	if st.Position.Y < VanishHeight {
		st.Phase = PhaseDone
		st.Visible = false
	}
	return st
}

// Animator drives one bean: its immutable spec plus the state Step evolves.
type Animator struct {
	profile Profile
	spec    ParticleSpec
	state   RuntimeState
}

// NewAnimator returns an idle animator for spec.
func NewAnimator(profile Profile, spec ParticleSpec) *Animator {
	return &Animator{
		profile: profile,
		spec:    spec,
		state:   NewRuntimeState(spec),
	}
}

// Advance steps the animator to scene time now.
func (a *Animator) Advance(act Activation, now float64) {
	a.state = Step(a.profile, a.spec, a.state, act, now)
}

// Spec returns the bean's parameters.
func (a *Animator) Spec() ParticleSpec {
	return a.spec
}

// State returns the bean's current runtime state.
func (a *Animator) State() RuntimeState {
	return a.state
}

// Transform returns the bean's model transform for drawing.
func (a *Animator) Transform() Transform {
	return Transform{
		Position: a.state.Position,
		Rotation: a.state.Rotation,
		Scale:    a.spec.Scale,
	}
}
