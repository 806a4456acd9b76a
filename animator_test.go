package beanfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func thrownSpec() ParticleSpec {
	return ParticleSpec{
		StartPosition: Vec3{0, 8, -15},
		FinalPosition: Vec3{5, 0, 3},
		Scale:         0.4,
		RotationSpeed: Vec3{0.01, 0.01, 0.01},
	}
}

func TestStep_IdleUntilActivated(t *testing.T) {
	spec := thrownSpec()
	st := NewRuntimeState(spec)
	for now := 0.0; now < 5; now += frame {
		st = Step(ProfileThrown, spec, st, Activation{}, now)
	}
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Equal(t, spec.StartPosition, st.Position)
	assert.Equal(t, Vec3{}, st.Rotation)
}

func TestStep_StartDelayCountsSceneTime(t *testing.T) {
	spec := thrownSpec()
	spec.StartDelay = 0.5

	// Fired early: the bean still waits for scene time to pass its delay.
	early := Activation{Fired: true, At: 0.1}
	st := Step(ProfileThrown, spec, NewRuntimeState(spec), early, 0.4)
	assert.Equal(t, PhaseIdle, st.Phase)
	st = Step(ProfileThrown, spec, st, early, 0.5)
	assert.Equal(t, PhaseIdle, st.Phase)
	st = Step(ProfileThrown, spec, st, early, 0.6)
	assert.Equal(t, PhaseAnimating, st.Phase)
	assert.Equal(t, 0.6, st.StartedAt)
}

func TestStep_LateActivationStartsAtOnce(t *testing.T) {
	spec := thrownSpec()
	spec.StartDelay = 0.3
	act := Activation{Fired: true, At: 10}

	st := Step(ProfileThrown, spec, NewRuntimeState(spec), act, 10+frame)
	assert.Equal(t, PhaseAnimating, st.Phase)
	assert.Equal(t, 10+frame, st.StartedAt)
}

func TestStep_ThrownEndsAtFinalPosition(t *testing.T) {
	spec := thrownSpec()
	act := Activation{Fired: true, At: 0}
	st := NewRuntimeState(spec)

	var startedAt float64
	for now := frame; now < 4; now += frame {
		st = Step(ProfileThrown, spec, st, act, now)
		if startedAt == 0 && st.Phase != PhaseIdle {
			startedAt = st.StartedAt
		}
		assert.GreaterOrEqual(t, st.Position.Y, spec.FinalPosition.Y, "below the table at t=%g", now)
		if now-startedAt >= ThrowDuration {
			break
		}
	}

	require.Equal(t, PhaseDone, st.Phase)
	assert.Equal(t, spec.FinalPosition, st.Position)
}

func TestStep_ThrownRisesBeforeFalling(t *testing.T) {
	spec := thrownSpec()
	st := RuntimeState{Phase: PhaseAnimating, Position: spec.StartPosition, Visible: true}
	st = Step(ProfileThrown, spec, st, Activation{Fired: true}, 0.1)
	assert.Greater(t, st.Position.Y, spec.StartPosition.Y)
	assert.Equal(t, PhaseAnimating, st.Phase)
}

func TestStep_ThrownSpins(t *testing.T) {
	spec := thrownSpec()
	st := RuntimeState{Phase: PhaseAnimating, Position: spec.StartPosition, Visible: true}
	st = Step(ProfileThrown, spec, st, Activation{Fired: true}, 0.1)
	assert.InDelta(t, 0.04, st.Rotation.X, 1e-9)
	assert.InDelta(t, 0.02, st.Rotation.Y, 1e-9)
	assert.InDelta(t, 0.04, st.Rotation.Z, 1e-9)
}

func TestStep_ThrownForcedRestAtDuration(t *testing.T) {
	// Starting far above the table, the bean cannot land before the
	// duration runs out.
	spec := thrownSpec()
	spec.StartPosition.Y = 200
	st := RuntimeState{Phase: PhaseAnimating, Position: spec.StartPosition, Visible: true}

	st = Step(ProfileThrown, spec, st, Activation{Fired: true}, ThrowDuration-0.01)
	assert.Equal(t, PhaseAnimating, st.Phase)

	st = Step(ProfileThrown, spec, st, Activation{Fired: true}, ThrowDuration)
	assert.Equal(t, PhaseDone, st.Phase)
	assert.Equal(t, spec.FinalPosition, st.Position)
}

func TestStep_DoneIsTerminal(t *testing.T) {
	spec := thrownSpec()
	st := RuntimeState{Phase: PhaseDone, Position: spec.FinalPosition, Rotation: Vec3{1, 2, 3}, Visible: true}
	next := Step(ProfileThrown, spec, st, Activation{Fired: true}, 100)
	assert.Equal(t, st, next)
}

func TestStep_FallingDisplacement(t *testing.T) {
	spec := ParticleSpec{StartPosition: Vec3{2, 10, -4}, Scale: 0.4, FallSpeed: 3}
	st := RuntimeState{Phase: PhaseAnimating, StartedAt: 1, Position: spec.StartPosition, Visible: true}
	act := Activation{Fired: true}

	for _, elapsed := range []float64{0, 0.5, 1, 2} {
		got := Step(ProfileFalling, spec, st, act, 1+elapsed)
		assert.InDelta(t, 10-elapsed*9, got.Position.Y, 1e-9, "elapsed %g", elapsed)
		assert.Equal(t, spec.StartPosition.Z, got.Position.Z)
		assert.LessOrEqual(t, abs(got.Position.X-spec.StartPosition.X), 2*DriftAmplitude)
		assert.True(t, got.Visible)
	}
}

func TestStep_FallingDriftStartsAtZero(t *testing.T) {
	spec := ParticleSpec{StartPosition: Vec3{2, 10, -4}, FallSpeed: 1, DriftPhase: 1.3}
	st := RuntimeState{Phase: PhaseAnimating, StartedAt: 0, Position: spec.StartPosition, Visible: true}
	got := Step(ProfileFalling, spec, st, Activation{Fired: true}, 0)
	assert.InDelta(t, spec.StartPosition.X, got.Position.X, 1e-12)
}

func TestStep_FallingVanishes(t *testing.T) {
	spec := ParticleSpec{StartPosition: Vec3{0, 10, 0}, FallSpeed: 3}
	st := RuntimeState{Phase: PhaseAnimating, Position: spec.StartPosition, Visible: true}

	st = Step(ProfileFalling, spec, st, Activation{Fired: true}, 3)
	assert.Equal(t, PhaseAnimating, st.Phase)

	st = Step(ProfileFalling, spec, st, Activation{Fired: true}, 4)
	assert.Less(t, st.Position.Y, VanishHeight)
	assert.Equal(t, PhaseDone, st.Phase)
	assert.False(t, st.Visible)
}

func TestAnimator_Transform(t *testing.T) {
	spec := thrownSpec()
	a := NewAnimator(ProfileThrown, spec)
	tr := a.Transform()
	assert.Equal(t, spec.StartPosition, tr.Position)
	assert.Equal(t, spec.Scale, tr.Scale)

	a.Advance(Activation{Fired: true}, 0.1)
	a.Advance(Activation{Fired: true}, 0.2)
	assert.Equal(t, PhaseAnimating, a.State().Phase)
	assert.Equal(t, spec, a.Spec())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "animating", PhaseAnimating.String())
	assert.Equal(t, "done", PhaseDone.String())
}
