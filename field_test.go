package beanfall

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatch_FiresOnce(t *testing.T) {
	var l Latch
	assert.False(t, l.Fired())
	_, ok := l.FiredAt()
	assert.False(t, ok)

	assert.True(t, l.Fire(1.5))
	assert.False(t, l.Fire(3))

	at, ok := l.FiredAt()
	require.True(t, ok)
	assert.Equal(t, 1.5, at)
	assert.Equal(t, Activation{Fired: true, At: 1.5}, l.Snapshot())
}

func TestLatch_ConcurrentFire(t *testing.T) {
	var l Latch
	var wg sync.WaitGroup
	wins := make(chan float64, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(now float64) {
			defer wg.Done()
			if l.Fire(now) {
				wins <- now
			}
		}(float64(i))
	}
	wg.Wait()
	close(wins)

	var got []float64
	for w := range wins {
		got = append(got, w)
	}
	require.Len(t, got, 1)
	at, _ := l.FiredAt()
	assert.Equal(t, got[0], at)
}

func TestParticleField_GeneratedOnce(t *testing.T) {
	f, err := NewParticleField(FieldConfig{}, NewRand(11))
	require.NoError(t, err)
	require.Equal(t, 20, f.Len())

	before := f.Specs()
	f.Activate(0)
	for now := frame; now < 3; now += frame {
		f.Update(now)
	}
	assert.Equal(t, before, f.Specs())

	// Mutating the returned copy does not reach the field.
	specs := f.Specs()
	specs[0].Scale = -1
	assert.NotEqual(t, -1.0, f.Specs()[0].Scale)
}

func TestParticleField_InvalidConfig(t *testing.T) {
	_, err := NewParticleField(FieldConfig{Count: MaxParticles + 1}, NewRand(1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParticleField_StaysIdleUntilActivated(t *testing.T) {
	f, err := NewParticleField(FieldConfig{}, NewRand(2))
	require.NoError(t, err)

	for now := frame; now < 2; now += frame {
		f.Update(now)
	}
	assert.Equal(t, PhaseCounts{Idle: 20}, f.Counts())
	for _, a := range f.Animators() {
		assert.Equal(t, a.Spec().StartPosition, a.State().Position)
	}
}

func TestParticleField_ActivateOnlyOnce(t *testing.T) {
	f, err := NewParticleField(FieldConfig{}, NewRand(2))
	require.NoError(t, err)

	assert.True(t, f.Activate(1))
	assert.False(t, f.Activate(5))
	at, _ := f.Latch().FiredAt()
	assert.Equal(t, 1.0, at)
}

func TestParticleField_ThrownSettles(t *testing.T) {
	f, err := NewParticleField(FieldConfig{}, NewRand(21))
	require.NoError(t, err)

	f.Activate(0)
	now := 0.0
	for i := 0; i < 60*4; i++ {
		now += frame
		f.Update(now)
	}
	assert.Equal(t, now, f.Now())
	require.True(t, f.Finished())
	for _, a := range f.Animators() {
		assert.Equal(t, a.Spec().FinalPosition, a.State().Position)
	}
	// Settled beans stay on screen.
	assert.Len(t, f.Visible(), 20)
}

func TestParticleField_FallingLeavesScene(t *testing.T) {
	cfg := DefaultFieldConfig(ProfileFalling)
	cfg.Count = 10
	f, err := NewParticleField(cfg, NewRand(8))
	require.NoError(t, err)

	f.Activate(0)
	now := 0.0
	// Slowest bean: start 22, speed 0.5, delay 4 -> gone after ~32s.
	for i := 0; i < 60*40; i++ {
		now += frame
		f.Update(now)
	}
	assert.True(t, f.Finished())
	assert.Empty(t, f.Visible())
}

func TestParticleField_SharedClock(t *testing.T) {
	cfg := DefaultFieldConfig(ProfileThrown)
	cfg.Thrown.Delay = Range{0, 0}
	f, err := NewParticleField(cfg, NewRand(4))
	require.NoError(t, err)

	f.Activate(0)
	f.Update(0.5)
	for _, a := range f.Animators() {
		assert.Equal(t, 0.5, a.State().StartedAt)
	}
}
