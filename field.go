package beanfall

// ParticleField is a batch of beans generated once and animated together.
// It owns the shared activation Latch; its animators never touch each other.
type ParticleField struct {
	config    FieldConfig
	specs     []ParticleSpec
	animators []*Animator
	latch     Latch
	lastNow   float64
	visible   []*Animator
}

// NewParticleField validates cfg, fills defaults and draws the whole batch
// from rng. The batch never changes for the lifetime of the field.
func NewParticleField(cfg FieldConfig, rng *Rand) (*ParticleField, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	specs := GenerateSpecs(cfg, rng)
	animators := make([]*Animator, len(specs))
	for i, s := range specs {
		animators[i] = NewAnimator(cfg.Profile, s)
	}
	return &ParticleField{
		config:    cfg,
		specs:     specs,
		animators: animators,
		visible:   make([]*Animator, 0, len(specs)),
	}, nil
}

// Config returns the config the field was built from, defaults applied.
func (f *ParticleField) Config() FieldConfig {
	return f.config
}

// Len returns the number of beans.
func (f *ParticleField) Len() int {
	return len(f.specs)
}

// Specs returns a copy of the generated batch.
func (f *ParticleField) Specs() []ParticleSpec {
	out := make([]ParticleSpec, len(f.specs))
	copy(out, f.specs)
	return out
}

// Animators returns the field's animators. The returned slice MUST NOT be
// mutated.
func (f *ParticleField) Animators() []*Animator {
	return f.animators
}

// Latch returns the field's activation latch.
func (f *ParticleField) Latch() *Latch {
	return &f.latch
}

// Activate fires the latch at scene time now. Only the first call has any
// effect.
func (f *ParticleField) Activate(now float64) bool {
	return f.latch.Fire(now)
}

// Update advances every bean to scene time now. The clock is read once by
// the caller and the latch is sampled once, so every bean sees the same
// instant.
func (f *ParticleField) Update(now float64) {
	f.lastNow = now
	act := f.latch.Snapshot()
	for _, a := range f.animators {
		a.Advance(act, now)
	}
}

// Now returns the scene time of the last Update.
func (f *ParticleField) Now() float64 {
	return f.lastNow
}

// Visible returns the beans that should be drawn this frame. The returned
// slice is reused by the next call.
func (f *ParticleField) Visible() []*Animator {
	f.visible = f.visible[:0]
	for _, a := range f.animators {
		if a.state.Visible {
			f.visible = append(f.visible, a)
		}
	}
	return f.visible
}

// PhaseCounts tallies beans per phase.
type PhaseCounts struct {
	Idle, Animating, Done int
}

// Counts returns how many beans are in each phase.
func (f *ParticleField) Counts() PhaseCounts {
	var c PhaseCounts
	for _, a := range f.animators {
		switch a.state.Phase {
		case PhaseIdle:
			c.Idle++
		case PhaseAnimating:
			c.Animating++
		case PhaseDone:
			c.Done++
		}
	}
	return c
}

// Finished reports whether every bean has reached PhaseDone.
func (f *ParticleField) Finished() bool {
	return f.Counts().Done == len(f.animators)
}
