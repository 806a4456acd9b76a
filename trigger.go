package beanfall

//go:generate mockgen -destination mock_region_test.go -package beanfall . Region

// Region is an on-screen element whose geometry a ViewportTrigger observes.
// Bounds returns the element's rectangle in page coordinates and false when
// the element is not present.
type Region interface {
	Bounds() (Rect, bool)
}

// TriggerConfig controls when a ViewportTrigger fires.
type TriggerConfig struct {
	// Threshold is the visible fraction of the region, in (0, 1], at which
	// the trigger fires.
	Threshold float64 `yaml:"threshold"`
	// RootMargin grows (positive) or shrinks (negative) the viewport before
	// intersecting it with the region.
	RootMargin Margin `yaml:"rootMargin"`
}

// DefaultTriggerConfig fires when 30% of the region is visible inside a
// viewport whose bottom 50 px are ignored.
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		Threshold:  0.3,
		RootMargin: Margin{Bottom: -50},
	}
}

// ViewportTrigger fires once, the first time enough of its region is inside
// the viewport. After firing, or after Close, it stops observing and drops
// every subscriber.
type ViewportTrigger struct {
	region    Region
	config    TriggerConfig
	observing bool
	fired     bool
	subs      map[int]func()
	nextSub   int
}

// NewViewportTrigger starts observing region. A nil region, or one that is
// absent right now, leaves the trigger permanently inert.
func NewViewportTrigger(region Region, cfg TriggerConfig) *ViewportTrigger {
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = DefaultTriggerConfig().Threshold
	}
	t := &ViewportTrigger{
		region: region,
		config: cfg,
		subs:   make(map[int]func()),
	}
	if region != nil {
		_, t.observing = region.Bounds()
	}
	return t
}

// Subscribe registers fn to run when the trigger fires. The returned
// function removes the subscription; calling it more than once is harmless.
// Subscribing after the trigger has fired or closed is a no-op.
func (t *ViewportTrigger) Subscribe(fn func()) (unsubscribe func()) {
	if !t.observing || fn == nil {
		return func() {}
	}
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	return func() { delete(t.subs, id) }
}

// Observing reports whether the trigger is still watching its region.
func (t *ViewportTrigger) Observing() bool {
	return t.observing
}

// Fired reports whether the trigger has fired.
func (t *ViewportTrigger) Fired() bool {
	return t.fired
}

// Subscribers returns the number of live subscriptions.
func (t *ViewportTrigger) Subscribers() int {
	return len(t.subs)
}

// VisibleFraction returns the part of the region inside viewport after the
// root margin is applied, in [0, 1]. A missing region reports 0.
func (t *ViewportTrigger) VisibleFraction(viewport Rect) float64 {
	if t.region == nil {
		return 0
	}
	b, ok := t.region.Bounds()
	if !ok {
		return 0
	}
	root := viewport.Expand(t.config.RootMargin)
	if !b.Intersects(root) {
		return 0
	}
	area := b.Area()
	if area == 0 {
		// A zero-area element touching the viewport counts as fully visible.
		return 1
	}
	return clamp01(b.Intersection(root).Area() / area)
}

// Observe checks the region against the current viewport. It is called once
// per frame by the page that owns the viewport and reports whether this call
// fired the trigger.
func (t *ViewportTrigger) Observe(viewport Rect) bool {
	if !t.observing {
		return false
	}
	frac := t.VisibleFraction(viewport)
	if frac <= 0 || frac < t.config.Threshold {
		return false
	}

	t.fired = true
	subs := t.subs
	t.release()
	for _, fn := range subs {
		fn()
	}
	return true
}

// Close stops observing and drops all subscribers without firing.
func (t *ViewportTrigger) Close() {
	t.release()
}

func (t *ViewportTrigger) release() {
	t.observing = false
	t.subs = make(map[int]func())
}
