package beanfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// A 100 px tall region at y=500 in a 400 px tall viewport.
var sectionRect = Rect{X: 0, Y: 500, Width: 800, Height: 100}

func viewportAt(y float64) Rect {
	return Rect{X: 0, Y: y, Width: 800, Height: 400}
}

func TestViewportTrigger_FiresAtThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	region := NewMockRegion(ctrl)
	region.EXPECT().Bounds().Return(sectionRect, true).AnyTimes()

	trig := NewViewportTrigger(region, DefaultTriggerConfig())
	require.True(t, trig.Observing())

	fired := 0
	trig.Subscribe(func() { fired++ })

	// The root bottom edge sits at y+400-50. At y=170 it is at 520: 20% of
	// the region is inside.
	assert.False(t, trig.Observe(viewportAt(170)))
	assert.InDelta(t, 0.2, trig.VisibleFraction(viewportAt(170)), 1e-9)
	assert.Equal(t, 0, fired)

	// At y=180 the bottom edge is at 530: exactly 30%.
	assert.True(t, trig.Observe(viewportAt(180)))
	assert.Equal(t, 1, fired)
	assert.True(t, trig.Fired())
	assert.False(t, trig.Observing())
	assert.Equal(t, 0, trig.Subscribers())
}

func TestViewportTrigger_FiresAtMostOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	region := NewMockRegion(ctrl)
	region.EXPECT().Bounds().Return(sectionRect, true).AnyTimes()

	trig := NewViewportTrigger(region, DefaultTriggerConfig())
	fired := 0
	trig.Subscribe(func() { fired++ })

	for _, y := range []float64{300, 0, 300, 400} {
		trig.Observe(viewportAt(y))
	}
	assert.Equal(t, 1, fired)

	// Late subscribers are never called.
	trig.Subscribe(func() { fired++ })
	trig.Observe(viewportAt(300))
	assert.Equal(t, 1, fired)
}

func TestViewportTrigger_MissingRegionIsInert(t *testing.T) {
	ctrl := gomock.NewController(t)
	region := NewMockRegion(ctrl)
	region.EXPECT().Bounds().Return(Rect{}, false).Times(1)

	trig := NewViewportTrigger(region, DefaultTriggerConfig())
	assert.False(t, trig.Observing())

	fired := false
	trig.Subscribe(func() { fired = true })
	assert.False(t, trig.Observe(viewportAt(500)))
	assert.False(t, fired)

	nilTrig := NewViewportTrigger(nil, DefaultTriggerConfig())
	assert.False(t, nilTrig.Observing())
	assert.Equal(t, 0.0, nilTrig.VisibleFraction(viewportAt(500)))
}

func TestViewportTrigger_RegionRemovedLater(t *testing.T) {
	ctrl := gomock.NewController(t)
	region := NewMockRegion(ctrl)
	gomock.InOrder(
		region.EXPECT().Bounds().Return(sectionRect, true),
		region.EXPECT().Bounds().Return(Rect{}, false).AnyTimes(),
	)

	trig := NewViewportTrigger(region, DefaultTriggerConfig())
	fired := false
	trig.Subscribe(func() { fired = true })
	assert.False(t, trig.Observe(viewportAt(400)))
	assert.False(t, fired)
	assert.True(t, trig.Observing())
}

func TestViewportTrigger_Unsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	region := NewMockRegion(ctrl)
	region.EXPECT().Bounds().Return(sectionRect, true).AnyTimes()

	trig := NewViewportTrigger(region, DefaultTriggerConfig())
	a, b := 0, 0
	unsubA := trig.Subscribe(func() { a++ })
	trig.Subscribe(func() { b++ })
	assert.Equal(t, 2, trig.Subscribers())

	unsubA()
	unsubA()
	assert.Equal(t, 1, trig.Subscribers())

	trig.Observe(viewportAt(400))
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestViewportTrigger_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	region := NewMockRegion(ctrl)
	region.EXPECT().Bounds().Return(sectionRect, true).AnyTimes()

	trig := NewViewportTrigger(region, DefaultTriggerConfig())
	fired := false
	trig.Subscribe(func() { fired = true })
	trig.Close()

	assert.False(t, trig.Observe(viewportAt(400)))
	assert.False(t, fired)
	assert.False(t, trig.Fired())
	assert.Equal(t, 0, trig.Subscribers())
}

func TestViewportTrigger_InvalidThresholdDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	region := NewMockRegion(ctrl)
	region.EXPECT().Bounds().Return(sectionRect, true).AnyTimes()

	trig := NewViewportTrigger(region, TriggerConfig{Threshold: 2})
	// Without a root margin 20/100 visible is still below 0.3.
	assert.False(t, trig.Observe(viewportAt(120)))
	assert.True(t, trig.Observe(viewportAt(130)))
}

func TestRect_ExpandAndIntersection(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	got := r.Expand(Margin{Bottom: -50})
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 100, Height: 50}, got)

	in := r.Intersection(Rect{X: 50, Y: 80, Width: 100, Height: 100})
	assert.Equal(t, Rect{X: 50, Y: 80, Width: 50, Height: 20}, in)
	assert.Equal(t, 0.0, r.Intersection(Rect{X: 200, Y: 200, Width: 1, Height: 1}).Area())
}
