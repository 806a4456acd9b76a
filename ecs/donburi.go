package ecs

import (
	"github.com/brewhouse/beanfall"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for beanfall scene events.
var SceneEventType = events.NewEventType[beanfall.SceneEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on SceneEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) beanfall.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event beanfall.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}

// LandedCounter counts settled beans per mount from queued scene events.
// Register it with Subscribe, then read it after ProcessEvents.
type LandedCounter struct {
	landed map[string]int
}

// NewLandedCounter returns an empty counter.
func NewLandedCounter() *LandedCounter {
	return &LandedCounter{landed: make(map[string]int)}
}

// Subscribe registers the counter on world.
func (c *LandedCounter) Subscribe(world donburi.World) {
	SceneEventType.Subscribe(world, c.handle)
}

func (c *LandedCounter) handle(w donburi.World, e beanfall.SceneEvent) {
	switch e.Type {
	case beanfall.EventMounted:
		c.landed[e.MountID] = 0
	case beanfall.EventBeanDone:
		c.landed[e.MountID]++
	}
}

// Landed returns how many beans of the given mount are done.
func (c *LandedCounter) Landed(mountID string) int {
	return c.landed[mountID]
}
