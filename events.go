package beanfall

// EventSink is the interface for optional ECS integration. When set on a
// SceneHost, lifecycle events are forwarded to it.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// EventType identifies a scene lifecycle event.
type EventType uint8

const (
	EventMounted       EventType = iota // a new field was generated
	EventActivated                      // the field's latch fired
	EventBeanStarted                    // one bean left its start delay
	EventBeanDone                       // one bean settled or left the scene
	EventFieldFinished                  // every bean is done
	EventUnmounted                      // the host was unmounted
)

func (t EventType) String() string {
	switch t {
	case EventMounted:
		return "mounted"
	case EventActivated:
		return "activated"
	case EventBeanStarted:
		return "bean-started"
	case EventBeanDone:
		return "bean-done"
	case EventFieldFinished:
		return "field-finished"
	case EventUnmounted:
		return "unmounted"
	}
	return "unknown"
}

// SceneEvent carries lifecycle data for the ECS bridge.
type SceneEvent struct {
	Type    EventType
	MountID string
	// Time is the scene time of the event.
	Time float64
	// Bean is the bean's index in its field, or -1 for field-wide events.
	Bean int
	// Position is the bean's position (bean events only).
	Position Vec3
}

// SetEventSink attaches sink to the host. Pass nil to detach.
func (h *SceneHost) SetEventSink(sink EventSink) {
	h.sink = sink
}

func (h *SceneHost) emit(t EventType) {
	if h.sink == nil {
		return
	}
	h.sink.EmitEvent(SceneEvent{Type: t, MountID: h.mountID, Time: h.clock, Bean: -1})
}

func (h *SceneHost) emitBean(t EventType, bean int, pos Vec3) {
	if h.sink == nil {
		return
	}
	h.sink.EmitEvent(SceneEvent{Type: t, MountID: h.mountID, Time: h.clock, Bean: bean, Position: pos})
}

// emitTransitions compares every bean's phase with the last frame's and
// reports the changes.
func (h *SceneHost) emitTransitions() {
	for i, a := range h.field.Animators() {
		st := a.State()
		if st.Phase == h.phases[i] {
			continue
		}
		if h.phases[i] == PhaseIdle {
			h.emitBean(EventBeanStarted, i, a.Spec().StartPosition)
		}
		if st.Phase == PhaseDone {
			h.emitBean(EventBeanDone, i, st.Position)
		}
		h.phases[i] = st.Phase
	}
	if !h.finished && h.field.Finished() {
		h.finished = true
		h.emit(EventFieldFinished)
	}
}
