package beanfall

import "sync/atomic"

// Latch is a one-shot activation flag. It starts unfired, fires at most
// once and stays fired. Every animator of a field reads the same Latch; reads
// are safe from any goroutine.
type Latch struct {
	at atomic.Pointer[float64] // scene time of Fire; nil until fired
}

// Fire sets the latch at scene time now. It reports whether this call was
// the one that fired it.
func (l *Latch) Fire(now float64) bool {
	return l.at.CompareAndSwap(nil, &now)
}

// Fired reports whether the latch has fired.
func (l *Latch) Fired() bool {
	return l.at.Load() != nil
}

// FiredAt returns the scene time at which the latch fired.
func (l *Latch) FiredAt() (float64, bool) {
	p := l.at.Load()
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Activation is a snapshot of a Latch taken once per frame and handed to
// every animator, so that all beans see the same activation state.
type Activation struct {
	Fired bool
	At    float64
}

// Snapshot returns the latch's current state.
func (l *Latch) Snapshot() Activation {
	at, ok := l.FiredAt()
	return Activation{Fired: ok, At: at}
}
