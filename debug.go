package beanfall

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame timing and draw metrics.
// Only populated when the host is in debug mode.
type frameStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	triangles  int
	culled     int
	drawCalls  int
	visible    int
	extent     Rect
	counts     PhaseCounts
}

// debugLog prints timing and draw stats to stderr.
func (h *SceneHost) debugLog() {
	if !h.debug {
		return
	}
	s := h.stats
	_, _ = fmt.Fprintf(os.Stderr,
		"[beanfall] %s t=%.2fs | update: %v | draw: %v | total: %v\n",
		h.mountID, h.clock, s.updateTime, s.drawTime, s.updateTime+s.drawTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[beanfall] beans: %d visible, %d idle, %d animating, %d done | triangles: %d (culled %d) | draw calls: %d\n",
		s.visible, s.counts.Idle, s.counts.Animating, s.counts.Done, s.triangles, s.culled, s.drawCalls)
	_, _ = fmt.Fprintf(os.Stderr,
		"[beanfall] extent: %.0fx%.0f at (%.0f, %.0f)\n",
		s.extent.Width, s.extent.Height, s.extent.X, s.extent.Y)
}

// Stats is a snapshot of the last frame's draw metrics.
type Stats struct {
	Triangles int
	Culled    int
	DrawCalls int
	// Extent is the screen-space bounding box of everything drawn.
	Extent Rect
}

// LastFrameStats returns the metrics of the most recent DrawTo call.
func (h *SceneHost) LastFrameStats() Stats {
	return Stats{
		Triangles: h.stats.triangles,
		Culled:    h.stats.culled,
		DrawCalls: h.stats.drawCalls,
		Extent:    h.stats.extent,
	}
}
