package beanfall

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/xid"
)

// HostConfig configures a SceneHost. Zero fields take defaults.
type HostConfig struct {
	// Width and Height are the logical surface size reported by Layout.
	Width, Height int
	// Field controls bean generation.
	Field FieldConfig
	// Seed seeds the field generator. Zero seeds from the wall clock.
	Seed uint64
	// Camera frames the scene.
	Camera Camera
	// Lighting shades the beans. A nil Lights slice selects DefaultLighting.
	Lighting Lighting
	// AssetPath is the bean model file.
	AssetPath string
	// Assets is the cache models are loaded through. Nil means DefaultAssets.
	Assets *AssetCache
	// Table draws the translucent table surface beans land on.
	Table bool
	// ShowFPS draws the FPS/TPS overlay.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// tableSize is the edge length of the table surface.
const tableSize = 40

// tableColor is the walnut tint of the table surface.
var tableColor = Color{R: 0x8B / 255.0, G: 0x6F / 255.0, B: 0x47 / 255.0, A: 0.1}

// SceneHost owns the transparent rendering surface beans are drawn on: the
// camera, the lights, the clock and the mounted particle field. It
// implements ebiten.Game.
type SceneHost struct {
	config  HostConfig
	camera  Camera
	lights  Lighting
	assets  *AssetCache
	handle  *AssetHandle
	field   *ParticleField
	mounted bool
	mountID string
	mounts  int

	clock   float64
	trigger *ViewportTrigger
	unsub   func()
	pending bool

	sink     EventSink
	phases   []Phase
	finished bool

	builder         meshBuilder
	debug           bool
	stats           frameStats
	screenshotQueue []string
	screenshotSeq   int
	assetWarned     bool
}

// NewSceneHost returns an unmounted host.
func NewSceneHost(cfg HostConfig) *SceneHost {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.AssetPath == "" {
		cfg.AssetPath = DefaultAssetPath
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	cfg.Camera.applyDefaults()
	if cfg.Lighting.Lights == nil {
		cfg.Lighting = DefaultLighting()
	}
	assets := cfg.Assets
	if assets == nil {
		assets = DefaultAssets()
	}
	return &SceneHost{
		config: cfg,
		camera: cfg.Camera,
		lights: cfg.Lighting,
		assets: assets,
	}
}

// Mount generates the particle field and starts loading the bean model.
// Mounting an already mounted host does nothing; the field is only rebuilt
// after Unmount.
func (h *SceneHost) Mount() error {
	if h.mounted {
		return nil
	}
	rng := NewTimeRand()
	if h.config.Seed != 0 {
		rng = NewRand(h.config.Seed + uint64(h.mounts))
	}
	field, err := NewParticleField(h.config.Field, rng)
	if err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	h.field = field
	h.handle = h.assets.Request(h.config.AssetPath)
	h.clock = 0
	h.mounted = true
	h.mounts++
	h.mountID = xid.New().String()
	h.assetWarned = false
	h.phases = make([]Phase, field.Len())
	h.finished = false
	h.emit(EventMounted)
	if h.debug {
		log.Printf("beanfall: mount %s: %d %v beans (seed %d)",
			h.mountID, field.Len(), field.Config().Profile, rng.Seed())
	}
	if h.pending {
		h.pending = false
		if h.field.Activate(h.clock) {
			h.emit(EventActivated)
		}
	}
	return nil
}

// Unmount releases the trigger subscription and freezes the field. No
// particle moves after Unmount returns.
func (h *SceneHost) Unmount() {
	if !h.mounted {
		return
	}
	if h.unsub != nil {
		h.unsub()
		h.unsub = nil
	}
	if h.trigger != nil {
		h.trigger.Close()
		h.trigger = nil
	}
	h.mounted = false
	h.emit(EventUnmounted)
	if h.debug {
		log.Printf("beanfall: unmount %s at t=%.2fs", h.mountID, h.clock)
	}
}

// Mounted reports whether the host is mounted.
func (h *SceneHost) Mounted() bool {
	return h.mounted
}

// MountID returns the unique id of the current (or last) mount.
func (h *SceneHost) MountID() string {
	return h.mountID
}

// AttachTrigger activates the field when t fires. The subscription is
// released on Unmount.
func (h *SceneHost) AttachTrigger(t *ViewportTrigger) {
	if h.unsub != nil {
		h.unsub()
	}
	h.trigger = t
	h.unsub = t.Subscribe(h.Activate)
}

// Activate fires the field's latch at the current scene time. An
// activation that arrives before the first Mount is applied on Mount; one
// that arrives after Unmount is dropped.
func (h *SceneHost) Activate() {
	if !h.mounted {
		if h.mounts == 0 {
			h.pending = true
		}
		return
	}
	if !h.field.Activate(h.clock) {
		return
	}
	h.emit(EventActivated)
	if h.debug {
		log.Printf("beanfall: mount %s activated at t=%.2fs", h.mountID, h.clock)
	}
}

// Field returns the mounted field, or nil before the first Mount.
func (h *SceneHost) Field() *ParticleField {
	return h.field
}

// Clock returns the scene time in seconds since Mount.
func (h *SceneHost) Clock() float64 {
	return h.clock
}

// Camera returns the host camera for live tuning.
func (h *SceneHost) Camera() *Camera {
	return &h.camera
}

// Lighting returns the host lights for live tuning.
func (h *SceneHost) Lighting() *Lighting {
	return &h.lights
}

// Model returns the bean model once it has loaded.
func (h *SceneHost) Model() (*BeanModel, bool) {
	return h.handle.Ready()
}

// SetDebugMode enables or disables debug mode. When enabled, lifecycle
// events are logged and per-frame timing stats are printed to stderr.
func (h *SceneHost) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// Update implements ebiten.Game. It advances the scene by one tick.
func (h *SceneHost) Update() error {
	h.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

// Step advances the clock by dt seconds and moves every bean. It does
// nothing while unmounted.
func (h *SceneHost) Step(dt float64) {
	if !h.mounted {
		return
	}
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}
	h.clock += dt
	h.field.Update(h.clock)
	h.emitTransitions()
	if h.debug {
		h.stats.updateTime = time.Since(t0)
	}
}

// Draw implements ebiten.Game. The surface is transparent: nothing but the
// beans (and the faint table) is drawn, so the page behind shows through.
func (h *SceneHost) Draw(screen *ebiten.Image) {
	h.DrawTo(screen)
	if h.config.ShowFPS {
		drawFPS(screen)
	}
	h.flushScreenshots(screen)
}

// DrawTo renders the scene into target, sized to target's bounds. Pass a
// sub-image to render into part of a larger surface. An unmounted host
// draws nothing.
func (h *SceneHost) DrawTo(target *ebiten.Image) {
	if !h.mounted {
		return
	}
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}

	b := target.Bounds()
	w, ht := float64(b.Dx()), float64(b.Dy())
	h.builder.reset()

	if h.config.Table {
		half := tableSize / 2.0
		y := -0.1
		h.builder.addQuad([4]Vec3{
			{-half, y, -half}, {-half, y, half}, {half, y, half}, {half, y, -half},
		}, tableColor, &h.camera, w, ht)
	}

	model, ok := h.handle.Ready()
	if !ok {
		if err := h.handle.Err(); err != nil && !h.assetWarned && h.debug {
			log.Printf("beanfall: mount %s: drawing without beans: %v", h.mountID, err)
			h.assetWarned = true
		}
	}
	visible := h.field.Visible()
	if ok {
		for _, a := range visible {
			h.builder.addModel(model, a.Transform(), &h.camera, h.lights, w, ht)
		}
	}

	h.stats.triangles = h.builder.triangles()
	h.stats.culled = h.builder.culled
	h.stats.extent = h.builder.screenBounds()
	h.stats.drawCalls = h.builder.flush(target)

	if h.debug {
		h.stats.drawTime = time.Since(t0)
		h.stats.visible = len(visible)
		h.stats.counts = h.field.Counts()
		h.debugLog()
	}
}

// Layout implements ebiten.Game.
func (h *SceneHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.config.Width, h.config.Height
}
