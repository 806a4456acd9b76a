package beanfall

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Page scrolling constants.
const (
	// HeaderOffset keeps a section's top edge clear of the fixed
	// navigation bar when scrolling to it.
	HeaderOffset = 80
	// WheelStep is the scroll distance of one mouse wheel notch.
	WheelStep = 60
	// DefaultScrollDuration is the smooth scroll duration in seconds.
	DefaultScrollDuration = 1.0
)

// Section is one vertically stacked block of a Page. It implements Region,
// so a ViewportTrigger can watch it.
type Section struct {
	// ID names the section for ScrollToSection.
	ID string
	// Title is drawn by page renderers.
	Title string
	// Background is the section fill color.
	Background Color

	page   *Page
	y      float64
	height float64
}

// Bounds returns the section rectangle in page coordinates, or false once
// the section has been removed from its page.
func (s *Section) Bounds() (Rect, bool) {
	if s.page == nil {
		return Rect{}, false
	}
	return Rect{X: 0, Y: s.y, Width: s.page.width, Height: s.height}, true
}

// ScreenRect returns where the section currently sits in the viewport.
func (s *Section) ScreenRect() Rect {
	b, _ := s.Bounds()
	if s.page != nil {
		b.Y -= s.page.scrollY
	}
	return b
}

// scrollAnim holds the active smooth-scroll tween.
type scrollAnim struct {
	tween *gween.Tween
}

// Page is a vertically scrolling document made of stacked sections, seen
// through a viewport of Width x Height. It is the environment a SceneHost
// lives in: it owns the scroll position and feeds the viewport to any
// ViewportTrigger watching one of its sections.
type Page struct {
	width, height float64
	sections      []*Section
	scrollY       float64
	scroll        *scrollAnim

	observers map[int]func(float64)
	nextObs   int
	triggers  []*ViewportTrigger
}

// NewPage returns an empty page with a w x h viewport.
func NewPage(w, h float64) *Page {
	return &Page{
		width:     w,
		height:    h,
		observers: make(map[int]func(float64)),
	}
}

// AddSection appends a section of the given height to the bottom of the page.
func (p *Page) AddSection(id, title string, height float64, bg Color) *Section {
	s := &Section{ID: id, Title: title, Background: bg, page: p, height: height}
	s.y = p.ContentHeight()
	p.sections = append(p.sections, s)
	return s
}

// RemoveSection detaches the section with the given id. Sections below it
// move up. Reports whether a section was removed.
func (p *Page) RemoveSection(id string) bool {
	for i, s := range p.sections {
		if s.ID != id {
			continue
		}
		s.page = nil
		p.sections = append(p.sections[:i], p.sections[i+1:]...)
		p.relayout()
		p.setScroll(p.scrollY)
		return true
	}
	return false
}

func (p *Page) relayout() {
	y := 0.0
	for _, s := range p.sections {
		s.y = y
		y += s.height
	}
}

// Section returns the section with the given id.
func (p *Page) Section(id string) (*Section, bool) {
	for _, s := range p.sections {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Sections returns the page's sections, top to bottom. The returned slice
// MUST NOT be mutated.
func (p *Page) Sections() []*Section {
	return p.sections
}

// ContentHeight returns the total height of all sections.
func (p *Page) ContentHeight() float64 {
	h := 0.0
	for _, s := range p.sections {
		h += s.height
	}
	return h
}

// MaxScroll returns the largest valid scroll offset.
func (p *Page) MaxScroll() float64 {
	return math.Max(0, p.ContentHeight()-p.height)
}

// ScrollY returns the current scroll offset.
func (p *Page) ScrollY() float64 {
	return p.scrollY
}

// Viewport returns the visible part of the page in page coordinates.
func (p *Page) Viewport() Rect {
	return Rect{X: 0, Y: p.scrollY, Width: p.width, Height: p.height}
}

// Resize changes the viewport size.
func (p *Page) Resize(w, h float64) {
	p.width, p.height = w, h
	p.setScroll(p.scrollY)
}

// OnScroll registers fn to be called with the new offset whenever the page
// scrolls. The returned function removes it.
func (p *Page) OnScroll(fn func(y float64)) (unsubscribe func()) {
	id := p.nextObs
	p.nextObs++
	p.observers[id] = fn
	return func() { delete(p.observers, id) }
}

// Watch makes the page feed its viewport to t every Update until t stops
// observing. The viewport is checked immediately as well, so a section that
// is already on screen fires without waiting for a scroll.
func (p *Page) Watch(t *ViewportTrigger) {
	if !t.Observing() {
		return
	}
	p.triggers = append(p.triggers, t)
	p.observeTriggers()
}

// Watching returns the number of triggers still observing.
func (p *Page) Watching() int {
	return len(p.triggers)
}

// ScrollBy scrolls by dy immediately, cancelling any smooth scroll.
func (p *Page) ScrollBy(dy float64) {
	p.scroll = nil
	p.setScroll(p.scrollY + dy)
}

// ScrollTo scrolls to y over duration seconds with an ease-in-out curve.
// A non-positive duration jumps.
func (p *Page) ScrollTo(y, duration float64) {
	y = math.Max(0, math.Min(y, p.MaxScroll()))
	if duration <= 0 {
		p.scroll = nil
		p.setScroll(y)
		return
	}
	p.scroll = &scrollAnim{
		tween: gween.New(float32(p.scrollY), float32(y), float32(duration), ease.InOutQuad),
	}
}

// ScrollToSection smooth-scrolls so the section's top sits HeaderOffset
// pixels below the viewport's top. Reports whether the section exists.
func (p *Page) ScrollToSection(id string, duration float64) bool {
	s, ok := p.Section(id)
	if !ok {
		return false
	}
	p.ScrollTo(s.y-HeaderOffset, duration)
	return true
}

// Scrolling reports whether a smooth scroll is in progress.
func (p *Page) Scrolling() bool {
	return p.scroll != nil
}

// Update advances the smooth scroll by dt seconds and lets every watching
// trigger observe the new viewport.
func (p *Page) Update(dt float64) {
	if p.scroll != nil {
		val, done := p.scroll.tween.Update(float32(dt))
		p.setScroll(float64(val))
		if done {
			p.scroll = nil
		}
	}
	p.observeTriggers()
}

// HandleInput scrolls the page from the mouse wheel and the arrow, page and
// home/end keys. Call it from the game's Update before Page.Update.
func (p *Page) HandleInput() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		p.ScrollBy(-wy * WheelStep)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		p.ScrollTo(p.scrollY+WheelStep, 0.2)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		p.ScrollTo(p.scrollY-WheelStep, 0.2)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		p.ScrollTo(p.scrollY+p.height*0.9, 0.4)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		p.ScrollTo(p.scrollY-p.height*0.9, 0.4)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		p.ScrollTo(0, DefaultScrollDuration)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		p.ScrollTo(p.MaxScroll(), DefaultScrollDuration)
	}
}

func (p *Page) setScroll(y float64) {
	y = math.Max(0, math.Min(y, p.MaxScroll()))
	if y == p.scrollY {
		return
	}
	p.scrollY = y
	for _, fn := range p.observers {
		fn(y)
	}
}

// observeTriggers hands the viewport to every live trigger and forgets the
// ones that fired or closed.
func (p *Page) observeTriggers() {
	if len(p.triggers) == 0 {
		return
	}
	vp := p.Viewport()
	live := p.triggers[:0]
	for _, t := range p.triggers {
		t.Observe(vp)
		if t.Observing() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(p.triggers); i++ {
		p.triggers[i] = nil
	}
	p.triggers = live
}
