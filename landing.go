package beanfall

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// BeanSectionID is the landing page section the bean scene lives in.
const BeanSectionID = "beans"

var (
	pageBackground  = mustHex("#FAF6F0")
	titleBackground = mustHex("#3E2723")
)

// landingSections is the layout of the demo landing page. The bean section
// is full height so the thrown beans have the whole viewport to land in.
var landingSections = []struct {
	id, title string
	height    float64 // in viewport heights
	bg        string
}{
	{"hero", "Fresh roasted, delivered weekly", 1, "#F5E6D3"},
	{"story", "From the farm to your cup", 0.8, "#FAF6F0"},
	{BeanSectionID, "Our beans", 1, "#FFFFFF"},
	{"contact", "Visit the roastery", 0.7, "#3E2723"},
}

// LandingPage is a scrolling page with a SceneHost mounted in one of its
// sections. The host only starts when that section scrolls into view. It
// implements ebiten.Game.
type LandingPage struct {
	config  Config
	page    *Page
	host    *SceneHost
	section *Section
	layer   *ebiten.Image
	script  *ScriptRunner
	exit    bool
}

// NewLandingPage lays out the page, mounts the host in the bean section and
// wires its viewport trigger.
func NewLandingPage(cfg Config) (*LandingPage, error) {
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	page := NewPage(w, h)
	var section *Section
	for _, s := range landingSections {
		bg, err := ColorFromHex(s.bg)
		if err != nil {
			return nil, err
		}
		sec := page.AddSection(s.id, s.title, s.height*h, bg)
		if s.id == BeanSectionID {
			section = sec
		}
	}

	hc := cfg.HostConfig()
	hc.Height = int(section.height)
	host := NewSceneHost(hc)
	host.SetDebugMode(cfg.Debug)
	if err := host.Mount(); err != nil {
		return nil, err
	}

	l := &LandingPage{
		config:  cfg,
		page:    page,
		host:    host,
		section: section,
	}
	l.watch()
	return l, nil
}

func (l *LandingPage) watch() {
	trig := NewViewportTrigger(l.section, l.config.Trigger)
	l.host.AttachTrigger(trig)
	l.page.Watch(trig)
}

// Page returns the scrolling page.
func (l *LandingPage) Page() *Page {
	return l.page
}

// Host returns the mounted scene host.
func (l *LandingPage) Host() *SceneHost {
	return l.host
}

// SetScript plays r one step per frame. With exitWhenDone the game ends
// once the script has run and its screenshots are written.
func (l *LandingPage) SetScript(r *ScriptRunner, exitWhenDone bool) {
	l.script = r
	l.exit = exitWhenDone
}

// Remount rebuilds the bean field and re-arms the viewport trigger.
func (l *LandingPage) Remount() error {
	l.host.Unmount()
	if err := l.host.Mount(); err != nil {
		return err
	}
	l.watch()
	return nil
}

// Update implements ebiten.Game.
func (l *LandingPage) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if l.script != nil {
		if l.script.Done() {
			if l.exit && l.host.PendingScreenshots() == 0 {
				return ebiten.Termination
			}
		} else if err := l.script.Step(l.page, l.host); err != nil {
			log.Printf("beanfall: %v", err)
		}
		if l.host.Mounted() && l.host.trigger == nil {
			l.watch()
		}
	} else if err := l.handleKeys(); err != nil {
		return err
	}

	l.page.Update(dt)
	l.host.Step(dt)
	return nil
}

func (l *LandingPage) handleKeys() error {
	l.page.HandleInput()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return l.Remount()
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		if l.host.Mounted() {
			l.host.Unmount()
		} else if err := l.host.Mount(); err != nil {
			return err
		} else {
			l.watch()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		l.page.ScrollToSection(BeanSectionID, DefaultScrollDuration)
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		l.host.Screenshot("manual")
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		l.config.Debug = !l.config.Debug
		l.host.SetDebugMode(l.config.Debug)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (l *LandingPage) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground.rgba())
	bounds := screen.Bounds()

	for _, s := range l.page.Sections() {
		r := s.ScreenRect()
		rect := image.Rect(0, int(r.Y), bounds.Dx(), int(r.Y+r.Height)).Intersect(bounds)
		if rect.Empty() {
			continue
		}
		screen.SubImage(rect).(*ebiten.Image).Fill(s.Background.rgba())

		// DebugPrint text is white; give it a dark label.
		label := image.Rect(20, int(r.Y)+20, 28+6*len(s.Title), int(r.Y)+44).Intersect(bounds)
		if !label.Empty() {
			screen.SubImage(label).(*ebiten.Image).Fill(titleBackground.rgba())
		}
		ebitenutil.DebugPrintAt(screen, s.Title, 24, int(r.Y)+24)
	}

	l.drawBeans(screen)

	if l.config.ShowFPS {
		drawFPS(screen)
	}
	l.host.flushScreenshots(screen)
}

// drawBeans renders the host into a section-sized layer and places it where
// the section currently is, so beans scroll with the page.
func (l *LandingPage) drawBeans(screen *ebiten.Image) {
	r := l.section.ScreenRect()
	if r.Y >= float64(screen.Bounds().Dy()) || r.Y+r.Height <= 0 {
		return
	}
	w, h := int(r.Width), int(r.Height)
	if l.layer == nil || l.layer.Bounds().Dx() != w || l.layer.Bounds().Dy() != h {
		if l.layer != nil {
			l.layer.Deallocate()
		}
		l.layer = ebiten.NewImage(w, h)
	}
	l.layer.Clear()
	l.host.DrawTo(l.layer)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(0, r.Y)
	screen.DrawImage(l.layer, &op)
}

// Layout implements ebiten.Game.
func (l *LandingPage) Layout(outsideWidth, outsideHeight int) (int, int) {
	return l.config.Window.Width, l.config.Window.Height
}

// rgba converts c to a premultiplied 8-bit color.
func (c Color) rgba() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}
