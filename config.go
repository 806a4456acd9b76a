package beanfall

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WindowConfig sizes the demo window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// TPS is the update rate. Zero keeps Ebitengine's default.
	TPS int `yaml:"tps"`
}

// LightConfig is the file form of a Light.
type LightConfig struct {
	Kind      string  `yaml:"kind"`
	Position  Vec3    `yaml:"position"`
	Intensity float64 `yaml:"intensity"`
	Color     string  `yaml:"color"`
	Distance  float64 `yaml:"distance"`
	Disabled  bool    `yaml:"disabled"`
}

// Config is the complete, file-loadable configuration of a bean scene.
type Config struct {
	Window        WindowConfig  `yaml:"window"`
	Seed          uint64        `yaml:"seed"`
	Field         FieldConfig   `yaml:"field"`
	Trigger       TriggerConfig `yaml:"trigger"`
	Camera        Camera        `yaml:"camera"`
	Lights        []LightConfig `yaml:"lights"`
	Asset         string        `yaml:"asset"`
	Table         *bool         `yaml:"table"`
	ShowFPS       bool          `yaml:"showFPS"`
	Debug         bool          `yaml:"debug"`
	ScreenshotDir string        `yaml:"screenshotDir"`
}

// DefaultConfig returns the configuration of the coffee landing page: a
// thrown spill of 20 beans onto a faint table.
func DefaultConfig() Config {
	cfg := Config{Trigger: DefaultTriggerConfig()}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a YAML config file, fills defaults and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data, fills defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	// Decode over the defaults so a file can override single keys of a
	// nested block. Count and Table stay unset: the count default depends on
	// the decoded profile.
	cfg := DefaultConfig()
	cfg.Field.Count = 0
	cfg.Table = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults fills every zero-valued optional field.
func (c *Config) applyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = "beanfall"
	}
	if c.Window.Width == 0 {
		c.Window.Width = 800
	}
	if c.Window.Height == 0 {
		c.Window.Height = 600
	}
	c.Field.applyDefaults()
	if c.Trigger.Threshold == 0 {
		c.Trigger.Threshold = DefaultTriggerConfig().Threshold
	}
	c.Camera.applyDefaults()
	if c.Asset == "" {
		c.Asset = DefaultAssetPath
	}
	if c.Table == nil {
		on := true
		c.Table = &on
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
}

// Validate reports the first invalid setting. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.Window.TPS)
	}
	if err := c.Field.Validate(); err != nil {
		return err
	}
	if c.Trigger.Threshold <= 0 || c.Trigger.Threshold > 1 {
		return fmt.Errorf("%w: trigger threshold %g outside (0, 1]", ErrInvalidConfig, c.Trigger.Threshold)
	}
	if _, err := c.Lighting(); err != nil {
		return err
	}
	return nil
}

// Lighting converts the configured lights. An empty list selects
// DefaultLighting.
func (c Config) Lighting() (Lighting, error) {
	if len(c.Lights) == 0 {
		return DefaultLighting(), nil
	}
	var lg Lighting
	for i, lc := range c.Lights {
		l := Light{
			Position:  lc.Position,
			Intensity: lc.Intensity,
			Distance:  lc.Distance,
			Enabled:   !lc.Disabled,
			Color:     ColorWhite,
		}
		switch strings.ToLower(lc.Kind) {
		case "ambient":
			l.Kind = LightAmbient
		case "directional":
			l.Kind = LightDirectional
		case "point":
			l.Kind = LightPoint
		default:
			return Lighting{}, fmt.Errorf("%w: light %d: unknown kind %q", ErrInvalidConfig, i, lc.Kind)
		}
		if lc.Color != "" {
			col, err := ColorFromHex(lc.Color)
			if err != nil {
				return Lighting{}, fmt.Errorf("%w: light %d: %v", ErrInvalidConfig, i, err)
			}
			l.Color = col
		}
		lg.AddLight(l)
	}
	return lg, nil
}

// HostConfig converts c into the settings of a SceneHost.
func (c Config) HostConfig() HostConfig {
	lg, err := c.Lighting()
	if err != nil {
		lg = DefaultLighting()
	}
	return HostConfig{
		Width:         c.Window.Width,
		Height:        c.Window.Height,
		Field:         c.Field,
		Seed:          c.Seed,
		Camera:        c.Camera,
		Lighting:      lg,
		AssetPath:     c.Asset,
		Table:         c.Table == nil || *c.Table,
		ShowFPS:       c.ShowFPS,
		ScreenshotDir: c.ScreenshotDir,
	}
}

// UnmarshalYAML accepts a profile name.
func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseProfile(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = v
	return nil
}

// MarshalYAML writes the profile name.
func (p Profile) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML accepts either a [x, y, z] sequence or an {x, y, z} mapping.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var xs []float64
		if err := value.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 3 {
			return fmt.Errorf("line %d: vector needs 3 components, got %d", value.Line, len(xs))
		}
		*v = Vec3{xs[0], xs[1], xs[2]}
		return nil
	}
	var m struct {
		X, Y, Z float64
	}
	if err := value.Decode(&m); err != nil {
		return err
	}
	*v = Vec3{m.X, m.Y, m.Z}
	return nil
}

// MarshalYAML writes the vector as a flow sequence.
func (v Vec3) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range []float64{v.X, v.Y, v.Z} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: fmt.Sprint(f)})
	}
	return n, nil
}
