package beanfall

import "math"

// LightKind distinguishes how a Light contributes to shading.
type LightKind uint8

const (
	LightAmbient     LightKind = iota // uniform, direction-less fill
	LightDirectional                  // parallel rays from Position toward the origin
	LightPoint                        // radiates from Position, attenuated by distance
)

// Light is one light source of a Lighting rig.
type Light struct {
	Kind LightKind
	// Position is the light's location. For directional lights it only
	// defines the direction (from Position toward the origin).
	Position Vec3
	// Intensity scales the light's contribution.
	Intensity float64
	// Color is the light tint. Zero value means white.
	Color Color
	// Distance is the falloff range of a point light. Zero means no falloff.
	Distance float64
	// Enabled determines whether this light contributes at all.
	Enabled bool
}

// Lighting is the set of lights a scene host shades beans with.
type Lighting struct {
	Lights []Light
}

// DefaultLighting returns the warm rig of the coffee landing page: a soft
// ambient fill, a cream key light from above, an amber rim light and a
// golden point light over the table.
func DefaultLighting() Lighting {
	return Lighting{Lights: []Light{
		{Kind: LightAmbient, Intensity: 0.4, Color: ColorWhite, Enabled: true},
		{Kind: LightDirectional, Position: Vec3{0, 30, 5}, Intensity: 1.5, Color: mustHex("#FFF8DC"), Enabled: true},
		{Kind: LightDirectional, Position: Vec3{10, 20, -5}, Intensity: 0.6, Color: mustHex("#D4A574"), Enabled: true},
		{Kind: LightPoint, Position: Vec3{0, 15, 0}, Intensity: 0.8, Color: mustHex("#DAA520"), Enabled: true},
	}}
}

// AddLight appends l to the rig.
func (lg *Lighting) AddLight(l Light) {
	lg.Lights = append(lg.Lights, l)
}

// Shade returns the lit color of a surface with material m, unit normal n and
// world position p. Diffuse is Lambertian; rough surfaces scatter a little
// less and metals absorb most diffuse light. Channels are clamped to 1.
func (lg Lighting) Shade(m Material, n, p Vec3) Color {
	var r, g, b float64
	diffuse := (1 - m.Metalness) * (1 - 0.25*m.Roughness*m.Roughness)

	for _, l := range lg.Lights {
		if !l.Enabled || l.Intensity <= 0 {
			continue
		}
		c := l.Color
		if c == (Color{}) {
			c = ColorWhite
		}
		var k float64
		switch l.Kind {
		case LightAmbient:
			k = l.Intensity
		case LightDirectional:
			dir := l.Position.Normalize()
			k = l.Intensity * diffuse * math.Max(0, n.Dot(dir))
		case LightPoint:
			toLight := l.Position.Sub(p)
			dist := toLight.Len()
			if dist == 0 {
				continue
			}
			k = l.Intensity * diffuse * math.Max(0, n.Dot(toLight.Scale(1/dist)))
			if l.Distance > 0 {
				k *= math.Max(0, 1-dist/l.Distance)
			}
		}
		r += k * c.R
		g += k * c.G
		b += k * c.B
	}

	return Color{
		R: math.Min(1, m.BaseColor.R*r),
		G: math.Min(1, m.BaseColor.G*g),
		B: math.Min(1, m.BaseColor.B*b),
		A: m.BaseColor.A,
	}
}
