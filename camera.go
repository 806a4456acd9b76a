package beanfall

import "math"

// Camera is a perspective camera looking from Position toward Target.
type Camera struct {
	// Position is the eye point in world space.
	Position Vec3 `yaml:"position"`
	// Target is the point the camera looks at.
	Target Vec3 `yaml:"target"`
	// Up is the world up direction. Zero means +Y.
	Up Vec3 `yaml:"up"`
	// FOV is the vertical field of view in degrees.
	FOV float64 `yaml:"fov"`
	// Near is the near clipping distance. Points closer than this are not
	// projected.
	Near float64 `yaml:"near"`

	basis   [3]Vec3 // right, up, forward
	tanHalf float64
	dirty   bool
	key     viewKey
}

// viewKey is the set of public fields the cached basis was computed from.
type viewKey struct {
	position, target, up Vec3
	fov                  float64
}

// DefaultCamera frames the table from above and in front, the framing of
// the coffee landing page.
func DefaultCamera() Camera {
	return Camera{
		Position: Vec3{0, 20, 8},
		Target:   Vec3{0, 0, 0},
		Up:       Vec3{0, 1, 0},
		FOV:      50,
		Near:     0.1,
	}
}

// applyDefaults fills zero fields.
func (c *Camera) applyDefaults() {
	d := DefaultCamera()
	if c.Position == (Vec3{}) {
		c.Position = d.Position
	}
	if c.Up == (Vec3{}) {
		c.Up = d.Up
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = d.FOV
	}
	if c.Near <= 0 {
		c.Near = d.Near
	}
}

// computeBasis rebuilds the view basis when a public field changed since the
// last projection.
func (c *Camera) computeBasis() {
	key := viewKey{c.Position, c.Target, c.Up, c.FOV}
	if !c.dirty && c.tanHalf != 0 && key == c.key {
		return
	}
	up := c.Up
	if up == (Vec3{}) {
		up = Vec3{0, 1, 0}
	}
	fwd := c.Target.Sub(c.Position).Normalize()
	right := fwd.Cross(up).Normalize()
	if right == (Vec3{}) {
		// Looking straight along Up: pick any perpendicular.
		right = fwd.Cross(Vec3{0, 0, -1}).Normalize()
	}
	camUp := right.Cross(fwd)
	c.basis = [3]Vec3{right, camUp, fwd}
	c.tanHalf = math.Tan(c.FOV * math.Pi / 360)
	c.key = key
	c.dirty = false
}

// Invalidate forces the view basis to be recomputed on the next projection.
func (c *Camera) Invalidate() {
	c.dirty = true
}

// ToView maps a world point into camera space: X right, Y up, Z forward
// (depth).
func (c *Camera) ToView(p Vec3) Vec3 {
	c.computeBasis()
	d := p.Sub(c.Position)
	return Vec3{d.Dot(c.basis[0]), d.Dot(c.basis[1]), d.Dot(c.basis[2])}
}

// ViewDirection returns the unit vector from the eye to p.
func (c *Camera) ViewDirection(p Vec3) Vec3 {
	return p.Sub(c.Position).Normalize()
}

// Project maps a world point onto a w x h surface. It returns screen
// coordinates with the origin at the top-left, the point's depth, and false
// when the point is behind the near plane.
func (c *Camera) Project(p Vec3, w, h float64) (x, y, depth float64, ok bool) {
	v := c.ToView(p)
	if v.Z < c.near() {
		return 0, 0, v.Z, false
	}
	aspect := 1.0
	if h > 0 {
		aspect = w / h
	}
	ndcX := v.X / (v.Z * c.tanHalf * aspect)
	ndcY := v.Y / (v.Z * c.tanHalf)
	return (ndcX + 1) / 2 * w, (1 - ndcY) / 2 * h, v.Z, true
}

func (c *Camera) near() float64 {
	if c.Near <= 0 {
		return 0.1
	}
	return c.Near
}
