package beanfall

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices keeps every DrawTriangles call within uint16 indices.
const maxBatchVertices = 65535 - 2

// meshTri is one projected, shaded triangle waiting to be drawn.
type meshTri struct {
	v     [3]ebiten.Vertex
	depth float64
}

// meshBuilder collects triangles for one frame, sorts them back to front and
// submits them in as few DrawTriangles calls as the index limit allows.
type meshBuilder struct {
	tris    []meshTri
	verts   []ebiten.Vertex
	indices []uint16
	culled  int
}

// reset empties the builder, keeping its buffers (high-water mark, never
// shrinks).
func (b *meshBuilder) reset() {
	b.tris = b.tris[:0]
	b.culled = 0
}

// triangles returns how many triangles are queued.
func (b *meshBuilder) triangles() int {
	return len(b.tris)
}

// addModel transforms, shades and projects every part of model placed at t.
// Parts named in BeanPartNames but missing from the model are skipped.
func (b *meshBuilder) addModel(model *BeanModel, t Transform, cam *Camera, lights Lighting, w, h float64) {
	if model == nil {
		return
	}
	m := t.matrix()
	rot := t.rotation()

	for _, name := range BeanPartNames {
		part, ok := model.Part(name)
		if !ok {
			continue
		}
		for i := 0; i+2 < len(part.Indices); i += 3 {
			var world [3]Vec3
			var normal [3]Vec3
			valid := true
			for k := 0; k < 3; k++ {
				idx := int(part.Indices[i+k])
				if idx >= len(part.Positions) {
					valid = false
					break
				}
				world[k] = m.Apply(part.Positions[idx]).Add(t.Position)
				if idx < len(part.Normals) {
					normal[k] = rot.Apply(part.Normals[idx])
				}
			}
			if !valid {
				continue
			}
			face := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
			centroid := world[0].Add(world[1]).Add(world[2]).Scale(1.0 / 3)
			if face.Dot(cam.ViewDirection(centroid)) >= 0 {
				b.culled++
				continue
			}
			face = face.Normalize()
			for k := range normal {
				if normal[k] == (Vec3{}) {
					normal[k] = face
				}
			}
			b.addTriangle(world, normal, model.Material, cam, lights, w, h)
		}
	}
}

// addTriangle shades each corner (Gouraud) and projects it. Triangles that
// cross the near plane are dropped.
func (b *meshBuilder) addTriangle(world, normal [3]Vec3, mat Material, cam *Camera, lights Lighting, w, h float64) {
	var tri meshTri
	for k := 0; k < 3; k++ {
		x, y, depth, ok := cam.Project(world[k], w, h)
		if !ok {
			b.culled++
			return
		}
		tri.v[k] = shadedVertex(x, y, lights.Shade(mat, normal[k], world[k]))
		tri.depth += depth
	}
	tri.depth /= 3
	b.tris = append(b.tris, tri)
}

// addQuad queues a flat, unlit quad (the table surface). Corners are given
// in winding order.
func (b *meshBuilder) addQuad(corners [4]Vec3, col Color, cam *Camera, w, h float64) {
	var p [4]ebiten.Vertex
	depth := 0.0
	for k, c := range corners {
		x, y, d, ok := cam.Project(c, w, h)
		if !ok {
			b.culled++
			return
		}
		p[k] = shadedVertex(x, y, col)
		depth += d
	}
	// Push the table behind anything resting on it.
	depth = depth/4 + 1e6
	b.tris = append(b.tris,
		meshTri{v: [3]ebiten.Vertex{p[0], p[1], p[2]}, depth: depth},
		meshTri{v: [3]ebiten.Vertex{p[0], p[2], p[3]}, depth: depth},
	)
}

// shadedVertex builds a vertex sampling the white pixel with a
// premultiplied color.
func shadedVertex(x, y float64, c Color) ebiten.Vertex {
	a := float32(c.A)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	}
}

// flush draws the queued triangles back to front onto target and returns
// the number of draw calls issued.
func (b *meshBuilder) flush(target *ebiten.Image) int {
	if len(b.tris) == 0 {
		return 0
	}
	slices.SortStableFunc(b.tris, func(x, y meshTri) int {
		return cmp.Compare(y.depth, x.depth)
	})

	// Target may be a sub-image; vertices are relative to its bounds.
	origin := target.Bounds().Min
	ox, oy := float32(origin.X), float32(origin.Y)

	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	}
	src := ensureWhitePixel()

	calls := 0
	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	for i := range b.tris {
		if len(b.verts)+3 > maxBatchVertices {
			target.DrawTriangles(b.verts, b.indices, src, op)
			calls++
			b.verts = b.verts[:0]
			b.indices = b.indices[:0]
		}
		base := uint16(len(b.verts))
		for _, v := range b.tris[i].v {
			v.DstX += ox
			v.DstY += oy
			b.verts = append(b.verts, v)
		}
		b.indices = append(b.indices, base, base+1, base+2)
	}
	if len(b.verts) > 0 {
		target.DrawTriangles(b.verts, b.indices, src, op)
		calls++
	}
	return calls
}

// screenBounds returns the AABB of the queued triangles in surface space.
func (b *meshBuilder) screenBounds() Rect {
	if len(b.tris) == 0 {
		return Rect{}
	}
	first := b.tris[0].v[0]
	minX, minY := float64(first.DstX), float64(first.DstY)
	maxX, maxY := minX, minY
	for i := range b.tris {
		for _, v := range b.tris[i].v {
			x, y := float64(v.DstX), float64(v.DstY)
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- White pixel singleton (no sync.Once; drawing is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized white sub-image whose
// center pixel every triangle samples. The 3x3 border keeps filtering from
// bleeding transparent texels in.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
		whitePixelImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixelImage
}
