package beanfall

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"golang.org/x/sync/singleflight"
)

// ErrAssetUnavailable is wrapped by every asset loading error.
var ErrAssetUnavailable = errors.New("beanfall: asset unavailable")

// Names inside the coffee bean model file.
const (
	DefaultAssetPath = "coffee_bean/scene.glb"
	BeanMaterialName = "Coffee_DM_01_01"
)

// BeanPartNames are the mesh nodes that make up one bean.
var BeanPartNames = []string{"Object_2", "Object_3", "Object_4", "Object_5"}

// BeanColor is the matte medium brown every bean is drawn with.
var BeanColor = mustHex("#6B4423")

// Material describes how a bean surface is shaded.
type Material struct {
	Name      string
	BaseColor Color
	Roughness float64
	Metalness float64
	// Textured and NormalMapped record whether the source material carried
	// a base color texture or a normal map.
	Textured     bool
	NormalMapped bool
}

// beanMaterial builds the bean finish, falling back from whatever the
// source file embedded.
func beanMaterial(src *gltf.Material) Material {
	m := Material{
		Name:      BeanMaterialName,
		BaseColor: BeanColor,
		Roughness: 0.8,
		Metalness: 0.1,
	}
	if src == nil {
		return m
	}
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		m.Textured = pbr.BaseColorTexture != nil
	}
	m.NormalMapped = src.NormalTexture != nil
	return m
}

// MeshPart is one named piece of the bean geometry, in model space with the
// model transform already applied.
type MeshPart struct {
	Name      string
	Positions []Vec3
	Normals   []Vec3
	Indices   []uint32
}

// Triangles returns the number of triangles in the part.
func (p *MeshPart) Triangles() int {
	return len(p.Indices) / 3
}

// BeanModel is the shared, read-only geometry and material of one bean.
// It is never modified after loading.
type BeanModel struct {
	Parts    []MeshPart
	Material Material
}

// Part returns the named part, or false when the file did not contain it.
func (m *BeanModel) Part(name string) (*MeshPart, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.Parts {
		if m.Parts[i].Name == name {
			return &m.Parts[i], true
		}
	}
	return nil, false
}

// Triangles returns the total triangle count of all parts.
func (m *BeanModel) Triangles() int {
	if m == nil {
		return 0
	}
	n := 0
	for i := range m.Parts {
		n += m.Parts[i].Triangles()
	}
	return n
}

// modelTransform is applied to the file's vertices at load time: the source
// is authored Z-up at half size.
var modelTransform = Transform{Rotation: Vec3{X: -math.Pi / 2}, Scale: 2}

// AssetCache loads bean models at most once per path. Concurrent requests
// for the same path share one load; failures are cached as well.
type AssetCache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*assetEntry
	loads   atomic.Int64

	// open reads a glTF document; replaced in tests.
	open func(path string) (*gltf.Document, error)
}

type assetEntry struct {
	model *BeanModel
	err   error
}

// NewAssetCache returns an empty cache that reads files from disk.
func NewAssetCache() *AssetCache {
	return &AssetCache{
		entries: make(map[string]*assetEntry),
		open:    gltf.Open,
	}
}

var defaultAssets = NewAssetCache()

// DefaultAssets returns the process-wide asset cache.
func DefaultAssets() *AssetCache {
	return defaultAssets
}

// Loads returns how many times the cache actually read a file.
func (c *AssetCache) Loads() int {
	return int(c.loads.Load())
}

func (c *AssetCache) lookup(path string) (*assetEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	return e, ok
}

// Load returns the model at path, reading it on first use. Every later call
// returns the same *BeanModel without touching the file again.
func (c *AssetCache) Load(path string) (*BeanModel, error) {
	if e, ok := c.lookup(path); ok {
		return e.model, e.err
	}
	v, _, _ := c.group.Do(path, func() (any, error) {
		if e, ok := c.lookup(path); ok {
			return e, nil
		}
		c.loads.Add(1)
		model, err := c.read(path)
		if err != nil {
			log.Printf("beanfall: load %s: %v (beans will not be drawn)", path, err)
		}
		e := &assetEntry{model: model, err: err}
		c.mu.Lock()
		c.entries[path] = e
		c.mu.Unlock()
		return e, nil
	})
	e := v.(*assetEntry)
	return e.model, e.err
}

// Request starts loading path in the background and returns immediately.
// Poll the handle from the render loop; it never blocks.
func (c *AssetCache) Request(path string) *AssetHandle {
	h := &AssetHandle{path: path}
	if e, ok := c.lookup(path); ok {
		h.finish(e.model, e.err)
		return h
	}
	go func() {
		h.finish(c.Load(path))
	}()
	return h
}

// Forget drops the cached entry for path so the next Load reads it again.
func (c *AssetCache) Forget(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

func (c *AssetCache) read(path string) (*BeanModel, error) {
	doc, err := c.open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrAssetUnavailable, path, err)
	}
	model, err := decodeBeanModel(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetUnavailable, path, err)
	}
	return model, nil
}

// decodeBeanModel extracts the named bean parts and the bean material from
// doc. Parts absent from the file are skipped.
func decodeBeanModel(doc *gltf.Document) (*BeanModel, error) {
	model := &BeanModel{Material: beanMaterial(findMaterial(doc, BeanMaterialName))}

	for _, name := range BeanPartNames {
		node := findNode(doc, name)
		if node == nil || node.Mesh == nil || *node.Mesh >= len(doc.Meshes) {
			continue
		}
		part, err := decodeMesh(doc, doc.Meshes[*node.Mesh])
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", name, err)
		}
		part.Name = name
		model.Parts = append(model.Parts, part)
	}
	if len(model.Parts) == 0 {
		return nil, errors.New("no bean parts found")
	}
	return model, nil
}

func findNode(doc *gltf.Document, name string) *gltf.Node {
	for _, n := range doc.Nodes {
		if n != nil && n.Name == name {
			return n
		}
	}
	return nil
}

func findMaterial(doc *gltf.Document, name string) *gltf.Material {
	for _, m := range doc.Materials {
		if m != nil && m.Name == name {
			return m
		}
	}
	return nil
}

// decodeMesh concatenates the triangle primitives of mesh into one part.
func decodeMesh(doc *gltf.Document, mesh *gltf.Mesh) (MeshPart, error) {
	var part MeshPart
	rot := modelTransform.rotation()

	for _, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok || posIdx >= len(doc.Accessors) {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return part, fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok && nIdx < len(doc.Accessors) {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
			if err != nil {
				return part, fmt.Errorf("read normals: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil && *prim.Indices < len(doc.Accessors) {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return part, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := uint32(len(part.Positions))
		for i, p := range positions {
			part.Positions = append(part.Positions, modelTransform.Apply(vec3f(p)))
			if len(normals) == len(positions) {
				part.Normals = append(part.Normals, rot.Apply(vec3f(normals[i])).Normalize())
			}
		}
		for _, idx := range indices {
			part.Indices = append(part.Indices, base+idx)
		}
	}

	if len(part.Normals) != len(part.Positions) {
		part.Normals = vertexNormals(part.Positions, part.Indices)
	}
	return part, nil
}

func vec3f(p [3]float32) Vec3 {
	return Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// vertexNormals averages face normals around each vertex.
func vertexNormals(pos []Vec3, idx []uint32) []Vec3 {
	normals := make([]Vec3, len(pos))
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		if int(a) >= len(pos) || int(b) >= len(pos) || int(c) >= len(pos) {
			continue
		}
		n := pos[b].Sub(pos[a]).Cross(pos[c].Sub(pos[a]))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// AssetHandle is the result of a background load. It is safe to poll from
// the render loop while the load runs.
type AssetHandle struct {
	path  string
	done  atomic.Bool
	model *BeanModel
	err   error
}

func (h *AssetHandle) finish(model *BeanModel, err error) {
	h.model, h.err = model, err
	h.done.Store(true)
}

// Path returns the requested asset path.
func (h *AssetHandle) Path() string {
	return h.path
}

// Ready returns the model once loading has succeeded. It returns false while
// the load is running and after it failed.
func (h *AssetHandle) Ready() (*BeanModel, bool) {
	if h == nil || !h.done.Load() {
		return nil, false
	}
	return h.model, h.err == nil && h.model != nil
}

// Err returns the load error, or nil while loading or on success.
func (h *AssetHandle) Err() error {
	if h == nil || !h.done.Load() {
		return nil
	}
	return h.err
}
