package beanfall

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Procedural bean dimensions in the file's Z-up space, before the 2x model
// scale: semi-axes along length, width and height.
const (
	beanSemiLength = 0.5
	beanSemiWidth  = 0.35
	beanSemiHeight = 0.24
	beanFlatten    = 0.55 // squashes the underside into the flat, creased face
	beanLatSteps   = 12
	beanLonSteps   = 8 // per quarter
)

// WriteBeanModel writes a procedural coffee bean as a binary glTF file at
// path. The bean is an ellipsoid with a flattened underside, split into one
// quarter per part name. With no names, all of BeanPartNames are written.
func WriteBeanModel(path string, parts ...string) error {
	if len(parts) == 0 {
		parts = BeanPartNames
	}

	doc := gltf.NewDocument()
	if len(doc.Buffers) == 0 {
		doc.Buffers = append(doc.Buffers, new(gltf.Buffer))
	}
	if len(doc.Scenes) == 0 {
		doc.Scenes = append(doc.Scenes, &gltf.Scene{Name: "Root Scene"})
		doc.Scene = gltf.Index(0)
	}

	metal, rough := 0.1, 0.8
	doc.Materials = []*gltf.Material{{
		Name: BeanMaterialName,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{BeanColor.R, BeanColor.G, BeanColor.B, 1},
			MetallicFactor:  &metal,
			RoughnessFactor: &rough,
		},
	}}

	for i, name := range parts {
		positions, normals, indices := beanQuarter(i % 4)
		pos := modeler.WritePosition(doc, positions)
		nrm := modeler.WriteNormal(doc, normals)
		ind := modeler.WriteIndices(doc, indices)

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: name,
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(ind),
				Attributes: map[string]int{gltf.POSITION: pos, gltf.NORMAL: nrm},
				Material:   gltf.Index(0),
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write bean model: %w", err)
		}
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("write bean model %s: %w", path, err)
	}
	return nil
}

// beanQuarter tessellates one 90° longitude slice of the bean.
func beanQuarter(q int) (positions, normals [][3]float32, indices []uint16) {
	lon0 := float64(q) * math.Pi / 2
	for i := 0; i <= beanLatSteps; i++ {
		lat := math.Pi * float64(i) / beanLatSteps
		sLat, cLat := math.Sincos(lat)
		for j := 0; j <= beanLonSteps; j++ {
			lon := lon0 + (math.Pi/2)*float64(j)/beanLonSteps
			sLon, cLon := math.Sincos(lon)

			x := beanSemiLength * sLat * cLon
			y := beanSemiWidth * sLat * sLon
			z := beanSemiHeight * cLat
			c := beanSemiHeight
			if z < 0 {
				z *= beanFlatten
				c *= beanFlatten
			}
			n := Vec3{x / (beanSemiLength * beanSemiLength), y / (beanSemiWidth * beanSemiWidth), z / (c * c)}.Normalize()

			positions = append(positions, [3]float32{float32(x), float32(y), float32(z)})
			normals = append(normals, [3]float32{float32(n.X), float32(n.Y), float32(n.Z)})
		}
	}

	row := beanLonSteps + 1
	for i := 0; i < beanLatSteps; i++ {
		for j := 0; j < beanLonSteps; j++ {
			a := uint16(i*row + j)
			b := uint16((i+1)*row + j)
			indices = append(indices, a, b, b+1, a, b+1, a+1)
		}
	}
	return positions, normals, indices
}
