package beanfall

import "math"

// Mat3 is a row-major 3x3 matrix.
//
//	| m[0] m[1] m[2] |
//	| m[3] m[4] m[5] |
//	| m[6] m[7] m[8] |
type Mat3 [9]float64

// identityMat3 is the identity rotation.
var identityMat3 = Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

// eulerXYZ builds the rotation matrix for Euler angles applied in XYZ order
// (Rx * Ry * Rz), the convention of glTF-era scene graphs.
func eulerXYZ(r Vec3) Mat3 {
	sx, cx := math.Sincos(r.X)
	sy, cy := math.Sincos(r.Y)
	sz, cz := math.Sincos(r.Z)

	return Mat3{
		cy * cz, -cy * sz, sy,
		cx*sz + sx*sy*cz, cx*cz - sx*sy*sz, -sx * cy,
		sx*sz - cx*sy*cz, sx*cz + cx*sy*sz, cx * cy,
	}
}

// Apply returns m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = m[row*3]*o[col] + m[row*3+1]*o[3+col] + m[row*3+2]*o[6+col]
		}
	}
	return r
}

// Transform places a model in the world.
//
// Composition order:
//
//	Scale -> Rotate (Euler XYZ) -> Translate(Position)
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    float64
}

// matrix returns the rotation-scale part of t.
func (t Transform) matrix() Mat3 {
	m := eulerXYZ(t.Rotation)
	s := t.Scale
	if s == 0 {
		s = 1
	}
	for i := range m {
		m[i] *= s
	}
	return m
}

// rotation returns the pure rotation part of t, for transforming normals.
func (t Transform) rotation() Mat3 {
	return eulerXYZ(t.Rotation)
}

// Apply maps a model-space point into world space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.matrix().Apply(p).Add(t.Position)
}
