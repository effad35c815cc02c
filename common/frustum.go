package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is ax + by + cz + d = 0 with (a, b, c) the normal and d the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// Frustum holds the six planes of a view frustum. The positive half-space of every
// plane is inside.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustum extracts the frustum planes of a combined projection * view matrix
// with the Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: projection * view
//
// Returns:
//   - Frustum: the frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 { return viewProj.Row(i) }
	combos := [6]mgl32.Vec4{
		FrustumLeft:   row(3).Add(row(0)),
		FrustumRight:  row(3).Sub(row(0)),
		FrustumBottom: row(3).Add(row(1)),
		FrustumTop:    row(3).Sub(row(1)),
		FrustumNear:   row(3).Add(row(2)),
		FrustumFar:    row(3).Sub(row(2)),
	}

	var f Frustum
	for i, c := range combos {
		p := Plane{Normal: c.Vec3(), Distance: c[3]}
		if l := p.Normal.Len(); l > 0 {
			p.Normal = p.Normal.Mul(1 / l)
			p.Distance /= l
		}
		f.Planes[i] = p
	}
	return f
}

// ContainsSphere reports whether a sphere is at least partly inside the frustum.
//
// Parameters:
//   - center: sphere centre in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere is entirely behind one plane
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
