package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

var (
	// ErrDegenerateAxes is returned when construction axes or normals are parallel or zero
	ErrDegenerateAxes = errors.New("axes are parallel or zero length")
	// ErrDegenerateSize is returned for a zero or negative extent, or a zero radius
	ErrDegenerateSize = errors.New("degenerate size")
)

// Box is a cube with an arbitrary orientation, made up of six patches
type Box struct {
	Center     core.Point3
	HalfExtent float64
	A, B, C    core.Vec3 // Orthonormal frame of the box
	Material   core.Material
	faces      [6]*Patch
}

// NewBox creates a box centered at center with the given half extent. The box frame is
// derived from axis0 and axis1 by Gram-Schmidt: A = axis0, B = axis1 made orthogonal to A,
// C = A × B.
func NewBox(center core.Point3, halfExtent float64, axis0, axis1 core.Vec3, material core.Material) (*Box, error) {
	if !(halfExtent > 0) {
		return nil, fmt.Errorf("new box at %v: half extent %g: %w", center, halfExtent, ErrDegenerateSize)
	}
	if axis0.Cross(axis1).LengthSquared() <= 0 {
		return nil, fmt.Errorf("new box at %v: %w", center, ErrDegenerateAxes)
	}

	a := axis0.Normalize()
	b := axis1.Subtract(a.Multiply(axis1.Dot(a))).Normalize()
	c := a.Cross(b)

	box := &Box{
		Center:     center,
		HalfExtent: halfExtent,
		A:          a,
		B:          b,
		C:          c,
		Material:   material,
	}
	box.generateFaces()

	return box, nil
}

// NewAxisAlignedBox creates a box aligned with the world axes
func NewAxisAlignedBox(center core.Point3, halfExtent float64, material core.Material) (*Box, error) {
	return NewBox(center, halfExtent, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), material)
}

// generateFaces creates the 6 patch faces, one pair per axis offset by ±HalfExtent.
// Each face normal points away from the center so FrontFace means the ray came from outside.
func (b *Box) generateFaces() {
	axes := [3]struct{ normal, orientation core.Vec3 }{
		{b.A, b.B},
		{b.B, b.C},
		{b.C, b.A},
	}

	for i, axis := range axes {
		offset := axis.normal.Multiply(b.HalfExtent)
		b.faces[2*i] = newPatchFrame(b.Center.Add(offset), b.HalfExtent, axis.normal, axis.orientation, b.Material)
		b.faces[2*i+1] = newPatchFrame(b.Center.Subtract(offset), b.HalfExtent, axis.normal.Negate(), axis.orientation, b.Material)
	}
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	// Bounding sphere pre-check: the box fits within a sphere of radius √3·HalfExtent,
	// so 2·HalfExtent never rejects a reachable hit
	if ray.Origin.Subtract(b.Center).Length() > ray.Direction.Length()*tMax+2*b.HalfExtent {
		return nil, false
	}

	var closestHit *core.HitRecord
	closestT := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestT); isHit {
			closestT = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
