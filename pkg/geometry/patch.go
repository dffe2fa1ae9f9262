package geometry

import (
	"fmt"
	"math"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

// parallelEpsilon is the |dir·normal| below which a ray is treated as parallel to a patch
const parallelEpsilon = 1e-16

// Patch is a square region of a plane, centered on Center and extending HalfExtent
// along both in-plane axes
type Patch struct {
	Center     core.Point3
	HalfExtent float64
	Normal     core.Vec3 // Unit plane normal, also the outward normal
	U          core.Vec3 // First in-plane axis (unit)
	V          core.Vec3 // Second in-plane axis, U × Normal
	Material   core.Material
}

// NewPatch creates a patch from its center, half extent, plane normal and an in-plane
// orientation axis. The orientation is projected into the plane, so it only needs to be
// non-parallel to the normal.
func NewPatch(center core.Point3, halfExtent float64, normal, orientation core.Vec3, material core.Material) (*Patch, error) {
	if !(halfExtent > 0) {
		return nil, fmt.Errorf("new patch at %v: half extent %g: %w", center, halfExtent, ErrDegenerateSize)
	}
	if normal.NearZero() {
		return nil, fmt.Errorf("new patch at %v: zero normal: %w", center, ErrDegenerateAxes)
	}

	n := normal.Normalize()
	inPlane := orientation.Subtract(n.Multiply(orientation.Dot(n)))
	if inPlane.NearZero() {
		return nil, fmt.Errorf("new patch at %v: orientation %v is parallel to normal: %w", center, orientation, ErrDegenerateAxes)
	}

	return newPatchFrame(center, halfExtent, n, inPlane.Normalize(), material), nil
}

// newPatchFrame builds a patch from an already orthonormal normal and in-plane axis
func newPatchFrame(center core.Point3, halfExtent float64, n, u core.Vec3, material core.Material) *Patch {
	return &Patch{
		Center:     center,
		HalfExtent: halfExtent,
		Normal:     n,
		U:          u,
		V:          u.Cross(n),
		Material:   material,
	}
}

// Hit tests if a ray intersects with the patch
func (p *Patch) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < parallelEpsilon {
		return nil, false
	}

	t := -ray.Origin.Subtract(p.Center).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	// Bound the in-plane offset along both axes
	offset := ray.At(t).Subtract(p.Center)
	if math.Abs(offset.Dot(p.U)) > p.HalfExtent || math.Abs(offset.Dot(p.V)) > p.HalfExtent {
		return nil, false
	}

	return core.NewHitRecord(ray, t, p.Normal, p.Material), true
}
