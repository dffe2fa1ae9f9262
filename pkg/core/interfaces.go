package core

import "math/rand"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with t in [tMin, tMax], if any
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Material interface for surfaces that scatter rays.
// Implementations are stateless and safe to share across goroutines.
type Material interface {
	// Scatter returns the attenuation and outgoing ray for an incoming ray at a hit.
	// A false result means the ray was absorbed.
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray   // The scattered ray
	Attenuation Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Point3   // Point of intersection
	Normal    Vec3     // Unit surface normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// NewHitRecord builds a hit record from the incoming ray and the outward geometric normal
func NewHitRecord(ray Ray, t float64, outwardNormal Vec3, material Material) *HitRecord {
	h := &HitRecord{
		Point:    ray.At(t),
		T:        t,
		Material: material,
	}
	h.SetFaceNormal(ray, outwardNormal)
	return h
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
