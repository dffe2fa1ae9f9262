package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

// ShadowAcneEpsilon is the minimum hit distance, keeping scattered rays from re-hitting their origin surface
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements recursive unidirectional path tracing against a sky gradient
type PathTracingIntegrator struct {
	topColor    core.Color // Sky color straight up
	bottomColor core.Color // Sky color straight down
}

// NewPathTracingIntegrator creates a path tracer with the default white-to-blue sky
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{
		topColor:    core.NewVec3(0.5, 0.7, 1.0),
		bottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// WithBackground returns a copy of the integrator using a different sky gradient
func (pt *PathTracingIntegrator) WithBackground(topColor, bottomColor core.Color) *PathTracingIntegrator {
	return &PathTracingIntegrator{topColor: topColor, bottomColor: bottomColor}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Shape, random *rand.Rand, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.BackgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, random, depth-1))
}

// BackgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return pt.bottomColor.Lerp(pt.topColor, t)
}
