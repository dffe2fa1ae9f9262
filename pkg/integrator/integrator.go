package integrator

import (
	"math/rand"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray from world, allowing at most depth bounces
	RayColor(ray core.Ray, world core.Shape, random *rand.Rand, depth int) core.Color
}
