package core

import (
	"errors"
	"math/rand"
)

// maxRejectionAttempts bounds the rejection samplers below. A well-behaved source
// accepts within a handful of draws.
const maxRejectionAttempts = 1000

// ErrRejectionLimit is the panic value raised when a rejection sampler exceeds maxRejectionAttempts
var ErrRejectionLimit = errors.New("core: rejection sampling exceeded attempt limit")

// RandomFloat returns a uniform value in [0, 1)
func RandomFloat(random *rand.Rand) float64 {
	return random.Float64()
}

// RandomRange returns a uniform value in [lo, hi)
func RandomRange(random *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*RandomFloat(random)
}

// RandomVec3 returns a vector with each component uniform in [lo, hi)
func RandomVec3(random *rand.Rand, lo, hi float64) Vec3 {
	return Vec3{
		X: RandomRange(random, lo, hi),
		Y: RandomRange(random, lo, hi),
		Z: RandomRange(random, lo, hi),
	}
}

// RandomInUnitSphere generates a random point strictly inside the unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for i := 0; i < maxRejectionAttempts; i++ {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3(random, -1, 1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
	panic(ErrRejectionLimit)
}

// RandomUnitVector generates a random direction on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	for i := 0; i < maxRejectionAttempts; i++ {
		p := RandomInUnitSphere(random)
		// Points at the origin have no direction
		if p.LengthSquared() > 1e-160 {
			return p.Normalize()
		}
	}
	panic(ErrRejectionLimit)
}

// RandomInUnitDisk generates a random point in the unit disk on the XY plane (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for i := 0; i < maxRejectionAttempts; i++ {
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(RandomRange(random, -1, 1), RandomRange(random, -1, 1), 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
	panic(ErrRejectionLimit)
}
