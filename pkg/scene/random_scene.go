package scene

import (
	"math/rand"

	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/geometry"
	"github.com/df07/scanline-pathtracer/pkg/material"
)

// RandomSceneSeed is the layout seed used when the random scene is selected by name
const RandomSceneSeed = 42

// NewRandomScene scatters small spheres, patches and boxes across a ground sphere,
// with one large sphere of each material in the middle. The layout depends only on seed.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	samplingConfig := withImageSize(core.DefaultSamplingConfig(), 600, cameraConfig.AspectRatio)

	random := rand.New(rand.NewSource(seed))

	shapes := []core.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	keepOut := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(keepOut).Length() <= 0.9 {
				continue
			}

			mat := randomMaterial(random)
			switch shapeRoll := random.Float64(); {
			case shapeRoll < 0.7:
				shapes = append(shapes, geometry.NewSphere(center, 0.2, mat))
			case shapeRoll < 0.85:
				// Upright tile facing a random horizontal direction
				facing := core.NewVec3(core.RandomRange(random, -1, 1), 0, core.RandomRange(random, -1, 1))
				if facing.NearZero() {
					facing = core.NewVec3(1, 0, 0)
				}
				patch, err := geometry.NewPatch(center, 0.2, facing, core.NewVec3(0, 1, 0), mat)
				if err != nil {
					return nil, err
				}
				shapes = append(shapes, patch)
			default:
				spin := core.NewVec3(core.RandomRange(random, -1, 1), 0, core.RandomRange(random, -1, 1))
				if spin.NearZero() {
					spin = core.NewVec3(1, 0, 0)
				}
				box, err := geometry.NewBox(center, 0.15, spin, core.NewVec3(0, 1, 0), mat)
				if err != nil {
					return nil, err
				}
				shapes = append(shapes, box)
			}
		}
	}

	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return NewScene(cameraConfig, samplingConfig, shapes...)
}

// randomMaterial picks mostly diffuse, some metal and a little glass
func randomMaterial(random *rand.Rand) core.Material {
	switch roll := random.Float64(); {
	case roll < 0.8:
		albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
		return material.NewLambertian(albedo)
	case roll < 0.95:
		albedo := core.RandomVec3(random, 0.5, 1)
		return material.NewMetal(albedo, core.RandomRange(random, 0, 0.5))
	default:
		return material.NewDielectric(1.5)
	}
}
