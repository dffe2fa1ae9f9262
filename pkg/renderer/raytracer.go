package renderer

import (
	"math/rand"

	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/geometry"
	"github.com/df07/scanline-pathtracer/pkg/integrator"
)

// Raytracer samples pixels of one scanline at a time. It holds no mutable state after
// construction and is shared by all workers.
type Raytracer struct {
	camera     *geometry.Camera
	world      core.Shape
	integrator integrator.Integrator
	config     core.SamplingConfig
}

// NewRaytracer creates a raytracer using the recursive path tracing integrator
func NewRaytracer(camera *geometry.Camera, world core.Shape, config core.SamplingConfig) *Raytracer {
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
	}
}

// SetIntegrator replaces the light transport integrator
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// RenderScanline traces SamplesPerPixel jittered camera rays for every pixel of scanline j.
// Scanline 0 is the bottom of the image. All randomness comes from random.
func (rt *Raytracer) RenderScanline(j int, random *rand.Rand) []PixelStats {
	width := rt.config.Width
	height := rt.config.Height
	pixels := make([]PixelStats, width)

	for i := 0; i < width; i++ {
		ps := &pixels[i]
		for s := 0; s < rt.config.SamplesPerPixel; s++ {
			u := (float64(i) + core.RandomFloat(random)) / float64(width)
			v := (float64(j) + core.RandomFloat(random)) / float64(height)
			ray := rt.camera.GetRay(u, v, random)
			ps.AddSample(rt.integrator.RayColor(ray, rt.world, random, rt.config.MaxDepth))
		}
	}

	return pixels
}
