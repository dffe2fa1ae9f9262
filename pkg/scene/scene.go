package scene

import (
	"fmt"

	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/geometry"
	"github.com/df07/scanline-pathtracer/pkg/integrator"
)

// Scene contains all the elements needed for rendering. It is read-only once built
// and is shared by every render worker.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	TopColor       core.Color   // Sky color straight up
	BottomColor    core.Color   // Sky color straight down
	Shapes         []core.Shape // Objects in the scene, in no particular order
	SamplingConfig core.SamplingConfig
}

// NewScene builds the camera from cameraConfig and wraps the shapes
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig core.SamplingConfig, shapes ...core.Shape) (*Scene, error) {
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene camera: %w", err)
	}

	return &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		TopColor:       core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0), // White horizon
		Shapes:         shapes,
		SamplingConfig: samplingConfig,
	}, nil
}

// Hit returns the nearest intersection across all shapes with t in [tMin, tMax].
// The search range shrinks to the closest hit found so far.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// NewIntegrator returns the path tracer lit by this scene's sky
func (s *Scene) NewIntegrator() *integrator.PathTracingIntegrator {
	return integrator.NewPathTracingIntegrator().WithBackground(s.TopColor, s.BottomColor)
}

// GetPrimitiveCount returns the number of primitives, counting each box as its six faces
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		switch shape.(type) {
		case *geometry.Box:
			count += 6
		default:
			count++
		}
	}
	return count
}

// NewGroundPatch creates a large horizontal patch centered at the given point with normal pointing up (0,1,0)
func NewGroundPatch(center core.Point3, size float64, material core.Material) (*geometry.Patch, error) {
	return geometry.NewPatch(center, size/2, core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), material)
}

// withImageSize fills in the image dimensions from width and the camera aspect ratio
func withImageSize(config core.SamplingConfig, width int, aspectRatio float64) core.SamplingConfig {
	config.Width = width
	config.Height = max(1, int(float64(width)/aspectRatio))
	return config
}
