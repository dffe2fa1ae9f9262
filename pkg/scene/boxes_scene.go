package scene

import (
	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/geometry"
	"github.com/df07/scanline-pathtracer/pkg/material"
)

// NewBoxesScene lines up rotated cubes of each material on a ground patch
func NewBoxesScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 2.5, 6),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          35.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	samplingConfig := withImageSize(core.DefaultSamplingConfig(), 400, cameraConfig.AspectRatio)

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	steel := material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0.1)
	glass := material.NewDielectric(1.5)

	boxes := []struct {
		center core.Point3
		axis0  core.Vec3
		axis1  core.Vec3
		mat    core.Material
	}{
		{core.NewVec3(-1.6, 0.5, 0), core.NewVec3(1, 0, 1), core.NewVec3(0, 1, 0), red},
		{core.NewVec3(0, 0.5, -0.5), core.NewVec3(1, 0, 0.3), core.NewVec3(0, 1, 0), steel},
		{core.NewVec3(1.6, 0.6, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 0, 1), glass},
	}

	groundPatch, err := NewGroundPatch(core.NewVec3(0, 0, 0), 40, ground)
	if err != nil {
		return nil, err
	}

	shapes := []core.Shape{groundPatch}
	for _, b := range boxes {
		box, err := geometry.NewBox(b.center, 0.5, b.axis0, b.axis1, b.mat)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, box)
	}

	return NewScene(cameraConfig, samplingConfig, shapes...)
}
