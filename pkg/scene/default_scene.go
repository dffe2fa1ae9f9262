package scene

import (
	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/geometry"
	"github.com/df07/scanline-pathtracer/pkg/material"
)

// NewDefaultScene creates the classic two-sphere scene: a diffuse sphere resting on a huge ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	samplingConfig := withImageSize(core.DefaultSamplingConfig(), 400, cameraConfig.AspectRatio)

	lambertianRed := material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))

	return NewScene(cameraConfig, samplingConfig,
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround),
	)
}

// NewMaterialsScene shows each material side by side, including a hollow glass bubble
func NewMaterialsScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	samplingConfig := withImageSize(core.DefaultSamplingConfig(), 400, cameraConfig.AspectRatio)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	return NewScene(cameraConfig, samplingConfig,
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		// Hollow glass: outer shell plus an inward-facing inner shell
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)
}
