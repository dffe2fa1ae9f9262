package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/geometry"
	"github.com/df07/scanline-pathtracer/pkg/material"
)

var (
	// ErrUnknownMaterial is returned when a shape references a material the file does not define
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrAspectMismatch is returned when the image size disagrees with the camera aspect ratio
	ErrAspectMismatch = errors.New("image size does not match camera aspect ratio")
)

// vec3JSON is a vector written as a three element array
type vec3JSON [3]float64

func (v vec3JSON) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// colorJSON accepts either an [r, g, b] array in [0,1] or an SVG color name such as "crimson"
type colorJSON core.Color

func (c *colorJSON) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = colorJSON(core.NewVec3(float64(rgba.R)/255, float64(rgba.G)/255, float64(rgba.B)/255))
		return nil
	}

	var rgb vec3JSON
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be [r, g, b] or a color name: %w", err)
	}
	*c = colorJSON(rgb.toVec3())
	return nil
}

type cameraJSON struct {
	Center        *vec3JSON `json:"center"`
	LookAt        *vec3JSON `json:"look_at"`
	Up            *vec3JSON `json:"up"`
	VFov          float64   `json:"vfov"`
	AspectRatio   float64   `json:"aspect_ratio"`
	Aperture      float64   `json:"aperture"`
	FocusDistance float64   `json:"focus_distance"`
}

type samplingJSON struct {
	Width           int `json:"width"`
	Height          int `json:"height"`
	SamplesPerPixel int `json:"samples_per_pixel"`
	MaxDepth        int `json:"max_depth"`
}

type skyJSON struct {
	Top    *colorJSON `json:"top"`
	Bottom *colorJSON `json:"bottom"`
}

type materialJSON struct {
	Type            string    `json:"type"` // lambertian, metal or dielectric
	Albedo          colorJSON `json:"albedo"`
	Fuzz            float64   `json:"fuzz"`
	RefractiveIndex float64   `json:"refractive_index"`
}

type sphereJSON struct {
	Center   vec3JSON `json:"center"`
	Radius   float64  `json:"radius"`
	Material string   `json:"material"`
}

type patchJSON struct {
	Center      vec3JSON `json:"center"`
	HalfExtent  float64  `json:"half_extent"`
	Normal      vec3JSON `json:"normal"`
	Orientation vec3JSON `json:"orientation"`
	Material    string   `json:"material"`
}

type boxJSON struct {
	Center     vec3JSON  `json:"center"`
	HalfExtent float64   `json:"half_extent"`
	Axis0      *vec3JSON `json:"axis0"`
	Axis1      *vec3JSON `json:"axis1"`
	Material   string    `json:"material"`
}

// SceneFile is the on-disk description of a scene
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Group       string                  `json:"group"`
	Camera      cameraJSON              `json:"camera"`
	Sampling    samplingJSON            `json:"sampling"`
	Sky         skyJSON                 `json:"sky"`
	Materials   map[string]materialJSON `json:"materials"`
	Spheres     []sphereJSON            `json:"spheres"`
	Patches     []patchJSON             `json:"patches"`
	Boxes       []boxJSON               `json:"boxes"`
}

// LoadSceneFile reads a JSON scene description from disk and builds the scene
func LoadSceneFile(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene file %s: %w", path, err)
	}
	defer file.Close()

	s, err := ReadScene(file, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// ReadScene decodes a JSON scene description. Unknown fields are rejected.
func ReadScene(r io.Reader, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	var sf SceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return sf.Build(cameraOverrides...)
}

// Build turns the decoded description into a scene. Missing camera and sampling
// fields fall back to the defaults. When both width and height are given and no aspect
// ratio is, the aspect ratio follows the image size.
func (sf *SceneFile) Build(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.MergeCameraConfig(geometry.DefaultCameraConfig(), sf.Camera.toConfig())
	explicitAspect := sf.Camera.AspectRatio > 0
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
		explicitAspect = explicitAspect || cameraOverrides[0].AspectRatio > 0
	}

	samplingConfig := core.MergeSamplingConfig(core.DefaultSamplingConfig(), core.SamplingConfig{
		Width:           sf.Sampling.Width,
		SamplesPerPixel: sf.Sampling.SamplesPerPixel,
		MaxDepth:        sf.Sampling.MaxDepth,
	})
	if sf.Sampling.Height > 0 {
		samplingConfig.Height = sf.Sampling.Height
		imageAspect := float64(samplingConfig.Width) / float64(samplingConfig.Height)
		if !explicitAspect {
			cameraConfig.AspectRatio = imageAspect
		} else if math.Abs(float64(samplingConfig.Width)/cameraConfig.AspectRatio-float64(samplingConfig.Height)) > 1 {
			return nil, fmt.Errorf("%w: %dx%d vs %g", ErrAspectMismatch, samplingConfig.Width, samplingConfig.Height, cameraConfig.AspectRatio)
		}
	} else {
		samplingConfig = withImageSize(samplingConfig, samplingConfig.Width, cameraConfig.AspectRatio)
	}

	materials := make(map[string]core.Material, len(sf.Materials))
	for name, m := range sf.Materials {
		mat, err := m.toMaterial()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}
	lookup := func(name string) (core.Material, error) {
		mat, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownMaterial, name)
		}
		return mat, nil
	}

	var shapes []core.Shape
	for i, sp := range sf.Spheres {
		mat, err := lookup(sp.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if sp.Radius == 0 || math.IsNaN(sp.Radius) {
			return nil, fmt.Errorf("sphere %d: radius %g: %w", i, sp.Radius, geometry.ErrDegenerateSize)
		}
		shapes = append(shapes, geometry.NewSphere(sp.Center.toVec3(), sp.Radius, mat))
	}
	for i, p := range sf.Patches {
		mat, err := lookup(p.Material)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		patch, err := geometry.NewPatch(p.Center.toVec3(), p.HalfExtent, p.Normal.toVec3(), p.Orientation.toVec3(), mat)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		shapes = append(shapes, patch)
	}
	for i, b := range sf.Boxes {
		mat, err := lookup(b.Material)
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		var box *geometry.Box
		if b.Axis0 == nil || b.Axis1 == nil {
			box, err = geometry.NewAxisAlignedBox(b.Center.toVec3(), b.HalfExtent, mat)
		} else {
			box, err = geometry.NewBox(b.Center.toVec3(), b.HalfExtent, b.Axis0.toVec3(), b.Axis1.toVec3(), mat)
		}
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		shapes = append(shapes, box)
	}

	s, err := NewScene(cameraConfig, samplingConfig, shapes...)
	if err != nil {
		return nil, err
	}
	if sf.Sky.Top != nil {
		s.TopColor = core.Color(*sf.Sky.Top)
	}
	if sf.Sky.Bottom != nil {
		s.BottomColor = core.Color(*sf.Sky.Bottom)
	}
	return s, nil
}

func (c cameraJSON) toConfig() geometry.CameraConfig {
	config := geometry.CameraConfig{
		VFov:          c.VFov,
		AspectRatio:   c.AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}
	if c.Center != nil {
		config.Center = c.Center.toVec3()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.toVec3()
	}
	if c.Up != nil {
		config.Up = c.Up.toVec3()
	}
	return config
}

func (m materialJSON) toMaterial() (core.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(core.Color(m.Albedo)), nil
	case "metal":
		return material.NewMetal(core.Color(m.Albedo), m.Fuzz), nil
	case "dielectric", "glass":
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("dielectric needs a positive refractive_index, got %g", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unsupported material type %q", m.Type)
	}
}
