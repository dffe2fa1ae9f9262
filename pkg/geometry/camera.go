package geometry

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

// ErrInvalidCamera is returned when a camera configuration cannot produce an orthonormal basis
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Point3 // Camera position (eye)
	LookAt        core.Point3 // Point the camera looks at
	Up            core.Vec3   // Up direction (usually (0,1,0))
	VFov          float64     // Vertical field of view in degrees
	AspectRatio   float64     // Width / height
	Aperture      float64     // Lens diameter; 0 disables defocus blur
	FocusDistance float64     // Distance to the focal plane; 0 = distance from Center to LookAt
}

// DefaultCameraConfig returns a camera at the origin looking down -Z with a 90° field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 16.0 / 9.0,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	zero := core.Vec3{}
	if override.Center != zero {
		base.Center = override.Center
	}
	if override.LookAt != zero {
		base.LookAt = override.LookAt
	}
	if override.Up != zero {
		base.Up = override.Up
	}
	if override.VFov > 0 {
		base.VFov = override.VFov
	}
	if override.AspectRatio > 0 {
		base.AspectRatio = override.AspectRatio
	}
	if override.Aperture > 0 {
		base.Aperture = override.Aperture
	}
	if override.FocusDistance > 0 {
		base.FocusDistance = override.FocusDistance
	}
	return base
}

// Camera generates primary rays through a thin lens. It is immutable after construction.
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
}

// NewCamera derives the camera basis and viewport from config
func NewCamera(config CameraConfig) (*Camera, error) {
	viewDir := config.Center.Subtract(config.LookAt)
	if viewDir.NearZero() {
		return nil, fmt.Errorf("camera center equals look-at point %v: %w", config.LookAt, ErrInvalidCamera)
	}
	if config.Up.Cross(viewDir).NearZero() {
		return nil, fmt.Errorf("up vector %v is parallel to view direction: %w", config.Up, ErrInvalidCamera)
	}
	if config.VFov <= 0 || config.VFov >= 180 || config.AspectRatio <= 0 || config.Aperture < 0 {
		return nil, fmt.Errorf("vfov=%g aspect=%g aperture=%g: %w", config.VFov, config.AspectRatio, config.Aperture, ErrInvalidCamera)
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = viewDir.Length()
	}

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta/2) * focusDistance
	halfWidth := halfHeight * config.AspectRatio

	w := viewDir.Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(2 * halfWidth)
	vertical := v.Multiply(2 * halfHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for normalized screen coordinates (s, t) where 0 <= s,t <= 1,
// with (0,0) at the lower-left of the image
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// GetCameraForward returns the unit direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
