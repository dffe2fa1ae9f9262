package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

func mustPatch(t *testing.T, center core.Point3, halfExtent float64, normal, orientation core.Vec3, material core.Material) *Patch {
	t.Helper()
	patch, err := NewPatch(center, halfExtent, normal, orientation, material)
	if err != nil {
		t.Fatalf("NewPatch() error: %v", err)
	}
	return patch
}

func TestPatch_Hit_BasicIntersection(t *testing.T) {
	// 2x2 patch in the XZ plane at y=0
	patch := mustPatch(t, core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), DummyMaterial{})

	ray := core.NewRay(core.NewVec3(0.5, 2, 0.5), core.NewVec3(0, -1, 0))

	hit, isHit := patch.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}

	expectedPoint := core.NewVec3(0.5, 0, 0.5)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit from above")
	}
}

func TestPatch_Hit_Misses(t *testing.T) {
	patch := mustPatch(t, core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), DummyMaterial{})

	tests := []struct {
		name      string
		rayOrigin core.Vec3
		rayDir    core.Vec3
		tMax      float64
	}{
		{"outside U bound", core.NewVec3(1.5, 1, 0), core.NewVec3(0, -1, 0), 1000},
		{"outside V bound", core.NewVec3(0, 1, -1.5), core.NewVec3(0, -1, 0), 1000},
		{"parallel to plane", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), 1000},
		{"pointing away", core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), 1000},
		{"beyond tMax", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDir)
			if hit, isHit := patch.Hit(ray, 0.001, tt.tMax); isHit {
				t.Errorf("Expected miss, got hit at t=%f", hit.T)
			}
		})
	}
}

func TestPatch_Hit_BackFace(t *testing.T) {
	patch := mustPatch(t, core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))

	hit, isHit := patch.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit from below")
	}
	if hit.FrontFace {
		t.Error("Expected back face hit from below")
	}
	if hit.Normal.Y >= 0 {
		t.Errorf("Expected normal flipped toward ray, got %v", hit.Normal)
	}
}

func TestPatch_RotatedFrame(t *testing.T) {
	// Square rotated 45 degrees in its plane: corners lie on the axes at distance √2
	orientation := core.NewVec3(1, 0, 1)
	patch := mustPatch(t, core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 1, 0), orientation, DummyMaterial{})

	down := core.NewVec3(0, -1, 0)
	if _, isHit := patch.Hit(core.NewRay(core.NewVec3(1.3, 1, 0), down), 0.001, 10); !isHit {
		t.Error("Expected hit near rotated corner")
	}
	if _, isHit := patch.Hit(core.NewRay(core.NewVec3(1, 1, 1), down), 0.001, 10); isHit {
		t.Error("Expected miss outside rotated square")
	}
}

func TestNewPatch_Degenerate(t *testing.T) {
	tests := []struct {
		name        string
		halfExtent  float64
		normal      core.Vec3
		orientation core.Vec3
		wantErr     error
	}{
		{"zero normal", 1, core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), ErrDegenerateAxes},
		{"orientation along normal", 0.5, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), ErrDegenerateAxes},
		{"orientation against normal", 0.5, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -2), ErrDegenerateAxes},
		{"zero orientation", 1, core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 0), ErrDegenerateAxes},
		{"zero half extent", 0, core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), ErrDegenerateSize},
		{"negative half extent", -1, core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), ErrDegenerateSize},
		{"NaN half extent", math.NaN(), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), ErrDegenerateSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := NewPatch(core.NewVec3(0, 0, 0), tt.halfExtent, tt.normal, tt.orientation, DummyMaterial{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if patch != nil {
				t.Error("Expected nil patch on error")
			}
		})
	}
}

func TestNewPatch_TiltedOrientationStaysBounded(t *testing.T) {
	// Orientation with a component along the normal is projected into the plane
	patch := mustPatch(t, core.NewVec3(0, 0, 0), 0.5, core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 3), DummyMaterial{})

	if math.Abs(patch.U.Dot(patch.Normal)) > 1e-12 || math.Abs(patch.V.Length()-1) > 1e-12 {
		t.Fatalf("Expected orthonormal frame, got U=%v V=%v N=%v", patch.U, patch.V, patch.Normal)
	}

	toward := core.NewVec3(0, 0, -1)
	if _, isHit := patch.Hit(core.NewRay(core.NewVec3(0, 50, 1), toward), 0.001, 10); isHit {
		t.Error("Expected miss far outside the square")
	}
	if _, isHit := patch.Hit(core.NewRay(core.NewVec3(0.4, 0.4, 1), toward), 0.001, 10); !isHit {
		t.Error("Expected hit inside the square")
	}
}
