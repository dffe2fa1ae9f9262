package geometry

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

func TestNewBox_DegenerateAxes(t *testing.T) {
	tests := []struct {
		name         string
		axis0, axis1 core.Vec3
	}{
		{"parallel axes", core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0)},
		{"antiparallel axes", core.NewVec3(0, 1, 0), core.NewVec3(0, -3, 0)},
		{"zero axis", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := NewBox(core.NewVec3(0, 0, 0), 1, tt.axis0, tt.axis1, DummyMaterial{})
			if !errors.Is(err, ErrDegenerateAxes) {
				t.Errorf("Expected ErrDegenerateAxes, got %v", err)
			}
			if box != nil {
				t.Error("Expected nil box on error")
			}
		})
	}
}

func TestNewBox_DegenerateSize(t *testing.T) {
	for _, halfExtent := range []float64{0, -0.5, math.NaN()} {
		box, err := NewAxisAlignedBox(core.NewVec3(0, 0, 0), halfExtent, DummyMaterial{})
		if !errors.Is(err, ErrDegenerateSize) {
			t.Errorf("half extent %g: expected ErrDegenerateSize, got %v", halfExtent, err)
		}
		if box != nil {
			t.Errorf("half extent %g: expected nil box", halfExtent)
		}
	}
}

func TestNewBox_OrthonormalFrame(t *testing.T) {
	box, err := NewBox(core.NewVec3(1, 2, 3), 0.5, core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0), DummyMaterial{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	const tolerance = 1e-12
	for name, axis := range map[string]core.Vec3{"A": box.A, "B": box.B, "C": box.C} {
		if math.Abs(axis.Length()-1) > tolerance {
			t.Errorf("Axis %s not unit length: %v", name, axis)
		}
	}
	if math.Abs(box.A.Dot(box.B)) > tolerance || math.Abs(box.A.Dot(box.C)) > tolerance || math.Abs(box.B.Dot(box.C)) > tolerance {
		t.Errorf("Axes not orthogonal: %v %v %v", box.A, box.B, box.C)
	}
	if box.A.Subtract(core.NewVec3(1, 1, 0).Normalize()).Length() > tolerance {
		t.Errorf("Expected A along first axis, got %v", box.A)
	}
}

func TestBox_Hit_AxisAligned(t *testing.T) {
	// 2x2x2 box centered at origin
	box, err := NewAxisAlignedBox(core.NewVec3(0, 0, 0), 1, DummyMaterial{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		ray            core.Ray
		tMax           float64
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
		expectedFront  bool
	}{
		{
			name:           "Ray hits +Z face",
			ray:            core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
			tMax:           1000,
			shouldHit:      true,
			expectedT:      4,
			expectedNormal: core.NewVec3(0, 0, 1),
			expectedFront:  true,
		},
		{
			name:           "Ray hits -X face",
			ray:            core.NewRay(core.NewVec3(-3, 0.5, 0.5), core.NewVec3(1, 0, 0)),
			tMax:           1000,
			shouldHit:      true,
			expectedT:      2,
			expectedNormal: core.NewVec3(-1, 0, 0),
			expectedFront:  true,
		},
		{
			name:           "Ray from inside hits +Y face",
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
			tMax:           1000,
			shouldHit:      true,
			expectedT:      1,
			expectedNormal: core.NewVec3(0, -1, 0),
			expectedFront:  false,
		},
		{
			name:      "Ray misses box",
			ray:       core.NewRay(core.NewVec3(3, 3, 5), core.NewVec3(0, 0, -1)),
			tMax:      1000,
			shouldHit: false,
		},
		{
			name:      "Box beyond tMax",
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
			tMax:      3,
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.Hit(tt.ray, 0.001, tt.tMax)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !tt.shouldHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
		})
	}
}

// The bounding pre-check must never hide a hit that the faces alone would report
func TestBox_Hit_PreCheckHasNoFalseNegatives(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	box, err := NewBox(core.NewVec3(0.3, -0.2, 0.1), 0.7, core.NewVec3(1, 2, 3), core.NewVec3(-1, 0.5, 2), DummyMaterial{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 0; i < 2000; i++ {
		origin := core.RandomVec3(random, -4, 4)
		target := core.RandomVec3(random, -1, 1)
		ray := core.NewRay(origin, target.Subtract(origin).Multiply(core.RandomRange(random, 0.2, 3)))
		tMax := core.RandomRange(random, 0.01, 5)

		var faceHit *core.HitRecord
		closest := tMax
		for _, face := range box.faces {
			if hit, ok := face.Hit(ray, 0.001, closest); ok {
				closest = hit.T
				faceHit = hit
			}
		}

		hit, isHit := box.Hit(ray, 0.001, tMax)
		if (faceHit != nil) != isHit {
			t.Fatalf("Pre-check disagreed with faces for ray %+v tMax=%f", ray, tMax)
		}
		if isHit && math.Abs(hit.T-faceHit.T) > 1e-12 {
			t.Fatalf("Expected nearest t=%f, got %f", faceHit.T, hit.T)
		}
	}
}
