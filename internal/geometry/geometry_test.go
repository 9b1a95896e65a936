package geometry

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/partsim/partsim/internal/vector"
)

func TestNewPlaneValidation(t *testing.T) {
	if _, err := NewPlane(vector.Pos(0, 0, 0), mgl64.Vec3{0, 0, 0}); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("zero normal: got %v, want ErrInvalidShape", err)
	}
	if _, err := NewPlane(vector.Pos(0, 0, 0), mgl64.Vec3{0, 1, 0}); err != nil {
		t.Errorf("valid plane: unexpected error %v", err)
	}
}

func TestNewSphereValidation(t *testing.T) {
	for _, radius := range []float64{0, -1} {
		if _, err := NewSphere(vector.Pos(0, 0, 0), radius); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("radius %v: got %v, want ErrInvalidShape", radius, err)
		}
	}
	if _, err := NewSphere(vector.Pos(0, 0, 0), 1); err != nil {
		t.Errorf("valid sphere: unexpected error %v", err)
	}
}

func TestPlaneResolve(t *testing.T) {
	// Floor at the origin; the permitted side is y > 0. The normal is
	// deliberately non-unit to exercise normalization.
	plane, err := NewPlane(vector.Pos(0, 0, 0), mgl64.Vec3{0, 2, 0})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		pos     vector.Position
		vel     vector.Velocity
		wantVel vector.Velocity
	}{
		{"permitted side untouched", vector.Pos(0, 1, 0), vector.Vel(1, -3, 0), vector.Vel(1, -3, 0)},
		{"on the plane untouched", vector.Pos(5, 0, 5), vector.Vel(0, -1, 0), vector.Vel(0, -1, 0)},
		{"crossed: normal component flips", vector.Pos(0, -1, 0), vector.Vel(1, -3, 0), vector.Vel(1, 3, 0)},
		{"crossed: tangential only", vector.Pos(0, -0.5, 0), vector.Vel(2, 0, 1), vector.Vel(2, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPos, gotVel := plane.Resolve(tt.pos, tt.vel)
			if gotPos != tt.pos {
				t.Errorf("position moved: %v -> %v", tt.pos, gotPos)
			}
			if gotVel != tt.wantVel {
				t.Errorf("velocity = %v, want %v", gotVel, tt.wantVel)
			}
		})
	}
}

func TestSphereResolve(t *testing.T) {
	sphere, err := NewSphere(vector.Pos(0, 0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		pos     vector.Position
		vel     vector.Velocity
		wantVel vector.Velocity
	}{
		{"strictly inside untouched", vector.Pos(0.5, 0, 0), vector.Vel(9, 9, 9), vector.Vel(9, 9, 9)},
		{"on boundary, radial flips", vector.Pos(1, 0, 0), vector.Vel(2, 0, 0), vector.Vel(-2, 0, 0)},
		{"on boundary, tangential kept", vector.Pos(1, 0, 0), vector.Vel(0, 1, 0), vector.Vel(0, 1, 0)},
		{"on boundary, mixed", vector.Pos(1, 0, 0), vector.Vel(2, 1, 0), vector.Vel(-2, 1, 0)},
		{"outside, inward already", vector.Pos(2, 0, 0), vector.Vel(-1, 0, 0), vector.Vel(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPos, gotVel := sphere.Resolve(tt.pos, tt.vel)
			if gotPos != tt.pos {
				t.Errorf("position moved: %v -> %v", tt.pos, gotPos)
			}
			if gotVel != tt.wantVel {
				t.Errorf("velocity = %v, want %v", gotVel, tt.wantVel)
			}
		})
	}
}

func TestSphereContains(t *testing.T) {
	sphere := Sphere{Center: vector.Pos(0, 0, 0), Radius: 1}

	if !sphere.Contains(vector.Pos(0.9, 0, 0)) {
		t.Error("interior point not contained")
	}
	if sphere.Contains(vector.Pos(1, 0, 0)) {
		t.Error("surface point must not count as inside")
	}
	if sphere.Contains(vector.Pos(0, 2, 0)) {
		t.Error("exterior point contained")
	}
}
