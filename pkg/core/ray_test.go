package core

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	tests := []struct {
		name      string
		direction Vec3
	}{
		{"Already unit", NewVec3(0, 0, -1)},
		{"Longer than unit", NewVec3(3, 4, 0)},
		{"Shorter than unit", NewVec3(0.1, 0.2, 0.2)},
		{"Large magnitude", NewVec3(1000, -2000, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(NewVec3(0, 0, 0), tt.direction)
			if math32.Abs(ray.Direction.Length()-1.0) > tolerance {
				t.Errorf("Expected unit direction, got length %v", ray.Direction.Length())
			}

			// Direction must still point the same way
			cosine := ray.Direction.Dot(tt.direction.Normalize())
			if math32.Abs(cosine-1.0) > tolerance {
				t.Errorf("Direction changed orientation, cosine %v", cosine)
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))

	tests := []struct {
		name     string
		t        float32
		expected Vec3
	}{
		{"At origin", 0, NewVec3(1, 2, 3)},
		{"One unit along", 1, NewVec3(1, 2, 2)},
		{"Further along", 2.5, NewVec3(1, 2, 0.5)},
		{"Behind origin", -1, NewVec3(1, 2, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := ray.At(tt.t)
			if point.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, point)
			}
		})
	}
}

func TestNewHit_NormalizesNormal(t *testing.T) {
	hit := NewHit(2.0, NewVec3(0, 0, -1), NewVec3(0, 0, 3))
	if math32.Abs(hit.Normal.Length()-1.0) > tolerance {
		t.Errorf("Expected unit normal, got length %v", hit.Normal.Length())
	}
	if hit.Normal.Subtract(NewVec3(0, 0, 1)).Length() > tolerance {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.T != 2.0 {
		t.Errorf("Expected t=2, got %v", hit.T)
	}
}
