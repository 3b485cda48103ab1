package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/ioreshnikov/rtrace/pkg/core"
)

func TestWorld_Hit_NearestOfTwo(t *testing.T) {
	// Two overlapping spheres along the same ray: the nearer surface wins
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5)
	far := NewSphere(core.NewVec3(0, 0, -3), 1.0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name  string
		world *World
	}{
		{"near first", NewWorld(near, far)},
		{"far first", NewWorld(far, near)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.world.Hit(ray, 1e-3, math32.MaxFloat32)
			if !ok {
				t.Fatal("Expected hit, got miss")
			}
			if math32.Abs(hit.T-1.5) > tolerance {
				t.Errorf("Expected nearest surface at t=1.5, got t=%v", hit.T)
			}
		})
	}
}

func TestWorld_Hit_Empty(t *testing.T) {
	world := NewWorld()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if hit, ok := world.Hit(ray, 1e-3, math32.MaxFloat32); ok {
		t.Errorf("Expected miss in empty world, got hit at t=%v", hit.T)
	}
}

func TestWorld_Hit_AllMiss(t *testing.T) {
	world := NewWorld(
		NewSphere(core.NewVec3(0, 5, 0), 1.0),
		NewSphere(core.NewVec3(5, 0, 0), 1.0),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, ok := world.Hit(ray, 1e-3, math32.MaxFloat32); ok {
		t.Error("Expected miss when no object lies along the ray")
	}
}

func TestWorld_Add(t *testing.T) {
	world := NewWorld()
	if world.Count() != 0 {
		t.Fatalf("Expected empty world, got %d objects", world.Count())
	}

	world.Add(NewSphere(core.NewVec3(0, 0, -1), 0.5))
	world.Add(NewSphere(core.NewVec3(0, -100.5, -1), 100))
	if world.Count() != 2 {
		t.Errorf("Expected 2 objects, got %d", world.Count())
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := world.Hit(ray, 1e-3, math32.MaxFloat32)
	if !ok {
		t.Fatal("Expected hit after adding spheres")
	}
	if math32.Abs(hit.T-0.5) > tolerance {
		t.Errorf("Expected t=0.5, got t=%v", hit.T)
	}
}
