package geometry

import (
	"github.com/ioreshnikov/rtrace/pkg/core"
)

// World aggregates scene objects and resolves the nearest intersection
// among them. It is mutated only during scene setup and read-only while
// rendering.
type World struct {
	objects []Hittable
}

// NewWorld creates a world from an initial set of objects
func NewWorld(objects ...Hittable) *World {
	return &World{objects: objects}
}

// Add appends an object to the world
func (w *World) Add(object Hittable) {
	w.objects = append(w.objects, object)
}

// Count returns the number of objects in the world
func (w *World) Count() int {
	return len(w.objects)
}

// Hit tests the ray against every object, narrowing the search interval
// to the closest hit found so far. Ties on exactly equal t keep the
// first object encountered.
func (w *World) Hit(ray core.Ray, tMin, tMax float32) (*core.Hit, bool) {
	var closest *core.Hit
	closestSoFar := tMax

	for _, object := range w.objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}
