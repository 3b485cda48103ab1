package geometry

import (
	"github.com/ioreshnikov/rtrace/pkg/core"
)

// Hittable is the contract for anything a ray can intersect. Hit returns
// the nearest intersection with parameter in [tMin, tMax], or false when
// there is none.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float32) (*core.Hit, bool)
}
