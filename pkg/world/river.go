package world

import "github.com/iop0175/Roadmaker/pkg/geo"

// River is a strip of forbidden terrain: a centerline polyline with a
// half-width. Roads may not cross it.
type River struct {
	Centerline []geo.Point `json:"centerline"`
	HalfWidth  float64     `json:"half_width"`
}

// Blocked reports whether p lies inside the river strip.
func (r *River) Blocked(p geo.Point) bool {
	if r == nil || len(r.Centerline) == 0 {
		return false
	}
	if len(r.Centerline) == 1 {
		return p.Distance(r.Centerline[0]) < r.HalfWidth
	}
	for i := 1; i < len(r.Centerline); i++ {
		_, d := geo.NearestOnSegment(p, r.Centerline[i-1], r.Centerline[i])
		if d < r.HalfWidth {
			return true
		}
	}
	return false
}
