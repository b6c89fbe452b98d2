package geo

import "math"

const (
	// parallelEpsilon rejects near-parallel segment pairs whose intersection
	// point would be numerically unstable.
	parallelEpsilon = 1e-4

	// paramMin and paramMax bound the parametric window for a valid
	// mid-segment intersection. Hits within 1% of either endpoint are
	// treated as endpoint junctions, not crossings.
	paramMin = 0.01
	paramMax = 0.99
)

// SegmentIntersection returns the intersection point of segments p1-p2 and
// p3-p4, with coordinates rounded to the nearest integer. It reports false
// when the segments are parallel (or nearly so) or when the intersection
// falls outside the [0.01, 0.99] parametric window of either segment.
func SegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)

	det := d1.Cross(d2)
	if math.Abs(det) < parallelEpsilon {
		return Point{}, false
	}

	diff := p3.Sub(p1)
	t := diff.Cross(d2) / det
	u := diff.Cross(d1) / det

	if t < paramMin || t > paramMax || u < paramMin || u > paramMax {
		return Point{}, false
	}

	return p1.Add(d1.Scale(t)).Round(), true
}

// NearestOnSegment returns the closest point on segment ab to p, and the
// distance to it. A zero-length segment short-circuits to its endpoint.
func NearestOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return a, p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return closest, p.Distance(closest)
}

// LineProjection projects p onto the infinite line through a and b. It
// returns the parametric position t of the projection (0 at a, 1 at b,
// unclamped) and the perpendicular distance from p to the line. A
// zero-length line reports t=0 and the distance to a.
func LineProjection(p, a, b Point) (t, dist float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return 0, p.Distance(a)
	}
	t = p.Sub(a).Dot(ab) / abLen2
	proj := a.Add(ab.Scale(t))
	return t, p.Distance(proj)
}
