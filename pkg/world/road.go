package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iop0175/Roadmaker/pkg/geo"
)

// ErrMalformedRoad marks road geometry that can never enter the network:
// zero-length segments and degenerate curves. Distinct from placement
// rejections, which are expected outcomes.
var ErrMalformedRoad = errors.New("malformed road")

const (
	// minRoadLength guards against zero-length edges, which would loop
	// forever in neighbor iteration if admitted into the graph.
	minRoadLength = 1.0

	// roadSamples is the sample count used when checking a road's geometry
	// against terrain, buildings and existing roads.
	roadSamples = 20
)

// Road is a single drawn road segment. Roads are immutable once created;
// adding or removing one triggers a full network rebuild.
type Road struct {
	ID      string     `json:"id"`
	Start   geo.Point  `json:"start"`
	End     geo.Point  `json:"end"`
	Control *geo.Point `json:"control,omitempty"`
}

// NewRoad validates and constructs a road. A nil control point means a
// straight segment; a non-nil one a quadratic Bezier.
func NewRoad(start, end geo.Point, control *geo.Point) (*Road, error) {
	if start.Distance(end) < minRoadLength {
		return nil, fmt.Errorf("%w: segment from (%.1f,%.1f) has near-zero length", ErrMalformedRoad, start.X, start.Y)
	}
	if control != nil {
		if control.Distance(start) < minRoadLength || control.Distance(end) < minRoadLength {
			return nil, fmt.Errorf("%w: control point coincides with an endpoint", ErrMalformedRoad)
		}
	}
	r := &Road{ID: uuid.NewString(), Start: start, End: end}
	if control != nil {
		c := *control
		r.Control = &c
	}
	return r, nil
}

// Curved reports whether the road is a quadratic Bezier.
func (r *Road) Curved() bool {
	return r.Control != nil
}

// PointAt evaluates the road geometry at parameter t in [0,1].
func (r *Road) PointAt(t float64) geo.Point {
	if r.Control != nil {
		return geo.QuadBezier(r.Start, *r.Control, r.End, t)
	}
	return r.Start.Lerp(r.End, t)
}

// Samples returns n+1 evenly spaced parameter samples along the road,
// including both endpoints.
func (r *Road) Samples(n int) []geo.Point {
	if r.Control != nil {
		return geo.SampleQuadBezier(r.Start, *r.Control, r.End, n)
	}
	if n < 1 {
		n = 1
	}
	pts := make([]geo.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, r.Start.Lerp(r.End, float64(i)/float64(n)))
	}
	return pts
}

// DistanceTo returns the distance from p to the road geometry. Straight
// roads use an exact segment projection; curves use their sample polyline.
func (r *Road) DistanceTo(p geo.Point) float64 {
	if r.Control == nil {
		_, d := geo.NearestOnSegment(p, r.Start, r.End)
		return d
	}
	samples := r.Samples(roadSamples)
	best := p.Distance(samples[0])
	for i := 1; i < len(samples); i++ {
		_, d := geo.NearestOnSegment(p, samples[i-1], samples[i])
		if d < best {
			best = d
		}
	}
	return best
}
