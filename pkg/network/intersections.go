// Package network derives a routable graph from the drawn road set and
// answers path queries over it. The graph is rebuilt from scratch on every
// road mutation; it is never patched in place.
package network

import (
	"math"

	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/world"
)

// Key is a quantized node identifier. Graph nodes and intersection zones are
// keyed by rounded integer coordinates so float jitter cannot split a node.
type Key struct {
	X int
	Y int
}

// KeyOf quantizes a point to its node key.
func KeyOf(p geo.Point) Key {
	return Key{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Point returns the key's world position.
func (k Key) Point() geo.Point {
	return geo.Pt(float64(k.X), float64(k.Y))
}

// Kind distinguishes how an intersection was formed.
type Kind string

const (
	// KindJunction: two or more roads share an exact endpoint.
	KindJunction Kind = "junction"
	// KindCrossing: two straight roads meet strictly inside both segments.
	KindCrossing Kind = "crossing"
)

// Intersection is derived, never authored. VehicleCount is runtime occupancy
// filled in by the simulation each tick.
type Intersection struct {
	Point        geo.Point `json:"point"`
	Kind         Kind      `json:"kind"`
	VehicleCount int       `json:"vehicle_count"`
}

// dedupeDistance merges crossings that land on top of an already-recorded
// intersection.
const dedupeDistance = 5.0

// FindIntersections computes the intersection set for the road set: endpoint
// junctions first, then pairwise crossings of straight roads. Output order
// carries no meaning.
func FindIntersections(roads []*world.Road) []Intersection {
	var found []Intersection

	// Junctions: endpoints shared by two or more roads, keyed exactly.
	endpointCount := make(map[Key]int)
	endpointAt := make(map[Key]geo.Point)
	var endpointOrder []Key
	for _, r := range roads {
		for _, p := range []geo.Point{r.Start, r.End} {
			k := KeyOf(p)
			if endpointCount[k] == 0 {
				endpointOrder = append(endpointOrder, k)
				endpointAt[k] = p
			}
			endpointCount[k]++
		}
	}
	for _, k := range endpointOrder {
		if endpointCount[k] >= 2 {
			found = append(found, Intersection{Point: endpointAt[k], Kind: KindJunction})
		}
	}

	// Crossings: every unordered pair of straight roads. Curved roads only
	// ever participate through their endpoints.
	for i := 0; i < len(roads); i++ {
		if roads[i].Curved() {
			continue
		}
		for j := i + 1; j < len(roads); j++ {
			if roads[j].Curved() {
				continue
			}
			pt, ok := geo.SegmentIntersection(roads[i].Start, roads[i].End, roads[j].Start, roads[j].End)
			if !ok {
				continue
			}
			if nearExisting(found, pt) {
				continue
			}
			found = append(found, Intersection{Point: pt, Kind: KindCrossing})
		}
	}

	return found
}

func nearExisting(found []Intersection, p geo.Point) bool {
	for _, it := range found {
		if it.Point.Distance(p) < dedupeDistance {
			return true
		}
	}
	return false
}
