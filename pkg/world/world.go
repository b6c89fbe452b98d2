package world

import (
	"fmt"

	"github.com/iop0175/Roadmaker/pkg/geo"
)

// RejectReason classifies why a road placement was refused.
type RejectReason string

const (
	ReasonRiver    RejectReason = "crosses_river"
	ReasonOverlap  RejectReason = "overlaps_road"
	ReasonBuilding RejectReason = "hits_building"
)

// Rejection is the expected failure outcome of AddRoad: the drawn geometry
// is well-formed but not placeable. Callers distinguish it from malformed
// input with errors.As.
type Rejection struct {
	Reason RejectReason
	At     geo.Point
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("road rejected: %s at (%.0f,%.0f)", r.Reason, r.At.X, r.At.Y)
}

const (
	// overlapDistance is how close a sample must be to an existing road to
	// count as overlapping it.
	overlapDistance = 8.0

	// overlapRatio is the fraction of samples allowed to overlap existing
	// roads before the placement is refused. Touching at junctions is fine;
	// redrawing a road on top of another is not.
	overlapRatio = 0.4
)

// World holds the authored session state: terrain, buildings and the road
// set. The simulation owns it; readers get copies.
type World struct {
	Width     float64
	Height    float64
	River     *River
	Buildings []Building
	Roads     []*Road
}

// AddRoad validates placement and appends the road. It returns the new road,
// a *Rejection error for unplaceable geometry, or an ErrMalformedRoad error
// for degenerate input. Callers must rebuild the network after a success.
func (w *World) AddRoad(start, end geo.Point, control *geo.Point) (*Road, error) {
	road, err := NewRoad(start, end, control)
	if err != nil {
		return nil, err
	}

	samples := road.Samples(roadSamples)

	// Interior samples only: endpoints are allowed to touch buildings so a
	// road can serve a doorstep, and junction endpoints naturally coincide
	// with existing roads.
	interior := samples[1 : len(samples)-1]

	for _, p := range interior {
		if w.River.Blocked(p) {
			return nil, &Rejection{Reason: ReasonRiver, At: p}
		}
		for _, b := range w.Buildings {
			if b.Contains(p) {
				return nil, &Rejection{Reason: ReasonBuilding, At: p}
			}
		}
	}

	if len(w.Roads) > 0 {
		overlapping := 0
		for _, p := range interior {
			for _, other := range w.Roads {
				if other.DistanceTo(p) < overlapDistance {
					overlapping++
					break
				}
			}
		}
		if float64(overlapping)/float64(len(interior)) > overlapRatio {
			return nil, &Rejection{Reason: ReasonOverlap, At: road.PointAt(0.5)}
		}
	}

	w.Roads = append(w.Roads, road)
	return road, nil
}

// RemoveRoad deletes the road with the given ID and reports whether it was
// present. Callers must rebuild the network afterwards.
func (w *World) RemoveRoad(id string) bool {
	for i, r := range w.Roads {
		if r.ID == id {
			w.Roads = append(w.Roads[:i], w.Roads[i+1:]...)
			return true
		}
	}
	return false
}

// BuildingByID returns the building with the given ID.
func (w *World) BuildingByID(id string) (Building, bool) {
	for _, b := range w.Buildings {
		if b.ID == id {
			return b, true
		}
	}
	return Building{}, false
}

// OfficeFor returns the office matching the home's color group.
func (w *World) OfficeFor(home Building) (Building, bool) {
	for _, b := range w.Buildings {
		if b.Role == RoleOffice && b.Color == home.Color {
			return b, true
		}
	}
	return Building{}, false
}

// Homes returns all home buildings.
func (w *World) Homes() []Building {
	var homes []Building
	for _, b := range w.Buildings {
		if b.Role == RoleHome {
			homes = append(homes, b)
		}
	}
	return homes
}
