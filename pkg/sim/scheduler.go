package sim

import (
	"sort"
	"time"

	"github.com/iop0175/Roadmaker/pkg/config"
	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/network"
)

// Intersection geometry zones, in world units.
const (
	// arrivalZone is the radius of an intersection's near zone; entering it
	// records the vehicle's arrival timestamp.
	arrivalZone = 30.0

	// innerRadius is the committed zone: a vehicle inside it never waits,
	// so the junction footprint always drains.
	innerRadius = 15.0

	// approachOuter bounds the approach band [innerRadius, approachOuter)
	// where FIFO queuing applies.
	approachOuter = 35.0

	// waitDecay shrinks WaitTime each tick a vehicle proceeds.
	waitDecay = 0.9
)

// PathFinder resolves a path between two world points. *network.Graph
// satisfies it.
type PathFinder interface {
	FindPath(start, end geo.Point) ([]geo.Point, bool)
}

// Scheduler advances vehicles one tick at a time.
type Scheduler struct {
	Paths  PathFinder
	Locate func(buildingID string) (geo.Point, bool)
	Cfg    config.Config
}

type queueEntry struct {
	v  *Vehicle
	at time.Time
}

// preTick is the consistent snapshot every right-of-way decision reads, so
// one vehicle's movement this tick cannot change another's wait decision.
type preTick struct {
	pos    map[string]geo.Point
	status map[string]Status
}

// Step runs one tick: arrival bookkeeping, FIFO queue construction,
// per-vehicle transitions and movement, then batch scoring. It returns the
// surviving vehicle set and the score delta; intersections get their
// VehicleCount refreshed in place.
func (s *Scheduler) Step(vehicles []*Vehicle, intersections []network.Intersection, now time.Time) ([]*Vehicle, int) {
	// Stage 1: arrival bookkeeping against pre-movement positions. The
	// first tick inside the near zone records the timestamp; leaving the
	// zone clears it.
	for _, v := range vehicles {
		if !v.EnRoute() {
			continue
		}
		for i := range intersections {
			k := network.KeyOf(intersections[i].Point)
			if v.Position.Distance(intersections[i].Point) < arrivalZone {
				if _, ok := v.IntersectionArrivals[k]; !ok {
					v.IntersectionArrivals[k] = now
				}
			} else {
				delete(v.IntersectionArrivals, k)
			}
		}
	}

	// Stage 2: per-intersection FIFO queues, earliest arrival first.
	// Built by iterating intersections then vehicles so time ties resolve
	// by vehicle order, repeatably.
	queues := make(map[network.Key][]queueEntry, len(intersections))
	for i := range intersections {
		k := network.KeyOf(intersections[i].Point)
		var q []queueEntry
		for _, v := range vehicles {
			if !v.EnRoute() {
				continue
			}
			if at, ok := v.IntersectionArrivals[k]; ok {
				q = append(q, queueEntry{v, at})
			}
		}
		sort.SliceStable(q, func(a, b int) bool { return q[a].at.Before(q[b].at) })
		queues[k] = q
		intersections[i].VehicleCount = len(q)
	}

	// Stage 3: per-vehicle transitions, all decisions read the pre-tick
	// snapshot.
	pre := preTick{
		pos:    make(map[string]geo.Point, len(vehicles)),
		status: make(map[string]Status, len(vehicles)),
	}
	for _, v := range vehicles {
		pre.pos[v.ID] = v.Position
		pre.status[v.ID] = v.Status
	}

	kept := make([]*Vehicle, 0, len(vehicles))
	score := 0

	for _, v := range vehicles {
		switch {
		case v.Status == StatusAtOffice:
			s.tryReturnTrip(v, now)
			kept = append(kept, v)

		case v.Status == StatusAtHome:
			// Terminal marker: credit the trip and drop the vehicle.
			score++

		case v.TargetIndex >= len(v.Path):
			if v.Status == StatusGoingToOffice {
				v.Status = StatusAtOffice
				v.OfficeArrivalAt = now
				kept = append(kept, v)
			} else {
				v.Status = StatusAtHome
				score++
			}

		default:
			if s.shouldWait(v, vehicles, intersections, queues, pre) {
				v.WaitTime++
			} else {
				v.WaitTime *= waitDecay
				if v.WaitTime < 0.01 {
					v.WaitTime = 0
				}
				s.move(v)
			}
			kept = append(kept, v)
		}
	}

	return kept, score
}

// tryReturnTrip starts the home leg once the dwell has elapsed, and retries
// on later ticks when no return path exists yet.
func (s *Scheduler) tryReturnTrip(v *Vehicle, now time.Time) {
	if now.Sub(v.OfficeArrivalAt) < s.Cfg.OfficeDwell() {
		return
	}
	home, okHome := s.Locate(v.From)
	office, okOffice := s.Locate(v.To)
	if !okHome || !okOffice {
		return
	}
	path, ok := s.Paths.FindPath(office, home)
	if !ok || len(path) < 2 {
		return
	}
	v.Status = StatusGoingHome
	v.Path = path
	v.TargetIndex = 1
	v.Position = path[0]
	v.IntersectionArrivals = make(map[network.Key]time.Time)
}

// shouldWait applies the right-of-way rule. A vehicle committed inside any
// inner radius always proceeds. In an approach band it yields when a
// same-status vehicle occupies the inner radius, or when at least two
// same-status vehicles queue there and it is not the earliest arrival.
// Opposing statuses never block each other; they hold different lanes.
func (s *Scheduler) shouldWait(v *Vehicle, vehicles []*Vehicle, intersections []network.Intersection, queues map[network.Key][]queueEntry, pre preTick) bool {
	myPos := pre.pos[v.ID]

	for i := range intersections {
		if myPos.Distance(intersections[i].Point) < innerRadius {
			return false
		}
	}

	for i := range intersections {
		p := intersections[i].Point
		d := myPos.Distance(p)
		if d < innerRadius || d >= approachOuter {
			continue
		}

		for _, other := range vehicles {
			if other.ID == v.ID || pre.status[other.ID] != v.Status {
				continue
			}
			if pre.pos[other.ID].Distance(p) < innerRadius {
				return true
			}
		}

		k := network.KeyOf(p)
		var sameStatus []queueEntry
		for _, e := range queues[k] {
			if pre.status[e.v.ID] == v.Status {
				sameStatus = append(sameStatus, e)
			}
		}
		if len(sameStatus) >= 2 && sameStatus[0].v.ID != v.ID {
			return true
		}
	}

	return false
}

// move advances the vehicle toward its lane-offset target: snap when within
// one tick of it, otherwise step along the straight-line direction.
func (s *Scheduler) move(v *Vehicle) {
	raw := v.Path[v.TargetIndex]
	target := raw

	// Lane offset, perpendicular to the direction of travel. A degenerate
	// direction vector short-circuits to zero offset.
	if dir := raw.Sub(v.Position).Normalize(); dir != (geo.Point{}) {
		side := 1.0
		if v.Lane != 0 {
			side = -1
		}
		target = raw.Add(dir.Perp().Scale(side * s.Cfg.LaneOffset))
	}

	delta := target.Sub(v.Position)
	if delta.Length() < v.Speed {
		v.Position = target
		v.TargetIndex++
		return
	}
	v.Direction = delta.Angle()
	v.Position = v.Position.Add(delta.Normalize().Scale(v.Speed))
}
