// Package sim advances the traffic simulation one tick at a time: vehicle
// state machines, FIFO right-of-way at intersections, spawning and scoring.
package sim

import (
	"time"

	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/network"
)

// Status is a vehicle's position in its round-trip lifecycle.
type Status string

const (
	StatusGoingToOffice Status = "going-to-office"
	StatusAtOffice      Status = "at-office"
	StatusGoingHome     Status = "going-home"
	StatusAtHome        Status = "at-home"
)

// EnRoute reports whether the status is one of the two moving legs.
func (s Status) EnRoute() bool {
	return s == StatusGoingToOffice || s == StatusGoingHome
}

// Vehicle is the mutable per-tick unit of the simulation. Path is always a
// sequence of graph nodes; the building-to-graph last mile is implicit.
type Vehicle struct {
	ID          string
	Position    geo.Point
	Path        []geo.Point
	TargetIndex int
	Speed       float64
	WaitTime    float64
	Color       string
	Lane        int
	Direction   float64
	From        string // home building ID
	To          string // office building ID
	Status      Status

	OfficeArrivalAt time.Time

	// IntersectionArrivals records when this vehicle entered each
	// intersection's near zone. Reset on the office-to-home transition.
	IntersectionArrivals map[network.Key]time.Time
}

// EnRoute reports whether the vehicle is on a moving leg.
func (v *Vehicle) EnRoute() bool {
	return v.Status.EnRoute()
}
