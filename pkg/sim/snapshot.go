package sim

import (
	"time"

	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/network"
	"github.com/iop0175/Roadmaker/pkg/world"
)

// Snapshot is the read-only view handed to the UI collaborator after each
// tick. Everything in it is copied; mutating a snapshot never touches the
// live simulation.
type Snapshot struct {
	GeneratedAt   time.Time              `json:"generated_at"`
	Score         int                    `json:"score"`
	Roads         []world.Road           `json:"roads"`
	Buildings     []world.Building       `json:"buildings"`
	Intersections []network.Intersection `json:"intersections"`
	Vehicles      []VehicleView          `json:"vehicles"`
	River         *world.River           `json:"river,omitempty"`
}

// VehicleView is the renderer-facing projection of a vehicle.
type VehicleView struct {
	ID        string    `json:"id"`
	Position  geo.Point `json:"position"`
	Direction float64   `json:"direction"`
	Status    Status    `json:"status"`
	Color     string    `json:"color"`
	Lane      int       `json:"lane"`
	WaitTime  float64   `json:"wait_time"`
}

// Snapshot copies the current state for external readers.
func (st *State) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()

	snap := Snapshot{
		GeneratedAt:   time.Now(),
		Score:         st.score,
		Roads:         make([]world.Road, 0, len(st.world.Roads)),
		Buildings:     append([]world.Building(nil), st.world.Buildings...),
		Intersections: append([]network.Intersection(nil), st.intersections...),
		Vehicles:      make([]VehicleView, 0, len(st.vehicles)),
		River:         st.world.River,
	}
	for _, r := range st.world.Roads {
		road := *r
		if r.Control != nil {
			c := *r.Control
			road.Control = &c
		}
		snap.Roads = append(snap.Roads, road)
	}
	for _, v := range st.vehicles {
		snap.Vehicles = append(snap.Vehicles, VehicleView{
			ID:        v.ID,
			Position:  v.Position,
			Direction: v.Direction,
			Status:    v.Status,
			Color:     v.Color,
			Lane:      v.Lane,
			WaitTime:  v.WaitTime,
		})
	}
	return snap
}
