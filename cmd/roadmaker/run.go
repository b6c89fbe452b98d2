package main

import (
	"fmt"
	"time"

	"github.com/iop0175/Roadmaker/pkg/config"
	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/sim"
	"github.com/iop0175/Roadmaker/pkg/world"
)

// runHeadless drives the simulation on a synthetic clock: draw best-effort
// roads between each pair, then tick for the requested simulated duration
// and print the outcome.
func runHeadless(projectPath string, seconds int) error {
	cfg, err := config.LoadProject(projectPath)
	if err != nil {
		return err
	}

	st := sim.NewState(cfg)
	built, skipped := seedRoads(st)

	now := time.Unix(0, 0)
	ticks := int(float64(seconds) * cfg.TickRate)
	for i := 0; i < ticks; i++ {
		now = now.Add(cfg.TickInterval())
		st.Tick(now)
	}

	snap := st.Snapshot()
	fmt.Printf("simulated %ds at %.0f Hz (%d ticks)\n", seconds, cfg.TickRate, ticks)
	fmt.Printf("%-18s %d\n", "roads built:", built)
	fmt.Printf("%-18s %d\n", "pairs skipped:", skipped)
	fmt.Printf("%-18s %d\n", "intersections:", len(snap.Intersections))
	fmt.Printf("%-18s %d\n", "connected homes:", st.ConnectedHomes())
	fmt.Printf("%-18s %d\n", "active vehicles:", len(snap.Vehicles))
	fmt.Printf("%-18s %d\n", "score:", snap.Score)
	return nil
}

// seedRoads draws a direct road from each home's doorstep to its office.
// Placement rejections (river in the way, another footprint) just skip the
// pair; that is the expected outcome for unlucky layouts.
func seedRoads(st *sim.State) (built, skipped int) {
	snap := st.Snapshot()
	byColor := make(map[string]geo.Point)
	for _, b := range snap.Buildings {
		if b.Role == world.RoleOffice {
			byColor[b.Color] = b.Position
		}
	}

	const doorstep = 28.0
	for _, b := range snap.Buildings {
		if b.Role != world.RoleHome {
			continue
		}
		office, ok := byColor[b.Color]
		if !ok {
			skipped++
			continue
		}
		unit := office.Sub(b.Position).Normalize()
		start := b.Position.Add(unit.Scale(doorstep))
		end := office.Sub(unit.Scale(doorstep))

		if _, err := st.AddRoad(start, end, nil); err != nil {
			skipped++
			continue
		}
		built++
	}
	return built, skipped
}
