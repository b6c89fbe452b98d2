package sim

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/iop0175/Roadmaker/pkg/config"
	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/network"
	"github.com/iop0175/Roadmaker/pkg/world"
)

// Spawner originates vehicles at connected homes.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner seeds the spawner's selection randomness.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Connected reports whether the home currently reaches its matching office
// over the road network. Network topology changes over the game's lifetime,
// so callers re-query every spawn cycle.
func Connected(home world.Building, w *world.World, g *network.Graph) bool {
	office, ok := w.OfficeFor(home)
	if !ok {
		return false
	}
	path, ok := g.FindPath(home.Position, office.Position)
	return ok && len(path) >= 2
}

type spawnCandidate struct {
	home   world.Building
	office world.Building
	path   []geo.Point
}

// TrySpawn picks one eligible home uniformly at random and creates a vehicle
// on the path to its office. Returns nil when no home is connected.
func (s *Spawner) TrySpawn(w *world.World, g *network.Graph, cfg config.Config) *Vehicle {
	var candidates []spawnCandidate
	for _, home := range w.Homes() {
		office, ok := w.OfficeFor(home)
		if !ok {
			continue
		}
		path, ok := g.FindPath(home.Position, office.Position)
		if !ok || len(path) < 2 {
			continue
		}
		candidates = append(candidates, spawnCandidate{home: home, office: office, path: path})
	}

	if len(candidates) == 0 {
		return nil
	}
	c := candidates[s.rng.Intn(len(candidates))]

	return &Vehicle{
		ID:                   uuid.NewString(),
		Position:             c.path[0],
		Path:                 c.path,
		TargetIndex:          1,
		Speed:                cfg.VehicleSpeed,
		Color:                c.home.Color,
		Status:               StatusGoingToOffice,
		From:                 c.home.ID,
		To:                   c.office.ID,
		IntersectionArrivals: make(map[network.Key]time.Time),
	}
}
