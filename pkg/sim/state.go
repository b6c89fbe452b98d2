package sim

import (
	"math/rand"
	"sync"
	"time"

	"github.com/iop0175/Roadmaker/pkg/config"
	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/network"
	"github.com/iop0175/Roadmaker/pkg/world"
)

// State is the single owner of all simulation data. One stepping goroutine
// mutates it; everything else reads copies via Snapshot.
type State struct {
	mu sync.Mutex

	cfg           config.Config
	world         *world.World
	graph         *network.Graph
	intersections []network.Intersection
	vehicles      []*Vehicle
	score         int
	spawner       *Spawner
	lastSpawn     time.Time
}

// NewState generates a fresh session world from the config seed.
func NewState(cfg config.Config) *State {
	st := &State{
		cfg:     cfg,
		spawner: NewSpawner(cfg.Seed),
	}
	st.resetLocked(cfg.Seed)
	return st
}

// Reset replaces all session state with a newly generated world.
func (st *State) Reset(seed int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.spawner = NewSpawner(seed)
	st.resetLocked(seed)
}

func (st *State) resetLocked(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	st.world = world.Generate(rng, st.cfg.WorldWidth, st.cfg.WorldHeight, st.cfg.BuildingPairs)
	st.vehicles = nil
	st.score = 0
	st.lastSpawn = time.Time{}
	st.rebuildLocked()
}

// rebuildLocked derives intersections and a fresh graph from the current
// road set, then swaps them in. Readers never observe a partial build.
func (st *State) rebuildLocked() {
	st.intersections = network.FindIntersections(st.world.Roads)
	st.graph = network.Build(st.world.Roads)
}

// AddRoad validates, appends and rebuilds the network. Rejections and
// malformed-road errors pass through from the world layer.
func (st *State) AddRoad(start, end geo.Point, control *geo.Point) (*world.Road, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	road, err := st.world.AddRoad(start, end, control)
	if err != nil {
		return nil, err
	}
	st.rebuildLocked()
	return road, nil
}

// RemoveRoad deletes a road and rebuilds the network.
func (st *State) RemoveRoad(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.world.RemoveRoad(id) {
		return false
	}
	st.rebuildLocked()
	return true
}

// Tick advances the simulation to now: spawn attempt (rate-limited, capped),
// then one scheduler step. Score accumulates after the batch completes.
func (st *State) Tick(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.vehicles) < st.cfg.MaxVehicles &&
		(st.lastSpawn.IsZero() || now.Sub(st.lastSpawn) >= st.cfg.SpawnEvery()) {
		if v := st.spawner.TrySpawn(st.world, st.graph, st.cfg); v != nil {
			st.vehicles = append(st.vehicles, v)
			st.lastSpawn = now
		}
	}

	sched := &Scheduler{
		Paths:  st.graph,
		Locate: st.locateLocked,
		Cfg:    st.cfg,
	}
	kept, delta := sched.Step(st.vehicles, st.intersections, now)
	st.vehicles = kept
	st.score += delta
}

func (st *State) locateLocked(buildingID string) (geo.Point, bool) {
	b, ok := st.world.BuildingByID(buildingID)
	return b.Position, ok
}

// Score returns the accumulated score.
func (st *State) Score() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.score
}

// VehicleCount returns the active vehicle count.
func (st *State) VehicleCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.vehicles)
}

// ConnectedHomes reports how many homes currently reach their office.
func (st *State) ConnectedHomes() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	count := 0
	for _, h := range st.world.Homes() {
		if Connected(h, st.world, st.graph) {
			count++
		}
	}
	return count
}
