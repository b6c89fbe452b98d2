package sim

import (
	"testing"

	"github.com/iop0175/Roadmaker/pkg/config"
	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/network"
	"github.com/iop0175/Roadmaker/pkg/world"
)

// pairWorld builds a hand-authored world: one home/office pair and a direct
// road between their doorsteps.
func pairWorld(t *testing.T, withRoad bool) (*world.World, *network.Graph) {
	t.Helper()
	w := &world.World{Width: 1000, Height: 600}
	w.Buildings = []world.Building{
		{ID: "home-1", Position: geo.Pt(0, 0), Role: world.RoleHome, Color: "#e6194b"},
		{ID: "office-1", Position: geo.Pt(400, 0), Role: world.RoleOffice, Color: "#e6194b"},
	}
	if withRoad {
		r, err := world.NewRoad(geo.Pt(30, 0), geo.Pt(370, 0), nil)
		if err != nil {
			t.Fatal(err)
		}
		w.Roads = append(w.Roads, r)
	}
	return w, network.Build(w.Roads)
}

func TestTrySpawnConnectedHome(t *testing.T) {
	w, g := pairWorld(t, true)
	v := NewSpawner(1).TrySpawn(w, g, config.Default())
	if v == nil {
		t.Fatal("expected a spawned vehicle")
	}
	if v.Status != StatusGoingToOffice {
		t.Errorf("expected going-to-office, got %s", v.Status)
	}
	if v.TargetIndex != 1 {
		t.Errorf("expected TargetIndex 1, got %d", v.TargetIndex)
	}
	if v.Position != v.Path[0] {
		t.Error("vehicle must start at the first path node")
	}
	if v.From != "home-1" || v.To != "office-1" {
		t.Errorf("expected home-1 -> office-1, got %s -> %s", v.From, v.To)
	}
	if v.Color != "#e6194b" {
		t.Errorf("vehicle must inherit the home color, got %s", v.Color)
	}
	if len(v.Path) < 2 {
		t.Errorf("expected a usable path, got %d nodes", len(v.Path))
	}
}

func TestTrySpawnNoRoads(t *testing.T) {
	w, g := pairWorld(t, false)
	if v := NewSpawner(1).TrySpawn(w, g, config.Default()); v != nil {
		t.Error("no road network: spawn must be skipped")
	}
}

func TestTrySpawnNoMatchingOffice(t *testing.T) {
	w, g := pairWorld(t, true)
	w.Buildings[1].Color = "#3cb44b"
	if v := NewSpawner(1).TrySpawn(w, g, config.Default()); v != nil {
		t.Error("home without a same-color office must not spawn")
	}
}

func TestTrySpawnHomeTooFarFromRoad(t *testing.T) {
	w, g := pairWorld(t, true)
	w.Buildings[0].Position = geo.Pt(0, 200) // beyond the snap tolerance
	if v := NewSpawner(1).TrySpawn(w, g, config.Default()); v != nil {
		t.Error("home beyond the snap distance must not spawn")
	}
}

func TestConnectedQuery(t *testing.T) {
	w, g := pairWorld(t, true)
	home := w.Buildings[0]
	if !Connected(home, w, g) {
		t.Error("expected the home to be connected")
	}
	empty := network.Build(nil)
	if Connected(home, w, empty) {
		t.Error("home cannot be connected over an empty graph")
	}
}
