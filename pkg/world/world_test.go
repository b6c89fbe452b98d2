package world

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/iop0175/Roadmaker/pkg/geo"
)

func emptyWorld() *World {
	return &World{Width: 1000, Height: 600}
}

func TestNewRoadZeroLength(t *testing.T) {
	_, err := NewRoad(geo.Pt(10, 10), geo.Pt(10, 10), nil)
	if !errors.Is(err, ErrMalformedRoad) {
		t.Fatalf("expected ErrMalformedRoad, got %v", err)
	}
}

func TestNewRoadDegenerateCurve(t *testing.T) {
	c := geo.Pt(0, 0)
	_, err := NewRoad(geo.Pt(0, 0), geo.Pt(100, 0), &c)
	if !errors.Is(err, ErrMalformedRoad) {
		t.Fatalf("expected ErrMalformedRoad for coincident control point, got %v", err)
	}
}

func TestNewRoadCopiesControl(t *testing.T) {
	c := geo.Pt(50, 80)
	r, err := NewRoad(geo.Pt(0, 0), geo.Pt(100, 0), &c)
	if err != nil {
		t.Fatal(err)
	}
	c.X = 999
	if r.Control.X != 50 {
		t.Error("road must not alias the caller's control point")
	}
}

func TestRoadPointAtStraight(t *testing.T) {
	r, _ := NewRoad(geo.Pt(0, 0), geo.Pt(100, 0), nil)
	mid := r.PointAt(0.5)
	if mid.X != 50 || mid.Y != 0 {
		t.Errorf("expected (50,0), got (%f,%f)", mid.X, mid.Y)
	}
}

func TestRoadDistanceToCurved(t *testing.T) {
	c := geo.Pt(50, 100)
	r, _ := NewRoad(geo.Pt(0, 0), geo.Pt(100, 0), &c)
	// Curve apex is at (50,50); a point just above it should be close.
	d := r.DistanceTo(geo.Pt(50, 55))
	if d > 6 {
		t.Errorf("expected distance near 5, got %f", d)
	}
}

func TestAddRoadAccepts(t *testing.T) {
	w := emptyWorld()
	r, err := w.AddRoad(geo.Pt(0, 0), geo.Pt(200, 0), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID == "" {
		t.Error("road must carry an ID")
	}
	if len(w.Roads) != 1 {
		t.Fatalf("expected 1 road, got %d", len(w.Roads))
	}
}

func TestAddRoadRejectsRiver(t *testing.T) {
	w := emptyWorld()
	w.River = &River{
		Centerline: []geo.Point{geo.Pt(100, -500), geo.Pt(100, 500)},
		HalfWidth:  20,
	}
	_, err := w.AddRoad(geo.Pt(0, 0), geo.Pt(200, 0), nil)
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected a Rejection, got %v", err)
	}
	if rej.Reason != ReasonRiver {
		t.Errorf("expected %s, got %s", ReasonRiver, rej.Reason)
	}
}

func TestAddRoadRejectsBuildingInterior(t *testing.T) {
	w := emptyWorld()
	w.Buildings = []Building{{ID: "b1", Position: geo.Pt(100, 0), Role: RoleHome, Color: "#e6194b"}}
	_, err := w.AddRoad(geo.Pt(0, 0), geo.Pt(200, 0), nil)
	var rej *Rejection
	if !errors.As(err, &rej) || rej.Reason != ReasonBuilding {
		t.Fatalf("expected building rejection, got %v", err)
	}
}

func TestAddRoadMayStartAtFootprintEdge(t *testing.T) {
	w := emptyWorld()
	w.Buildings = []Building{{ID: "b1", Position: geo.Pt(0, 0), Role: RoleHome, Color: "#e6194b"}}
	// Home footprint is 40 wide, so its east edge sits at x=20.
	if _, err := w.AddRoad(geo.Pt(20, 0), geo.Pt(300, 0), nil); err != nil {
		t.Fatalf("road starting at a doorstep must be allowed, got %v", err)
	}
}

func TestAddRoadRejectsOverlap(t *testing.T) {
	w := emptyWorld()
	if _, err := w.AddRoad(geo.Pt(0, 0), geo.Pt(200, 0), nil); err != nil {
		t.Fatal(err)
	}
	_, err := w.AddRoad(geo.Pt(0, 2), geo.Pt(200, 2), nil)
	var rej *Rejection
	if !errors.As(err, &rej) || rej.Reason != ReasonOverlap {
		t.Fatalf("expected overlap rejection, got %v", err)
	}
}

func TestAddRoadAllowsCrossing(t *testing.T) {
	w := emptyWorld()
	if _, err := w.AddRoad(geo.Pt(0, 50), geo.Pt(200, 50), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddRoad(geo.Pt(100, 0), geo.Pt(100, 100), nil); err != nil {
		t.Fatalf("perpendicular crossing must be allowed, got %v", err)
	}
}

func TestRemoveRoad(t *testing.T) {
	w := emptyWorld()
	r, _ := w.AddRoad(geo.Pt(0, 0), geo.Pt(200, 0), nil)
	if !w.RemoveRoad(r.ID) {
		t.Fatal("expected removal to succeed")
	}
	if w.RemoveRoad(r.ID) {
		t.Fatal("second removal must report absence")
	}
	if len(w.Roads) != 0 {
		t.Errorf("expected empty road set, got %d", len(w.Roads))
	}
}

func TestGeneratePairsMatched(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := Generate(rng, 1000, 600, 4)
	homes := w.Homes()
	if len(homes) != 4 {
		t.Fatalf("expected 4 homes, got %d", len(homes))
	}
	for _, h := range homes {
		office, ok := w.OfficeFor(h)
		if !ok {
			t.Errorf("home %s has no matching office", h.Color)
			continue
		}
		if office.Color != h.Color {
			t.Errorf("office color %s does not match home %s", office.Color, h.Color)
		}
	}
}

func TestGenerateAvoidsRiver(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := Generate(rng, 1000, 600, 4)
	for _, b := range w.Buildings {
		if w.River.Blocked(b.Position) {
			t.Errorf("building %s placed inside the river", b.ID)
		}
	}
}

func TestRiverBlocked(t *testing.T) {
	r := &River{Centerline: []geo.Point{geo.Pt(100, 0), geo.Pt(100, 200)}, HalfWidth: 25}
	if !r.Blocked(geo.Pt(110, 100)) {
		t.Error("point inside the strip must be blocked")
	}
	if r.Blocked(geo.Pt(200, 100)) {
		t.Error("point outside the strip must not be blocked")
	}
	var nilRiver *River
	if nilRiver.Blocked(geo.Pt(0, 0)) {
		t.Error("nil river blocks nothing")
	}
}
