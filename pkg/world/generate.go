package world

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/iop0175/Roadmaker/pkg/geo"
)

// palette is the color-group pool for paired homes and offices.
var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8",
	"#f58231", "#911eb4", "#46f0f0", "#f032e6",
}

const generateMargin = 60.0

// Generate creates a fresh session world: a river across the middle and the
// requested number of home/office pairs. Each pair lands on one bank, chosen
// at random, so the river divides the map without stranding any pair.
func Generate(rng *rand.Rand, width, height float64, pairs int) *World {
	w := &World{
		Width:  width,
		Height: height,
		River: &River{
			Centerline: []geo.Point{
				geo.Pt(width/2, 0),
				geo.Pt(width/2, height),
			},
			HalfWidth: 30,
		},
	}

	westMax := width/2 - w.River.HalfWidth - generateMargin
	eastMin := width/2 + w.River.HalfWidth + generateMargin

	if pairs > len(palette) {
		pairs = len(palette)
	}
	for i := 0; i < pairs; i++ {
		minX, maxX := generateMargin, westMax
		if rng.Intn(2) == 1 {
			minX, maxX = eastMin, width-generateMargin
		}
		home := Building{
			ID:       uuid.NewString(),
			Role:     RoleHome,
			Color:    palette[i],
			Position: w.placeBuilding(rng, minX, maxX),
		}
		office := Building{
			ID:       uuid.NewString(),
			Role:     RoleOffice,
			Color:    palette[i],
			Position: w.placeBuilding(rng, minX, maxX),
		}
		w.Buildings = append(w.Buildings, home, office)
	}
	return w
}

// placeBuilding picks a position with X in [minX, maxX] that does not touch
// an existing footprint. Bounded retries; the last candidate wins if the
// band is crowded.
func (w *World) placeBuilding(rng *rand.Rand, minX, maxX float64) geo.Point {
	var p geo.Point
	for attempt := 0; attempt < 50; attempt++ {
		p = geo.Pt(
			minX+rng.Float64()*(maxX-minX),
			generateMargin+rng.Float64()*(w.Height-2*generateMargin),
		)
		clear := true
		for _, b := range w.Buildings {
			if b.Position.Distance(p) < 2*officeFootprint {
				clear = false
				break
			}
		}
		if clear {
			return p
		}
	}
	return p
}
