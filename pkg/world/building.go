package world

import "github.com/iop0175/Roadmaker/pkg/geo"

// Role distinguishes the two building kinds a trip runs between.
type Role string

const (
	RoleHome   Role = "home"
	RoleOffice Role = "office"
)

// Building footprints are axis-aligned rectangles of fixed size per role.
const (
	homeFootprint   = 40.0
	officeFootprint = 48.0
)

// Building is authored once per game session and never mutated during
// simulation. A home is usable only when a same-color office exists.
type Building struct {
	ID       string    `json:"id"`
	Position geo.Point `json:"position"`
	Role     Role      `json:"role"`
	Color    string    `json:"color"`
}

// Footprint returns the building's axis-aligned bounding rectangle.
func (b Building) Footprint() (min, max geo.Point) {
	half := homeFootprint / 2
	if b.Role == RoleOffice {
		half = officeFootprint / 2
	}
	return geo.Pt(b.Position.X-half, b.Position.Y-half),
		geo.Pt(b.Position.X+half, b.Position.Y+half)
}

// Contains reports whether p lies strictly inside the footprint.
func (b Building) Contains(p geo.Point) bool {
	min, max := b.Footprint()
	return p.X > min.X && p.X < max.X && p.Y > min.Y && p.Y < max.Y
}
