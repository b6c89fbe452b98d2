package geo

import "math"

// Point represents a point on the 2D world plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the same direction.
// Returns zero vector if length is zero.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < 1e-12 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Distance returns the Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Angle returns the angle of the vector from the positive X axis in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// AngleTo returns the angle from p to q relative to the positive X axis.
func (p Point) AngleTo(q Point) float64 {
	return q.Sub(p).Angle()
}

// Lerp returns the linear interpolation between p and q at t in [0,1].
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Perp returns a vector perpendicular to p (rotated 90 degrees counterclockwise).
func (p Point) Perp() Point {
	return Point{-p.Y, p.X}
}

// Round returns p with both coordinates rounded to the nearest integer.
func (p Point) Round() Point {
	return Point{math.Round(p.X), math.Round(p.Y)}
}
