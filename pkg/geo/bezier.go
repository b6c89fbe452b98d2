package geo

// QuadBezier evaluates the quadratic Bezier curve defined by start, control
// and end at parameter t in [0,1].
func QuadBezier(start, control, end Point, t float64) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return Point{
		X: a*start.X + b*control.X + c*end.X,
		Y: a*start.Y + b*control.Y + c*end.Y,
	}
}

// SampleQuadBezier returns n+1 evenly spaced parameter samples of the curve,
// including both endpoints.
func SampleQuadBezier(start, control, end Point, n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, QuadBezier(start, control, end, t))
	}
	return pts
}
