package geometry

// Circle is a circular stroke path in screen space.
type Circle struct {
	Center    Vec
	Radius    float64
	LineWidth float64
}

// Contains reports whether p falls inside the path as drawn, i.e. within
// the circle or on its stroke.
func (c Circle) Contains(p Vec) bool {
	return c.Center.Dist(p) <= c.Radius+c.LineWidth/2
}

// Inset shortens a-b by d at both ends along its direction.
// ok is false when the segment is degenerate or shorter than 2*d.
func Inset(a, b Vec, d float64) (Vec, Vec, bool) {
	u, ok := UnitVector(a, b)
	if !ok || a.Dist(b) <= 2*d {
		return a, b, false
	}
	return a.Add(u.Scale(d)), b.Sub(u.Scale(d)), true
}
