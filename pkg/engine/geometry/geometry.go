// Package geometry provides the 2-D vector, box and hit-path helpers shared by
// the camera, the renderers and pointer hit-testing.
package geometry

import "math"

// Vec is a point or direction in either world or screen space.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s on both axes.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Div returns v divided by s on both axes.
func (v Vec) Div(s float64) Vec { return Vec{v.X / s, v.Y / s} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }

// Lerp interpolates linearly between a and b; t is not clamped.
func Lerp(a, b Vec, t float64) Vec {
	return Vec{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// LerpFloat interpolates linearly between a and b.
func LerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}

// UnitVector returns the unit direction from a to b.
// ok is false when a and b coincide and no direction exists.
func UnitVector(a, b Vec) (u Vec, ok bool) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 || math.IsNaN(l) {
		return Vec{}, false
	}
	return d.Div(l), true
}

// Cross returns the z component of the 3-D cross product of (b-a) and (p-a).
// Its sign tells which side of the line a->b the point p lies on.
func Cross(a, b, p Vec) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
