package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestUnitVector_Length(t *testing.T) {
	u, ok := UnitVector(V(1, 1), V(4, 5))
	if !ok {
		t.Fatal("UnitVector((1,1), (4,5)) ok = false, want true")
	}
	if !almostEqual(u.X, 0.6) || !almostEqual(u.Y, 0.8) {
		t.Errorf("UnitVector((1,1), (4,5)) = %v, want (0.6, 0.8)", u)
	}
}

func TestUnitVector_ZeroLength(t *testing.T) {
	u, ok := UnitVector(V(3, 3), V(3, 3))
	if ok {
		t.Errorf("UnitVector of zero-length segment ok = true, want false (got %v)", u)
	}
	if math.IsNaN(u.X) || math.IsNaN(u.Y) {
		t.Errorf("UnitVector of zero-length segment returned NaN: %v", u)
	}
}

func TestBox_ContainsEdges(t *testing.T) {
	box := Box{Min: V(0, 0), Max: V(10, 10)}
	cases := []struct {
		p    Vec
		want bool
	}{
		{V(0, 0), true},
		{V(10, 10), true},
		{V(5, 5), true},
		{V(-0.1, 5), false},
		{V(5, 10.1), false},
	}
	for _, c := range cases {
		if got := box.Contains(c.p); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestBox_Expand(t *testing.T) {
	box := Box{Min: V(0, 0), Max: V(10, 20)}.Expand(2)
	if box.Min != V(-2, -2) || box.Max != V(12, 22) {
		t.Errorf("Expand(2) = %+v, want {(-2,-2) (12,22)}", box)
	}
}

func TestSegmentVisible(t *testing.T) {
	viewport := Box{Min: V(0, 0), Max: V(1000, 1000)}
	cases := []struct {
		name string
		a, b Vec
		want bool
	}{
		{"crosses horizontally", V(-50, 500), V(1500, 500), true},
		{"outside on diagonal", V(-50, -50), V(-10, -10), false},
		{"one endpoint inside", V(500, 500), V(5000, 5000), true},
		{"both inside", V(10, 10), V(20, 20), true},
		{"parallel above", V(-100, -20), V(1200, -20), false},
		{"clips corner", V(-10, 50), V(50, -10), true},
		{"passes beside", V(1100, -500), V(1100, 1500), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SegmentVisible(c.a, c.b, viewport); got != c.want {
				t.Errorf("SegmentVisible(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestCircle_Contains(t *testing.T) {
	c := Circle{Center: V(100, 100), Radius: 8, LineWidth: 2}
	if !c.Contains(V(100, 100)) {
		t.Error("Contains(center) = false, want true")
	}
	if !c.Contains(V(108.9, 100)) {
		t.Error("Contains(point on stroke) = false, want true")
	}
	if c.Contains(V(116, 100)) {
		t.Error("Contains(point 2r away) = true, want false")
	}
}

func TestInset(t *testing.T) {
	a, b, ok := Inset(V(0, 0), V(10, 0), 2)
	if !ok {
		t.Fatal("Inset ok = false, want true")
	}
	if a != V(2, 0) || b != V(8, 0) {
		t.Errorf("Inset = %v, %v, want (2,0), (8,0)", a, b)
	}
	if _, _, ok := Inset(V(0, 0), V(3, 0), 2); ok {
		t.Error("Inset of segment shorter than 2d ok = true, want false")
	}
	if _, _, ok := Inset(V(1, 1), V(1, 1), 2); ok {
		t.Error("Inset of zero-length segment ok = true, want false")
	}
}
