package geometry

// Box is an axis-aligned rectangle with Min <= Max on both axes.
type Box struct {
	Min, Max Vec
}

// BoxOf builds a box from two opposite corners in any order.
func BoxOf(a, b Vec) Box {
	box := Box{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	return box
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Expand grows the box by d on every side.
func (b Box) Expand(d float64) Box {
	return Box{
		Min: Vec{b.Min.X - d, b.Min.Y - d},
		Max: Vec{b.Max.X + d, b.Max.Y + d},
	}
}

// Corners returns the four corners clockwise from Min.
func (b Box) Corners() [4]Vec {
	return [4]Vec{
		b.Min,
		{b.Max.X, b.Min.Y},
		b.Max,
		{b.Min.X, b.Max.Y},
	}
}

// SegmentCrossesBox reports whether the segment a-b passes through the box.
//
// The infinite line through a and b must separate the corners (their cross
// product signs are not all the same) and the segment's bounding interval
// must straddle at least one box edge on that edge's axis.
func SegmentCrossesBox(a, b Vec, box Box) bool {
	var pos, neg int
	for _, c := range box.Corners() {
		switch s := Cross(a, b, c); {
		case s > 0:
			pos++
		case s < 0:
			neg++
		}
	}
	if pos == 4 || neg == 4 {
		return false
	}

	lo, hi := BoxOf(a, b).Min, BoxOf(a, b).Max
	switch {
	case lo.X <= box.Min.X && hi.X >= box.Min.X:
		return true
	case lo.X <= box.Max.X && hi.X >= box.Max.X:
		return true
	case lo.Y <= box.Min.Y && hi.Y >= box.Min.Y:
		return true
	case lo.Y <= box.Max.Y && hi.Y >= box.Max.Y:
		return true
	}
	return false
}

// SegmentVisible reports whether any part of a-b may fall inside the box:
// either endpoint is inside it, or the segment crosses it.
func SegmentVisible(a, b Vec, box Box) bool {
	return box.Contains(a) || box.Contains(b) || SegmentCrossesBox(a, b, box)
}
