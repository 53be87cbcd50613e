package detection

// Circle is one detected circle in grayscale-view pixel coordinates.
//
// Center coordinates keep the precision the transform produced; rounding to
// whole pixels happens only when a circle is drawn.
type Circle struct {
	X      float64 `json:"x"`      // Center X (0 = leftmost)
	Y      float64 `json:"y"`      // Center Y (0 = topmost)
	Radius float64 `json:"radius"` // Always >= 0
}

// CircleSet is the result of one detection pass, in the order the transform
// reported the circles.
//
// A nil CircleSet means no detection has produced a result yet. An empty,
// non-nil CircleSet means the last detection ran and found nothing. Both
// render nothing.
type CircleSet []Circle

// Clone returns a copy of s that shares no memory with it. The nil/empty
// distinction is preserved.
func (s CircleSet) Clone() CircleSet {
	if s == nil {
		return nil
	}
	out := make(CircleSet, len(s))
	copy(out, s)
	return out
}
