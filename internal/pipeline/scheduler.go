package pipeline

// ShouldRecompute reports whether the frame with the given counter value
// triggers a detection pass. The counter is incremented before the test, so
// with period 20 the first pass happens on frame 20, then 40, 60 and so on.
// A non-positive period never triggers.
func ShouldRecompute(counter uint64, period int) bool {
	if period <= 0 {
		return false
	}
	return counter%uint64(period) == 0
}
