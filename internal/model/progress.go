package model

// AdjustProgress applies a relative delta to a goal's current value and
// clamps the result to [0, 2*target]. The interactive +/- flow goes
// through here; direct sets from the edit flow are intentionally
// unbounded and bypass this.
func AdjustProgress(current, target, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	if upper := 2 * target; next > upper {
		return upper
	}
	return next
}

// Adjusted returns a copy of the goal with the delta applied through
// the bounded adjustment.
func (g Goal) Adjusted(delta int) Goal {
	g.Current = AdjustProgress(g.Current, g.Target, delta)
	return g
}
