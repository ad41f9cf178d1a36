package stats

// Debouncer is a single-slot delayed-commit scheduler. Arming it returns a
// generation token; a token fires only if no newer one was issued in the
// meantime, so at most one delayed commit is ever live. The caller supplies
// the actual timer (a tea.Tick in the UI).
type Debouncer struct {
	gen int
}

// Arm schedules a new pending commit, cancelling any previous one, and
// returns its generation token.
func (d *Debouncer) Arm() int {
	d.gen++
	return d.gen
}

// Fire reports whether the token still identifies the pending commit. A
// stale token means a newer gesture superseded it.
func (d *Debouncer) Fire(gen int) bool {
	return gen == d.gen
}

// Reset drops any pending commit.
func (d *Debouncer) Reset() {
	d.gen++
}
