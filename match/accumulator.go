package match

// Accumulator is the append-only result list a single probe call builds.
// Expansion policy (the backing slice's growth) is deliberately not
// observable from outside the package; callers only see Len and Matches.
type Accumulator struct {
	matches []Match
}

// NewAccumulator returns an empty Accumulator ready to receive matches.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Append adds m to the end of the result list, preserving discovery order:
// file order, then message/super-PDS order, then sub-grid/inner-PDS order.
func (a *Accumulator) Append(m Match) {
	a.matches = append(a.matches, m)
}

// Len returns the number of matches appended so far.
func (a *Accumulator) Len() int {
	return len(a.matches)
}

// Matches returns the accumulated matches in append order. The returned
// slice aliases the accumulator's backing store; callers must not retain
// it past the next Append.
func (a *Accumulator) Matches() []Match {
	return a.matches
}
