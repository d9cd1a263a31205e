package navtree

// DefaultOpened is the state given to a code the first time it is observed.
const DefaultOpened = true

// ExpansionState remembers the opened/closed flag of each code.
// It is independent of any Node and is the only state that survives a
// rebuild. Entries are never removed; flags for codes that leave the
// backing mapping simply stay dormant.
type ExpansionState struct {
	opened map[string]bool
}

// NewExpansionState returns an empty state.
func NewExpansionState() *ExpansionState {
	return &ExpansionState{opened: make(map[string]bool)}
}

// Observe returns the flag for code, recording DefaultOpened first if the
// code has never been seen.
func (s *ExpansionState) Observe(code string) bool {
	if opened, ok := s.opened[code]; ok {
		return opened
	}
	s.opened[code] = DefaultOpened
	return DefaultOpened
}

// Set records the flag for code.
func (s *ExpansionState) Set(code string, opened bool) {
	s.opened[code] = opened
}

// Lookup returns the flag for code and whether the code has been observed.
func (s *ExpansionState) Lookup(code string) (opened, known bool) {
	opened, known = s.opened[code]
	return opened, known
}

// Len returns the number of recorded codes, dormant ones included.
func (s *ExpansionState) Len() int {
	return len(s.opened)
}

// Snapshot returns a copy of the recorded flags.
func (s *ExpansionState) Snapshot() map[string]bool {
	out := make(map[string]bool, len(s.opened))
	for code, opened := range s.opened {
		out[code] = opened
	}
	return out
}
