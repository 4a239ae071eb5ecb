package riffwalk

// levelStackAlloc is the number of entries the stack storage starts with.
const levelStackAlloc = 16

// levelStack holds the saved ancestor level descriptors, index 0 being the
// outermost. The backing storage grows by doubling and is indexed by an
// explicit depth counter, so entries above the current depth stay
// allocated across pops.
type levelStack struct {
	entries []Level
	depth   int
}

func (s *levelStack) push(lv Level) {
	if len(s.entries) < s.depth+1 {
		grownSize := len(s.entries) * 2
		if grownSize == 0 {
			grownSize = levelStackAlloc
		}

		grown := make([]Level, grownSize)
		copy(grown, s.entries[:s.depth])
		s.entries = grown
	}

	s.entries[s.depth] = lv
	s.depth++
}

func (s *levelStack) pop() (Level, bool) {
	if s.depth <= 0 {
		return Level{}, false
	}

	s.depth--

	return s.entries[s.depth], true
}

func (s *levelStack) at(i int) (Level, bool) {
	if i < 0 || i >= s.depth {
		return Level{}, false
	}

	return s.entries[i], true
}
