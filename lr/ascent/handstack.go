package ascent

import "fmt"

// stackLabel is the stack label type of the hand-compiled variants with
// minimal pushing. sl0 is the sentinel, the others are pushed by S5, S6 and
// S7, the only states a goto decision ever asks for.
type stackLabel uint8

const (
	sl0 stackLabel = iota
	sl5
	sl6
	sl7
)

func (l stackLabel) String() string {
	switch l {
	case sl0:
		return "SL0"
	case sl5:
		return "SL5"
	case sl6:
		return "SL6"
	case sl7:
		return "SL7"
	}
	return fmt.Sprintf("<stack label %d>", uint8(l))
}

// minStack is a stack of stack labels in a slice.
type minStack struct {
	entries []stackLabel
	counts  Stats
}

func newMinStack() *minStack {
	s := &minStack{entries: make([]stackLabel, 1, 32)}
	s.entries[0] = sl0
	s.counts.MaxDepth = 1
	return s
}

func (s *minStack) push(l stackLabel) {
	s.entries = append(s.entries, l)
	s.counts.Pushes++
	if len(s.entries) > s.counts.MaxDepth {
		s.counts.MaxDepth = len(s.entries)
	}
}

func (s *minStack) pop() {
	if len(s.entries) == 1 {
		panic("pop would remove stack sentinel")
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.counts.Pops++
}

func (s *minStack) top() stackLabel {
	return s.entries[len(s.entries)-1]
}

func (s *minStack) stats() Stats {
	st := s.counts
	st.FinalDepth = len(s.entries)
	return st
}

// topStack is a stack of stack labels with its top held in a field.
type topStack struct {
	below  []stackLabel
	last   stackLabel
	counts Stats
}

func newTopStack() *topStack {
	return &topStack{
		below:  make([]stackLabel, 0, 32),
		last:   sl0,
		counts: Stats{MaxDepth: 1},
	}
}

func (s *topStack) push(l stackLabel) {
	s.below = append(s.below, s.last)
	s.last = l
	s.counts.Pushes++
	if len(s.below)+1 > s.counts.MaxDepth {
		s.counts.MaxDepth = len(s.below) + 1
	}
}

func (s *topStack) pop() {
	if len(s.below) == 0 {
		panic("pop would remove stack sentinel")
	}
	s.last = s.below[len(s.below)-1]
	s.below = s.below[:len(s.below)-1]
	s.counts.Pops++
}

func (s *topStack) top() stackLabel {
	return s.last
}

func (s *topStack) stats() Stats {
	st := s.counts
	st.FinalDepth = len(s.below) + 1
	return st
}
