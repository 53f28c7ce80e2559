package ascent

import (
	"fmt"

	"github.com/npillmayer/rascent/lr"
)

// Stats counts stack operations of a single parse. Depths include the
// sentinel.
type Stats struct {
	Pushes     int
	Pops       int
	MaxDepth   int
	FinalDepth int
}

func (st Stats) String() string {
	return fmt.Sprintf("push=%d pop=%d max=%d final=%d", st.Pushes, st.Pops, st.MaxDepth, st.FinalDepth)
}

// labelStack is the explicit parse stack. It is never empty: its bottom entry
// is the sentinel, which may not be popped.
type labelStack interface {
	push(lr.StateID)
	pop(n int)
	top() lr.StateID
	depth() int
	stats() Stats
}

// sliceStack holds all labels in a slice.
type sliceStack struct {
	entries []lr.StateID
	counts  Stats
}

func newSliceStack(sentinel lr.StateID) *sliceStack {
	s := &sliceStack{entries: make([]lr.StateID, 1, 32)}
	s.entries[0] = sentinel
	s.counts.MaxDepth = 1
	return s
}

func (s *sliceStack) push(l lr.StateID) {
	s.entries = append(s.entries, l)
	s.counts.Pushes++
	if len(s.entries) > s.counts.MaxDepth {
		s.counts.MaxDepth = len(s.entries)
	}
}

func (s *sliceStack) pop(n int) {
	if n >= len(s.entries) {
		panic(fmt.Sprintf("pop of %d labels would remove stack sentinel %v", n, s.entries[0]))
	}
	s.entries = s.entries[:len(s.entries)-n]
	s.counts.Pops += n
}

func (s *sliceStack) top() lr.StateID {
	return s.entries[len(s.entries)-1]
}

func (s *sliceStack) depth() int {
	return len(s.entries)
}

func (s *sliceStack) stats() Stats {
	st := s.counts
	st.FinalDepth = len(s.entries)
	return st
}

// cachedStack keeps the top label in a scalar. The slice holds the labels
// below it.
type cachedStack struct {
	below  []lr.StateID
	tos    lr.StateID
	counts Stats
}

func newCachedStack(sentinel lr.StateID) *cachedStack {
	return &cachedStack{
		below:  make([]lr.StateID, 0, 32),
		tos:    sentinel,
		counts: Stats{MaxDepth: 1},
	}
}

func (s *cachedStack) push(l lr.StateID) {
	s.below = append(s.below, s.tos)
	s.tos = l
	s.counts.Pushes++
	if len(s.below)+1 > s.counts.MaxDepth {
		s.counts.MaxDepth = len(s.below) + 1
	}
}

func (s *cachedStack) pop(n int) {
	if n == 0 {
		return
	}
	if n > len(s.below) {
		panic(fmt.Sprintf("pop of %d labels would remove stack sentinel", n))
	}
	s.tos = s.below[len(s.below)-n]
	s.below = s.below[:len(s.below)-n]
	s.counts.Pops += n
}

func (s *cachedStack) top() lr.StateID {
	return s.tos
}

func (s *cachedStack) depth() int {
	return len(s.below) + 1
}

func (s *cachedStack) stats() Stats {
	st := s.counts
	st.FinalDepth = len(s.below) + 1
	return st
}
