package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/rascent"
)

// StateSet is a set of states, represented as a bit set.
type StateSet uint16

// AllStates contains every state of the automaton.
const AllStates StateSet = 1<<StateCount - 1

// SetOf creates a set from state IDs.
func SetOf(ids ...StateID) StateSet {
	var set StateSet
	for _, id := range ids {
		set = set.Add(id)
	}
	return set
}

// Add returns set with id added.
func (set StateSet) Add(id StateID) StateSet {
	return set | 1<<id
}

// Contains is a predicate for membership of id.
func (set StateSet) Contains(id StateID) bool {
	return set&(1<<id) != 0
}

// Slice returns the members of the set in ascending order.
func (set StateSet) Slice() []StateID {
	var ids []StateID
	for id := StateID(0); id < 16; id++ {
		if set.Contains(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (set StateSet) String() string {
	var s []string
	for _, id := range set.Slice() {
		s = append(s, id.String())
	}
	return "{" + strings.Join(s, ",") + "}"
}

// --- Reverse goto ----------------------------------------------------------

// GotoCase is a branch of a reverse goto decision.
type GotoCase struct {
	Source StateID // stack label on top after popping
	Target StateID
}

// GotoDecision is the decision taken after a non-terminal has been reduced:
// which state to go to, depending on the stack label on top. Sources not
// listed in Cases go to Default.
type GotoDecision struct {
	Symbol  Symbol
	Cases   []GotoCase
	Default StateID
}

// Target returns the destination for a given top of stack.
func (d GotoDecision) Target(top StateID) StateID {
	for _, c := range d.Cases {
		if c.Source == top {
			return c.Target
		}
	}
	return d.Default
}

func (d GotoDecision) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "goto[%v]:", d.Symbol)
	for _, c := range d.Cases {
		fmt.Fprintf(&b, " %v→%v", c.Source, c.Target)
	}
	fmt.Fprintf(&b, " else→%v", d.Default)
	return b.String()
}

// ReverseGoto derives the goto decision for non-terminal A from the goto
// edges. Sources are grouped by destination. The group holding the start
// state is the default branch; if the start state has no edge for A, the
// largest group is. All other sources become discriminating cases.
func (a *Automaton) ReverseGoto(A Symbol) GotoDecision {
	edges := a.GotoEdges(A)
	if len(edges) == 0 {
		panic(fmt.Sprintf("no goto edges for %v", A))
	}
	groups := make(map[StateID]int)
	for _, e := range edges {
		groups[e.To]++
	}
	d := GotoDecision{Symbol: A}
	if target, ok := a.Goto(a.Start, A); ok {
		d.Default = target
	} else {
		max := 0
		for _, e := range edges { // edges are sorted, so this is deterministic
			if groups[e.To] > max {
				max, d.Default = groups[e.To], e.To
			}
		}
	}
	for _, e := range edges {
		if e.To != d.Default {
			d.Cases = append(d.Cases, GotoCase{Source: e.From, Target: e.To})
		}
	}
	tracer().Debugf("reverse %v", d)
	return d
}

// PushSet returns the states which are sources of some goto edge. These are
// exactly the labels a parser must find on the stack to resolve a goto, plus
// the start state, which serves as the stack's bottom.
func (a *Automaton) PushSet() StateSet {
	var set StateSet
	a.EachEdge(func(e Edge) {
		if !e.Label.IsTerminal() {
			set = set.Add(e.From)
		}
	})
	return set
}

// --- Merging ---------------------------------------------------------------

func (a *Automaton) behaviour(id StateID) string {
	s := a.State(id)
	var b strings.Builder
	for _, e := range a.Shifts(id) {
		fmt.Fprintf(&b, "%v>%d ", e.Label, e.To)
	}
	fmt.Fprintf(&b, "r%d a%v l%v", s.Reduce, s.Accept, s.Lookahead)
	return b.String()
}

// MergeClasses groups states with identical behaviour: the same shift edges,
// the same reduce rule, and the same accept and lookahead flags. States of a
// class differ in their goto edges only. Classes are ordered by their
// smallest member.
func (a *Automaton) MergeClasses() [][]StateID {
	byBehaviour := make(map[string][]StateID)
	var keys []string
	a.EachState(func(s *State) {
		key := a.behaviour(s.ID)
		if _, ok := byBehaviour[key]; !ok {
			keys = append(keys, key)
		}
		byBehaviour[key] = append(byBehaviour[key], s.ID)
	})
	classes := make([][]StateID, 0, len(keys))
	for _, k := range keys {
		classes = append(classes, byBehaviour[k])
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i][0] < classes[j][0] })
	return classes
}

// ClassOf returns the representative, i.e. the smallest member, of the merge
// class of state id.
func (a *Automaton) ClassOf(id StateID) StateID {
	for _, class := range a.MergeClasses() {
		for _, member := range class {
			if member == id {
				return class[0]
			}
		}
	}
	panic(fmt.Sprintf("state %d not in any merge class", id))
}

// --- Pop counts ------------------------------------------------------------

// PushTiming tells when a parser pushes a stack label.
type PushTiming uint8

// Push timings.
const (
	PushLate  PushTiming = iota // push the source state when shifting out of it
	PushFirst                   // push the destination state when entering it
)

func (t PushTiming) String() string {
	if t == PushFirst {
		return "push-first"
	}
	return "push-late"
}

// pathLevels walks back from reduce state id over the right hand side of its
// rule. Level k holds the states reached after the first k symbols, level n
// is {id} and level 0 holds the goto sources. It returns nil if a level is
// empty.
func (a *Automaton) pathLevels(id StateID) []StateSet {
	p := ProductionFor(a.State(id).Reduce)
	n := p.Len()
	levels := make([]StateSet, n+1)
	levels[n] = SetOf(id)
	for k := n; k >= 1; k-- {
		for _, s := range levels[k].Slice() {
			for _, pred := range a.Predecessors(s, p.RHS[k-1]) {
				levels[k-1] = levels[k-1].Add(pred)
			}
		}
		if levels[k-1] == 0 {
			return nil
		}
	}
	return levels
}

// PopCount returns the number of stack entries removed when reducing in state
// id, for a given push timing and a set of states which push.
//
// With PushLate, a state pushes its own label when a terminal is shifted out of
// it. The entries of a rule of length n are those of the states after the
// first 1…n-1 symbols; the entry of the goto source stays on the stack.
// With PushFirst, a state's label is pushed when it is entered, and the
// entries are those of the states after 1…n symbols.
//
// All paths into a level have to agree on whether they push. PopCount panics if
// they do not, as no parser could then know how many entries to pop.
func (a *Automaton) PopCount(id StateID, timing PushTiming, pushed StateSet) int {
	s := a.State(id)
	if s.Reduce == rascent.NoRule {
		panic(fmt.Sprintf("state %v does not reduce", id))
	}
	levels := a.pathLevels(id)
	if levels == nil {
		panic(fmt.Sprintf("state %v has no path over RHS of %v", id, s.Reduce))
	}
	n := len(levels) - 1
	last := n - 1
	if timing == PushFirst {
		last = n
	}
	count := 0
	for k := 1; k <= last; k++ {
		in := levels[k] & pushed
		if in == levels[k] {
			count++
		} else if in != 0 {
			panic(fmt.Sprintf("paths into %v disagree on pushing at %v for push set %v",
				id, levels[k], pushed))
		}
	}
	return count
}

// --- Fingerprint -----------------------------------------------------------

type modelView struct {
	Start  StateID
	States []State
	Edges  []Edge
}

// Fingerprint returns a digest of states and edges of the automaton. As
// the automaton is immutable, it never changes for a given instance.
func (a *Automaton) Fingerprint() string {
	v := modelView{Start: a.Start}
	a.EachState(func(s *State) {
		v.States = append(v.States, *s)
	})
	a.EachEdge(func(e Edge) {
		v.Edges = append(v.Edges, e)
	})
	h, err := structhash.Hash(v, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot fingerprint automaton: %v", err))
	}
	return h
}
