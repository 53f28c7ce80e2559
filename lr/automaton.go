package lr

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/rascent"
)

// StateID identifies a state of the LR(0) automaton.
type StateID uint8

// The states of the automaton, numbered in order of construction.
const (
	S0 StateID = iota
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
)

// StateCount is the number of states of the automaton.
const StateCount = 12

func (id StateID) String() string {
	return fmt.Sprintf("S%d", id)
}

// --- Items -----------------------------------------------------------------

// Item is an LR(0) item, i.e. a rule with a dot position in its right hand side.
type Item struct {
	Rule rascent.Rule
	Dot  int
}

// Production returns the grammar rule of an item.
func (i Item) Production() *Production {
	return ProductionFor(i.Rule)
}

// PeekSymbol returns the symbol after the dot, if any.
func (i Item) PeekSymbol() (Symbol, bool) {
	p := i.Production()
	if i.Dot >= len(p.RHS) {
		return EOF, false
	}
	return p.RHS[i.Dot], true
}

// Completed is true if the dot is behind the right hand side.
func (i Item) Completed() bool {
	return i.Dot >= i.Production().Len()
}

// Advance moves the dot one symbol to the right.
func (i Item) Advance() Item {
	return Item{Rule: i.Rule, Dot: i.Dot + 1}
}

func (i Item) String() string {
	p := i.Production()
	var b bytes.Buffer
	b.WriteString(p.LHS.String())
	b.WriteString(" =")
	for k, A := range p.RHS {
		if k == i.Dot {
			b.WriteString(" •")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(A.String())
	}
	if i.Completed() {
		b.WriteString(" •")
	}
	return b.String()
}

func itemComparator(a, b interface{}) int {
	i1, i2 := a.(Item), b.(Item)
	if i1.Rule != i2.Rule {
		return int(i1.Rule) - int(i2.Rule)
	}
	return i1.Dot - i2.Dot
}

// closure adds the start items of every non-terminal after a dot, until
// nothing changes.
func closure(S *treeset.Set) *treeset.Set {
	C := treeset.NewWith(itemComparator, S.Values()...)
	for changed := true; changed; {
		changed = false
		for _, x := range C.Values() {
			B, ok := x.(Item).PeekSymbol()
			if !ok || B.IsTerminal() {
				continue
			}
			for _, p := range productions {
				if p.LHS == B && !C.Contains(Item{Rule: p.Rule}) {
					C.Add(Item{Rule: p.Rule})
					changed = true
				}
			}
		}
	}
	return C
}

// gotoSet computes the closure of all items of S with A after the dot,
// the dot moved over A.
func gotoSet(S *treeset.Set, A Symbol) *treeset.Set {
	G := treeset.NewWith(itemComparator)
	for _, x := range S.Values() {
		if B, ok := x.(Item).PeekSymbol(); ok && B == A {
			G.Add(x.(Item).Advance())
		}
	}
	if G.Empty() {
		return G
	}
	return closure(G)
}

// --- States and edges ------------------------------------------------------

// StateKind classifies states by what a parser does in them.
type StateKind uint8

// Kinds of states.
const (
	ShiftState     StateKind = iota // consume a terminal and move on
	AcceptState                     // shift, or accept at end of input
	LookaheadState                  // peek: shift, or reduce without consuming
	ReduceState                     // reduce without looking at the input
)

func (k StateKind) String() string {
	switch k {
	case ShiftState:
		return "shift"
	case AcceptState:
		return "accept"
	case LookaheadState:
		return "lookahead"
	case ReduceState:
		return "reduce"
	}
	return "<unknown>"
}

// State is a state of the LR(0) automaton. Reduce, Accept and Lookahead are
// derived from the items.
type State struct {
	ID        StateID
	Items     []Item
	Reduce    rascent.Rule // rule of the completed item, or NoRule
	Accept    bool         // reduces S = E at end of input
	Lookahead bool         // completed item plus shift items: decide by peeking
}

// Kind returns the classification of a state.
func (s *State) Kind() StateKind {
	switch {
	case s.Accept:
		return AcceptState
	case s.Lookahead:
		return LookaheadState
	case s.Reduce != rascent.NoRule:
		return ReduceState
	}
	return ShiftState
}

func (s *State) String() string {
	return fmt.Sprintf("(state %d | %v)", s.ID, s.Items)
}

func stateComparator(s1, s2 interface{}) int {
	return int(s1.(*State).ID) - int(s2.(*State).ID)
}

// Edge is a transition of the automaton. Edges labelled with a terminal are
// shifts, edges labelled with a non-terminal are gotos.
type Edge struct {
	From, To StateID
	Label    Symbol
}

func (e Edge) String() string {
	return fmt.Sprintf("%v --%v--> %v", e.From, e.Label, e.To)
}

// --- Automaton -------------------------------------------------------------

// Automaton is the LR(0) automaton of the expression grammar, a.k.a. its
// characteristic finite state machine. It is immutable after construction.
type Automaton struct {
	states *treeset.Set    // of *State, ordered by ID
	edges  *arraylist.List // of Edge
	index  []*State
	itemss []*treeset.Set // item set of every state, by ID
	Start  StateID
}

// symbolOrder is the order in which edges are explored during construction.
// It determines the numbering of the states.
var symbolOrder = []Symbol{E, T, F, TermA, LParen, RParen, Plus, Star}

// NewAutomaton builds the LR(0) automaton, starting from the closure of
// S = •E. States are numbered breadth first.
func NewAutomaton() *Automaton {
	a := &Automaton{
		states: treeset.NewWith(stateComparator),
		edges:  arraylist.New(),
		Start:  S0,
	}
	start := closure(treeset.NewWith(itemComparator, Item{Rule: rascent.RuleSE}))
	a.addState(start)
	for k := 0; k < len(a.index); k++ { // index grows while we iterate
		s := a.index[k]
		for _, A := range symbolOrder {
			G := gotoSet(a.itemss[s.ID], A)
			if G.Empty() {
				continue
			}
			target := a.findState(G)
			if target == nil {
				target = a.addState(G)
			}
			a.edges.Add(Edge{From: s.ID, To: target.ID, Label: A})
			tracer().Debugf("edge %v --%v--> %v", s.ID, A, target.ID)
		}
	}
	tracer().Infof("LR(0) automaton has %d states and %d edges", a.states.Size(), a.edges.Size())
	return a
}

func (a *Automaton) addState(iset *treeset.Set) *State {
	if len(a.index) >= StateCount {
		panic("LR(0) automaton has more states than expected")
	}
	s := &State{ID: StateID(len(a.index))}
	shifts := false
	for _, x := range iset.Values() {
		i := x.(Item)
		s.Items = append(s.Items, i)
		if A, ok := i.PeekSymbol(); ok && A.IsTerminal() {
			shifts = true
		}
		if i.Completed() {
			if s.Reduce != rascent.NoRule {
				panic(fmt.Sprintf("reduce/reduce conflict in state %d", s.ID))
			}
			s.Reduce = i.Rule
		}
	}
	s.Accept = s.Reduce == rascent.RuleSE
	s.Lookahead = s.Reduce != rascent.NoRule && shifts && !s.Accept
	a.states.Add(s)
	a.index = append(a.index, s)
	a.itemss = append(a.itemss, iset)
	tracer().Debugf("new state %v", s)
	return s
}

func (a *Automaton) findState(iset *treeset.Set) *State {
	for id, other := range a.itemss {
		if sameItems(iset, other) {
			return a.index[id]
		}
	}
	return nil
}

func sameItems(s1, s2 *treeset.Set) bool {
	if s1.Size() != s2.Size() {
		return false
	}
	v1, v2 := s1.Values(), s2.Values()
	for i := range v1 {
		if itemComparator(v1[i], v2[i]) != 0 {
			return false
		}
	}
	return true
}

// State returns the state with a given ID. It panics for an unknown ID.
func (a *Automaton) State(id StateID) *State {
	if int(id) >= len(a.index) {
		panic(fmt.Sprintf("no state %d in automaton", id))
	}
	return a.index[id]
}

// Size returns the number of states.
func (a *Automaton) Size() int {
	return a.states.Size()
}

// EachState calls f for every state, ordered by ID.
func (a *Automaton) EachState(f func(*State)) {
	it := a.states.Iterator()
	for it.Next() {
		f(it.Value().(*State))
	}
}

// EachEdge calls f for every edge, in order of construction.
func (a *Automaton) EachEdge(f func(Edge)) {
	it := a.edges.Iterator()
	for it.Next() {
		f(it.Value().(Edge))
	}
}

func (a *Automaton) transition(id StateID, A Symbol) (StateID, bool) {
	_, x := a.edges.Find(func(_ int, v interface{}) bool {
		e := v.(Edge)
		return e.From == id && e.Label == A
	})
	if x == nil {
		return 0, false
	}
	return x.(Edge).To, true
}

// Shift returns the state reached from state id by shifting terminal c.
func (a *Automaton) Shift(id StateID, c rune) (StateID, bool) {
	if c < 0 {
		return 0, false
	}
	return a.transition(id, Symbol(c))
}

// Goto returns the state reached from state id after reducing non-terminal A.
func (a *Automaton) Goto(id StateID, A Symbol) (StateID, bool) {
	if A.IsTerminal() {
		return 0, false
	}
	return a.transition(id, A)
}

// Shifts returns the shift edges of a state, ordered by terminal.
func (a *Automaton) Shifts(id StateID) []Edge {
	var shifts []Edge
	a.EachEdge(func(e Edge) {
		if e.From == id && e.Label.IsTerminal() {
			shifts = append(shifts, e)
		}
	})
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].Label < shifts[j].Label })
	return shifts
}

// GotoEdges returns the goto edges labelled with non-terminal A, ordered by source.
func (a *Automaton) GotoEdges(A Symbol) []Edge {
	var gotos []Edge
	a.EachEdge(func(e Edge) {
		if e.Label == A && !A.IsTerminal() {
			gotos = append(gotos, e)
		}
	})
	sort.Slice(gotos, func(i, j int) bool { return gotos[i].From < gotos[j].From })
	return gotos
}

// GotoSources returns the states having a goto edge for non-terminal A.
func (a *Automaton) GotoSources(A Symbol) []StateID {
	var sources []StateID
	for _, e := range a.GotoEdges(A) {
		sources = append(sources, e.From)
	}
	return sources
}

// Predecessors returns the states with an edge labelled A into state id.
func (a *Automaton) Predecessors(id StateID, A Symbol) []StateID {
	var preds StateSet
	a.EachEdge(func(e Edge) {
		if e.To == id && e.Label == A {
			preds = preds.Add(e.From)
		}
	})
	return preds.Slice()
}

// --- Validation ------------------------------------------------------------

// Validate checks the automaton against the grammar:
//
//   ■ the start state has no incoming edges
//
//   ■ every state has an edge for exactly the symbols after a dot in its items
//
//   ■ every edge leads to the goto set of its source state
//
//   ■ reductions are free of conflicts for a single symbol of lookahead
//
//   ■ for every reduce state, all paths back over the right hand side exist
//
//   ■ every state on which a goto decision depends is in PushSet, and vice versa.
//
// An automaton returned by NewAutomaton is valid, unless the grammar rules
// have been tampered with.
func (a *Automaton) Validate() error {
	var err error
	a.EachEdge(func(e Edge) {
		if e.To == a.Start && err == nil {
			err = fmt.Errorf("start state %v has incoming edge %v", a.Start, e)
		}
	})
	if err != nil {
		return err
	}
	follow := FollowSets()
	for _, s := range a.index {
		expected := treeset.NewWith(symbolComparator)
		for _, i := range s.Items {
			if A, ok := i.PeekSymbol(); ok {
				expected.Add(A)
			}
		}
		for _, A := range expected.Values() {
			if _, ok := a.transition(s.ID, A.(Symbol)); !ok {
				return fmt.Errorf("state %v has no edge for %v", s.ID, A)
			}
		}
		a.EachEdge(func(e Edge) {
			if e.From == s.ID && !expected.Contains(e.Label) && err == nil {
				err = fmt.Errorf("state %v has illegal edge %v", s.ID, e)
			}
		})
		if err != nil {
			return err
		}
		if s.Lookahead {
			p := ProductionFor(s.Reduce)
			for _, e := range a.Shifts(s.ID) {
				if follow[p.LHS].Contains(e.Label) {
					return fmt.Errorf("shift/reduce conflict in state %v on %v", s.ID, e.Label)
				}
			}
		}
		if s.Reduce != rascent.NoRule {
			if levels := a.pathLevels(s.ID); levels == nil {
				return fmt.Errorf("state %v reduces %v, but has no path over its RHS", s.ID, s.Reduce)
			}
		}
	}
	a.EachEdge(func(e Edge) {
		if err == nil && !sameItems(a.itemss[e.To], gotoSet(a.itemss[e.From], e.Label)) {
			err = fmt.Errorf("edge %v does not lead to goto set", e)
		}
	})
	if err != nil {
		return err
	}
	return a.validatePushSet()
}

func (a *Automaton) validatePushSet() error {
	var discriminants StateSet
	for _, A := range NonTerminals {
		for _, c := range a.ReverseGoto(A).Cases {
			discriminants = discriminants.Add(c.Source)
		}
	}
	push := a.PushSet()
	for _, id := range push.Slice() {
		if id != a.Start && !discriminants.Contains(id) {
			return fmt.Errorf("push set member %v is not inspected by any goto decision", id)
		}
	}
	if !push.Contains(a.Start) {
		return fmt.Errorf("start state %v is not a goto source", a.Start)
	}
	if discriminants&^push != 0 {
		return fmt.Errorf("goto discriminants %v not in push set %v", discriminants, push)
	}
	return nil
}
