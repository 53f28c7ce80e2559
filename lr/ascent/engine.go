package ascent

import (
	"fmt"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr"
	"github.com/npillmayer/rascent/lr/scanner"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

const (
	termCount = 5 // a + * ( )
	ntCount   = 3 // E T F
)

// termIndex maps a terminal to a column of the compiled tables, or -1.
func termIndex(c rune) int {
	switch c {
	case 'a':
		return 0
	case '+':
		return 1
	case '*':
		return 2
	case '(':
		return 3
	case ')':
		return 4
	}
	return -1
}

// ntIndex maps E, T and F to 0, 1 and 2.
func ntIndex(A lr.Symbol) int {
	return int(lr.E - A)
}

// step is a compiled shift: labels to push, rules to report, next label.
type step struct {
	push  []lr.StateID
	rules []rascent.Rule
	next  lr.StateID
}

// node is a compiled control label.
type node struct {
	kind   lr.StateKind
	shifts [termCount]*step
	rule   rascent.Rule
	lhs    int // non-terminal index of the rule's LHS
	pops   int
}

func (n *node) shift(c rune) *step {
	if j := termIndex(c); j >= 0 {
		return n.shifts[j]
	}
	return nil
}

// Engine is a recursive ascent parser for one configuration. Engines are
// created by NewEngine and are safe for concurrent use, as every parse
// allocates its own stack.
type Engine struct {
	config   Config
	start    lr.StateID
	pushed   lr.StateSet // states which push, never including the sentinel
	ctrl     [lr.StateCount]lr.StateID
	nodes    [lr.StateCount]node
	gotoT    [lr.StateCount][ntCount]int8
	reverse  [ntCount]lr.GotoDecision
	checking bool // check stack discipline on accept
}

// NewEngine compiles the automaton for a configuration. The automaton is not
// modified.
func NewEngine(a *lr.Automaton, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		config:   cfg,
		start:    a.Start,
		checking: gconf.GetBool("ascent-check-discipline"),
	}
	e.pushed = lr.AllStates
	if cfg.Push == PushMinimal {
		e.pushed = a.PushSet()
	}
	e.pushed &^= lr.SetOf(a.Start)
	tracer().Debugf("compiling engine %v, push set = %v", cfg, e.pushed)
	for id := lr.StateID(0); id < lr.StateCount; id++ {
		e.ctrl[id] = id
		if cfg.MergeLabels {
			e.ctrl[id] = a.ClassOf(id)
		}
	}
	a.EachState(func(s *lr.State) {
		if e.ctrl[s.ID] != s.ID {
			return // merged into its class representative
		}
		n := &e.nodes[s.ID]
		n.kind = s.Kind()
		if s.Reduce != rascent.NoRule {
			n.rule = s.Reduce
			n.pops = a.PopCount(s.ID, cfg.Timing, e.pushed)
			if !s.Accept {
				n.lhs = ntIndex(lr.ProductionFor(s.Reduce).LHS)
			}
		}
		for _, edge := range a.Shifts(s.ID) {
			n.shifts[termIndex(rune(edge.Label))] = e.compileShift(a, edge)
		}
	})
	for i := range e.gotoT {
		for j := range e.gotoT[i] {
			e.gotoT[i][j] = -1
		}
	}
	for _, A := range lr.NonTerminals {
		for _, edge := range a.GotoEdges(A) {
			e.gotoT[edge.From][ntIndex(A)] = int8(edge.To)
		}
		e.reverse[ntIndex(A)] = a.ReverseGoto(A)
	}
	return e, nil
}

// MustEngine is like NewEngine, but panics for an invalid configuration.
func MustEngine(a *lr.Automaton, cfg Config) *Engine {
	e, err := NewEngine(a, cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the configuration of an engine.
func (e *Engine) Config() Config {
	return e.config
}

// compileShift creates the step for a shift edge. With chain elimination,
// the reductions following the shift are simulated on the LR states known
// from this edge alone, as long as they pop no stack entries older than the
// step itself.
func (e *Engine) compileShift(a *lr.Automaton, edge lr.Edge) *step {
	st := &step{next: e.ctrl[edge.To]}
	if e.config.Timing == PushLate && e.pushed.Contains(edge.From) {
		st.push = append(st.push, edge.From)
	} else if e.config.Timing == PushFirst && e.pushed.Contains(edge.To) {
		st.push = append(st.push, edge.To)
	}
	if !e.config.ChainElim {
		return st
	}
	states := []lr.StateID{edge.From, edge.To}
	for {
		s := a.State(states[len(states)-1])
		if s.Kind() != lr.ReduceState {
			break
		}
		p := lr.ProductionFor(s.Reduce)
		pops := a.PopCount(s.ID, e.config.Timing, e.pushed)
		if len(states) <= p.Len() || pops > len(st.push) {
			break
		}
		st.push = st.push[:len(st.push)-pops]
		states = states[:len(states)-p.Len()]
		target, ok := a.Goto(states[len(states)-1], p.LHS)
		if !ok {
			panic(fmt.Sprintf("no goto from %v on %v", states[len(states)-1], p.LHS))
		}
		st.rules = append(st.rules, s.Reduce)
		states = append(states, target)
		if e.config.Timing == PushFirst && e.pushed.Contains(target) {
			st.push = append(st.push, target)
		}
		st.next = target
	}
	tracer().Debugf("step %v: push %v, rules %v, next %v", edge, st.push, st.rules, st.next)
	return st
}

// Parse runs the parser on an input. Every reduction is reported to sink,
// which may be nil. Parse returns nil if the input has been accepted, and a
// rascent.Error otherwise.
func (e *Engine) Parse(input scanner.Cursor, sink rascent.Sink) error {
	_, err := e.ParseStats(input, sink)
	return err
}

// ParseStats is like Parse, but reports stack statistics as well.
func (e *Engine) ParseStats(input scanner.Cursor, sink rascent.Sink) (Stats, error) {
	sink = sink.OrDiscard()
	var stack labelStack
	if e.config.CachedTop {
		stack = newCachedStack(e.start)
	} else {
		stack = newSliceStack(e.start)
	}
	debug := tracer().GetTraceLevel() == tracing.LevelDebug
	label := e.ctrl[e.start]
	for {
		n := &e.nodes[label]
		if debug {
			tracer().Debugf("label %v, top = %v, depth = %d", label, stack.top(), stack.depth())
		}
		switch n.kind {
		case lr.ShiftState, lr.AcceptState:
			c, ok := input.Next()
			if !ok {
				if n.kind == lr.AcceptState {
					e.accept(n, stack, sink)
					return stack.stats(), nil
				}
				return stack.stats(), rascent.ErrEOF
			}
			st := n.shift(c)
			if st == nil {
				return stack.stats(), rascent.ErrUnexpected(c)
			}
			label = e.run(st, stack, sink)
		case lr.LookaheadState:
			if c, ok := input.Peek(); ok {
				if st := n.shift(c); st != nil {
					input.Next()
					label = e.run(st, stack, sink)
					continue
				}
			}
			label = e.reduce(n, stack, sink)
		case lr.ReduceState:
			label = e.reduce(n, stack, sink)
		default:
			panic(fmt.Sprintf("impossible kind of label %v", label))
		}
	}
}

func (e *Engine) run(st *step, stack labelStack, sink rascent.Sink) lr.StateID {
	for _, l := range st.push {
		stack.push(l)
	}
	for _, r := range st.rules {
		sink(r)
	}
	return st.next
}

func (e *Engine) reduce(n *node, stack labelStack, sink rascent.Sink) lr.StateID {
	stack.pop(n.pops)
	sink(n.rule)
	top := stack.top()
	var target lr.StateID
	if e.config.Goto == GotoReverse {
		target = e.reverse[n.lhs].Target(top)
	} else {
		t := e.gotoT[top][n.lhs]
		if t < 0 {
			panic(fmt.Sprintf("impossible stack label %v for goto on %v", top, lr.NonTerminals[n.lhs]))
		}
		target = lr.StateID(t)
	}
	if e.config.Timing == PushFirst && e.pushed.Contains(target) {
		stack.push(target)
	}
	return e.ctrl[target]
}

func (e *Engine) accept(n *node, stack labelStack, sink rascent.Sink) {
	stack.pop(n.pops)
	if e.checking && (stack.depth() != 1 || stack.top() != e.start) {
		panic(fmt.Sprintf("accepting with stack depth %d, top %v", stack.depth(), stack.top()))
	}
	sink(n.rule)
}
