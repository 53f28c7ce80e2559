/*
Package slr provides a table-driven SLR(1)-parser for the expression grammar.
It interprets the GOTO and ACTION tables created by package lr, i.e. it is the
canonical "goto by table" parser which recursive ascent compiles away.

The parser is the reference for every other parser of this module: it is
small, obviously correct and derived mechanically from the automaton.

Usage

	a := lr.NewAutomaton()
	tables := lr.NewTables(a)
	if tables.HasConflicts { ... }  // cannot use an SLR parser

Then parse some input:

	p := slr.NewParser(tables)
	err := p.Parse(scanner.FromString("a+a*a"), sink)

Reductions are reported to a semantic action sink in the same order as every
other parser of this module does.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"fmt"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/rascent/lr"
	"github.com/npillmayer/rascent/lr/scanner"
)

// tracer traces with key 'rascent.lr'.
func tracer() tracing.Trace {
	return tracing.Select("rascent.lr")
}

// Parser is an SLR(1)-parser type. Create and initialize one with slr.NewParser(...)
type Parser struct {
	stack   []stackitem // parser stack
	gotoT   *lr.Table   // GOTO table
	actionT *lr.Table   // ACTION table
	start   lr.StateID
}

// We store pairs of state-IDs and symbols on the parse stack.
type stackitem struct {
	stateID lr.StateID // ID of an LR(0) state
	sym     lr.Symbol  // grammar symbol (terminal or non-terminal)
}

// NewParser creates an SLR(1) parser.
func NewParser(tables *lr.Tables) *Parser {
	return &Parser{
		stack:   make([]stackitem, 0, 64),
		gotoT:   tables.Goto,
		actionT: tables.Action,
		start:   tables.Automaton().Start,
	}
}

// Parse starts a new parse, reading terminals from a cursor. Every reduction is
// reported to sink, which may be nil.
//
// Parse returns nil if the input has been accepted, and a rascent.Error otherwise.
// The parser may be re-used for subsequent parses, but not concurrently.
func (p *Parser) Parse(input scanner.Cursor, sink rascent.Sink) error {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.gotoT == nil || p.actionT == nil {
		panic("SLR(1)-parser not initialized")
	}
	sink = sink.OrDiscard()
	p.stack = append(p.stack[:0], stackitem{p.start, lr.S}) // push S0
	for {
		c, ok := input.Peek()
		la := lr.EOF
		if ok {
			if !isTerminal(c) {
				return rascent.ErrUnexpected(c)
			}
			la = lr.Symbol(c)
		}
		state := p.stack[len(p.stack)-1] // TOS
		action := p.actionT.Value(state.stateID, la)
		tracer().Debugf("action(%v,%v)=%s", state.stateID, la, valstring(action, p.actionT))
		switch {
		case action == p.actionT.NullValue():
			if !ok {
				return rascent.ErrEOF
			}
			return rascent.ErrUnexpected(c)
		case action == lr.AcceptAction:
			sink(rascent.RuleSE)
			if len(p.stack) != 2 {
				panic(fmt.Sprintf("SLR(1)-parser accepts with stack depth %d", len(p.stack)))
			}
			return nil
		case action == lr.ShiftAction:
			input.Next()
			nextstate := lr.StateID(p.gotoT.Value(state.stateID, la))
			tracer().Debugf("shifting, next state = %v", nextstate)
			p.stack = append(p.stack, stackitem{nextstate, la}) // push a terminal state onto stack
		default: // reduce action
			rule := lr.ProductionFor(rascent.Rule(action))
			nextstate := p.reduce(rule)
			sink(rule.Rule)
			tracer().Debugf("reduced to next state = %v", nextstate)
			p.stack = append(p.stack, stackitem{nextstate, rule.LHS}) // push a non-terminal state onto stack
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn) ... S1(X1)  ...
//
func (p *Parser) reduce(rule *lr.Production) lr.StateID {
	tracer().Infof("reduce %v", rule)
	for k := rule.Len() - 1; k >= 0; k-- {
		tos := p.stack[len(p.stack)-1]
		if tos.sym != rule.RHS[k] {
			panic(fmt.Sprintf("expected %v on top of stack, got %v", rule.RHS[k], tos.sym))
		}
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
	}
	state := p.stack[len(p.stack)-1] // TOS
	return lr.StateID(p.gotoT.Value(state.stateID, rule.LHS))
}

// --- Helpers ----------------------------------------------------------

func isTerminal(c rune) bool {
	for _, A := range lr.Terminals {
		if lr.Symbol(c) == A {
			return true
		}
	}
	return false
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *lr.Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == lr.AcceptAction {
		return "<accept>"
	} else if v == lr.ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %v>", rascent.Rule(v))
}
