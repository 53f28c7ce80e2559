/*
Package lr holds the grammar automaton model for the expression grammar

    S = E
    E = E + T  |  T
    T = T * F  |  F
    F = a      |  ( E )

The model is the LR(0) state graph of this grammar, i.e. its characteristic
finite state machine (CFSM). It is pure data: states, shift edges on terminals,
goto edges on non-terminals, and a reduce rule for every state with a completed
item. It is shared, unchanged, by every parser of this module; parsers differ
only in how they encode it into control labels and stack labels.

Grammar

The rules are fixed. They are described twice: as a rule table (see Productions)
and as EBNF text (see GrammarEBNF). CheckGrammar uses golang.org/x/exp/ebnf to
make sure both descriptions agree.

    for _, p := range lr.Productions() {
        fmt.Println(p)         // "E = E + T", …
    }

The Automaton

NewAutomaton creates the state graph. Its consistency with the grammar may be
checked with Validate, which re-computes LR(0) closures and goto sets for every
edge.

    a := lr.NewAutomaton()
    if err := a.Validate(); err != nil { … }
    next, ok := a.Shift(lr.S0, '(')   // S5
    next, ok = a.Goto(lr.S5, lr.E)    // S8

Derived Encodings

Recursive ascent parsers need more than the bare state graph. The encodings
they rely on are derived from the goto table, never picked by hand, so that
editing the model cannot silently break a parser:

  ■ ReverseGoto(X) is the decision "X has just been reduced, where do we go?",
  switching on the stack label on top.

  ■ PushSet() is the set of states which have to be pushed onto the stack for
  the goto decisions to be resolvable.

  ■ MergeClasses() groups states with identical shift/reduce behaviour.

  ■ PopCount(…) tells how many stack entries a reduction removes, given a
  push timing and a push set.

Parser Tables

NewTables turns the automaton into a GOTO table and an SLR(1) ACTION table,
stored as sparse matrices. These are the tables which a conventional LR parser
interprets (see package slr). Tables and automaton may be exported to HTML and
to Graphviz's Dot format, respectively.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rascent.lr'.
func tracer() tracing.Trace {
	return tracing.Select("rascent.lr")
}
