/*
Package ascent implements recursive ascent parsers for the expression grammar.

A recursive ascent parser is an LR parser compiled into control flow: every
state of the LR(0) automaton becomes a label, shifts become jumps, and the
GOTO table is replaced by code branching on an explicit stack. This package
explores the semantics-preserving transformations of such parsers:

  ■ reverse goto: after reducing X, switch on the stack label on top instead
  of looking up GOTO(top, X)

  ■ chain elimination: follow chains of reductions which are statically known
  at compile time, instead of jumping through their states

  ■ minimal pushing: push only labels which some goto decision inspects

  ■ push-first timing and label merging: push the destination when entering a
  state, which allows states of identical behaviour to share one label

  ■ cached top: hold the top stack label in a variable outside the stack

  ■ inlining of single-use labels.

Every combination of the first five axes is described by a Config and run by
the configurable Engine, which compiles the automaton of package lr into flat
tables. In addition, hand-compiled variants express particular points of the
optimization space directly in Go control flow.

All parsers share the same contract. Given an input cursor and a semantic
action sink, they report every reduction to the sink, bottom-up, and return nil
on acceptance or a rascent.Error. On acceptance the stack is back to its
sentinel bottom label, the start state.

	v, _ := ascent.Lookup("minpush")
	err := v.Parse(scanner.FromString("a+a*(a+a)*a"), rascent.Discard)

Configuration

Engines check the stack discipline at acceptance if the global configuration
flag "ascent-check-discipline" is set (see package schuko/gconf).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ascent

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rascent.ascent'.
func tracer() tracing.Trace {
	return tracing.Select("rascent.ascent")
}
