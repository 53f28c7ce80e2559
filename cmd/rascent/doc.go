/*
Package rascent/main provides a command line tool to run the recursive ascent
parsers of this module. Without further flags it prints every registered
parser variant and runs it once on an input, which defaults to
"a+a*(a+a)*a". Flag -i starts an interactive mode, where every line entered
is parsed.

	rascent -variant minpush -tree "a*(a+a)"
	rascent -dot automaton.dot -html tables
	rascent -i

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rascent.cli'
func tracer() tracing.Trace {
	return tracing.Select("rascent.cli")
}
