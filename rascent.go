package rascent

import (
	"errors"
	"fmt"
)

// --- Rules -----------------------------------------------------------------

// Rule identifies a grammar rule. A rule is reported to the semantic action sink
// every time a parser reduces it.
type Rule uint8

// The rules of the expression grammar. NoRule is the zero value and never
// reported to a sink.
const (
	NoRule     Rule = iota
	RuleFa          // F = a
	RuleFParen      // F = ( E )
	RuleTF          // T = F
	RuleTMul        // T = T * F
	RuleET          // E = T
	RuleEAdd        // E = E + T
	RuleSE          // S = E
)

// RuleCount is the number of grammar rules, not counting NoRule.
const RuleCount = int(RuleSE)

var ruleNames = [...]string{
	NoRule:     "<no rule>",
	RuleFa:     "F = a",
	RuleFParen: "F = ( E )",
	RuleTF:     "T = F",
	RuleTMul:   "T = T * F",
	RuleET:     "E = T",
	RuleEAdd:   "E = E + T",
	RuleSE:     "S = E",
}

func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("<rule %d>", r)
}

// RuleByName returns the rule for a string as produced by Rule.String, ignoring
// the spacing between symbols.
func RuleByName(name string) (Rule, bool) {
	want := stripBlanks(name)
	for r := RuleFa; r <= RuleSE; r++ {
		if stripBlanks(ruleNames[r]) == want {
			return r, true
		}
	}
	return NoRule, false
}

func stripBlanks(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			b = append(b, s[i])
		}
	}
	return string(b)
}

// --- Semantic actions ------------------------------------------------------

// Sink is the semantic action hook. Parsers call it once per reduction, in
// bottom-up derivation order: a rule is reported only after all the symbols of
// its right hand side have been reduced. The last call of a successful parse is
// always RuleSE.
//
// Sinks are the anchor for later phases like AST building. Within this module
// they have no effect on parsing.
type Sink func(Rule)

// Discard is a sink doing nothing.
func Discard(Rule) {}

// OrDiscard returns s, or Discard if s is nil.
func (s Sink) OrDiscard() Sink {
	if s == nil {
		return Discard
	}
	return s
}

// Recorder collects the rules reported to its sink.
//
//    rec := &Recorder{}
//    err := parse(input, rec.Sink())
//    fmt.Println(rec.Rules)
//
type Recorder struct {
	Rules []Rule
}

// Sink returns a sink appending to r.Rules.
func (r *Recorder) Sink() Sink {
	return func(rule Rule) {
		r.Rules = append(r.Rules, rule)
	}
}

// Reset clears the recorded rules, keeping the allocated space.
func (r *Recorder) Reset() {
	r.Rules = r.Rules[:0]
}

// Equal is a predicate: did r record exactly the rules of other, in order?
func (r *Recorder) Equal(other []Rule) bool {
	if len(r.Rules) != len(other) {
		return false
	}
	for i, rule := range r.Rules {
		if other[i] != rule {
			return false
		}
	}
	return true
}

// --- Errors ----------------------------------------------------------------

// ErrorKind classifies parse errors.
type ErrorKind uint8

// There are only two kinds of parse errors. Both are final, there is neither
// error recovery nor a partial result.
const (
	EOF        ErrorKind = iota + 1 // input ended while more terminals were required
	Unexpected                      // a terminal not legal in the current state
)

func (k ErrorKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Unexpected:
		return "Unexpected"
	}
	return fmt.Sprintf("<error kind %d>", k)
}

// Error is the error type returned by all parsers of this module. It is a
// comparable value type, thus
//
//    errors.Is(err, rascent.ErrEOF)
//    errors.Is(err, rascent.ErrUnexpected(')'))
//
// work as expected.
type Error struct {
	Kind ErrorKind
	Char rune // offending terminal; zero for EOF
}

// ErrEOF is returned if the input ended while more terminals were syntactically
// required.
var ErrEOF = Error{Kind: EOF}

// ErrUnexpected creates an error for terminal c, read where it is not legal.
func ErrUnexpected(c rune) Error {
	return Error{Kind: Unexpected, Char: c}
}

func (e Error) Error() string {
	if e.Kind == Unexpected {
		return fmt.Sprintf("syntax error: unexpected %q", e.Char)
	}
	return "syntax error: unexpected end of input"
}

// AsError extracts a parse error from err. It returns false if err is nil or
// not a parse error.
func AsError(err error) (Error, bool) {
	var e Error
	if err == nil || !errors.As(err, &e) {
		return Error{}, false
	}
	return e, true
}
