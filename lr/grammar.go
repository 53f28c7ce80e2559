package lr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/rascent"
	"golang.org/x/exp/ebnf"
)

// Symbol is a grammar symbol. Terminals are represented by their rune value,
// non-terminals and the end-of-input marker by negative values.
type Symbol int32

// Non-terminals, plus EOF as the lookahead symbol at the end of input.
const (
	EOF Symbol = -1
	E   Symbol = -2
	T   Symbol = -3
	F   Symbol = -4
	S   Symbol = -5
)

// Terminals of the grammar.
const (
	TermA  Symbol = 'a'
	Plus   Symbol = '+'
	Star   Symbol = '*'
	LParen Symbol = '('
	RParen Symbol = ')'
)

// Terminals lists the terminal symbols, in ascending order.
var Terminals = []Symbol{LParen, RParen, Star, Plus, TermA}

// NonTerminals lists the non-terminals which may appear on a right hand side.
var NonTerminals = []Symbol{E, T, F}

var withStart = []Symbol{S, E, T, F}

// IsTerminal is true for terminals and for EOF.
func (A Symbol) IsTerminal() bool {
	return A >= 0 || A == EOF
}

func (A Symbol) String() string {
	switch A {
	case EOF:
		return "#eof"
	case E:
		return "E"
	case T:
		return "T"
	case F:
		return "F"
	case S:
		return "S"
	}
	if A >= 0 {
		return string(rune(A))
	}
	return fmt.Sprintf("<%d>", int32(A))
}

// symbolComparator orders symbols by value.
func symbolComparator(a, b interface{}) int {
	return int(a.(Symbol)) - int(b.(Symbol))
}

// --- Productions -----------------------------------------------------------

// Production is a grammar rule with its left and right hand side.
type Production struct {
	Rule rascent.Rule
	LHS  Symbol
	RHS  []Symbol
}

func (p *Production) String() string {
	return p.Rule.String()
}

// Len is the length of the right hand side.
func (p *Production) Len() int {
	return len(p.RHS)
}

var productions = []*Production{
	{rascent.RuleFa, F, []Symbol{TermA}},
	{rascent.RuleFParen, F, []Symbol{LParen, E, RParen}},
	{rascent.RuleTF, T, []Symbol{F}},
	{rascent.RuleTMul, T, []Symbol{T, Star, F}},
	{rascent.RuleET, E, []Symbol{T}},
	{rascent.RuleEAdd, E, []Symbol{E, Plus, T}},
	{rascent.RuleSE, S, []Symbol{E}},
}

// Rules returns the productions of the grammar, ordered by rule identifier.
// The last one, S = E, is the accept rule.
func Rules() []*Production {
	r := make([]*Production, len(productions))
	copy(r, productions)
	return r
}

// ProductionFor returns the production for rule r. It panics for NoRule.
func ProductionFor(r rascent.Rule) *Production {
	if r == rascent.NoRule || int(r) > len(productions) {
		panic(fmt.Sprintf("no production for rule %d", r))
	}
	return productions[r-1]
}

// --- EBNF ------------------------------------------------------------------

// GrammarEBNF is the grammar in EBNF, as understood by golang.org/x/exp/ebnf.
const GrammarEBNF = `
S = E .
E = E "+" T | T .
T = T "*" F | F .
F = "a" | "(" E ")" .
`

// CheckGrammar parses GrammarEBNF, verifies it with start symbol S and checks
// that the productions it describes match Rules() one-to-one.
func CheckGrammar() error {
	g, err := ebnf.Parse("expr.ebnf", strings.NewReader(GrammarEBNF))
	if err != nil {
		return fmt.Errorf("grammar does not parse: %w", err)
	}
	if err = ebnf.Verify(g, "S"); err != nil {
		return fmt.Errorf("grammar does not verify: %w", err)
	}
	found := make(map[rascent.Rule]bool)
	for name, prod := range g {
		lhs, err := ebnfSymbol(&ebnf.Name{String: name})
		if err != nil {
			return err
		}
		for _, alt := range ebnfAlternatives(prod.Expr) {
			rhs, err := ebnfSequence(alt)
			if err != nil {
				return err
			}
			p := matchRule(lhs, rhs)
			if p == nil {
				return fmt.Errorf("EBNF production %v = %v not in rule table", lhs, rhs)
			}
			if found[p.Rule] {
				return fmt.Errorf("EBNF production %v occurs twice", p)
			}
			found[p.Rule] = true
			tracer().Debugf("EBNF production matches rule %v", p)
		}
	}
	for _, p := range productions {
		if !found[p.Rule] {
			return fmt.Errorf("rule %v missing from EBNF", p)
		}
	}
	return nil
}

func ebnfAlternatives(x ebnf.Expression) []ebnf.Expression {
	if alt, ok := x.(ebnf.Alternative); ok {
		return alt
	}
	return []ebnf.Expression{x}
}

func ebnfSequence(x ebnf.Expression) ([]Symbol, error) {
	seq, ok := x.(ebnf.Sequence)
	if !ok {
		seq = ebnf.Sequence{x}
	}
	rhs := make([]Symbol, 0, len(seq))
	for _, e := range seq {
		A, err := ebnfSymbol(e)
		if err != nil {
			return nil, err
		}
		rhs = append(rhs, A)
	}
	return rhs, nil
}

func ebnfSymbol(x ebnf.Expression) (Symbol, error) {
	switch e := x.(type) {
	case *ebnf.Name:
		switch e.String {
		case "S":
			return S, nil
		case "E":
			return E, nil
		case "T":
			return T, nil
		case "F":
			return F, nil
		}
		return EOF, fmt.Errorf("unknown non-terminal %q in EBNF", e.String)
	case *ebnf.Token:
		r := []rune(e.String)
		if len(r) != 1 {
			return EOF, fmt.Errorf("terminal %q is not a single character", e.String)
		}
		return Symbol(r[0]), nil
	}
	return EOF, fmt.Errorf("unsupported EBNF expression %T", x)
}

func matchRule(lhs Symbol, rhs []Symbol) *Production {
	for _, p := range productions {
		if p.LHS != lhs || len(p.RHS) != len(rhs) {
			continue
		}
		match := true
		for i := range rhs {
			match = match && rhs[i] == p.RHS[i]
		}
		if match {
			return p
		}
	}
	return nil
}

// --- FIRST and FOLLOW ------------------------------------------------------

// FirstSets computes FIRST(A) for every non-terminal A. The grammar has no
// epsilon productions, thus FIRST of a right hand side is FIRST of its first
// symbol.
func FirstSets() map[Symbol]*treeset.Set {
	first := make(map[Symbol]*treeset.Set)
	for _, A := range withStart {
		first[A] = treeset.NewWith(symbolComparator)
	}
	for changed := true; changed; {
		changed = false
		for _, p := range productions {
			X := p.RHS[0]
			size := first[p.LHS].Size()
			if X.IsTerminal() {
				first[p.LHS].Add(X)
			} else {
				first[p.LHS].Add(first[X].Values()...)
			}
			changed = changed || first[p.LHS].Size() != size
		}
	}
	return first
}

// FollowSets computes FOLLOW(A) for every non-terminal A, including S.
// EOF is in FOLLOW(S).
func FollowSets() map[Symbol]*treeset.Set {
	first := FirstSets()
	follow := make(map[Symbol]*treeset.Set)
	for _, A := range withStart {
		follow[A] = treeset.NewWith(symbolComparator)
	}
	follow[S].Add(EOF)
	for changed := true; changed; {
		changed = false
		for _, p := range productions {
			for i, B := range p.RHS {
				if B.IsTerminal() {
					continue
				}
				size := follow[B].Size()
				if i+1 < len(p.RHS) {
					if X := p.RHS[i+1]; X.IsTerminal() {
						follow[B].Add(X)
					} else {
						follow[B].Add(first[X].Values()...)
					}
				} else {
					follow[B].Add(follow[p.LHS].Values()...)
				}
				changed = changed || follow[B].Size() != size
			}
		}
	}
	return follow
}
