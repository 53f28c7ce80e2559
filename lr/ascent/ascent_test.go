package ascent

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr"
	"github.com/npillmayer/rascent/lr/scanner"
	"github.com/npillmayer/rascent/lr/scanner/lexmach"
	"github.com/npillmayer/rascent/lr/slr"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/tools/txtar"
)

// parser is the common interface of variants, engines and the SLR parser.
type parser interface {
	Parse(scanner.Cursor, rascent.Sink) error
}

type namedParser struct {
	name string
	p    parser
}

// allParsers collects every registered variant, an engine for every valid
// configuration, and the SLR parser.
func allParsers(t *testing.T) []namedParser {
	var parsers []namedParser
	for _, v := range Variants() {
		parsers = append(parsers, namedParser{v.Name, v})
	}
	a := lr.NewAutomaton()
	for _, cfg := range AllConfigs() {
		engine, err := NewEngine(a, cfg)
		if err != nil {
			t.Fatalf("cannot create engine for %v: %v", cfg, err)
		}
		parsers = append(parsers, namedParser{cfg.String(), engine})
	}
	parsers = append(parsers, namedParser{"slr", slr.NewParser(lr.NewTables(a))})
	return parsers
}

func quietTracing() {
	tracing.Select("rascent.ascent").SetTraceLevel(tracing.LevelError)
	tracing.Select("rascent.lr").SetTraceLevel(tracing.LevelError)
}

// --- Golden cases ----------------------------------------------------------

type goldenCases struct {
	accept []string
	reject map[string]error
	rules  map[string][]rascent.Rule
}

func readGoldenCases(t *testing.T) goldenCases {
	ar, err := txtar.ParseFile("testdata/cases.txtar")
	if err != nil {
		t.Fatalf("cannot read golden cases: %v", err)
	}
	cases := goldenCases{
		reject: make(map[string]error),
		rules:  make(map[string][]rascent.Rule),
	}
	for _, f := range ar.Files {
		lines := strings.Split(strings.TrimSpace(string(f.Data)), "\n")
		switch {
		case f.Name == "accept":
			for _, line := range lines {
				cases.accept = append(cases.accept, unquote(t, line))
			}
		case f.Name == "reject":
			for _, line := range lines {
				parts := strings.SplitN(line, "=>", 2)
				if len(parts) != 2 {
					t.Fatalf("malformed reject case %q", line)
				}
				cases.reject[unquote(t, parts[0])] = parseError(t, parts[1])
			}
		case strings.HasPrefix(f.Name, "rules "):
			input := unquote(t, strings.TrimPrefix(f.Name, "rules "))
			for _, line := range lines {
				r, ok := rascent.RuleByName(line)
				if !ok {
					t.Fatalf("unknown rule %q for input %q", line, input)
				}
				cases.rules[input] = append(cases.rules[input], r)
			}
		default:
			t.Fatalf("unknown golden file %q", f.Name)
		}
	}
	return cases
}

func unquote(t *testing.T, s string) string {
	u, err := strconv.Unquote(strings.TrimSpace(s))
	if err != nil {
		t.Fatalf("malformed input %q in golden cases: %v", s, err)
	}
	return u
}

func parseError(t *testing.T, s string) error {
	s = strings.TrimSpace(s)
	if s == "EOF" {
		return rascent.ErrEOF
	}
	if c := strings.TrimPrefix(s, "Unexpected "); c != s {
		r, err := strconv.Unquote(c)
		if err != nil || len([]rune(r)) != 1 {
			t.Fatalf("malformed error %q in golden cases", s)
		}
		return rascent.ErrUnexpected([]rune(r)[0])
	}
	t.Fatalf("unknown error %q in golden cases", s)
	return nil
}

func TestGoldenCases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	quietTracing()
	cases := readGoldenCases(t)
	rec := &rascent.Recorder{}
	for _, np := range allParsers(t) {
		for i, input := range cases.accept {
			rec.Reset()
			if err := np.p.Parse(scanner.FromString(input), rec.Sink()); err != nil {
				t.Errorf("%s #%d: expected %q to be accepted, got %v", np.name, i, input, err)
			}
			if rules, ok := cases.rules[input]; ok && !rec.Equal(rules) {
				t.Errorf("%s #%d: expected reductions %v, got %v", np.name, i, rules, rec.Rules)
			}
		}
		for input, expected := range cases.reject {
			err := np.p.Parse(scanner.FromString(input), nil)
			if !errors.Is(err, expected) {
				t.Errorf("%s: expected %q to fail with %v, got %v", np.name, input, expected, err)
			}
		}
	}
}

// --- Exhaustive equivalence ------------------------------------------------

// eachInput calls f for every string over the terminals up to length n.
func eachInput(n int, f func(string)) {
	terminals := []byte("a+*()")
	buf := make([]byte, 0, n)
	var gen func()
	gen = func() {
		f(string(buf))
		if len(buf) == n {
			return
		}
		for _, c := range terminals {
			buf = append(buf, c)
			gen()
			buf = buf[:len(buf)-1]
		}
	}
	gen()
}

func TestExhaustiveEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	quietTracing()
	maxlen := 7
	if testing.Short() {
		maxlen = 5
	}
	parsers := allParsers(t)
	oracle := parsers[len(parsers)-1]
	want, got := &rascent.Recorder{}, &rascent.Recorder{}
	count, accepted := 0, 0
	eachInput(maxlen, func(input string) {
		count++
		want.Reset()
		expected := oracle.p.Parse(scanner.FromString(input), want.Sink())
		if expected == nil {
			accepted++
		}
		for _, np := range parsers[:len(parsers)-1] {
			got.Reset()
			err := np.p.Parse(scanner.FromString(input), got.Sink())
			if expected == nil {
				if err != nil {
					t.Fatalf("%s: %q accepted by %s, got %v", np.name, input, oracle.name, err)
				}
				if !got.Equal(want.Rules) {
					t.Fatalf("%s: %q reductions differ: %v, expected %v", np.name, input, got.Rules, want.Rules)
				}
			} else if !errors.Is(err, expected) {
				t.Fatalf("%s: %q expected to fail with %v, got %v", np.name, input, expected, err)
			}
		}
	})
	t.Logf("%d parsers agree on %d inputs, %d accepted", len(parsers), count, accepted)
	if accepted == 0 {
		t.Errorf("expected some inputs to be accepted")
	}
}

// --- Stack discipline ------------------------------------------------------

type statsParser interface {
	ParseStats(scanner.Cursor, rascent.Sink) (Stats, error)
}

func TestStackDiscipline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	quietTracing()
	var parsers []namedParser
	for _, v := range Variants() {
		parsers = append(parsers, namedParser{v.Name, v})
	}
	for _, cfg := range AllConfigs() {
		parsers = append(parsers, namedParser{cfg.String(), MustEngine(Automaton(), cfg)})
	}
	inputs := []string{"a", "a+a*(a+a)*a", "((((a))))", "(a+a)*(a*a+a)", "a*a*a+a+a"}
	for _, np := range parsers {
		sp := np.p.(statsParser)
		for i, input := range inputs {
			st, err := sp.ParseStats(scanner.FromString(input), nil)
			if err != nil {
				t.Errorf("%s #%d: unexpected error %v", np.name, i, err)
				continue
			}
			if st.FinalDepth != 1 || st.Pushes != st.Pops {
				t.Errorf("%s #%d: stack not back at sentinel: %v", np.name, i, st)
			}
		}
	}
}

func TestMinimalPushPushesLess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	quietTracing()
	input := "a+a*(a+a)*a"
	pushes := make(map[string]int)
	for _, name := range []string{"canonical", "minpush", "cached-top"} {
		v, ok := Lookup(name)
		if !ok {
			t.Fatalf("variant %q not registered", name)
		}
		st, err := v.ParseStats(scanner.FromString(input), nil)
		if err != nil {
			t.Fatal(err)
		}
		pushes[name] = st.Pushes
	}
	if pushes["minpush"] >= pushes["canonical"] {
		t.Errorf("expected minpush to push less than canonical: %v", pushes)
	}
	if pushes["minpush"] != pushes["cached-top"] {
		t.Errorf("expected equal pushes for minpush and cached-top: %v", pushes)
	}
}

func TestSentinelPopPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	pops := map[string]func(){
		"slice":  func() { newSliceStack(lr.S0).pop(1) },
		"cached": func() { newCachedStack(lr.S0).pop(1) },
		"min":    func() { newMinStack().pop() },
		"top":    func() { newTopStack().pop() },
	}
	for name, pop := range pops {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("%s: expected pop of sentinel to panic", name)
				}
			}()
			pop()
		}()
	}
	s := newCachedStack(lr.S0)
	s.push(lr.S5)
	s.push(lr.S6)
	s.pop(2)
	if s.top() != lr.S0 || s.depth() != 1 {
		t.Errorf("expected cached stack at sentinel, top = %v, depth = %d", s.top(), s.depth())
	}
}

// --- Configurations --------------------------------------------------------

func TestConfigValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	invalid := []Config{
		{MergeLabels: true},
		{Timing: PushFirst, MergeLabels: true, ChainElim: true},
		{Goto: GotoMode(7)},
	}
	for i, cfg := range invalid {
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("#%d: expected %v to be invalid, got %v", i, cfg, err)
		}
		if _, err := NewEngine(Automaton(), cfg); err == nil {
			t.Errorf("#%d: expected NewEngine to reject %v", i, cfg)
		}
	}
	if n := len(AllConfigs()); n != 40 {
		t.Errorf("expected 40 valid configurations, have %d", n)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected MustEngine to panic for invalid configuration")
		}
	}()
	MustEngine(Automaton(), invalid[0])
}

func TestChainElimination(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	quietTracing()
	e := MustEngine(lr.NewAutomaton(), Config{Goto: GotoReverse, ChainElim: true})
	st := e.nodes[lr.S0].shift('a')
	if st.next != lr.S2 || fmt.Sprint(st.rules) != "[F = a T = F]" {
		t.Errorf("expected S0 --a--> S2 reducing F = a, T = F; have %v %v", st.next, st.rules)
	}
	if len(st.push) != 0 {
		t.Errorf("expected S0 --a--> not to push, pushes %v", st.push)
	}
	st = e.nodes[lr.S6].shift('a')
	if st.next != lr.S9 || len(st.rules) != 2 || len(st.push) != 1 || st.push[0] != lr.S6 {
		t.Errorf("expected S6 --a--> S9 pushing S6, have %v %v %v", st.next, st.rules, st.push)
	}
	st = e.nodes[lr.S7].shift('a')
	if st.next != lr.S10 || len(st.rules) != 1 {
		t.Errorf("expected S7 --a--> to stop at S10, have %v %v", st.next, st.rules)
	}
	st = e.nodes[lr.S8].shift(')')
	if st.next != lr.S11 || len(st.rules) != 0 {
		t.Errorf("expected S8 --)--> to stop at S11, have %v %v", st.next, st.rules)
	}
}

func TestModelUnchanged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	quietTracing()
	a := lr.NewAutomaton()
	fp := a.Fingerprint()
	for _, cfg := range AllConfigs() {
		MustEngine(a, cfg)
	}
	if a.Fingerprint() != fp {
		t.Errorf("compiling engines changed the automaton")
	}
	if Automaton().Fingerprint() != fp {
		t.Errorf("registry automaton differs from a fresh one")
	}
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	names := []string{"canonical", "reverse-goto", "chain-elim", "minpush", "push-first",
		"merged-minpush", "cached-top", "max-inline", "asc-desc", "inline", "single-match",
		"single-input-next"}
	vs := Variants()
	if len(vs) != len(names) {
		t.Fatalf("expected %d variants, have %d", len(names), len(vs))
	}
	for i, v := range vs {
		if v.Name != names[i] {
			t.Errorf("#%d: expected variant %q, have %q", i, names[i], v.Name)
		}
		if w, ok := Lookup(v.Name); !ok || w != v {
			t.Errorf("#%d: lookup of %q failed", i, v.Name)
		}
		if v.HandCompiled() != (i >= 7) {
			t.Errorf("#%d: %q hand-compiled = %v", i, v.Name, v.HandCompiled())
		}
	}
	if _, ok := Lookup("no-such-parser"); ok {
		t.Errorf("expected lookup of unknown variant to fail")
	}
}

func TestLexmachCursorWithVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.ascent")
	defer teardown()
	//
	quietTracing()
	inputs := map[string]error{
		"a+a*(a+a)*a": nil,
		"a+(a*a":      rascent.ErrEOF,
		"a+é":         rascent.ErrUnexpected('é'),
	}
	for _, v := range Variants() {
		for input, expected := range inputs {
			c, err := lexmach.NewCursor(input)
			if err != nil {
				t.Fatalf("cannot create lexmachine cursor: %v", err)
			}
			if err := v.Parse(c, nil); err != expected {
				t.Errorf("%s: %q expected to result in %v, got %v", v.Name, input, expected, err)
			}
		}
	}
}
