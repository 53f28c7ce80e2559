package lr

import (
	"strings"
	"testing"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammarEBNF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	if err := CheckGrammar(); err != nil {
		t.Errorf("grammar check failed: %v", err)
	}
	rules := Rules()
	if len(rules) != rascent.RuleCount {
		t.Fatalf("expected %d rules, have %d", rascent.RuleCount, len(rules))
	}
	if rules[len(rules)-1].Rule != rascent.RuleSE {
		t.Errorf("expected last rule to be the accept rule, is %v", rules[len(rules)-1])
	}
	for i, p := range rules {
		if ProductionFor(p.Rule) != p {
			t.Errorf("#%d: production for %v not found", i, p.Rule)
		}
	}
}

func TestFirstFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	first, follow := FirstSets(), FollowSets()
	for _, A := range NonTerminals {
		if first[A].Size() != 2 || !first[A].Contains(TermA, LParen) {
			t.Errorf("expected FIRST(%v) = {a,(}, is %v", A, first[A].Values())
		}
	}
	expected := map[Symbol][]interface{}{
		E: {EOF, Plus, RParen},
		T: {EOF, Plus, Star, RParen},
		F: {EOF, Plus, Star, RParen},
		S: {EOF},
	}
	for A, syms := range expected {
		if follow[A].Size() != len(syms) || !follow[A].Contains(syms...) {
			t.Errorf("expected FOLLOW(%v) = %v, is %v", A, syms, follow[A].Values())
		}
	}
}

func TestAutomatonShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	a := NewAutomaton()
	if a.Size() != StateCount {
		t.Fatalf("expected %d states, have %d", StateCount, a.Size())
	}
	edges := []Edge{
		{S0, S1, E}, {S0, S2, T}, {S0, S3, F}, {S0, S4, TermA}, {S0, S5, LParen},
		{S1, S6, Plus}, {S2, S7, Star},
		{S5, S8, E}, {S5, S2, T}, {S5, S3, F}, {S5, S4, TermA}, {S5, S5, LParen},
		{S6, S9, T}, {S6, S3, F}, {S6, S4, TermA}, {S6, S5, LParen},
		{S7, S10, F}, {S7, S4, TermA}, {S7, S5, LParen},
		{S8, S11, RParen}, {S8, S6, Plus}, {S9, S7, Star},
	}
	count := 0
	a.EachEdge(func(Edge) { count++ })
	if count != len(edges) {
		t.Errorf("expected %d edges, have %d", len(edges), count)
	}
	for i, e := range edges {
		var to StateID
		var ok bool
		if e.Label.IsTerminal() {
			to, ok = a.Shift(e.From, rune(e.Label))
		} else {
			to, ok = a.Goto(e.From, e.Label)
		}
		if !ok || to != e.To {
			t.Errorf("#%d: expected edge %v, have target %v (%v)", i, e, to, ok)
		}
	}
	kinds := []StateKind{ShiftState, AcceptState, LookaheadState, ReduceState, ReduceState,
		ShiftState, ShiftState, ShiftState, ShiftState, LookaheadState, ReduceState, ReduceState}
	reduces := []rascent.Rule{0, rascent.RuleSE, rascent.RuleET, rascent.RuleTF, rascent.RuleFa,
		0, 0, 0, 0, rascent.RuleEAdd, rascent.RuleTMul, rascent.RuleFParen}
	a.EachState(func(s *State) {
		if s.Kind() != kinds[s.ID] {
			t.Errorf("expected %v to be a %v state, is %v", s.ID, kinds[s.ID], s.Kind())
		}
		if s.Reduce != reduces[s.ID] {
			t.Errorf("expected %v to reduce %v, reduces %v", s.ID, reduces[s.ID], s.Reduce)
		}
	})
	if _, ok := a.Shift(S0, ')'); ok {
		t.Errorf("expected S0 to have no shift on ')'")
	}
	if got := a.State(S8).Items[0].String(); got != "F = ( E •)" {
		t.Errorf("unexpected first item of S8: %q", got)
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	a := NewAutomaton()
	if err := a.Validate(); err != nil {
		t.Errorf("automaton does not validate: %v", err)
	}
	preds := a.Predecessors(S4, TermA)
	if len(preds) != 4 {
		t.Errorf("expected S4 to have 4 predecessors on 'a', have %v", preds)
	}
}

func TestReverseGoto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	a := NewAutomaton()
	expected := []struct {
		A        Symbol
		source   StateID
		target   StateID
		fallback StateID
	}{
		{E, S5, S8, S1},
		{T, S6, S9, S2},
		{F, S7, S10, S3},
	}
	for i, x := range expected {
		d := a.ReverseGoto(x.A)
		if len(d.Cases) != 1 || d.Cases[0].Source != x.source || d.Cases[0].Target != x.target {
			t.Errorf("#%d: expected case %v→%v, have %v", i, x.source, x.target, d)
		}
		if d.Default != x.fallback {
			t.Errorf("#%d: expected default %v, have %v", i, x.fallback, d.Default)
		}
		for _, src := range a.GotoSources(x.A) {
			if to, _ := a.Goto(src, x.A); d.Target(src) != to {
				t.Errorf("#%d: decision maps %v to %v, goto table says %v", i, src, d.Target(src), to)
			}
		}
	}
}

func TestPushSetAndMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	a := NewAutomaton()
	if push := a.PushSet(); push != SetOf(S0, S5, S6, S7) {
		t.Errorf("expected push set {S0,S5,S6,S7}, is %v", push)
	}
	classes := a.MergeClasses()
	found := false
	for _, class := range classes {
		if len(class) > 1 {
			if found || len(class) != 4 || SetOf(class...) != SetOf(S0, S5, S6, S7) {
				t.Errorf("unexpected merge class %v", class)
			}
			found = true
		}
	}
	if !found {
		t.Errorf("expected merge class {S0,S5,S6,S7}, have %v", classes)
	}
	if a.ClassOf(S6) != S0 || a.ClassOf(S8) != S8 {
		t.Errorf("unexpected class representatives")
	}
}

func TestPopCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	a := NewAutomaton()
	minimal := SetOf(S5, S6, S7)
	expected := []struct {
		state              StateID
		lateFull, lateMin  int
		firstFull, firstMin int
	}{
		{S1, 0, 0, 1, 0},
		{S2, 0, 0, 1, 0},
		{S3, 0, 0, 1, 0},
		{S4, 0, 0, 1, 0},
		{S9, 2, 1, 3, 1},
		{S10, 2, 1, 3, 1},
		{S11, 2, 1, 3, 1},
	}
	for i, x := range expected {
		counts := []int{
			a.PopCount(x.state, PushLate, AllStates),
			a.PopCount(x.state, PushLate, minimal),
			a.PopCount(x.state, PushFirst, AllStates),
			a.PopCount(x.state, PushFirst, minimal),
		}
		want := []int{x.lateFull, x.lateMin, x.firstFull, x.firstMin}
		for k := range counts {
			if counts[k] != want[k] {
				t.Errorf("#%d: pop count of %v variant %d is %d, expected %d", i, x.state, k, counts[k], want[k])
			}
		}
	}
}

func TestPopCountDisagreementPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	a := NewAutomaton()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected pop count for mixed push set to panic")
		}
	}()
	// paths into S10 pass S2 or S9 after T; pushing only one of them is inconsistent
	a.PopCount(S10, PushFirst, SetOf(S2, S7))
}

func TestTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	a := NewAutomaton()
	tables := NewTables(a)
	if tables.HasConflicts {
		t.Errorf("expected SLR(1) tables to be free of conflicts")
	}
	if v := tables.Goto.Value(S5, E); v != int32(S8) {
		t.Errorf("expected GOTO(S5,E) = S8, is %d", v)
	}
	if v := tables.Action.Value(S1, EOF); v != AcceptAction {
		t.Errorf("expected ACTION(S1,#eof) = accept, is %d", v)
	}
	if v := tables.Action.Value(S2, Star); v != ShiftAction {
		t.Errorf("expected ACTION(S2,*) = shift, is %d", v)
	}
	if v := tables.Action.Value(S2, Plus); v != int32(rascent.RuleET) {
		t.Errorf("expected ACTION(S2,+) = reduce E = T, is %d", v)
	}
	if v := tables.Action.Value(S0, RParen); v != tables.Action.NullValue() {
		t.Errorf("expected ACTION(S0,)) to be empty, is %d", v)
	}
	var html strings.Builder
	if err := ActionTableAsHTML(tables, &html); err != nil {
		t.Error(err)
	}
	if !strings.Contains(html.String(), "<td>state 11</td>") {
		t.Errorf("expected HTML to contain a row for state 11")
	}
}

func TestGraphVizAndFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.lr")
	defer teardown()
	//
	a := NewAutomaton()
	fp := a.Fingerprint()
	var dot strings.Builder
	if err := a.WriteGraphViz(&dot); err != nil {
		t.Error(err)
	}
	if !strings.HasPrefix(dot.String(), "digraph {") || !strings.Contains(dot.String(), "s008 -> s011") {
		t.Errorf("unexpected Dot output")
	}
	NewTables(a)
	if a.Fingerprint() != fp {
		t.Errorf("automaton fingerprint changed")
	}
	if NewAutomaton().Fingerprint() != fp {
		t.Errorf("expected automata to have equal fingerprints")
	}
}
