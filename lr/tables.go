package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr/sparse"
)

// Actions for parser action tables. Reduce actions are encoded as the rule
// identifier of the rule to reduce.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// Table is a parser table, indexed by state and symbol.
type Table struct {
	matrix *sparse.IntMatrix
	mincol Symbol // lowest symbol value => offset for column access
}

func newTable() *Table {
	return &Table{
		matrix: sparse.NewIntMatrix(StateCount, int(TermA-F)+1, sparse.DefaultNullValue),
		mincol: F,
	}
}

func (t *Table) column(A Symbol) int {
	j := int(A - t.mincol)
	if j < 0 || j >= t.matrix.N() {
		panic(fmt.Sprintf("parser table access for symbol %v out of range", A))
	}
	return j
}

func (t *Table) add(id StateID, A Symbol, val int32) {
	t.matrix.Add(int(id), t.column(A), val)
}

func (t *Table) set(id StateID, A Symbol, val int32) {
	t.matrix.Set(int(id), t.column(A), val)
}

// NullValue is the value of empty table entries.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the primary entry at (id, A).
func (t *Table) Value(id StateID, A Symbol) int32 {
	return t.matrix.Value(int(id), t.column(A))
}

// Values returns both entries at (id, A). The second one is the null value
// unless there is a conflict.
func (t *Table) Values(id StateID, A Symbol) (int32, int32) {
	return t.matrix.Values(int(id), t.column(A))
}

// Size returns the number of non-empty entries.
func (t *Table) Size() int {
	return t.matrix.ValueCount()
}

// Tables holds the GOTO table and the SLR(1) ACTION table of an automaton.
type Tables struct {
	Goto         *Table
	Action       *Table
	HasConflicts bool
	automaton    *Automaton
}

// NewTables builds the parser tables for an automaton.
func NewTables(a *Automaton) *Tables {
	tables := &Tables{automaton: a}
	tables.Goto = buildGotoTable(a)
	tables.Action, tables.HasConflicts = buildActionTable(a)
	return tables
}

// Automaton returns the automaton the tables have been built for.
func (tables *Tables) Automaton() *Automaton {
	return tables.automaton
}

func buildGotoTable(a *Automaton) *Table {
	gototable := newTable()
	a.EachEdge(func(e Edge) {
		gototable.set(e.From, e.Label, int32(e.To))
	})
	tracer().Infof("GOTO table has %d entries", gototable.Size())
	return gototable
}

// For building an ACTION table we iterate over all the states of the
// automaton. An item with a terminal immediately after the dot produces a
// shift entry. A completed item produces a reduce entry for each terminal
// from FOLLOW(LHS); for the accept rule this is an accept entry for EOF.
//
// Every entry may consist of up to 2 values, allowing for shift/reduce- or
// reduce/reduce-conflicts.
func buildActionTable(a *Automaton) (*Table, bool) {
	actions := newTable()
	follow := FollowSets()
	hasConflicts := false
	a.EachState(func(s *State) {
		tracer().Debugf("--- state %d --------------------------------", s.ID)
		for _, e := range a.Shifts(s.ID) {
			actions.set(s.ID, e.Label, ShiftAction)
		}
		if s.Reduce == rascent.NoRule {
			return
		}
		if s.Accept {
			actions.add(s.ID, EOF, AcceptAction)
			return
		}
		p := ProductionFor(s.Reduce)
		for _, x := range follow[p.LHS].Values() {
			la := x.(Symbol)
			if a1 := actions.Value(s.ID, la); a1 != actions.NullValue() {
				tracer().Debugf("    reduce %v is 2nd action at %v", p, la)
				hasConflicts = true
			}
			actions.add(s.ID, la, int32(s.Reduce))
			tracer().Debugf("    %s", actionEntry(s.ID, la, actions))
		}
	})
	tracer().Infof("ACTION table has %d entries, conflicts = %v", actions.Size(), hasConflicts)
	return actions, hasConflicts
}

func actionEntry(id StateID, la Symbol, aT *Table) string {
	a1, a2 := aT.Values(id, la)
	return fmt.Sprintf("Action(%v,%v) = (%s,%s)", id, la, valstring(a1, aT), valstring(a2, aT))
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, t *Table) string {
	switch v {
	case t.NullValue():
		return "<none>"
	case AcceptAction:
		return "<accept>"
	case ShiftAction:
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %v>", rascent.Rule(v))
}

// --- Export ----------------------------------------------------------------

// WriteGraphViz exports the automaton in Graphviz Dot format.
func (a *Automaton) WriteGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	a.EachState(func(s *State) {
		items := make([]string, len(s.Items))
		for i, item := range s.Items {
			items[i] = forGraphviz(item.String())
		}
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%v | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, strings.Join(items, "\\l"))
	})
	a.EachEdge(func(e Edge) {
		fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To, forGraphviz(e.Label.String()))
	})
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(s *State) string {
	switch s.Kind() {
	case AcceptState:
		return "lightgray"
	case ReduceState:
		return "lightblue"
	case LookaheadState:
		return "lightyellow"
	}
	return "white"
}

var graphvizEscaper = strings.NewReplacer(`"`, `\"`, "{", `\{`, "}", `\}`, "|", `\|`,
	"<", `\<`, ">", `\>`)

func forGraphviz(s string) string {
	return graphvizEscaper.Replace(s)
}

// GotoTableAsHTML exports the GOTO table in HTML-format.
func GotoTableAsHTML(tables *Tables, w io.Writer) error {
	return parserTableAsHTML(tables, "GOTO", tables.Goto, w)
}

// ActionTableAsHTML exports the SLR(1) ACTION table in HTML-format.
func ActionTableAsHTML(tables *Tables, w io.Writer) error {
	return parserTableAsHTML(tables, "ACTION", tables.Action, w)
}

func parserTableAsHTML(tables *Tables, tname string, table *Table, w io.Writer) error {
	symvec := append(append([]Symbol{}, Terminals...), EOF)
	if table == tables.Goto {
		symvec = append(symvec[:len(Terminals)], NonTerminals...)
	}
	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "%s table of size = %d<p>", tname, table.Size())
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		fmt.Fprintf(&b, "<td>%s</td>", A)
	}
	b.WriteString("</tr>\n")
	var td string // table cell
	tables.automaton.EachState(func(s *State) {
		fmt.Fprintf(&b, "<tr><td>state %d</td>\n", s.ID)
		for _, A := range symvec {
			v1, v2 := table.Values(s.ID, A)
			if v1 == table.NullValue() {
				td = "&nbsp;"
			} else if v2 == table.NullValue() {
				td = fmt.Sprintf("%d", v1)
			} else {
				td = fmt.Sprintf("%d/%d", v1, v2)
			}
			fmt.Fprintf(&b, "<td>%s</td>\n", td)
		}
		b.WriteString("</tr>\n")
	})
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
