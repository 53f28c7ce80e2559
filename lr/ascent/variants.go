package ascent

import (
	"sync"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr"
	"github.com/npillmayer/rascent/lr/scanner"
)

// Variant is a named recursive ascent parser, either an engine for a preset
// configuration or a hand-compiled parser.
type Variant struct {
	Name        string
	Description string
	Config      *Config // nil for hand-compiled variants
	parse       func(scanner.Cursor, rascent.Sink) (Stats, error)
}

// Parse runs the variant on an input. Every reduction is reported to sink,
// which may be nil.
func (v *Variant) Parse(input scanner.Cursor, sink rascent.Sink) error {
	_, err := v.parse(input, sink.OrDiscard())
	return err
}

// ParseStats is like Parse, but reports stack statistics as well.
func (v *Variant) ParseStats(input scanner.Cursor, sink rascent.Sink) (Stats, error) {
	return v.parse(input, sink.OrDiscard())
}

// HandCompiled is true for variants written directly as control flow.
func (v *Variant) HandCompiled() bool {
	return v.Config == nil
}

var presets = []struct {
	name, desc string
	config     Config
}{
	{"canonical", "push every source state, goto by table",
		Config{}},
	{"reverse-goto", "push every source state, branch on the deciding tops",
		Config{Goto: GotoReverse}},
	{"chain-elim", "reverse goto, reductions known at compile time are followed",
		Config{Goto: GotoReverse, ChainElim: true}},
	{"minpush", "chain elimination, push only labels a goto decision asks for",
		Config{Goto: GotoReverse, Push: PushMinimal, ChainElim: true}},
	{"push-first", "push the destination on entry, merged labels",
		Config{Goto: GotoReverse, Timing: PushFirst, MergeLabels: true}},
	{"merged-minpush", "push-first with merged labels and minimal pushing",
		Config{Goto: GotoReverse, Push: PushMinimal, Timing: PushFirst, MergeLabels: true}},
	{"cached-top", "minpush with the top label held outside the stack",
		Config{Goto: GotoReverse, Push: PushMinimal, ChainElim: true, CachedTop: true}},
}

var handCompiled = []struct {
	name, desc string
	parse      func(scanner.Cursor, rascent.Sink) (Stats, error)
}{
	{"max-inline", "minpush, chain elimination, single-use labels inlined", parseMaxInline},
	{"asc-desc", "full push, reverse goto, S10 and S11 inlined", parseAscDesc},
	{"inline", "merged minimal push-first, inlined up to the next shift", parseInline},
	{"single-match", "one switch over label and lookahead, cached top", parseSingleMatch},
	{"single-input-next", "one terminal consumed per step, never peeks, cached top", parseSingleInputNext},
}

var (
	automaton    *lr.Automaton
	variants     []*Variant
	registryOnce sync.Once
)

func setupRegistry() {
	registryOnce.Do(func() {
		automaton = lr.NewAutomaton()
		for _, p := range presets {
			cfg := p.config
			engine := MustEngine(automaton, cfg)
			variants = append(variants, &Variant{
				Name:        p.name,
				Description: p.desc,
				Config:      &cfg,
				parse:       engine.ParseStats,
			})
		}
		for _, h := range handCompiled {
			variants = append(variants, &Variant{
				Name:        h.name,
				Description: h.desc,
				parse:       h.parse,
			})
		}
		tracer().Debugf("registered %d parser variants", len(variants))
	})
}

// Automaton returns the automaton shared by all registered variants.
func Automaton() *lr.Automaton {
	setupRegistry()
	return automaton
}

// Variants returns all registered variants: engine presets first, then the
// hand-compiled ones.
func Variants() []*Variant {
	setupRegistry()
	v := make([]*Variant, len(variants))
	copy(v, variants)
	return v
}

// Lookup finds a variant by name.
func Lookup(name string) (*Variant, bool) {
	setupRegistry()
	for _, v := range variants {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}
