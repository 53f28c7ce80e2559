package ascent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/rascent/lr"
)

// GotoMode selects how a parser finds its way after a reduction.
type GotoMode uint8

// Goto modes.
const (
	GotoByState GotoMode = iota // look up GOTO(top, X), the canonical way
	GotoReverse                 // branch on the few tops which lead elsewhere than the default
)

// PushMode selects which states push a stack label.
type PushMode uint8

// Push modes.
const (
	PushFull    PushMode = iota // every state pushes
	PushMinimal                 // only states inspected by a goto decision push
)

// Push timings, re-exported from package lr.
const (
	PushLate  = lr.PushLate
	PushFirst = lr.PushFirst
)

// Config selects one point in the space of recursive ascent optimizations.
// The zero value is the canonical parser: goto by state, every state pushes
// its label when shifting.
type Config struct {
	Goto        GotoMode
	Push        PushMode
	Timing      lr.PushTiming
	MergeLabels bool // states of one merge class share a control label
	CachedTop   bool // hold the top label outside the stack
	ChainElim   bool // follow statically known reductions at compile time
}

// ErrInvalidConfig is wrapped by the errors of Config.Validate.
var ErrInvalidConfig = errors.New("invalid parser configuration")

// Validate rejects impossible combinations.
//
// With push-late timing, a state pushes its own label, so it has to be known
// exactly: labels cannot be merged. Chain elimination resolves gotos by the
// state a shift starts from, which is lost when labels are merged.
func (cfg Config) Validate() error {
	if cfg.MergeLabels && cfg.Timing != PushFirst {
		return fmt.Errorf("%w: merging labels requires push-first timing", ErrInvalidConfig)
	}
	if cfg.MergeLabels && cfg.ChainElim {
		return fmt.Errorf("%w: chain elimination needs unmerged labels", ErrInvalidConfig)
	}
	if cfg.Goto > GotoReverse || cfg.Push > PushMinimal || cfg.Timing > PushFirst {
		return fmt.Errorf("%w: axis value out of range in %v", ErrInvalidConfig, cfg)
	}
	return nil
}

func (cfg Config) String() string {
	var opts []string
	if cfg.Goto == GotoReverse {
		opts = append(opts, "reverse-goto")
	} else {
		opts = append(opts, "goto-by-state")
	}
	if cfg.Push == PushMinimal {
		opts = append(opts, "minimal-push")
	} else {
		opts = append(opts, "full-push")
	}
	opts = append(opts, cfg.Timing.String())
	if cfg.MergeLabels {
		opts = append(opts, "merged")
	}
	if cfg.CachedTop {
		opts = append(opts, "cached-top")
	}
	if cfg.ChainElim {
		opts = append(opts, "chain-elim")
	}
	return "[" + strings.Join(opts, ",") + "]"
}

// AllConfigs returns every valid configuration.
func AllConfigs() []Config {
	var configs []Config
	for _, g := range []GotoMode{GotoByState, GotoReverse} {
		for _, p := range []PushMode{PushFull, PushMinimal} {
			for _, t := range []lr.PushTiming{PushLate, PushFirst} {
				for flags := 0; flags < 8; flags++ {
					cfg := Config{
						Goto:        g,
						Push:        p,
						Timing:      t,
						MergeLabels: flags&1 != 0,
						CachedTop:   flags&2 != 0,
						ChainElim:   flags&4 != 0,
					}
					if cfg.Validate() == nil {
						configs = append(configs, cfg)
					}
				}
			}
		}
	}
	return configs
}
