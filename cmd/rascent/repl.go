package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/rascent/lr/ascent"
	"github.com/pterm/pterm"
)

// REPL is the interactive mode. Every line is parsed by the selected
// variants; lines starting with a colon are commands:
//
//    :list            list all variants
//    :use <name>      select a single variant, or all of them for "all"
//    :tree            toggle printing of derivation trees
//    :quit            leave
//
type REPL struct {
	variants []*ascent.Variant
	showTree bool
	rl       *readline.Instance
}

// NewREPL creates an interactive mode for a set of variants.
func NewREPL(variants []*ascent.Variant, showTree bool) (*REPL, error) {
	rl, err := readline.New("rascent> ")
	if err != nil {
		return nil, err
	}
	return &REPL{variants: variants, showTree: showTree, rl: rl}, nil
}

// Loop reads lines until end of input or ":quit".
func (repl *REPL) Loop() {
	defer repl.rl.Close()
	for {
		line, err := repl.rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := repl.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a line. It returns true if the user
// wants to quit.
func (repl *REPL) Eval(line string) bool {
	if !strings.HasPrefix(line, ":") {
		runVariants(repl.variants, line, repl.showTree)
		return false
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true
	case ":list":
		for _, v := range ascent.Variants() {
			pterm.Info.Printf("%-18s %s\n", v.Name, v.Description)
		}
	case ":tree":
		repl.showTree = !repl.showTree
		pterm.Info.Printf("derivation trees: %v\n", repl.showTree)
	case ":use":
		if len(args) != 2 {
			pterm.Error.Println("usage: :use <variant>|all")
			break
		}
		if args[1] == "all" {
			repl.variants = ascent.Variants()
			break
		}
		v, ok := ascent.Lookup(args[1])
		if !ok {
			pterm.Error.Printf("no parser variant named %q\n", args[1])
			break
		}
		repl.variants = []*ascent.Variant{v}
	default:
		pterm.Error.Printf("unknown command %s\n", args[0])
	}
	return false
}
