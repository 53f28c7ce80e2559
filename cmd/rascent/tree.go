package main

import (
	"fmt"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr"
	"github.com/pterm/pterm"
)

// derivation is a node of a derivation tree. Leaves are terminals.
type derivation struct {
	sym      lr.Symbol
	children []*derivation
}

// buildDerivation constructs the derivation tree for a sequence of
// reductions, as reported by a parser on acceptance. Reductions are the
// steps of a rightmost derivation in reverse order, thus every reduction
// takes the trees of its RHS non-terminals from the top of a stack.
func buildDerivation(rules []rascent.Rule) (*derivation, error) {
	var stack []*derivation
	for _, r := range rules {
		p := lr.ProductionFor(r)
		node := &derivation{sym: p.LHS, children: make([]*derivation, p.Len())}
		for k := p.Len() - 1; k >= 0; k-- {
			if p.RHS[k].IsTerminal() {
				node.children[k] = &derivation{sym: p.RHS[k]}
				continue
			}
			if len(stack) == 0 || stack[len(stack)-1].sym != p.RHS[k] {
				return nil, fmt.Errorf("reduction %v without %v", r, p.RHS[k])
			}
			node.children[k] = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, node)
	}
	if len(stack) != 1 || stack[0].sym != lr.S {
		return nil, fmt.Errorf("reductions do not derive %v", lr.S)
	}
	return stack[0], nil
}

// yield is the string of terminals derived by a tree.
func (d *derivation) yield() string {
	if len(d.children) == 0 {
		return d.sym.String()
	}
	s := ""
	for _, ch := range d.children {
		s += ch.yield()
	}
	return s
}

func leveledDerivation(d *derivation, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  d.sym.String(),
	})
	for _, ch := range d.children {
		ll = leveledDerivation(ch, ll, level+1)
	}
	return ll
}

// printTree displays the derivation for a sequence of reductions as a tree
// on a terminal.
func printTree(rules []rascent.Rule) {
	d, err := buildDerivation(rules)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	ll := leveledDerivation(d, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}
