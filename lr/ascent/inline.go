package ascent

import (
	"fmt"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr/scanner"
)

// Control labels of the inlined push-first parser. S0 stands for the merged
// class {S0,S5,S6,S7}; everything else has been inlined into FGoto.
type inLabel uint8

const (
	inS0 inLabel = iota
	inFGoto
)

// parseInline pushes the destination when entering one of S5, S6 or S7, with
// these states merged into S0. After F has been reduced, the chain up to
// the next shift is decided in one go.
func parseInline(input scanner.Cursor, sink rascent.Sink) (Stats, error) {
	stack := newMinStack()
	label := inS0
	for {
		switch label {
		case inS0:
			switch c, ok := input.Next(); {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == 'a':
				sink(rascent.RuleFa)
				label = inFGoto
			case c == '(':
				stack.push(sl5)
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case inFGoto:
			if stack.top() == sl7 {
				stack.pop() // 7
				sink(rascent.RuleTMul)
			} else {
				sink(rascent.RuleTF)
			}
			if c, ok := input.Peek(); ok && c == '*' {
				input.Next()
				stack.push(sl7)
				label = inS0
				continue
			}
			if stack.top() == sl6 {
				stack.pop() // 6
				sink(rascent.RuleEAdd)
			} else {
				sink(rascent.RuleET)
			}
			c, ok := input.Next()
			if stack.top() == sl5 {
				switch {
				case !ok:
					return stack.stats(), rascent.ErrEOF
				case c == '+':
					stack.push(sl6)
					label = inS0
				case c == ')':
					stack.pop() // 5
					sink(rascent.RuleFParen)
				default:
					return stack.stats(), rascent.ErrUnexpected(c)
				}
			} else {
				switch {
				case !ok:
					sink(rascent.RuleSE)
					return stack.stats(), nil
				case c == '+':
					stack.push(sl6)
					label = inS0
				default:
					return stack.stats(), rascent.ErrUnexpected(c)
				}
			}
		default:
			panic(fmt.Sprintf("inline: impossible label %d", label))
		}
	}
}
