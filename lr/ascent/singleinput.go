package ascent

import (
	"fmt"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr/scanner"
)

// Control labels of the single-input-next parser.
type siLabel uint8

const (
	siS0 siLabel = iota
	siFGoto
)

// parseSingleInputNext consumes exactly one terminal per iteration and never
// peeks. After F has been reduced, the terminal following it decides how far
// the reductions of T and E go. The top stack label is cached.
func parseSingleInputNext(input scanner.Cursor, sink rascent.Sink) (Stats, error) {
	stack := newTopStack()
	label := siS0
	for {
		c, ok := input.Next()
		switch label {
		case siS0:
			switch {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == 'a':
				sink(rascent.RuleFa)
				label = siFGoto
			case c == '(':
				stack.push(sl5)
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case siFGoto:
			switch {
			case ok && c == '*':
				if stack.top() == sl7 {
					sink(rascent.RuleTMul) // pop 7 and push it again
				} else {
					sink(rascent.RuleTF)
					stack.push(sl7)
				}
				label = siS0
			case ok && c == '+':
				siReduceT(stack, sink)
				if stack.top() == sl6 {
					sink(rascent.RuleEAdd) // pop 6 and push it again
				} else {
					sink(rascent.RuleET)
					stack.push(sl6)
				}
				label = siS0
			case ok && c == ')':
				siReduceT(stack, sink)
				siReduceE(stack, sink)
				if stack.top() != sl5 {
					return stack.stats(), rascent.ErrUnexpected(c)
				}
				stack.pop() // 5
				sink(rascent.RuleFParen)
			case ok:
				return stack.stats(), rascent.ErrUnexpected(c)
			default:
				siReduceT(stack, sink)
				siReduceE(stack, sink)
				if stack.top() == sl5 {
					return stack.stats(), rascent.ErrEOF
				}
				sink(rascent.RuleSE)
				return stack.stats(), nil
			}
		default:
			panic(fmt.Sprintf("single-input-next: impossible label %d", label))
		}
	}
}

func siReduceT(stack *topStack, sink rascent.Sink) {
	if stack.top() == sl7 {
		stack.pop() // 7
		sink(rascent.RuleTMul)
	} else {
		sink(rascent.RuleTF)
	}
}

func siReduceE(stack *topStack, sink rascent.Sink) {
	if stack.top() == sl6 {
		stack.pop() // 6
		sink(rascent.RuleEAdd)
	} else {
		sink(rascent.RuleET)
	}
}
