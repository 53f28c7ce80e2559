package ascent

import (
	"fmt"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr/scanner"
)

// Control labels of the maximally inlined parser. S1, S3, S4, S8, S11 and
// FGoto are gone: reductions of F are performed where F is completed, and S1
// and S8 live inside EGoto.
type miLabel uint8

const (
	miS0 miLabel = iota
	miS2
	miS5
	miS6
	miS7
	miS9
	miS10
	miEGoto
	miTGoto
)

// parseMaxInline pushes late and minimally, with chain elimination and every
// single-use label inlined.
func parseMaxInline(input scanner.Cursor, sink rascent.Sink) (Stats, error) {
	stack := newMinStack()
	label := miS0
	for {
		switch label {
		case miS0:
			switch c, ok := input.Next(); {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == 'a':
				sink(rascent.RuleFa)
				sink(rascent.RuleTF)
				label = miS2
			case c == '(':
				label = miS5
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case miS2:
			if c, ok := input.Peek(); ok && c == '*' {
				input.Next()
				label = miS7
			} else {
				sink(rascent.RuleET)
				label = miEGoto
			}
		case miS5:
			switch c, ok := input.Next(); {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == 'a':
				stack.push(sl5)
				sink(rascent.RuleFa)
				sink(rascent.RuleTF)
				label = miS2
			case c == '(':
				stack.push(sl5)
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case miS6:
			switch c, ok := input.Next(); {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == 'a':
				stack.push(sl6)
				sink(rascent.RuleFa)
				sink(rascent.RuleTF)
				label = miS9
			case c == '(':
				stack.push(sl6)
				label = miS5
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case miS7:
			switch c, ok := input.Next(); {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == 'a':
				stack.push(sl7)
				sink(rascent.RuleFa)
				label = miS10
			case c == '(':
				stack.push(sl7)
				label = miS5
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case miS9:
			if c, ok := input.Peek(); ok && c == '*' {
				input.Next()
				label = miS7
			} else {
				stack.pop() // 6
				sink(rascent.RuleEAdd)
				label = miEGoto
			}
		case miS10:
			stack.pop() // 7
			sink(rascent.RuleTMul)
			label = miTGoto
		case miEGoto:
			c, ok := input.Next()
			if stack.top() == sl5 {
				switch {
				case !ok:
					return stack.stats(), rascent.ErrEOF
				case c == '+':
					label = miS6
				case c == ')':
					stack.pop() // 5
					sink(rascent.RuleFParen)
					if stack.top() == sl7 {
						label = miS10
					} else {
						sink(rascent.RuleTF)
						label = miTGoto
					}
				default:
					return stack.stats(), rascent.ErrUnexpected(c)
				}
			} else {
				switch {
				case !ok:
					sink(rascent.RuleSE)
					return stack.stats(), nil
				case c == '+':
					label = miS6
				default:
					return stack.stats(), rascent.ErrUnexpected(c)
				}
			}
		case miTGoto:
			if stack.top() == sl6 {
				label = miS9
			} else {
				label = miS2
			}
		default:
			panic(fmt.Sprintf("max-inline: impossible label %d", label))
		}
	}
}
