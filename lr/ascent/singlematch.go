package ascent

import (
	"fmt"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr/scanner"
)

// Control labels of the single-match parser.
type smLabel uint8

const (
	smS0 smLabel = iota
	smS2
	smS5
	smS6
	smS7
	smS9
	smS10
	smEGoto
)

// parseSingleMatch decides on the pair (label, lookahead) in a single switch.
// Terminals are peeked first and consumed when shifted. The top stack label
// is cached.
func parseSingleMatch(input scanner.Cursor, sink rascent.Sink) (Stats, error) {
	stack := newTopStack()
	label := smS0
	for {
		c, ok := input.Peek()
		switch label {
		case smS0, smS5, smS6, smS7:
			if !ok {
				return stack.stats(), rascent.ErrEOF
			}
			if c != 'a' && c != '(' {
				return stack.stats(), rascent.ErrUnexpected(c)
			}
			input.Next()
			switch label {
			case smS5:
				stack.push(sl5)
			case smS6:
				stack.push(sl6)
			case smS7:
				stack.push(sl7)
			}
			if c == '(' {
				label = smS5
				continue
			}
			sink(rascent.RuleFa)
			switch label {
			case smS0, smS5:
				sink(rascent.RuleTF)
				label = smS2
			case smS6:
				sink(rascent.RuleTF)
				label = smS9
			default:
				label = smS10
			}
		case smS2:
			if ok && c == '*' {
				input.Next()
				label = smS7
			} else {
				sink(rascent.RuleET)
				label = smEGoto
			}
		case smS9:
			if ok && c == '*' {
				input.Next()
				label = smS7
			} else {
				stack.pop() // 6
				sink(rascent.RuleEAdd)
				label = smEGoto
			}
		case smS10:
			stack.pop() // 7
			sink(rascent.RuleTMul)
			label = smTGoto(stack)
		case smEGoto:
			switch {
			case !ok:
				if stack.top() == sl5 {
					return stack.stats(), rascent.ErrEOF
				}
				sink(rascent.RuleSE)
				return stack.stats(), nil
			case c == '+':
				input.Next()
				label = smS6
			case c == ')' && stack.top() == sl5:
				input.Next()
				stack.pop() // 5
				sink(rascent.RuleFParen)
				if stack.top() == sl7 {
					label = smS10
				} else {
					sink(rascent.RuleTF)
					label = smTGoto(stack)
				}
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		default:
			panic(fmt.Sprintf("single-match: impossible label %d", label))
		}
	}
}

func smTGoto(stack *topStack) smLabel {
	if stack.top() == sl6 {
		return smS9
	}
	return smS2
}
