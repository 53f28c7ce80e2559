package ascent

import (
	"fmt"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr"
	"github.com/npillmayer/rascent/lr/scanner"
)

// Control labels of the ascent-descent parser. S10 and S11 have been inlined
// into FGoto and S8, respectively.
type adLabel uint8

const (
	adS0 adLabel = iota
	adS1
	adS2
	adS3
	adS4
	adS5
	adS6
	adS7
	adS8
	adS9
	adEGoto
	adTGoto
	adFGoto
)

// parseAscDesc pushes the source state on every shift and decides gotos in
// reverse. Reductions which pop entries are performed where their last
// symbol is shifted or reduced, not in a state of their own.
func parseAscDesc(input scanner.Cursor, sink rascent.Sink) (Stats, error) {
	stack := newSliceStack(lr.S0)
	label := adS0
	for {
		switch label {
		case adS0:
			switch c, ok := input.Next(); {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == 'a':
				label = adS4
			case c == '(':
				label = adS5
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case adS1:
			switch c, ok := input.Next(); {
			case !ok:
				sink(rascent.RuleSE)
				return stack.stats(), nil
			case c == '+':
				stack.push(lr.S1)
				label = adS6
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case adS2:
			if c, ok := input.Peek(); ok && c == '*' {
				input.Next()
				stack.push(lr.S2)
				label = adS7
			} else {
				sink(rascent.RuleET)
				label = adEGoto
			}
		case adS3:
			sink(rascent.RuleTF)
			label = adTGoto
		case adS4:
			sink(rascent.RuleFa)
			label = adFGoto
		case adS5, adS6, adS7:
			switch c, ok := input.Next(); {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == 'a':
				stack.push(adSource(label))
				label = adS4
			case c == '(':
				stack.push(adSource(label))
				label = adS5
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case adS8:
			switch c, ok := input.Next(); {
			case !ok:
				return stack.stats(), rascent.ErrEOF
			case c == '+':
				stack.push(lr.S8)
				label = adS6
			case c == ')':
				stack.pop(1) // 5
				sink(rascent.RuleFParen)
				label = adFGoto
			default:
				return stack.stats(), rascent.ErrUnexpected(c)
			}
		case adS9:
			if c, ok := input.Peek(); ok && c == '*' {
				input.Next()
				stack.push(lr.S9)
				label = adS7
			} else {
				stack.pop(2) // 6, then 1 or 8
				sink(rascent.RuleEAdd)
				label = adEGoto
			}
		case adEGoto:
			if stack.top() == lr.S5 {
				label = adS8
			} else {
				label = adS1
			}
		case adTGoto:
			if stack.top() == lr.S6 {
				label = adS9
			} else {
				label = adS2
			}
		case adFGoto:
			if stack.top() == lr.S7 {
				stack.pop(2) // 7, then 2 or 9
				sink(rascent.RuleTMul)
				label = adTGoto
			} else {
				label = adS3
			}
		default:
			panic(fmt.Sprintf("asc-desc: impossible label %d", label))
		}
	}
}

func adSource(l adLabel) lr.StateID {
	switch l {
	case adS5:
		return lr.S5
	case adS6:
		return lr.S6
	}
	return lr.S7
}
