package lexmach

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/rascent/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'rascent.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("rascent.scanner")
}

// Literals are the terminals of the expression grammar.
var Literals = []string{"a", "+", "*", "(", ")"}

// Token types. Literal tokens have their rune as token type.
const (
	OtherToken = -1 // any character not in Literals
)

var (
	lexer     *lexmachine.Lexer
	lexerErr  error
	setupOnce sync.Once
)

// Lexer returns the lexmachine lexer for the terminals. The DFA is compiled
// on first use.
func Lexer() (*lexmachine.Lexer, error) {
	setupOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		for _, lit := range Literals {
			r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
			lexer.Add([]byte(r), MakeToken(lit, int(lit[0])))
		}
		lexer.Add([]byte(`.|\n`), other)
		if err := lexer.Compile(); err != nil {
			tracer().Errorf("Error compiling DFA: %v", err)
			lexerErr = fmt.Errorf("cannot compile lexer DFA: %w", err)
		}
	})
	return lexer, lexerErr
}

// MakeToken is a pre-defined action which wraps a scanned literal into a
// token with the literal's rune as value.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		r, _ := utf8.DecodeRune(m.Bytes)
		return s.Token(id, r, m), nil
	}
}

// other matches a single byte. It consumes the complete UTF-8 sequence
// starting there.
func other(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	r, size := utf8.DecodeRune(s.Text[m.TC:])
	s.TC = m.TC + size
	return s.Token(OtherToken, r, m), nil
}

// Cursor is a scanner.Cursor over lexmachine tokens.
type Cursor struct {
	scanner *lexmachine.Scanner
	next    rune
	hasNext bool
	isEOF   bool
	err     error
}

var _ scanner.Cursor = (*Cursor)(nil)

// NewCursor creates a cursor for an input string.
func NewCursor(input string) (*Cursor, error) {
	lx, err := Lexer()
	if err != nil {
		return nil, err
	}
	s, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, fmt.Errorf("cannot scan input: %w", err)
	}
	return &Cursor{scanner: s}, nil
}

// Peek is part of interface scanner.Cursor.
func (c *Cursor) Peek() (rune, bool) {
	return c.lookahead()
}

// Next is part of interface scanner.Cursor.
func (c *Cursor) Next() (rune, bool) {
	r, ok := c.lookahead()
	c.hasNext = false
	return r, ok
}

// Err returns the scanner error which ended the input, if any.
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) lookahead() (rune, bool) {
	if c.hasNext {
		return c.next, true
	}
	if c.isEOF {
		return 0, false
	}
	tok, err, eof := c.scanner.Next()
	for err != nil {
		tracer().Errorf("scanner error: %v", err)
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			c.err, c.isEOF = err, true
			return 0, false
		}
		c.scanner.TC = ui.FailTC
		tok, err, eof = c.scanner.Next()
	}
	if eof {
		c.isEOF = true
		return 0, false
	}
	token := tok.(*lexmachine.Token)
	c.next, c.hasNext = token.Value.(rune), true
	tracer().Debugf("token %d | %q", token.Type, c.next)
	return c.next, true
}
