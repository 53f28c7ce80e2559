package scanner

import (
	"errors"
	"io"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCursorSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.scanner")
	defer teardown()
	//
	inputs := []string{"", "a", "a+a*(a)", "ä ß"}
	for i, input := range inputs {
		c := FromString(input)
		var out []rune
		for {
			r, ok := c.Next()
			if !ok {
				break
			}
			out = append(out, r)
		}
		if string(out) != input {
			t.Errorf("#%d: expected cursor to deliver %q, got %q", i, input, string(out))
		}
		if c.Offset() != len(input) {
			t.Errorf("#%d: expected offset %d, is %d", i, len(input), c.Offset())
		}
		if _, ok := c.Peek(); ok {
			t.Errorf("#%d: expected Peek to fail after end of input", i)
		}
		if c.Err() != nil {
			t.Errorf("#%d: expected no read error, have %v", i, c.Err())
		}
	}
}

func TestPeekIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.scanner")
	defer teardown()
	//
	c := FromString("(*")
	for i := 0; i < 3; i++ {
		if r, ok := c.Peek(); !ok || r != '(' {
			t.Errorf("#%d: expected Peek to return '(', is %q/%v", i, r, ok)
		}
	}
	if r, _ := c.Next(); r != '(' {
		t.Errorf("expected Next to return peeked '(', is %q", r)
	}
	if r, _ := c.Peek(); r != '*' {
		t.Errorf("expected Peek to return '*', is %q", r)
	}
	c.Next()
	for i := 0; i < 3; i++ {
		if _, ok := c.Peek(); ok {
			t.Errorf("#%d: expected Peek at end of input to fail", i)
		}
	}
}

type failingReader struct {
	runes []rune
}

var errBroken = errors.New("broken pipe")

func (fr *failingReader) ReadRune() (rune, int, error) {
	if len(fr.runes) == 0 {
		return 0, 0, errBroken
	}
	r := fr.runes[0]
	fr.runes = fr.runes[1:]
	return r, 1, nil
}

var _ io.RuneReader = (*failingReader)(nil)

func TestCursorReadError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.scanner")
	defer teardown()
	//
	c := NewCursor(&failingReader{runes: []rune{'a'}})
	if r, ok := c.Next(); !ok || r != 'a' {
		t.Errorf("expected to read 'a', got %q/%v", r, ok)
	}
	if _, ok := c.Next(); ok {
		t.Errorf("expected read error to end input")
	}
	if !errors.Is(c.Err(), errBroken) {
		t.Errorf("expected read error to be reported, have %v", c.Err())
	}
}
