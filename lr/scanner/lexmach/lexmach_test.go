package lexmach

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"",
	"a",
	"a+a*(a+a)*a",
	"a b",
	"(ä€)",
	"a\n)",
}

func TestLexmachCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		c, err := NewCursor(input)
		if err != nil {
			t.Fatalf("#%d: cannot create cursor: %v", i, err)
		}
		var out []rune
		for {
			r, ok := c.Next()
			if !ok {
				break
			}
			out = append(out, r)
		}
		if string(out) != input {
			t.Errorf("#%d: expected runes of %q, got %q", i, input, string(out))
		}
		if c.Err() != nil {
			t.Errorf("#%d: unexpected scanner error %v", i, c.Err())
		}
	}
}

func TestLexmachPeek(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rascent.scanner")
	defer teardown()
	//
	c, err := NewCursor("€*")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if r, ok := c.Peek(); !ok || r != '€' {
			t.Errorf("#%d: expected Peek to return '€', is %q/%v", i, r, ok)
		}
	}
	c.Next()
	if r, _ := c.Next(); r != '*' {
		t.Errorf("expected '*', is %q", r)
	}
	if _, ok := c.Peek(); ok {
		t.Errorf("expected end of input")
	}
	if _, ok := c.Next(); ok {
		t.Errorf("expected end of input to persist")
	}
}
