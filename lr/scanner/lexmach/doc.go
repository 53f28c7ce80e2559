/*
Package lexmach provides an input cursor backed by the lexmachine scanner
generator.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The lexer is set up once: one literal token per terminal of the expression
grammar, and a catch-all token for any other character. The catch-all action
decodes a full UTF-8 sequence, thus an illegal character is always reported as
one rune, never as a stray byte.

	cursor, err := lexmach.NewCursor("a+(a*a)")
	if err != nil {
		// DFA did not compile or input is not scannable
	}
	r, ok := cursor.Peek()

The cursor implements scanner.Cursor and may be plugged into every parser of
this module.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
