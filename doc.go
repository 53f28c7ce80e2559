/*
Package rascent is a case study in recursive ascent parsing.

Instead of interpreting a generated parser table, a recursive ascent parser
compiles the LR automaton into executable control flow: states become code
locations, and goto decisions become branches on an explicit stack. RASCENT
does this for one fixed expression grammar

    S = E
    E = E + T  |  T
    T = T * F  |  F
    F = a      |  ( E )

and explores a series of semantics-preserving transformations of the same
automaton. Package structure is as follows:

■ lr: Package lr holds the grammar automaton model, i.e. the LR(0) state graph
together with derived encodings (push sets, merge classes, reverse gotos),
parser tables and export functions.

■ lr/slr: Package slr interprets the parser tables, the baseline which recursive
ascent compiles away.

■ lr/ascent: Package ascent implements the recursive ascent engine, its stack
encodings and the family of optimized variants.

■ lr/scanner: Package scanner provides input cursors with one terminal of lookahead.

The base package contains data types which are used throughout all the other
packages: rule identifiers, the semantic action sink and parse errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rascent
