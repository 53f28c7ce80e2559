/*
Package sparse implements a small type for sparse integer matrices.
It is used for parser tables (GOTO-table and ACTION-table).
Every entry in the table is either a single int32 or a pair (int32,int32),
the latter representing a conflict.

Entries are stored as triplets (row, column, value), kept sorted in row-major
order, and located by binary search.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value.
type IntMatrix struct {
	entries []entry
	rowcnt  int
	colcnt  int
	nullval int32
}

type entry struct {
	row, col int
	a, b     int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.entries)
}

// search returns the index of the first entry not stored left of (i,j).
func (m *IntMatrix) search(i, j int) int {
	return sort.Search(len(m.entries), func(k int) bool {
		e := m.entries[k]
		return e.row > i || e.row == i && e.col >= j
	})
}

func (m *IntMatrix) at(i, j int) (int, bool) {
	k := m.search(i, j)
	return k, k < len(m.entries) && m.entries[k].row == i && m.entries[k].col == j
}

// Value returns the primary value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	if k, ok := m.at(i, j); ok {
		return m.entries[k].a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k, ok := m.at(i, j); ok {
		return m.entries[k].a, m.entries[k].b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j), replacing any values present.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	m.check(i, j)
	k, ok := m.at(i, j)
	if ok {
		m.entries[k].a, m.entries[k].b = value, m.nullval
		return m
	}
	m.insert(k, entry{row: i, col: j, a: value, b: m.nullval})
	return m
}

// Add a value in the matrix at position (i,j). If a value is already present,
// the new one becomes the secondary value. A third value overwrites the
// secondary one.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	m.check(i, j)
	k, ok := m.at(i, j)
	if !ok {
		m.insert(k, entry{row: i, col: j, a: value, b: m.nullval})
		return m
	}
	if m.entries[k].a == m.nullval {
		m.entries[k].a = value
	} else {
		m.entries[k].b = value
	}
	return m
}

// EachValue calls f for every position set, in row-major order.
func (m *IntMatrix) EachValue(f func(i, j int, a, b int32)) {
	for _, e := range m.entries {
		f(e.row, e.col, e.a, e.b)
	}
}

func (m *IntMatrix) insert(k int, e entry) {
	m.entries = append(m.entries, entry{})
	copy(m.entries[k+1:], m.entries[k:])
	m.entries[k] = e
}

func (m *IntMatrix) check(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
}
