// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

// Mask is a row selection over a Table: row i is kept iff Mask[i] is true.
// A Mask must have the same length as the table it is applied to.
type Mask []bool

// NewMask returns a new Mask of length n with all values set to val.
func NewMask(n int, val bool) Mask {
	m := make(Mask, n)
	if val {
		for i := range m {
			m[i] = true
		}
	}
	return m
}

// And returns a new Mask that is the elementwise conjunction of m and o.
func (m Mask) And(o Mask) (Mask, error) {
	if len(m) != len(o) {
		return nil, &MisalignedError{Column: "mask", Rows: len(o), Want: len(m)}
	}
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] && o[i]
	}
	return out, nil
}

// Not returns a new Mask with every value inverted.
func (m Mask) Not() Mask {
	out := make(Mask, len(m))
	for i, v := range m {
		out[i] = !v
	}
	return out
}

// Count returns the number of true values.
func (m Mask) Count() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// Indexes returns the row indexes of the true values, in increasing order.
func (m Mask) Indexes() []int {
	idx := make([]int, 0, m.Count())
	for i, v := range m {
		if v {
			idx = append(idx, i)
		}
	}
	return idx
}
