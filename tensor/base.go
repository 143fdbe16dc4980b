// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Base is the base Tensor implementation for given type.
type Base[T any] struct {
	// shape contains the N-dimensional shape and indexing functionality.
	shape Shape

	// Values is a flat 1D slice of the underlying data.
	Values []T
}

// Shape returns a pointer to the shape that fully parametrizes the tensor shape.
func (tsr *Base[T]) Shape() *Shape { return &tsr.shape }

// SetNames sets the dimension names of the tensor shape.
func (tsr *Base[T]) SetNames(names ...string) { tsr.shape.SetNames(names...) }

// Len returns the number of elements in the tensor (product of shape dimensions).
func (tsr *Base[T]) Len() int { return tsr.shape.Len() }

// NumRows returns the size of the outermost row dimension.
func (tsr *Base[T]) NumRows() int {
	rows, _ := tsr.shape.RowCellSize()
	return rows
}

// RowCellSize returns the size of the outermost Row shape dimension,
// and the size of all the remaining inner dimensions (the "cell" size).
func (tsr *Base[T]) RowCellSize() (rows, cells int) {
	return tsr.shape.RowCellSize()
}

// DataType returns the type of the data elements in the tensor.
func (tsr *Base[T]) DataType() reflect.Kind {
	var v T
	return reflect.TypeOf(v).Kind()
}

// Value1D returns the value at given 1D index.
func (tsr *Base[T]) Value1D(i int) T { return tsr.Values[i] }

// Set1D sets the value at given 1D index.
func (tsr *Base[T]) Set1D(val T, i int) { tsr.Values[i] = val }

// Row returns the cell values at given row, as a slice
// into the underlying Values (modifications affect both).
func (tsr *Base[T]) Row(row int) []T {
	_, cells := tsr.shape.RowCellSize()
	return tsr.Values[row*cells : (row+1)*cells]
}

// setShapeSizes sets the shape and resizes backing storage,
// retaining all existing data that fits.
func (tsr *Base[T]) setShapeSizes(sizes ...int) {
	tsr.shape.SetShapeSizes(sizes...)
	tsr.Values = setLength(tsr.Values, tsr.shape.Len())
}

// SetNumRows sets the number of rows (outermost dimension).
// Zero rows is valid, which is the state of an empty filter result.
func (tsr *Base[T]) SetNumRows(rows int) {
	rows = max(0, rows)
	if len(tsr.shape.Sizes) == 0 {
		tsr.shape.Sizes = []int{rows}
	}
	_, cells := tsr.shape.RowCellSize()
	tsr.shape.Sizes[0] = rows
	tsr.Values = setLength(tsr.Values, rows*cells)
}

// CopyCellsFrom copies n values from given source tensor, starting
// at the from index in the source into the to index in this tensor.
func (tsr *Base[T]) CopyCellsFrom(from Tensor, to, start, n int) {
	if fsm, ok := from.(interface{ values() []T }); ok {
		copy(tsr.Values[to:to+n], fsm.values()[start:start+n])
	}
}

func (tsr *Base[T]) values() []T { return tsr.Values }

// appendValues appends the values of from, which must have been checked.
func (tsr *Base[T]) appendValues(from Tensor) {
	fsm := from.(interface{ values() []T })
	tsr.Values = append(tsr.Values, fsm.values()...)
	tsr.shape.Sizes[0] += from.NumRows()
}

func (tsr *Base[T]) cloneBase() Base[T] {
	cp := Base[T]{Values: slices.Clone(tsr.Values)}
	cp.shape.CopyFrom(&tsr.shape)
	return cp
}

func (tsr *Base[T]) sprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: ", tsr.shape.String())
	rows, cells := tsr.shape.RowCellSize()
	for r := range rows {
		if cells == 1 {
			fmt.Fprintf(&b, "%v ", tsr.Values[r])
			continue
		}
		fmt.Fprintf(&b, "%v ", tsr.Values[r*cells:(r+1)*cells])
	}
	return strings.TrimSpace(b.String())
}

// setLength sets the length of a slice, zero-filling any new elements.
func setLength[E any](s []E, n int) []E {
	if n <= len(s) {
		return s[:n]
	}
	old := len(s)
	if cap(s) >= n {
		s = s[:n]
		clear(s[old:])
		return s
	}
	return append(s, make([]E, n-old)...)
}
