// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensor provides typed, row-major column storage used as
// the columns of a [cogentcore.org/skycat/tensor/table.Table].
// Scalar columns have one dimension (rows); vector columns, such as
// per-object redshift densities, have an inner cell dimension.
package tensor

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrMisaligned is returned when tensors that must share a row
// dimension have different numbers of rows or cells.
var ErrMisaligned = errors.New("misaligned table")

// DataTypes are the primary tensor data types with specific support.
type DataTypes interface {
	string | bool | float64 | int
}

// Tensor is the interface for n-dimensional tensors.
// Per C / Go / Python conventions, indexes are Row-Major, ordered from
// outer to inner left-to-right, so the inner-most is right-most.
// For float64 values, NaN indicates missing values, and arithmetic
// on NaN propagates NaN.
type Tensor interface {
	fmt.Stringer

	// Shape returns a pointer to the Shape that fully parametrizes
	// the tensor shape.
	Shape() *Shape

	// SetNames sets the dimension names of the tensor shape.
	SetNames(names ...string)

	// Len returns the number of elements in the tensor,
	// which is the product of all shape dimensions.
	Len() int

	// NumRows returns the size of the outermost row dimension.
	NumRows() int

	// RowCellSize returns the size of the outermost Row shape dimension,
	// and the size of all the remaining inner dimensions (the "cell" size).
	RowCellSize() (rows, cells int)

	// DataType returns the type of the data elements in the tensor.
	DataType() reflect.Kind

	// IsString returns true if the data type is a String.
	IsString() bool

	// Float1D returns the value of given 1-dimensional index (0-Len()-1) as a float64.
	// Bool values are 1 or 0, and non-numeric strings are NaN.
	Float1D(i int) float64

	// SetFloat1D sets the value of given 1-dimensional index (0-Len()-1) as a float64.
	SetFloat1D(i int, val float64)

	// FloatRow returns the value at given row and cell as a float64.
	FloatRow(row, cell int) float64

	// String1D returns the value of given 1-dimensional index (0-Len()-1) as a string.
	String1D(i int) string

	// SetString1D sets the value of given 1-dimensional index (0-Len()-1) as a string.
	SetString1D(i int, val string)

	// SetNumRows sets the number of rows (outermost dimension),
	// retaining existing data that fits and zero-filling new rows.
	SetNumRows(rows int)

	// Clone returns a deep copy of the tensor.
	Clone() Tensor

	// CopyCellsFrom copies n values from given source tensor, starting
	// at the from index in the source into the to index in this tensor.
	// The source must have the same data type.
	CopyCellsFrom(from Tensor, to, start, n int)

	// AppendFrom appends all rows of the given tensor, which must have
	// the same data type and cell size.
	AppendFrom(from Tensor) error
}

// checkAppend returns an error if from cannot be appended to tsr.
func checkAppend(tsr, from Tensor) error {
	if tsr.DataType() != from.DataType() {
		return fmt.Errorf("tensor.AppendFrom: data type %v does not match %v", from.DataType(), tsr.DataType())
	}
	_, tc := tsr.RowCellSize()
	_, fc := from.RowCellSize()
	if tc != fc {
		return fmt.Errorf("tensor.AppendFrom: cell size %d does not match %d: %w", fc, tc, ErrMisaligned)
	}
	return nil
}
