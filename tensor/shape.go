// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"slices"
)

// Shape manages a tensor's shape information, including sizes and names
// of each dimension. The outermost (first) dimension is the row dimension
// when a tensor is used as a table column, and the product of the remaining
// dimensions is the per-row "cell" size.
type Shape struct {
	// Sizes is the size of each dimension.
	Sizes []int

	// Names are optional names for each dimension.
	Names []string
}

// SetShapeSizes sets the shape sizes, clearing any names.
func (sh *Shape) SetShapeSizes(sizes ...int) {
	sh.Sizes = slices.Clone(sizes)
	sh.Names = nil
}

// SetNames sets the dimension names.
func (sh *Shape) SetNames(names ...string) {
	sh.Names = slices.Clone(names)
}

// CopyFrom copies the shape parameters from another Shape struct.
func (sh *Shape) CopyFrom(cp *Shape) {
	sh.Sizes = slices.Clone(cp.Sizes)
	sh.Names = slices.Clone(cp.Names)
}

// Len returns the total length of elements in the tensor
// (i.e., the product of the shape sizes).
func (sh *Shape) Len() int {
	if len(sh.Sizes) == 0 {
		return 0
	}
	ln := 1
	for _, v := range sh.Sizes {
		ln *= v
	}
	return ln
}

// NumDims returns the total number of dimensions.
func (sh *Shape) NumDims() int { return len(sh.Sizes) }

// DimSize returns the size of given dimension.
func (sh *Shape) DimSize(i int) int { return sh.Sizes[i] }

// RowCellSize returns the size of the outermost Row shape dimension,
// and the size of all the remaining inner dimensions (the "cell" size).
func (sh *Shape) RowCellSize() (rows, cells int) {
	if len(sh.Sizes) == 0 {
		return 0, 1
	}
	rows = sh.Sizes[0]
	cells = 1
	for _, v := range sh.Sizes[1:] {
		cells *= v
	}
	return
}

// CellSizes returns the sizes of the inner (non-row) dimensions.
func (sh *Shape) CellSizes() []int {
	if len(sh.Sizes) <= 1 {
		return nil
	}
	return slices.Clone(sh.Sizes[1:])
}

// IsEqual returns true if the sizes of the two shapes are the same.
func (sh *Shape) IsEqual(oth *Shape) bool {
	return slices.Equal(sh.Sizes, oth.Sizes)
}

// String satisfies the fmt.Stringer interface.
func (sh *Shape) String() string {
	return fmt.Sprintf("%v", sh.Sizes)
}
