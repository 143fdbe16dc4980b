// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import "strconv"

// Bool is a tensor of bool values, used for catalog flag columns.
type Bool struct {
	Base[bool]
}

// NewBool returns a new n-dimensional tensor of bool values
// with the given sizes per dimension (shape).
func NewBool(sizes ...int) *Bool {
	tsr := &Bool{}
	tsr.setShapeSizes(sizes...)
	return tsr
}

// NewBoolFromValues returns a new 1-dimensional tensor
// wrapping the given values.
func NewBoolFromValues(vals ...bool) *Bool {
	tsr := &Bool{}
	tsr.Values = vals
	tsr.shape.SetShapeSizes(len(vals))
	return tsr
}

// BoolToFloat64 converts a bool to a 1 or 0 float64.
func BoolToFloat64(bv bool) float64 {
	if bv {
		return 1
	}
	return 0
}

// Float64ToBool converts a float64 to a bool, true if non-zero.
func Float64ToBool(val float64) bool {
	return val != 0
}

func (tsr *Bool) String() string { return tsr.sprint() }

func (tsr *Bool) IsString() bool { return false }

func (tsr *Bool) Float1D(i int) float64 { return BoolToFloat64(tsr.Values[i]) }

func (tsr *Bool) SetFloat1D(i int, val float64) { tsr.Values[i] = Float64ToBool(val) }

func (tsr *Bool) FloatRow(row, cell int) float64 {
	_, cells := tsr.shape.RowCellSize()
	return tsr.Float1D(row*cells + cell)
}

func (tsr *Bool) String1D(i int) string { return strconv.FormatBool(tsr.Values[i]) }

// SetString1D parses true/false, 1/0, and the other forms accepted by
// [strconv.ParseBool]; unparseable values leave the value unchanged.
func (tsr *Bool) SetString1D(i int, val string) {
	if bv, err := strconv.ParseBool(val); err == nil {
		tsr.Values[i] = bv
	}
}

// Clone returns a deep copy of the tensor.
func (tsr *Bool) Clone() Tensor {
	return &Bool{Base: tsr.cloneBase()}
}

// AppendFrom appends all rows of the given tensor.
func (tsr *Bool) AppendFrom(from Tensor) error {
	if err := checkAppend(tsr, from); err != nil {
		return err
	}
	tsr.appendValues(from)
	return nil
}
