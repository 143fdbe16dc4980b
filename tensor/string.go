// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"math"
	"strconv"
)

// String is a tensor of string values
type String struct {
	Base[string]
}

// NewString returns a new n-dimensional tensor of string values
// with the given sizes per dimension (shape).
func NewString(sizes ...int) *String {
	tsr := &String{}
	tsr.setShapeSizes(sizes...)
	return tsr
}

// NewStringFromValues returns a new 1-dimensional tensor
// wrapping the given values.
func NewStringFromValues(vals ...string) *String {
	tsr := &String{}
	tsr.Values = vals
	tsr.shape.SetShapeSizes(len(vals))
	return tsr
}

func (tsr *String) String() string { return tsr.sprint() }

func (tsr *String) IsString() bool { return true }

// Float1D returns the value parsed as a float, or NaN.
func (tsr *String) Float1D(i int) float64 {
	fv, err := strconv.ParseFloat(tsr.Values[i], 64)
	if err != nil {
		return math.NaN()
	}
	return fv
}

func (tsr *String) SetFloat1D(i int, val float64) {
	tsr.Values[i] = strconv.FormatFloat(val, 'g', -1, 64)
}

func (tsr *String) FloatRow(row, cell int) float64 {
	_, cells := tsr.shape.RowCellSize()
	return tsr.Float1D(row*cells + cell)
}

func (tsr *String) String1D(i int) string { return tsr.Values[i] }

func (tsr *String) SetString1D(i int, val string) { tsr.Values[i] = val }

// Clone returns a deep copy of the tensor.
func (tsr *String) Clone() Tensor {
	return &String{Base: tsr.cloneBase()}
}

// AppendFrom appends all rows of the given tensor.
func (tsr *String) AppendFrom(from Tensor) error {
	if err := checkAppend(tsr, from); err != nil {
		return err
	}
	tsr.appendValues(from)
	return nil
}
