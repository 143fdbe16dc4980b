// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"math"
	"strconv"
)

// Numbers are the numerical types a [Number] tensor can hold.
type Numbers interface {
	~float64 | ~float32 | ~int | ~int64 | ~int32
}

// Number is a tensor of numerical values
type Number[T Numbers] struct {
	Base[T]
}

// Float64 is an alias for Number[float64].
type Float64 = Number[float64]

// Int is an alias for Number[int].
type Int = Number[int]

// NewFloat64 returns a new [Float64] tensor
// with the given sizes per dimension (shape).
func NewFloat64(sizes ...int) *Float64 {
	return NewNumber[float64](sizes...)
}

// NewInt returns a new Int tensor
// with the given sizes per dimension (shape).
func NewInt(sizes ...int) *Int {
	return NewNumber[int](sizes...)
}

// NewNumber returns a new n-dimensional tensor of numerical values
// with the given sizes per dimension (shape).
func NewNumber[T Numbers](sizes ...int) *Number[T] {
	tsr := &Number[T]{}
	tsr.setShapeSizes(sizes...)
	return tsr
}

// NewNumberFromValues returns a new 1-dimensional tensor of given value type
// initialized directly from the given slice values, which are not copied.
// The resulting Tensor thus "wraps" the given values.
func NewNumberFromValues[T Numbers](vals ...T) *Number[T] {
	tsr := &Number[T]{}
	tsr.Values = vals
	tsr.shape.SetShapeSizes(len(vals))
	return tsr
}

// NewFloat64FromValues returns a new 1-dimensional [Float64]
// wrapping the given values.
func NewFloat64FromValues(vals ...float64) *Float64 {
	return NewNumberFromValues(vals...)
}

// NewIntFromValues returns a new 1-dimensional [Int]
// wrapping the given values.
func NewIntFromValues(vals ...int) *Int {
	return NewNumberFromValues(vals...)
}

// String satisfies the fmt.Stringer interface for string of tensor data.
func (tsr *Number[T]) String() string { return tsr.sprint() }

func (tsr *Number[T]) IsString() bool { return false }

func (tsr *Number[T]) Float1D(i int) float64 { return float64(tsr.Values[i]) }

func (tsr *Number[T]) SetFloat1D(i int, val float64) { tsr.Values[i] = T(val) }

func (tsr *Number[T]) FloatRow(row, cell int) float64 {
	_, cells := tsr.shape.RowCellSize()
	return float64(tsr.Values[row*cells+cell])
}

func (tsr *Number[T]) String1D(i int) string {
	if !tsr.IsFloat() {
		return strconv.FormatInt(int64(tsr.Values[i]), 10)
	}
	return strconv.FormatFloat(float64(tsr.Values[i]), 'g', -1, 64)
}

// SetString1D parses the given string as a number. Unparseable
// values are stored as NaN for floating point types and left
// unchanged otherwise. Integer types accept only integer strings.
func (tsr *Number[T]) SetString1D(i int, val string) {
	if !tsr.IsFloat() {
		if iv, err := strconv.ParseInt(val, 10, 64); err == nil {
			tsr.Values[i] = T(iv)
		}
		return
	}
	if fv, err := strconv.ParseFloat(val, 64); err == nil {
		tsr.Values[i] = T(fv)
		return
	}
	tsr.Values[i] = T(math.NaN())
}

// IsFloat returns true if the values are floating point.
func (tsr *Number[T]) IsFloat() bool {
	var v T
	switch any(v).(type) {
	case float64, float32:
		return true
	}
	return false
}

// Clone returns a deep copy of the tensor.
func (tsr *Number[T]) Clone() Tensor {
	return &Number[T]{Base: tsr.cloneBase()}
}

// AppendFrom appends all rows of the given tensor.
func (tsr *Number[T]) AppendFrom(from Tensor) error {
	if err := checkAppend(tsr, from); err != nil {
		return err
	}
	tsr.appendValues(from)
	return nil
}
