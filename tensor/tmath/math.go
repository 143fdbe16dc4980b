// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tmath provides elementwise math functions over tensors.
// Every function returns a new [tensor.Float64] with the shape of
// its first input, leaving the inputs unmodified. NaN inputs produce
// NaN outputs.
package tmath

import (
	"fmt"
	"math"

	"cogentcore.org/skycat/tensor"
)

// Apply1 returns a new tensor with fn applied to each value of a.
func Apply1(a tensor.Tensor, fn func(x float64) float64) *tensor.Float64 {
	out := newOutput(a)
	for i := range out.Values {
		out.Values[i] = fn(a.Float1D(i))
	}
	return out
}

// Apply2 returns a new tensor with fn applied to corresponding values
// of a and b, which must have the same number of elements.
func Apply2(a, b tensor.Tensor, fn func(x, y float64) float64) (*tensor.Float64, error) {
	if err := checkLen(a, b); err != nil {
		return nil, err
	}
	out := newOutput(a)
	for i := range out.Values {
		out.Values[i] = fn(a.Float1D(i), b.Float1D(i))
	}
	return out, nil
}

// ApplyN returns a new tensor with fn applied to the corresponding values
// of all given tensors, which must have the same number of elements.
// The vals slice passed to fn is reused across calls.
func ApplyN(fn func(vals []float64) float64, tsrs ...tensor.Tensor) (*tensor.Float64, error) {
	if len(tsrs) == 0 {
		return nil, fmt.Errorf("tmath.ApplyN: no input tensors")
	}
	if err := checkLen(tsrs...); err != nil {
		return nil, err
	}
	out := newOutput(tsrs[0])
	vals := make([]float64, len(tsrs))
	for i := range out.Values {
		for j, t := range tsrs {
			vals[j] = t.Float1D(i)
		}
		out.Values[i] = fn(vals)
	}
	return out, nil
}

// Div returns a / b with IEEE semantics: x/0 is ±Inf and 0/0 is NaN.
func Div(a, b tensor.Tensor) (*tensor.Float64, error) {
	return Apply2(a, b, func(x, y float64) float64 { return x / y })
}

// SafeDiv returns a / b, with NaN wherever b is zero.
func SafeDiv(a, b tensor.Tensor) (*tensor.Float64, error) {
	return Apply2(a, b, func(x, y float64) float64 {
		if y == 0 {
			return math.NaN()
		}
		return x / y
	})
}

// Hypot returns sqrt(a*a + b*b), the Euclidean norm of a and b.
func Hypot(a, b tensor.Tensor) (*tensor.Float64, error) {
	return Apply2(a, b, math.Hypot)
}

func newOutput(a tensor.Tensor) *tensor.Float64 {
	return tensor.NewFloat64(a.Shape().Sizes...)
}

func checkLen(tsrs ...tensor.Tensor) error {
	n := tsrs[0].Len()
	for i, t := range tsrs[1:] {
		if t.Len() != n {
			return fmt.Errorf("tmath: tensor %d has %d values, expected %d: %w", i+1, t.Len(), n, tensor.ErrMisaligned)
		}
	}
	return nil
}
