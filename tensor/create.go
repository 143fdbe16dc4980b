// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"reflect"
)

// New returns a new n-dimensional tensor of given value type
// with the given sizes per dimension (shape).
func New[T DataTypes](sizes ...int) Tensor {
	var v T
	switch any(v).(type) {
	case string:
		return NewString(sizes...)
	case bool:
		return NewBool(sizes...)
	case float64:
		return NewFloat64(sizes...)
	case int:
		return NewInt(sizes...)
	}
	panic("tensor.New: unexpected type")
}

// NewOfType returns a new n-dimensional tensor of given reflect.Kind type
// with the given sizes per dimension (shape).
// Supported types are string, bool, float64 (and float32, stored as float64),
// and the signed integer kinds (stored as int).
func NewOfType(typ reflect.Kind, sizes ...int) (Tensor, error) {
	switch {
	case typ == reflect.String:
		return NewString(sizes...), nil
	case typ == reflect.Bool:
		return NewBool(sizes...), nil
	case typ == reflect.Float64 || typ == reflect.Float32:
		return NewFloat64(sizes...), nil
	case typ >= reflect.Int && typ <= reflect.Int64:
		return NewInt(sizes...), nil
	}
	return nil, fmt.Errorf("tensor.NewOfType: type not supported: %v", typ)
}

// AsFloat64s returns all values of the tensor as a new []float64 slice.
func AsFloat64s(tsr Tensor) []float64 {
	n := tsr.Len()
	fv := make([]float64, n)
	for i := range n {
		fv[i] = tsr.Float1D(i)
	}
	return fv
}
