// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensorString(t *testing.T) {
	tsr := New[string](4, 2)
	tsr.SetNames("Row", "Vals")
	assert.Equal(t, 8, tsr.Len())
	assert.Equal(t, true, tsr.IsString())
	assert.Equal(t, reflect.String, tsr.DataType())
	r, c := tsr.RowCellSize()
	assert.Equal(t, 4, r)
	assert.Equal(t, 2, c)

	tsr.SetString1D(5, "testing")
	assert.Equal(t, "testing", tsr.String1D(5))
	assert.True(t, math.IsNaN(tsr.Float1D(5)))
	tsr.SetFloat1D(4, 2.5)
	assert.Equal(t, "2.5", tsr.String1D(4))
	assert.Equal(t, 2.5, tsr.FloatRow(2, 0))

	cln := tsr.Clone()
	cln.SetString1D(5, "changed")
	assert.Equal(t, "testing", tsr.String1D(5))

	tsr.SetNumRows(5)
	assert.Equal(t, 10, tsr.Len())
	assert.Equal(t, "", tsr.String1D(9))
}

func TestTensorFloat64(t *testing.T) {
	tsr := NewFloat64(3, 4)
	assert.Equal(t, 12, tsr.Len())
	assert.Equal(t, reflect.Float64, tsr.DataType())
	assert.False(t, tsr.IsString())
	assert.True(t, tsr.IsFloat())

	tsr.SetFloat1D(5, 0.5)
	assert.Equal(t, 0.5, tsr.FloatRow(1, 1))
	assert.Equal(t, []float64{0, 0.5, 0, 0}, tsr.Row(1))
	tsr.Row(1)[3] = 2
	assert.Equal(t, 2.0, tsr.Value1D(7))

	tsr.SetString1D(0, "bad")
	assert.True(t, math.IsNaN(tsr.Float1D(0)))
	tsr.SetString1D(0, "1e3")
	assert.Equal(t, 1000.0, tsr.Float1D(0))

	tsr.SetNumRows(1)
	assert.Equal(t, 4, tsr.Len())
	tsr.SetNumRows(2)
	assert.Equal(t, []float64{0, 0, 0, 0}, tsr.Row(1), "grown rows are zero")

	tsr.SetNumRows(0)
	assert.Equal(t, 0, tsr.NumRows())
	assert.Equal(t, 0, tsr.Len())
}

func TestTensorInt(t *testing.T) {
	tsr := NewIntFromValues(1, 2, 3)
	assert.Equal(t, reflect.Int, tsr.DataType())
	assert.False(t, tsr.IsFloat())
	tsr.SetString1D(0, "bad")
	assert.Equal(t, 1, tsr.Value1D(0))
	tsr.SetString1D(0, "NaN")
	assert.Equal(t, 1, tsr.Value1D(0))
	tsr.SetString1D(0, "2.5")
	assert.Equal(t, 1, tsr.Value1D(0))
	assert.Equal(t, "3", tsr.String1D(2))

	big := NewIntFromValues(1234567890123456789)
	assert.Equal(t, "1234567890123456789", big.String1D(0))
	big.SetString1D(0, "1234567890123456788")
	assert.Equal(t, 1234567890123456788, big.Value1D(0))
}

func TestTensorBool(t *testing.T) {
	tsr := NewBoolFromValues(true, false)
	assert.Equal(t, reflect.Bool, tsr.DataType())
	assert.Equal(t, 1.0, tsr.Float1D(0))
	assert.Equal(t, 0.0, tsr.Float1D(1))
	tsr.SetString1D(1, "true")
	assert.True(t, tsr.Value1D(1))
	tsr.SetFloat1D(0, 0)
	assert.False(t, tsr.Value1D(0))
	assert.Equal(t, "false", tsr.String1D(0))
}

func TestNewOfType(t *testing.T) {
	for _, typ := range []reflect.Kind{reflect.Float64, reflect.Float32, reflect.Int, reflect.Int64, reflect.Bool, reflect.String} {
		tsr, err := NewOfType(typ, 2, 3)
		require.NoError(t, err, typ)
		assert.Equal(t, 6, tsr.Len())
	}
	_, err := NewOfType(reflect.Complex128, 2)
	assert.Error(t, err)
}

func TestCopyAppend(t *testing.T) {
	a := NewFloat64(2, 3)
	for i := range a.Values {
		a.Values[i] = float64(i)
	}
	b := NewFloat64(1, 3)
	b.CopyCellsFrom(a, 0, 3, 3)
	assert.Equal(t, []float64{3, 4, 5}, b.Values)

	require.NoError(t, b.AppendFrom(a))
	assert.Equal(t, 3, b.NumRows())
	assert.Equal(t, []float64{3, 4, 5, 0, 1, 2, 3, 4, 5}, b.Values)

	err := b.AppendFrom(NewFloat64(2, 4))
	assert.ErrorIs(t, err, ErrMisaligned)
	assert.Error(t, b.AppendFrom(NewInt(2, 3)))
	assert.Equal(t, 3, b.NumRows())

	s := NewStringFromValues("a", "b")
	require.NoError(t, s.AppendFrom(NewStringFromValues("c")))
	assert.Equal(t, []string{"a", "b", "c"}, s.Values)
}

func TestShape(t *testing.T) {
	sh := &Shape{}
	sh.SetShapeSizes(5, 301)
	assert.Equal(t, 1505, sh.Len())
	r, c := sh.RowCellSize()
	assert.Equal(t, 5, r)
	assert.Equal(t, 301, c)
	assert.Equal(t, []int{301}, sh.CellSizes())

	var empty Shape
	r, c = empty.RowCellSize()
	assert.Equal(t, 0, r)
	assert.Equal(t, 1, c)

	cp := &Shape{}
	cp.CopyFrom(sh)
	assert.True(t, cp.IsEqual(sh))
}

func TestAsFloat64s(t *testing.T) {
	assert.Equal(t, []float64{1, 0, 1}, AsFloat64s(NewBoolFromValues(true, false, true)))
	fv := AsFloat64s(NewStringFromValues("2", "x"))
	assert.Equal(t, 2.0, fv[0])
	assert.True(t, math.IsNaN(fv[1]))
}
