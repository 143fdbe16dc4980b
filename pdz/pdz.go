// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pdz works with per-object photometric redshift densities:
// vector table columns holding one density per row, sampled on a
// shared [Grid].
//
// [Sum] stacks the densities of a selection into a single N(z).
// This is a rough estimate of the redshift distribution, useful for
// comparing selections and against a histogram of a reference redshift;
// it is not a statistically rigorous estimator, and the only guarantee
// is that the same inputs reproduce the same sum.
package pdz

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"cogentcore.org/skycat/cuts"
	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// densityColumn returns the named float64 vector column of dt and its cell size.
// If dt has a grid in its metadata, the cell size must match it.
func densityColumn(dt *table.Table, column string) (*tensor.Float64, int, error) {
	cl, err := dt.ColumnTry(column)
	if err != nil {
		return nil, 0, err
	}
	ft, ok := cl.(*tensor.Float64)
	if !ok || cl.DataType() != reflect.Float64 {
		return nil, 0, fmt.Errorf("pdz: column %q is %v, not a float64 density column", column, cl.DataType())
	}
	_, cells := ft.RowCellSize()
	if g, err := GridOf(dt); err == nil && g.Len() != cells {
		return nil, 0, &table.MisalignedError{Column: column + " cells", Rows: cells, Want: g.Len()}
	}
	return ft, cells, nil
}

// Sum returns the elementwise sum of the density vectors in column over
// the rows selected by sub, or over all rows if sub is nil.
// NaN in any summed vector gives NaN at that grid point; exclude such
// rows beforehand with [cuts.Baseline]. An empty selection gives a
// zero vector of the grid length.
func Sum(dt *table.Table, column string, sub table.Mask) ([]float64, error) {
	ft, cells, err := densityColumn(dt, column)
	if err != nil {
		return nil, err
	}
	if sub != nil && len(sub) != dt.NumRows() {
		return nil, &table.MisalignedError{Column: "mask", Rows: len(sub), Want: dt.NumRows()}
	}
	sum := make([]float64, cells)
	for r := range dt.NumRows() {
		if sub != nil && !sub[r] {
			continue
		}
		floats.Add(sum, ft.Row(r))
	}
	return sum, nil
}

// Histogram returns the counts of the given reference values (for
// example spectroscopic redshifts) in the bins around each grid point,
// defined by [Grid.Edges]. NaN values and values outside the edges are
// not counted.
func Histogram(values []float64, g Grid) []float64 {
	edges := g.Edges()
	lo, hi := edges[0], edges[len(edges)-1]
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= lo && v < hi {
			x = append(x, v)
		}
	}
	slices.Sort(x)
	return stat.Histogram(nil, edges, x, nil)
}

// Normalize returns a copy of v scaled to unit integral over the grid,
// using the trapezoid rule. A vector with zero or NaN integral is
// returned unscaled.
func Normalize(v []float64, g Grid) ([]float64, error) {
	if len(v) != g.Len() {
		return nil, &table.MisalignedError{Column: "density", Rows: len(v), Want: g.Len()}
	}
	out := slices.Clone(v)
	area := integrate.Trapezoidal(g, v)
	if area == 0 || math.IsNaN(area) {
		return out, nil
	}
	floats.Scale(1/area, out)
	return out, nil
}

// Mean returns the density-weighted mean of the grid.
func Mean(v []float64, g Grid) (float64, error) {
	if len(v) != g.Len() {
		return math.NaN(), &table.MisalignedError{Column: "density", Rows: len(v), Want: g.Len()}
	}
	return floats.Dot(g, v) / floats.Sum(v), nil
}

// Mode appends a point-estimate column out holding, for each row, the grid
// value at the maximum of the density in column. Rows with any NaN give NaN.
func Mode(dt *table.Table, column string, g Grid, out string) error {
	ft, cells, err := densityColumn(dt, column)
	if err != nil {
		return err
	}
	if cells != g.Len() {
		return &table.MisalignedError{Column: column + " cells", Rows: cells, Want: g.Len()}
	}
	zm := tensor.NewFloat64(dt.NumRows())
	for r := range zm.Values {
		row := ft.Row(r)
		if floats.HasNaN(row) {
			zm.Values[r] = math.NaN()
			continue
		}
		zm.Values[r] = g[floats.MaxIdx(row)]
	}
	return dt.AddColumn(out, zm)
}

// Slices returns one mask per tomographic bin, selecting rows with
// edges[i] < column <= edges[i+1].
func Slices(dt *table.Table, column string, edges []float64) ([]table.Mask, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("pdz.Slices: need at least 2 edges, have %d", len(edges))
	}
	ms := make([]table.Mask, len(edges)-1)
	for i := range ms {
		m, err := cuts.Select(dt, cuts.Between(column, edges[i], edges[i+1]))
		if err != nil {
			return nil, err
		}
		ms[i] = m
	}
	return ms, nil
}
