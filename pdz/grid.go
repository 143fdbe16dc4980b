// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdz

import (
	"fmt"
	"slices"

	"cogentcore.org/skycat/base/metadata"
	"cogentcore.org/skycat/tensor/table"
	"gonum.org/v1/gonum/floats"
)

// Grid is the strictly increasing sequence of redshifts at which every
// density vector of a catalog is sampled. The grid belongs to the
// catalog, not to individual rows.
type Grid []float64

// NewGrid returns a Grid with a copy of the given values, which must
// have at least two elements and be strictly increasing.
func NewGrid(values ...float64) (Grid, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("pdz.NewGrid: need at least 2 grid points, have %d", len(values))
	}
	for i := 1; i < len(values); i++ {
		if !(values[i] > values[i-1]) {
			return nil, fmt.Errorf("pdz.NewGrid: grid is not strictly increasing at index %d", i)
		}
	}
	return Grid(slices.Clone(values)), nil
}

// Linspace returns a Grid of n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) (Grid, error) {
	if n < 2 || !(hi > lo) {
		return nil, fmt.Errorf("pdz.Linspace: invalid grid %g..%g with %d points", lo, hi, n)
	}
	return Grid(floats.Span(make([]float64, n), lo, hi)), nil
}

// Len returns the number of grid points.
func (g Grid) Len() int { return len(g) }

// Edges returns the n+1 bin edges around the n grid points: midpoints
// between neighbors, with the outer edges extended by half the
// neighboring spacing.
func (g Grid) Edges() []float64 {
	n := len(g)
	e := make([]float64, n+1)
	for i := 1; i < n; i++ {
		e[i] = 0.5 * (g[i-1] + g[i])
	}
	e[0] = g[0] - 0.5*(g[1]-g[0])
	e[n] = g[n-1] + 0.5*(g[n-1]-g[n-2])
	return e
}

// SetGrid records the grid for the density columns of dt in its metadata.
func SetGrid(dt *table.Table, g Grid) {
	dt.Meta.Set("Grid", g)
}

// GridOf returns the grid recorded in the metadata of dt.
func GridOf(dt *table.Table) (Grid, error) {
	return metadata.Get[Grid](dt.Meta, "Grid")
}
