// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cuts builds row selections ("quality cuts") over tables.
//
// Selection is declarative: every predicate is evaluated against the
// full table and the resulting masks are combined by conjunction, so
// the order of predicates never changes the result. NaN exclusion is
// a separate [Baseline] pass that always runs first, because ordinary
// comparisons against NaN are false and would drop rows implicitly.
package cuts

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
)

// Predicate computes a row [table.Mask] over a table. Predicates must be
// pure, and total over non-NaN values.
type Predicate interface {
	fmt.Stringer

	// Mask returns the rows of dt for which the predicate holds.
	Mask(dt *table.Table) (table.Mask, error)
}

// Select returns the conjunction of the given predicates over dt.
// Every predicate is evaluated independently against the full table.
// An empty list selects every row.
func Select(dt *table.Table, preds ...Predicate) (table.Mask, error) {
	m := table.NewMask(dt.NumRows(), true)
	for _, p := range preds {
		pm, err := p.Mask(dt)
		if err != nil {
			return nil, fmt.Errorf("cuts.Select: %s: %w", p, err)
		}
		if m, err = m.And(pm); err != nil {
			return nil, fmt.Errorf("cuts.Select: %s: %w", p, err)
		}
	}
	return m, nil
}

// Baseline returns the NaN-exclusion mask for dt: true for rows where
// none of the given float columns is NaN (for vector columns, none of
// the cells). If no columns are given, all float columns are checked.
func Baseline(dt *table.Table, columns ...string) (table.Mask, error) {
	if len(columns) == 0 {
		for i, tsr := range dt.Columns.Values {
			if tsr.DataType() == reflect.Float64 {
				columns = append(columns, dt.ColumnName(i))
			}
		}
	}
	return NotNaN(columns...).Mask(dt)
}

// NotNaN returns a predicate that is true for rows where none of the
// given columns (or their cells) is NaN.
func NotNaN(columns ...string) Predicate {
	return notNaN(columns)
}

type notNaN []string

func (nn notNaN) String() string {
	return "notnan(" + strings.Join(nn, ", ") + ")"
}

func (nn notNaN) Mask(dt *table.Table) (table.Mask, error) {
	m := table.NewMask(dt.NumRows(), true)
	tsrs, err := dt.ColumnsTry(nn...)
	if err != nil {
		return nil, err
	}
	for ci, tsr := range tsrs {
		rows, cells := tsr.RowCellSize()
		if rows != len(m) {
			return nil, &table.MisalignedError{Column: nn[ci], Rows: rows, Want: len(m)}
		}
		for r := range m {
			if !m[r] {
				continue
			}
			for c := range cells {
				if math.IsNaN(tsr.Float1D(r*cells + c)) {
					m[r] = false
					break
				}
			}
		}
	}
	return m, nil
}

// Between returns a predicate for lo < column <= hi, which is the
// convention used for tomographic redshift slices.
func Between(column string, lo, hi float64) Predicate {
	return between{column: column, lo: lo, hi: hi}
}

type between struct {
	column string
	lo, hi float64
}

func (b between) String() string {
	return fmt.Sprintf("%g < %s <= %g", b.lo, b.column, b.hi)
}

func (b between) Mask(dt *table.Table) (table.Mask, error) {
	cl, err := scalarColumn(dt, b.column)
	if err != nil {
		return nil, err
	}
	m := make(table.Mask, dt.NumRows())
	for i := range m {
		v := cl.Float1D(i)
		m[i] = v > b.lo && v <= b.hi
	}
	return m, nil
}

// Func returns a named predicate computed row by row with fn.
func Func(name string, fn func(dt *table.Table, row int) bool) Predicate {
	return funcPred{name: name, fn: fn}
}

type funcPred struct {
	name string
	fn   func(dt *table.Table, row int) bool
}

func (fp funcPred) String() string { return fp.name }

func (fp funcPred) Mask(dt *table.Table) (table.Mask, error) {
	m := make(table.Mask, dt.NumRows())
	for i := range m {
		m[i] = fp.fn(dt, i)
	}
	return m, nil
}

// scalarColumn returns the named column, which must have one value per row.
func scalarColumn(dt *table.Table, name string) (tensor.Tensor, error) {
	cl, err := dt.ColumnTry(name)
	if err != nil {
		return nil, err
	}
	rows, cells := cl.RowCellSize()
	if rows != dt.NumRows() || cells != 1 {
		return nil, &table.MisalignedError{Column: name, Rows: cl.Len(), Want: dt.NumRows()}
	}
	return cl, nil
}
