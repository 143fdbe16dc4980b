// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

// Filter returns a new table containing only the rows of dt where mask
// is true, with the same columns and metadata, and with the relative row
// order of dt preserved. dt is not modified. A [MisalignedError] is
// returned if the mask length differs from the number of rows.
func Filter(dt *Table, mask Mask) (*Table, error) {
	if len(mask) != dt.NumRows() {
		return nil, &MisalignedError{Column: "mask", Rows: len(mask), Want: dt.NumRows()}
	}
	return dt.SelectRows(mask.Indexes()), nil
}

// FilterFunc is a function used for filtering that returns
// true if Table row should be included in the filtered
// table, and false if it should be removed.
type FilterFunc func(dt *Table, row int) bool

// FilterFunc returns a new table containing the rows for which
// the given function returns true, preserving row order.
func (dt *Table) FilterFunc(filterer FilterFunc) *Table {
	var idx []int
	for row := range dt.NumRows() {
		if filterer(dt, row) {
			idx = append(idx, row)
		}
	}
	return dt.SelectRows(idx)
}

// SelectRows returns a new table with the given rows of this table,
// in the given order. Row indexes must be valid.
func (dt *Table) SelectRows(rows []int) *Table {
	nt := NewTable()
	nt.Meta.Copy(dt.Meta)
	nt.Columns.Rows = len(rows)
	for ci, scl := range dt.Columns.Values {
		cl := scl.Clone()
		cl.SetNumRows(len(rows))
		_, csz := cl.RowCellSize()
		for i, srw := range rows {
			cl.CopyCellsFrom(scl, i*csz, srw*csz, csz)
		}
		nt.Columns.Add(dt.Columns.Keys[ci], cl)
	}
	return nt
}
