// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"
)

// ColumnSpec declares one column of a [Schema].
type ColumnSpec struct {
	// Name is the column name.
	Name string

	// Kind is the element type: Float64, Int, Bool or String.
	Kind reflect.Kind

	// CellSize is the number of values per row; 0 or 1 for scalars.
	CellSize int
}

// Schema is an ordered list of column declarations that a table
// is expected to satisfy, so that missing columns are caught when
// a table is constructed or read rather than deep inside an analysis.
type Schema []ColumnSpec

// Names returns the column names in order.
func (sc Schema) Names() []string {
	nms := make([]string, len(sc))
	for i, cs := range sc {
		nms[i] = cs.Name
	}
	return nms
}

// Validate returns an error if dt does not have every column in the
// schema with the declared kind and cell size. Extra columns are allowed.
// A missing column returns a [MissingColumnError].
func (sc Schema) Validate(dt *Table) error {
	for _, cs := range sc {
		cl, err := dt.ColumnTry(cs.Name)
		if err != nil {
			return err
		}
		if cl.DataType() != cs.Kind {
			return fmt.Errorf("table: column %q has type %v, schema declares %v", cs.Name, cl.DataType(), cs.Kind)
		}
		_, cells := cl.RowCellSize()
		if cells != max(1, cs.CellSize) {
			return fmt.Errorf("table: column %q has cell size %d, schema declares %d", cs.Name, cells, max(1, cs.CellSize))
		}
	}
	return dt.Validate()
}

// NewTable returns a new table with the schema's columns and given rows.
func (sc Schema) NewTable(rows int, name ...string) (*Table, error) {
	dt := NewTable(name...)
	dt.Columns.Rows = rows
	for _, cs := range sc {
		var cells []int
		if cs.CellSize > 1 {
			cells = []int{cs.CellSize}
		}
		if _, err := dt.AddColumnOfType(cs.Name, cs.Kind, cells...); err != nil {
			return nil, err
		}
	}
	return dt, nil
}
