// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table provides a column-oriented Table of [tensor.Tensor]
// columns aligned by a common outermost row dimension, together with
// the boolean [Mask] used to select rows from it.
//
// A Table is only ever extended by adding new columns: filtering and
// concatenation produce new tables, and derived values are added as
// new columns rather than overwriting existing ones.
package table

import (
	"math"
	"reflect"
	"slices"

	"cogentcore.org/skycat/base/metadata"
	"cogentcore.org/skycat/tensor"
)

// Table is a table of Tensor columns aligned by a common outermost row dimension.
// Use the [Table.Column] (by name) and [Table.ColumnTry] methods to obtain
// column data.
type Table struct {
	// Columns has the list of column tensor data for this table.
	Columns *Columns

	// Meta is misc metadata for the table. Use CamelCase key names:
	//	- Name string = name of table
	//	- Doc string = documentation, description
	//	- Source string = catalog source(s) the data was read from
	//	- Precision int = n for precision to write out floats in csv
	//	- Grid = shared redshift grid for density columns (see pdz package)
	Meta metadata.Data
}

// NewTable returns a new Table with its own (empty) set of Columns.
// Can pass an optional name which sets metadata.
func NewTable(name ...string) *Table {
	dt := &Table{}
	dt.Columns = NewColumns()
	if len(name) > 0 {
		dt.Meta.SetName(name[0])
	}
	return dt
}

// NumRows returns the number of rows.
func (dt *Table) NumRows() int { return dt.Columns.Rows }

// NumColumns returns the number of columns.
func (dt *Table) NumColumns() int { return dt.Columns.Len() }

// ColumnNames returns the names of the columns, in order.
func (dt *Table) ColumnNames() []string { return slices.Clone(dt.Columns.Keys) }

// HasColumn returns true if a column with the given name exists.
func (dt *Table) HasColumn(name string) bool {
	return dt.Columns.IndexByKey(name) >= 0
}

// Column returns the tensor with given column name.
// Returns nil if not found.
func (dt *Table) Column(name string) tensor.Tensor {
	return dt.Columns.At(name)
}

// ColumnTry is a version of [Table.Column] that also returns a
// [MissingColumnError] if the column name is not found.
func (dt *Table) ColumnTry(name string) (tensor.Tensor, error) {
	cl := dt.Column(name)
	if cl != nil {
		return cl, nil
	}
	return nil, &MissingColumnError{Name: name, Table: dt.Meta.GetName()}
}

// ColumnsTry returns the columns with the given names, in order,
// with an error for the first one not found.
func (dt *Table) ColumnsTry(names ...string) ([]tensor.Tensor, error) {
	tsrs := make([]tensor.Tensor, len(names))
	for i, nm := range names {
		cl, err := dt.ColumnTry(nm)
		if err != nil {
			return nil, err
		}
		tsrs[i] = cl
	}
	return tsrs, nil
}

// ColumnName returns the name of given column
func (dt *Table) ColumnName(i int) string {
	return dt.Columns.Keys[i]
}

// AddColumn adds the given tensor as a column to the table,
// returning an error and not adding if the name is not unique,
// or a [MisalignedError] if its number of rows differs from the table.
// This is the only way a table is mutated after it is read.
func (dt *Table) AddColumn(name string, tsr tensor.Tensor) error {
	return dt.Columns.AddColumn(name, tsr)
}

// AddColumnOfType adds a new column of given kind and name, sized to the
// current number of rows. If no cellSizes are specified, it holds scalar
// values, otherwise the cells are n-dimensional tensors of given size.
func (dt *Table) AddColumnOfType(name string, typ reflect.Kind, cellSizes ...int) (tensor.Tensor, error) {
	sz := append([]int{dt.Columns.Rows}, cellSizes...)
	tsr, err := tensor.NewOfType(typ, sz...)
	if err != nil {
		return nil, err
	}
	return tsr, dt.AddColumn(name, tsr)
}

// AddFloat64Column adds a new float64 column with given name.
// If no cellSizes are specified, it holds scalar values,
// otherwise the cells are n-dimensional tensors of given size.
func (dt *Table) AddFloat64Column(name string, cellSizes ...int) (*tensor.Float64, error) {
	tsr, err := dt.AddColumnOfType(name, reflect.Float64, cellSizes...)
	if err != nil {
		return nil, err
	}
	return tsr.(*tensor.Float64), nil
}

// AddDensityColumn adds a new float64 vector column with given name,
// holding one density vector of length n per row.
func (dt *Table) AddDensityColumn(name string, n int) (*tensor.Float64, error) {
	return dt.AddFloat64Column(name, n)
}

// AddIntColumn adds a new int column with given name.
func (dt *Table) AddIntColumn(name string) (*tensor.Int, error) {
	tsr, err := dt.AddColumnOfType(name, reflect.Int)
	if err != nil {
		return nil, err
	}
	return tsr.(*tensor.Int), nil
}

// AddBoolColumn adds a new bool column with given name.
func (dt *Table) AddBoolColumn(name string) (*tensor.Bool, error) {
	tsr, err := dt.AddColumnOfType(name, reflect.Bool)
	if err != nil {
		return nil, err
	}
	return tsr.(*tensor.Bool), nil
}

// AddStringColumn adds a new string column with given name.
func (dt *Table) AddStringColumn(name string) (*tensor.String, error) {
	tsr, err := dt.AddColumnOfType(name, reflect.String)
	if err != nil {
		return nil, err
	}
	return tsr.(*tensor.String), nil
}

// SetNumRows sets the number of rows in the table, across all columns.
// It is used while building a table, e.g., when reading a file,
// not on tables that have been handed out for analysis.
func (dt *Table) SetNumRows(rows int) *Table {
	dt.Columns.SetNumRows(rows)
	return dt
}

// Float returns the float64 value of cell 0 of given column at given row.
// Returns NaN if the column is not found.
func (dt *Table) Float(column string, row int) float64 {
	cl := dt.Column(column)
	if cl == nil {
		return math.NaN()
	}
	return cl.FloatRow(row, 0)
}

// FloatRow returns the float64 value of given cell of given column at given row.
// Returns NaN if the column is not found.
func (dt *Table) FloatRow(column string, row, cell int) float64 {
	cl := dt.Column(column)
	if cl == nil {
		return math.NaN()
	}
	return cl.FloatRow(row, cell)
}

// Bool returns the value of given column at given row as a bool,
// true for any non-zero numeric value.
// Returns false if the column is not found.
func (dt *Table) Bool(column string, row int) bool {
	cl := dt.Column(column)
	if cl == nil {
		return false
	}
	if bt, ok := cl.(*tensor.Bool); ok {
		return bt.Values[row]
	}
	return tensor.Float64ToBool(cl.FloatRow(row, 0))
}

// StringValue returns the string value of given column at given row.
// Returns "" if the column is not found.
func (dt *Table) StringValue(column string, row int) string {
	cl := dt.Column(column)
	if cl == nil {
		return ""
	}
	_, cells := cl.RowCellSize()
	return cl.String1D(row * cells)
}

// Floats returns a copy of the values of a column as float64s.
func (dt *Table) Floats(column string) ([]float64, error) {
	cl, err := dt.ColumnTry(column)
	if err != nil {
		return nil, err
	}
	return tensor.AsFloat64s(cl), nil
}

// Project returns a new table with copies of the given columns, in the
// given order, and the metadata of this table. If no columns are given,
// all columns are copied.
func (dt *Table) Project(columns ...string) (*Table, error) {
	if len(columns) == 0 {
		return dt.Clone(), nil
	}
	tsrs, err := dt.ColumnsTry(columns...)
	if err != nil {
		return nil, err
	}
	nt := NewTable()
	nt.Meta.Copy(dt.Meta)
	nt.Columns.Rows = dt.NumRows()
	for i, tsr := range tsrs {
		if err := nt.Columns.Add(columns[i], tsr.Clone()); err != nil {
			return nil, err
		}
	}
	return nt, nil
}

// Validate returns a [MisalignedError] for the first column whose number
// of rows differs from the table.
func (dt *Table) Validate() error {
	for i, tsr := range dt.Columns.Values {
		if tsr.NumRows() != dt.Columns.Rows {
			return &MisalignedError{Column: dt.Columns.Keys[i], Rows: tsr.NumRows(), Want: dt.Columns.Rows}
		}
	}
	return nil
}

// Clone returns a complete copy of this table, including cloning
// the underlying Columns tensors.
func (dt *Table) Clone() *Table {
	cp := &Table{}
	cp.Columns = dt.Columns.Clone()
	cp.Meta.Copy(dt.Meta)
	return cp
}

// AppendRows appends the rows of src to this table. If this table has no
// columns, it takes a copy of the columns of src. Otherwise both tables
// must have exactly the same columns and cell sizes. An Int or Bool
// column is widened to Float64 when the other side is Float64; any other
// data type difference is a [ColumnTypeError]. Nothing is modified if an error is
// returned.
func (dt *Table) AppendRows(src *Table) error {
	if dt.NumColumns() == 0 {
		dt.Columns = src.Columns.Clone()
		if dt.Meta.GetName() == "" && src.Meta.GetName() != "" {
			dt.Meta.SetName(src.Meta.GetName())
		}
		return nil
	}
	for _, nm := range dt.Columns.Keys {
		if !src.HasColumn(nm) {
			return &MissingColumnError{Name: nm, Table: src.Meta.GetName()}
		}
	}
	for _, nm := range src.Columns.Keys {
		if !dt.HasColumn(nm) {
			return &MissingColumnError{Name: nm, Table: dt.Meta.GetName()}
		}
	}
	for i, nm := range dt.Columns.Keys {
		tsr, stsr := dt.Columns.Values[i], src.Column(nm)
		_, tc := tsr.RowCellSize()
		_, sc := stsr.RowCellSize()
		if tc != sc || (tsr.DataType() != stsr.DataType() && !widens(tsr, stsr)) {
			return &ColumnTypeError{Column: nm, Type: stsr.DataType(), Cells: sc, Want: tsr.DataType(), WantCells: tc}
		}
	}
	for i, nm := range dt.Columns.Keys {
		tsr, stsr := dt.Columns.Values[i], src.Column(nm)
		if tsr.DataType() != stsr.DataType() {
			if tsr.DataType() != reflect.Float64 {
				tsr = asFloat64(tsr)
				dt.Columns.Values[i] = tsr
			} else {
				stsr = asFloat64(stsr)
			}
		}
		if err := tsr.AppendFrom(stsr); err != nil {
			return err
		}
	}
	dt.Columns.Rows += src.NumRows()
	return nil
}

// widens reports whether one of a and b is Float64 and the other is
// Int or Bool.
func widens(a, b tensor.Tensor) bool {
	at, bt := a.DataType(), b.DataType()
	if bt == reflect.Float64 {
		at, bt = bt, at
	}
	return at == reflect.Float64 && (bt == reflect.Int || bt == reflect.Bool)
}

// asFloat64 returns a Float64 copy of tsr with the same shape.
func asFloat64(tsr tensor.Tensor) *tensor.Float64 {
	f := tensor.NewFloat64(tsr.Shape().Sizes...)
	for i := range f.Values {
		f.Values[i] = tsr.Float1D(i)
	}
	return f
}
