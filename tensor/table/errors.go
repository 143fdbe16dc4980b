// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"

	"cogentcore.org/skycat/base/errors"
	"cogentcore.org/skycat/tensor"
)

var (
	// ErrMissingColumn is matched by errors for a column name that
	// is not present in a table. See [MissingColumnError].
	ErrMissingColumn = errors.New("missing column")

	// ErrMisaligned is matched by errors for columns or masks whose
	// number of rows does not match the table. See [MisalignedError].
	ErrMisaligned = tensor.ErrMisaligned

	// ErrColumnType is matched by errors for columns whose data type
	// or cell size differs between tables. See [ColumnTypeError].
	ErrColumnType = errors.New("column type mismatch")
)

// MissingColumnError reports a column that was required but not found.
type MissingColumnError struct {
	// Name is the missing column name.
	Name string

	// Table is the name of the table, if it has one.
	Table string
}

func (e *MissingColumnError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("table %q: column %q not found", e.Table, e.Name)
	}
	return fmt.Sprintf("table: column %q not found", e.Name)
}

// Is reports whether target is [ErrMissingColumn].
func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

// MisalignedError reports a column or mask with the wrong number of rows.
type MisalignedError struct {
	// Column is the offending column name, or "mask".
	Column string

	// Rows is the number of rows it has.
	Rows int

	// Want is the number of rows of the table.
	Want int
}

func (e *MisalignedError) Error() string {
	return fmt.Sprintf("table: %q has %d rows, table has %d: misaligned table", e.Column, e.Rows, e.Want)
}

// Is reports whether target is [ErrMisaligned].
func (e *MisalignedError) Is(target error) bool { return target == ErrMisaligned }

// ColumnTypeError reports a column whose data type or cell size
// differs from the column of the same name in another table.
type ColumnTypeError struct {
	// Column is the offending column name.
	Column string

	// Type and Cells describe the incoming column.
	Type  reflect.Kind
	Cells int

	// Want and WantCells describe the existing column.
	Want      reflect.Kind
	WantCells int
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("table: column %q is %v with %d cells, table has %v with %d cells: column type mismatch", e.Column, e.Type, e.Cells, e.Want, e.WantCells)
}

// Is reports whether target is [ErrColumnType].
func (e *ColumnTypeError) Is(target error) bool { return target == ErrColumnType }
