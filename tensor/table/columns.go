// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"

	"cogentcore.org/skycat/base/keylist"
	"cogentcore.org/skycat/tensor"
)

// Columns is the underlying column list and number of rows for Table.
// Each column is a raw [tensor.Tensor] with the outermost dimension
// equal to Rows.
type Columns struct {
	keylist.List[string, tensor.Tensor]

	// Rows is the number of rows, which is the outermost dimension
	// of all column tensors.
	Rows int
}

// NewColumns returns a new Columns.
func NewColumns() *Columns {
	return &Columns{}
}

// AddColumn adds the given tensor as a column,
// returning an error and not adding if the name is not unique,
// or if the tensor rows do not match the existing rows.
// The first column added sets the number of rows.
func (cl *Columns) AddColumn(name string, tsr tensor.Tensor) error {
	if cl.Len() == 0 {
		cl.Rows = tsr.NumRows()
	} else if tsr.NumRows() != cl.Rows {
		return &MisalignedError{Column: name, Rows: tsr.NumRows(), Want: cl.Rows}
	}
	if err := cl.Add(name, tsr); err != nil {
		return fmt.Errorf("table.AddColumn: %w", err)
	}
	tsr.SetNames("Row")
	return nil
}

// SetNumRows sets the number of rows in all columns.
func (cl *Columns) SetNumRows(rows int) {
	cl.Rows = rows
	for _, tsr := range cl.Values {
		tsr.SetNumRows(rows)
	}
}

// Clone returns a deep copy of the columns.
func (cl *Columns) Clone() *Columns {
	cp := NewColumns()
	cp.Rows = cl.Rows
	for i, nm := range cl.Keys {
		cp.Add(nm, cl.Values[i].Clone())
	}
	return cp
}
