// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sqlcat

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"

	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/pdz"
	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
)

// SchemaOf returns the column specs of dt.
func SchemaOf(dt *table.Table) table.Schema {
	sc := make(table.Schema, dt.NumColumns())
	for i, tsr := range dt.Columns.Values {
		_, cells := tsr.RowCellSize()
		sc[i] = table.ColumnSpec{Name: dt.ColumnName(i), Kind: tsr.DataType()}
		if tsr.Shape().NumDims() > 1 {
			sc[i].CellSize = cells
		}
	}
	return sc
}

// Write appends the rows of dt to the partition src, creating the
// version table if needed, in one transaction.
func (rd *Reader) Write(ctx context.Context, src catalog.Source, dt *table.Table) error {
	tbl, err := TableName(src)
	if err != nil {
		return err
	}
	sc := SchemaOf(dt)
	cols := []string{quote(tractColumn) + " INTEGER", quote(patchColumn) + " TEXT"}
	names := []string{quote(tractColumn), quote(patchColumn)}
	for _, cs := range sc {
		if cs.Name == tractColumn || cs.Name == patchColumn {
			return fmt.Errorf("sqlcat: column name %q is reserved", cs.Name)
		}
		tn := TypeName(cs)
		if tn == "" {
			return fmt.Errorf("sqlcat: column %q has unsupported type %v", cs.Name, cs.Kind)
		}
		cols = append(cols, quote(cs.Name)+" "+tn)
		names = append(names, quote(cs.Name))
	}

	tx, err := rd.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS "+quote(tbl)+" ("+strings.Join(cols, ", ")+")"); err != nil {
		return fmt.Errorf("sqlcat: creating %q: %w", tbl, err)
	}
	q := "INSERT INTO " + quote(tbl) + " (" + strings.Join(names, ", ") + ") VALUES (?" + strings.Repeat(", ?", len(names)-1) + ")"
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("sqlcat: writing %q: %w", tbl, err)
	}
	defer stmt.Close()
	args := make([]any, len(names))
	args[0], args[1] = src.Tract, src.Patch
	for ri := range dt.NumRows() {
		for ci, cs := range sc {
			v, err := cellValue(dt.Columns.Values[ci], cs, ri)
			if err != nil {
				return fmt.Errorf("sqlcat: column %q row %d: %w", cs.Name, ri, err)
			}
			args[ci+2] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("sqlcat: writing %q: %w", tbl, err)
		}
	}
	return tx.Commit()
}

// cellValue returns the database value of row ri of tsr.
func cellValue(tsr tensor.Tensor, cs table.ColumnSpec, ri int) (any, error) {
	if cs.CellSize > 1 {
		vals := make([]float64, cs.CellSize)
		for i := range vals {
			vals[i] = tsr.FloatRow(ri, i)
		}
		return encodeVector(vals)
	}
	switch cs.Kind {
	case reflect.Float64:
		v := tsr.Float1D(ri)
		if math.IsNaN(v) {
			return nil, nil
		}
		return v, nil
	case reflect.Int:
		if it, ok := tsr.(*tensor.Int); ok {
			return int64(it.Values[ri]), nil
		}
		return int64(tsr.Float1D(ri)), nil
	case reflect.Bool:
		return tensor.Float64ToBool(tsr.Float1D(ri)), nil
	default:
		return tsr.String1D(ri), nil
	}
}

// GridTable returns the name of the table holding the grid of a
// density column.
func GridTable(src catalog.Source, column string) (string, error) {
	tbl, err := TableName(src)
	if err != nil {
		return "", err
	}
	nm := tbl + "_" + column + "_grid"
	if !identRE.MatchString(nm) {
		return "", fmt.Errorf("sqlcat: invalid grid table name %q", nm)
	}
	return nm, nil
}

// WriteGrid replaces the grid of the given density column.
func (rd *Reader) WriteGrid(ctx context.Context, src catalog.Source, column string, g pdz.Grid) error {
	tbl, err := GridTable(src, column)
	if err != nil {
		return err
	}
	tx, err := rd.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, q := range []string{
		"DROP TABLE IF EXISTS " + quote(tbl),
		"CREATE TABLE " + quote(tbl) + " (z REAL NOT NULL)",
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("sqlcat: writing grid %q: %w", tbl, err)
		}
	}
	for _, z := range g {
		if _, err := tx.ExecContext(ctx, "INSERT INTO "+quote(tbl)+" (z) VALUES (?)", z); err != nil {
			return fmt.Errorf("sqlcat: writing grid %q: %w", tbl, err)
		}
	}
	return tx.Commit()
}

// ReadGrid implements [catalog.GridReader].
func (rd *Reader) ReadGrid(ctx context.Context, src catalog.Source, column string) (pdz.Grid, error) {
	tbl, err := GridTable(src, column)
	if err != nil {
		return nil, err
	}
	rows, err := rd.DB.QueryContext(ctx, "SELECT z FROM "+quote(tbl)+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("sqlcat: reading grid %q: %w", tbl, err)
	}
	defer rows.Close()
	var zs []float64
	for rows.Next() {
		var z float64
		if err := rows.Scan(&z); err != nil {
			return nil, err
		}
		zs = append(zs, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pdz.NewGrid(zs...)
}
