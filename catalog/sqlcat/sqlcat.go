// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlcat provides a catalog reader for SQLite databases.
// Each catalog version is one table, with integer tract and text patch
// partition columns followed by the data columns. Declared column types
// map to table column types:
//
//	REAL        float64; NULL is NaN
//	INTEGER     int
//	BOOLEAN     bool
//
// An INTEGER or BOOLEAN column holding NULL in any row read is returned
// as float64 instead, with NULL as NaN and false as 0.
//
//	TEXT        string
//	VECTOR(n)   float64 vector of n cells, stored as a JSON array
//	            with null for NaN
//
// Filters are compiled to a parameterized WHERE clause.
package sqlcat

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/cuts"
	"cogentcore.org/skycat/tensor/table"

	_ "modernc.org/sqlite"
)

const (
	// DefaultTable is the table read when a source has no version.
	DefaultTable = "objects"

	tractColumn = "tract"
	patchColumn = "patch"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Reader reads catalog partitions from a SQLite database.
type Reader struct {
	DB *sql.DB
}

// Open opens the database file at path, creating it if needed.
func Open(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlcat: opening %s: %w", path, err)
	}
	return &Reader{DB: db}, nil
}

// Close closes the database.
func (rd *Reader) Close() error {
	return rd.DB.Close()
}

// TableName returns the database table holding the version of src.
func TableName(src catalog.Source) (string, error) {
	nm := src.Version
	if nm == "" {
		nm = DefaultTable
	}
	if !identRE.MatchString(nm) {
		return "", fmt.Errorf("sqlcat: invalid table name %q", nm)
	}
	return nm, nil
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Read reads the rows of the partition src that pass all filters.
// An error matching [catalog.ErrNoData] is returned if the table does
// not exist or the partition has no rows before filtering.
func (rd *Reader) Read(ctx context.Context, src catalog.Source, columns []string, filters []cuts.Expr) (*table.Table, error) {
	tbl, err := TableName(src)
	if err != nil {
		return nil, err
	}
	sc, err := rd.schema(ctx, tbl)
	if err != nil {
		return nil, err
	}
	if len(sc) == 0 {
		return nil, &catalog.NoDataError{Source: src, Err: fmt.Errorf("no table %q", tbl)}
	}
	if len(columns) == 0 {
		columns = sc.Names()
	}
	specs := make(table.Schema, len(columns))
	for i, nm := range columns {
		cs, ok := sc.find(nm)
		if !ok {
			return nil, &table.MissingColumnError{Name: nm, Table: tbl}
		}
		specs[i] = cs
	}

	part, args := partitionWhere(src)
	var n int
	q := "SELECT COUNT(*) FROM " + quote(tbl) + part
	if err := rd.DB.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return nil, fmt.Errorf("sqlcat: counting %s: %w", src, err)
	}
	if n == 0 {
		return nil, &catalog.NoDataError{Source: src}
	}

	where, fargs, err := filterWhere(sc, tbl, filters)
	if err != nil {
		return nil, err
	}
	if where != "" {
		if part == "" {
			part = " WHERE " + where
		} else {
			part += " AND " + where
		}
		args = append(args, fargs...)
	}
	sel := make([]string, len(columns))
	for i, nm := range columns {
		sel[i] = quote(nm)
	}
	q = "SELECT " + strings.Join(sel, ", ") + " FROM " + quote(tbl) + part + " ORDER BY rowid"
	rows, err := rd.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlcat: reading %s: %w", src, err)
	}
	defer rows.Close()

	var recs [][]any
	for rows.Next() {
		rec := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range rec {
			ptrs[i] = &rec[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlcat: reading %s: %w", src, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlcat: reading %s: %w", src, err)
	}

	nullable(specs, recs)
	dt, err := specs.NewTable(len(recs), tbl)
	if err != nil {
		return nil, err
	}
	for ci, cs := range specs {
		tsr := dt.Columns.Values[ci]
		for ri, rec := range recs {
			if err := setCells(tsr, cs, ri, rec[ci]); err != nil {
				return nil, fmt.Errorf("sqlcat: column %q row %d: %w", cs.Name, ri, err)
			}
		}
	}
	return dt, nil
}

// nullable changes the kind of int and bool specs to float64 where
// any of recs holds NULL in that column.
func nullable(specs table.Schema, recs [][]any) {
	for ci, cs := range specs {
		if cs.CellSize > 1 || (cs.Kind != reflect.Int && cs.Kind != reflect.Bool) {
			continue
		}
		for _, rec := range recs {
			if rec[ci] == nil {
				specs[ci].Kind = reflect.Float64
				break
			}
		}
	}
}

// partitionWhere returns the WHERE clause selecting the partition of src.
func partitionWhere(src catalog.Source) (string, []any) {
	if src.Tract < 0 {
		return "", nil
	}
	if src.Patch == "" {
		return " WHERE " + quote(tractColumn) + " = ?", []any{src.Tract}
	}
	return " WHERE " + quote(tractColumn) + " = ? AND " + quote(patchColumn) + " = ?", []any{src.Tract, src.Patch}
}

// filterWhere compiles filters to a conjunction with positional parameters.
// NULL never passes a comparison except !=, matching NaN.
func filterWhere(sc schema, tbl string, filters []cuts.Expr) (string, []any, error) {
	var terms []string
	var args []any
	for _, ex := range filters {
		cs, ok := sc.find(ex.Column)
		if !ok {
			return "", nil, &table.MissingColumnError{Name: ex.Column, Table: tbl}
		}
		if cs.CellSize > 1 {
			return "", nil, fmt.Errorf("sqlcat: cannot filter on vector column %q", ex.Column)
		}
		if !ex.Op.IsValid() {
			return "", nil, fmt.Errorf("sqlcat: invalid operator %q", ex.Op)
		}
		op := string(ex.Op)
		if ex.Op == cuts.Equal {
			op = "="
		}
		col := quote(ex.Column)
		if ex.Op == cuts.NotEqual {
			terms = append(terms, "("+col+" IS NULL OR "+col+" != ?)")
		} else {
			terms = append(terms, col+" "+op+" ?")
		}
		args = append(args, ex.Value)
	}
	return strings.Join(terms, " AND "), args, nil
}

// TypeName returns the declared SQLite type for a column.
func TypeName(cs table.ColumnSpec) string {
	if cs.CellSize > 1 {
		return "VECTOR(" + strconv.Itoa(cs.CellSize) + ")"
	}
	return typeNames[cs.Kind]
}
