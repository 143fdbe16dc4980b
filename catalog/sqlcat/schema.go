// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sqlcat

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
)

var typeNames = map[reflect.Kind]string{
	reflect.Float64: "REAL",
	reflect.Int:     "INTEGER",
	reflect.Bool:    "BOOLEAN",
	reflect.String:  "TEXT",
}

var vectorRE = regexp.MustCompile(`^VECTOR\((\d+)\)$`)

// schema is the data columns of a database table, in order.
type schema table.Schema

func (sc schema) Names() []string { return table.Schema(sc).Names() }

func (sc schema) find(name string) (table.ColumnSpec, bool) {
	for _, cs := range sc {
		if cs.Name == name {
			return cs, true
		}
	}
	return table.ColumnSpec{}, false
}

// parseType returns the column spec for a declared SQLite type.
func parseType(name, decl string) (table.ColumnSpec, error) {
	decl = strings.ToUpper(strings.TrimSpace(decl))
	cs := table.ColumnSpec{Name: name}
	if sm := vectorRE.FindStringSubmatch(decl); sm != nil {
		n, err := strconv.Atoi(sm[1])
		if err != nil {
			return cs, err
		}
		cs.Kind, cs.CellSize = reflect.Float64, n
		return cs, nil
	}
	switch decl {
	case "REAL", "FLOAT", "DOUBLE":
		cs.Kind = reflect.Float64
	case "INTEGER", "INT", "BIGINT":
		cs.Kind = reflect.Int
	case "BOOLEAN", "BOOL":
		cs.Kind = reflect.Bool
	case "TEXT", "":
		cs.Kind = reflect.String
	default:
		return cs, fmt.Errorf("sqlcat: column %q has unsupported type %q", name, decl)
	}
	return cs, nil
}

// schema returns the data columns of tbl, or an empty schema if there
// is no such table.
func (rd *Reader) schema(ctx context.Context, tbl string) (schema, error) {
	rows, err := rd.DB.QueryContext(ctx, "SELECT name, type FROM pragma_table_info(?) ORDER BY cid", tbl)
	if err != nil {
		return nil, fmt.Errorf("sqlcat: table info %q: %w", tbl, err)
	}
	defer rows.Close()
	var sc schema
	for rows.Next() {
		var name, decl string
		if err := rows.Scan(&name, &decl); err != nil {
			return nil, err
		}
		if name == tractColumn || name == patchColumn {
			continue
		}
		cs, err := parseType(name, decl)
		if err != nil {
			return nil, err
		}
		sc = append(sc, cs)
	}
	return sc, rows.Err()
}

// setCells sets row ri of tsr from a scanned database value.
func setCells(tsr tensor.Tensor, cs table.ColumnSpec, ri int, val any) error {
	if cs.CellSize > 1 {
		vals, err := decodeVector(val, cs.CellSize)
		if err != nil {
			return err
		}
		off := ri * cs.CellSize
		for i, v := range vals {
			tsr.SetFloat1D(off+i, v)
		}
		return nil
	}
	switch v := val.(type) {
	case nil:
		if cs.Kind != reflect.Float64 {
			return fmt.Errorf("NULL in %v column", cs.Kind)
		}
		tsr.SetFloat1D(ri, math.NaN())
	case int64:
		if it, ok := tsr.(*tensor.Int); ok {
			it.Values[ri] = int(v)
			return nil
		}
		tsr.SetFloat1D(ri, float64(v))
	case float64:
		tsr.SetFloat1D(ri, v)
	case bool:
		tsr.SetFloat1D(ri, tensor.BoolToFloat64(v))
	case string:
		tsr.SetString1D(ri, v)
	case []byte:
		tsr.SetString1D(ri, string(v))
	default:
		return fmt.Errorf("unsupported value type %T", val)
	}
	return nil
}

// decodeVector decodes a JSON array of n numbers, with null for NaN.
// A NULL value is n NaNs.
func decodeVector(val any, n int) ([]float64, error) {
	var data []byte
	switch v := val.(type) {
	case nil:
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.NaN()
		}
		return vals, nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return nil, fmt.Errorf("vector stored as %T, want JSON text", val)
	}
	var ptrs []*float64
	if err := json.Unmarshal(data, &ptrs); err != nil {
		return nil, err
	}
	if len(ptrs) != n {
		return nil, fmt.Errorf("vector has %d cells, want %d: %w", len(ptrs), n, table.ErrMisaligned)
	}
	vals := make([]float64, n)
	for i, p := range ptrs {
		if p == nil {
			vals[i] = math.NaN()
		} else {
			vals[i] = *p
		}
	}
	return vals, nil
}

// encodeVector encodes cells as a JSON array, with null for NaN and Inf.
func encodeVector(vals []float64) (string, error) {
	ptrs := make([]*float64, len(vals))
	for i := range vals {
		if !math.IsNaN(vals[i]) && !math.IsInf(vals[i], 0) {
			ptrs[i] = &vals[i]
		}
	}
	b, err := json.Marshal(ptrs)
	return string(b), err
}
