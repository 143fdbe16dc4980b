// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"

	"cogentcore.org/skycat/base/errors"
	"cogentcore.org/skycat/base/metadata"
	"cogentcore.org/skycat/tensor"
)

// Delims are standard CSV delimiter options (Tab, Comma, Space)
type Delims int32

const (
	// Tab is the tab rune delimiter, for TSV tab separated values
	Tab Delims = iota

	// Comma is the comma rune delimiter, for CSV comma separated values
	Comma

	// Space is the space rune delimiter, for SSV space separated value
	Space
)

// Rune returns the delimiter rune.
func (dl Delims) Rune() rune {
	switch dl {
	case Tab:
		return '\t'
	case Comma:
		return ','
	case Space:
		return ' '
	}
	return '\t'
}

const (
	// Headers is passed to CSV methods for the headers arg, to use headers
	// that capture full type and tensor shape information.
	Headers = true

	// NoHeaders is passed to CSV methods for the headers arg, to not use headers
	NoHeaders = false
)

// SaveCSV writes a table to a comma-separated-values (CSV) file
// (where comma = any delimiter, specified in the delim arg).
// If headers = true then generate column headers that capture the type
// and tensor cell geometry of the columns, enabling full reloading
// of exactly the same table format and data (recommended).
// Otherwise, only the data is written.
func (dt *Table) SaveCSV(filename string, delim Delims, headers bool) error {
	fp, err := os.Create(filename)
	if err != nil {
		return errors.Log(err)
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	err = dt.WriteCSV(bw, delim, headers)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return err
}

// OpenCSV reads a table from a comma-separated-values (CSV) file
// (where comma = any delimiter, specified in the delim arg),
// using the Go standard encoding/csv reader conforming to the official CSV standard.
// See [Table.ReadCSV] for details.
func (dt *Table) OpenCSV(filename string, delim Delims) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return dt.ReadCSV(bufio.NewReader(fp), delim)
}

// OpenFS is the version of [Table.OpenCSV] that uses an [fs.FS] filesystem.
func (dt *Table) OpenFS(fsys fs.FS, filename string, delim Delims) error {
	fp, err := fsys.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return dt.ReadCSV(bufio.NewReader(fp), delim)
}

// ReadCSV reads a table from a comma-separated-values (CSV) file
// (where comma = any delimiter, specified in the delim arg),
// replacing any existing columns. The first row of the file is the
// header row. If the file was saved with table headers, these carry
// full information about column type and vector cell size; otherwise
// column types are inferred from the data values.
// Empty, NaN and Inf values in float columns are read as NaN; int and
// bool columns must hold valid values in every row.
func (dt *Table) ReadCSV(r io.Reader, delim Delims) error {
	cr := csv.NewReader(r)
	cr.Comma = delim.Rune()
	cr.ReuseRecord = false
	rec, err := cr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return fmt.Errorf("table.ReadCSV: no header row")
	}
	dt.Columns = NewColumns()
	rows := len(rec) - 1
	if err := ConfigFromHeaders(dt, rec[0], rec); err != nil {
		return err
	}
	dt.SetNumRows(rows)
	for ri := range rows {
		if err := dt.readCSVRow(rec[ri+1], ri); err != nil {
			return err
		}
	}
	return nil
}

// readCSVRow reads a record of CSV data into given row in table.
// Int and bool columns have no missing value, so a cell that does not
// parse as one is an error.
func (dt *Table) readCSVRow(rec []string, row int) error {
	ci := 0
	nan := math.NaN()
	for i, tsr := range dt.Columns.Values {
		_, csz := tsr.RowCellSize()
		stoff := row * csz
		for cc := range csz {
			if ci >= len(rec) {
				return nil
			}
			str := strings.TrimSpace(rec[ci])
			idx := stoff + cc
			switch ct := tsr.(type) {
			case *tensor.Int:
				iv, err := strconv.ParseInt(str, 10, 64)
				if err != nil {
					return fmt.Errorf("table.ReadCSV: row %d column %q: invalid int %q", row+1, dt.Columns.Keys[i], str)
				}
				ct.Values[idx] = int(iv)
			case *tensor.Bool:
				bv, err := strconv.ParseBool(str)
				if err != nil {
					return fmt.Errorf("table.ReadCSV: row %d column %q: invalid bool %q", row+1, dt.Columns.Keys[i], str)
				}
				ct.Values[idx] = bv
			default:
				if tsr.DataType() == reflect.Float64 && isMissing(str) {
					tsr.SetFloat1D(idx, nan)
				} else {
					tsr.SetString1D(idx, str)
				}
			}
			ci++
		}
	}
	return nil
}

func isMissing(str string) bool {
	switch str {
	case "", "NaN", "nan", "-NaN", "Inf", "-Inf", "inf", "-inf":
		return true
	}
	return false
}

// ConfigFromHeaders configures the Table based on the headers.
// For non-table headers, data is examined to determine types.
func ConfigFromHeaders(dt *Table, hdrs []string, rec [][]string) error {
	if DetectTableHeaders(hdrs) {
		return ConfigFromTableHeaders(dt, hdrs)
	}
	return ConfigFromDataValues(dt, hdrs, rec)
}

// DetectTableHeaders looks for special header characters -- returns true if found
func DetectTableHeaders(hdrs []string) bool {
	for _, hd := range hdrs {
		hd = strings.TrimSpace(hd)
		if hd == "" {
			continue
		}
		if _, ok := TableHeaderToType[hd[0]]; !ok { // all must be table
			return false
		}
	}
	return true
}

// ConfigFromTableHeaders configures a Table based on special table headers.
// Vector columns are written as name[1:0]<1:n> for the first cell,
// followed by name[1:i] for the remaining cells.
func ConfigFromTableHeaders(dt *Table, hdrs []string) error {
	for _, hd := range hdrs {
		hd = strings.TrimSpace(hd)
		if hd == "" {
			continue
		}
		typ, hd := TableColumnType(hd)
		dimst := strings.Index(hd, "]<")
		if dimst > 0 {
			dims := hd[dimst+2 : len(hd)-1]
			lbst := strings.Index(hd, "[")
			hd = hd[:lbst]
			csh, err := ShapeFromString(dims)
			if err != nil {
				return fmt.Errorf("table: column %q: %w", hd, err)
			}
			if _, err := dt.AddColumnOfType(hd, typ, csh...); err != nil {
				return err
			}
			continue
		}
		if strings.Index(hd, "[") > 0 {
			continue
		}
		if _, err := dt.AddColumnOfType(hd, typ); err != nil {
			return err
		}
	}
	return nil
}

// TableHeaderToType maps special header characters to data type
var TableHeaderToType = map[byte]reflect.Kind{
	'$': reflect.String,
	'#': reflect.Float64,
	'|': reflect.Int,
	'^': reflect.Bool,
}

// TableHeaderChar returns the special header character based on given data type
func TableHeaderChar(typ reflect.Kind) byte {
	switch {
	case typ == reflect.Bool:
		return '^'
	case typ == reflect.Float64 || typ == reflect.Float32:
		return '#'
	case typ >= reflect.Int && typ <= reflect.Uintptr:
		return '|'
	default:
		return '$'
	}
}

// TableColumnType parses the column header for special table type information
func TableColumnType(nm string) (reflect.Kind, string) {
	typ, ok := TableHeaderToType[nm[0]]
	if ok {
		nm = nm[1:]
	} else {
		typ = reflect.String // most general, default
	}
	return typ, nm
}

// ShapeFromString parses string representation of shape as N:d,d,..
func ShapeFromString(dims string) ([]int, error) {
	clni := strings.Index(dims, ":")
	if clni < 0 {
		return nil, fmt.Errorf("invalid shape %q", dims)
	}
	nd, err := strconv.Atoi(dims[:clni])
	if err != nil {
		return nil, fmt.Errorf("invalid shape %q: %w", dims, err)
	}
	parts := strings.Split(dims[clni+1:], ",")
	if len(parts) != nd {
		return nil, fmt.Errorf("invalid shape %q: expected %d sizes", dims, nd)
	}
	sh := make([]int, nd)
	for i, p := range parts {
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid shape %q: %w", dims, err)
		}
		sh[i] = d
	}
	return sh, nil
}

// ConfigFromDataValues configures a Table based on data types inferred
// from the string representation of given records, using header names if present.
func ConfigFromDataValues(dt *Table, hdrs []string, rec [][]string) error {
	nr := len(rec)
	for ci, hd := range hdrs {
		hd = strings.TrimSpace(hd)
		if hd == "" {
			hd = fmt.Sprintf("col_%d", ci)
		}
		typ := reflect.Invalid
		empty := false
		for ri := 1; ri < nr; ri++ {
			if ci >= len(rec[ri]) {
				continue
			}
			rv := strings.TrimSpace(rec[ri][ci])
			if rv == "" {
				empty = true
				continue
			}
			ctyp := InferDataType(rv)
			switch {
			case typ == reflect.Invalid:
				typ = ctyp
			case typ == ctyp:
			case typ == reflect.Int && ctyp == reflect.Float64: // upgrade
				typ = ctyp
			case typ == reflect.Float64 && ctyp == reflect.Int:
			default:
				typ = reflect.String
			}
			if typ == reflect.String {
				break
			}
		}
		if typ == reflect.Invalid || (typ == reflect.Int && empty) {
			typ = reflect.Float64
		}
		if _, err := dt.AddColumnOfType(hd, typ); err != nil {
			return err
		}
	}
	return nil
}

// InferDataType returns the inferred data type for the given string,
// which is one of float64, int, bool or string. NaN and Inf are floats.
func InferDataType(str string) reflect.Kind {
	if isMissing(str) {
		return reflect.Float64
	}
	if _, err := strconv.ParseInt(str, 10, 64); err == nil {
		return reflect.Int
	}
	if _, err := strconv.ParseFloat(str, 64); err == nil {
		return reflect.Float64
	}
	switch strings.ToLower(str) {
	case "true", "false":
		return reflect.Bool
	}
	return reflect.String
}

// WriteCSV writes a table to a comma-separated-values (CSV) file
// (where comma = any delimiter, specified in the delim arg).
// If headers = true then generate column headers that capture the type
// and tensor cell geometry of the columns, enabling full reloading
// of exactly the same table format and data (recommended).
// Otherwise, only the data is written.
func (dt *Table) WriteCSV(w io.Writer, delim Delims, headers bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim.Rune()
	if headers {
		if err := cw.Write(dt.TableHeaders()); err != nil {
			return err
		}
	}
	prec := -1
	if p, err := metadata.Get[int](dt.Meta, "Precision"); err == nil {
		prec = p
	}
	for ri := range dt.NumRows() {
		if err := cw.Write(dt.csvRecord(ri, prec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (dt *Table) csvRecord(row, prec int) []string {
	var rec []string
	for _, tsr := range dt.Columns.Values {
		_, tc := tsr.RowCellSize()
		for ti := range tc {
			i := row*tc + ti
			if prec <= 0 || tsr.DataType() != reflect.Float64 {
				rec = append(rec, tsr.String1D(i))
			} else {
				rec = append(rec, strconv.FormatFloat(tsr.Float1D(i), 'g', prec, 64))
			}
		}
	}
	return rec
}

// TableHeaders generates special header strings from the table
// with full information about type and tensor cell dimensionality.
func (dt *Table) TableHeaders() []string {
	hdrs := []string{}
	for i, tsr := range dt.Columns.Values {
		nm := string([]byte{TableHeaderChar(tsr.DataType())}) + dt.Columns.Keys[i]
		_, tc := tsr.RowCellSize()
		if tsr.Shape().NumDims() <= 1 {
			hdrs = append(hdrs, nm)
			continue
		}
		hdrs = append(hdrs, fmt.Sprintf("%s[1:0]<1:%d>", nm, tc))
		for ti := 1; ti < tc; ti++ {
			hdrs = append(hdrs, fmt.Sprintf("%s[1:%d]", nm, ti))
		}
	}
	return hdrs
}
