// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csvcat provides a catalog reader for partitions stored as
// CSV files in a directory tree:
//
//	<version>/<tract>/<patch>.csv    one patch of a tract
//	<version>/<tract>.csv            a whole tract
//	<version>.csv                    the whole catalog (negative tract)
//	<version>/<column>_grid.csv      redshift grid of a density column
//
// Files are read with [table.Table.ReadCSV], so typed table headers
// are used when present.
package csvcat

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"cogentcore.org/skycat/base/errors"
	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/cuts"
	"cogentcore.org/skycat/pdz"
	"cogentcore.org/skycat/tensor/table"
)

// Reader reads catalog partitions from CSV files in FS.
type Reader struct {
	// FS is the root of the catalog repository.
	FS fs.FS

	// Delim is the field delimiter. [New] sets it to Comma.
	Delim table.Delims
}

// New returns a Reader for the directory root.
func New(root string) *Reader {
	return &Reader{FS: os.DirFS(root), Delim: table.Comma}
}

// Path returns the file path of the partition within FS.
// The Repo of src is ignored, as FS is already rooted at it.
// A negative Tract names the whole-catalog file of the version.
func Path(src catalog.Source) string {
	if src.Tract < 0 {
		return src.Version + ".csv"
	}
	tract := strconv.Itoa(src.Tract)
	if src.Patch == "" {
		return path.Join(src.Version, tract+".csv")
	}
	return path.Join(src.Version, tract, src.Patch+".csv")
}

// GridPath returns the file path of the grid for the given density column.
func GridPath(src catalog.Source, column string) string {
	return path.Join(src.Version, column+"_grid.csv")
}

// Read reads the partition file of src, then filters and projects it.
func (rd *Reader) Read(ctx context.Context, src catalog.Source, columns []string, filters []cuts.Expr) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn := Path(src)
	dt := table.NewTable(fn)
	if err := dt.OpenFS(rd.FS, fn, rd.Delim); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &catalog.NoDataError{Source: src, Err: err}
		}
		return nil, fmt.Errorf("csvcat: reading %s: %w", fn, err)
	}
	if dt.NumRows() == 0 {
		return nil, &catalog.NoDataError{Source: src}
	}
	return catalog.Filter(dt, columns, filters)
}

// ReadGrid reads the grid file of the given density column: a single
// column of strictly increasing redshift values.
func (rd *Reader) ReadGrid(ctx context.Context, src catalog.Source, column string) (pdz.Grid, error) {
	fn := GridPath(src, column)
	dt := table.NewTable(fn)
	if err := dt.OpenFS(rd.FS, fn, rd.Delim); err != nil {
		return nil, fmt.Errorf("csvcat: reading grid %s: %w", fn, err)
	}
	if dt.NumColumns() != 1 {
		return nil, fmt.Errorf("csvcat: grid %s has %d columns, want 1", fn, dt.NumColumns())
	}
	vals, err := dt.Floats(dt.ColumnName(0))
	if err != nil {
		return nil, err
	}
	return pdz.NewGrid(vals...)
}

// Write saves dt as the partition file of src under the directory root,
// creating directories as needed.
func Write(root string, src catalog.Source, dt *table.Table) error {
	fn := filepath.Join(root, filepath.FromSlash(Path(src)))
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return err
	}
	return dt.SaveCSV(fn, table.Comma, table.Headers)
}

// WriteGrid saves the grid of the given density column under root.
func WriteGrid(root string, src catalog.Source, column string, g pdz.Grid) error {
	fn := filepath.Join(root, filepath.FromSlash(GridPath(src, column)))
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return err
	}
	dt := table.NewTable()
	z, err := dt.AddFloat64Column("z")
	if err != nil {
		return err
	}
	dt.SetNumRows(len(g))
	copy(z.Values, g)
	return dt.SaveCSV(fn, table.Comma, table.Headers)
}
