// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog defines the interface to catalog readers, which return
// column tables for one partition (tract and patch) of a catalog, and a
// [Session] that reads many partitions sequentially, skipping those with
// no data.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/skycat/base/errors"
	"cogentcore.org/skycat/cuts"
	"cogentcore.org/skycat/pdz"
	"cogentcore.org/skycat/tensor/table"
)

// ErrNoData is matched by errors for a partition that has no data.
// It is the one recoverable read error: [Session.ReadPartitions]
// logs and skips such partitions.
var ErrNoData = errors.New("no data for partition")

// Source identifies one partition of a catalog.
type Source struct {
	// Repo is the repository location: a directory, database file or
	// other reader-specific root.
	Repo string

	// Version is the named catalog version, such as "dc2_object_run2.2i".
	Version string

	// Tract is the sky tract number. Negative means the whole catalog.
	Tract int

	// Patch is the patch within the tract, such as "3,4".
	// Empty means the whole tract.
	Patch string
}

// String returns repo/version/tract/patch, omitting empty parts.
func (s Source) String() string {
	parts := []string{}
	for _, p := range []string{s.Repo, s.Version} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if s.Tract >= 0 {
		parts = append(parts, strconv.Itoa(s.Tract))
		if s.Patch != "" {
			parts = append(parts, s.Patch)
		}
	}
	return strings.Join(parts, "/")
}

// NoDataError reports a partition with no data.
type NoDataError struct {
	Source Source

	// Err is the underlying cause, if any.
	Err error
}

func (e *NoDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog: no data for %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("catalog: no data for %s", e.Source)
}

// Is reports whether target is [ErrNoData].
func (e *NoDataError) Is(target error) bool { return target == ErrNoData }

func (e *NoDataError) Unwrap() error { return e.Err }

// Reader reads a table from one catalog partition.
type Reader interface {
	// Read returns the given columns of the rows of src that pass all
	// filters. If columns is empty, all columns are returned. It returns
	// an error matching [ErrNoData] if the partition does not exist or
	// is empty, and a [table.MissingColumnError] for unknown columns.
	Read(ctx context.Context, src Source, columns []string, filters []cuts.Expr) (*table.Table, error)
}

// GridReader is implemented by readers that can return the redshift
// grid shared by the density vectors of a density column.
type GridReader interface {
	ReadGrid(ctx context.Context, src Source, column string) (pdz.Grid, error)
}

// Partitions returns the sources for each combination of tract and patch.
// If patches is empty, each tract is one source.
func Partitions(repo, version string, tracts []int, patches []string) []Source {
	var srcs []Source
	for _, tr := range tracts {
		if len(patches) == 0 {
			srcs = append(srcs, Source{Repo: repo, Version: version, Tract: tr})
			continue
		}
		for _, pt := range patches {
			srcs = append(srcs, Source{Repo: repo, Version: version, Tract: tr, Patch: pt})
		}
	}
	return srcs
}

// Filter applies filters to dt and projects the result onto columns,
// for readers that cannot push filters down to their storage.
func Filter(dt *table.Table, columns []string, filters []cuts.Expr) (*table.Table, error) {
	if len(filters) > 0 {
		m, err := cuts.Select(dt, cuts.Predicates(filters...)...)
		if err != nil {
			return nil, err
		}
		if dt, err = table.Filter(dt, m); err != nil {
			return nil, err
		}
	}
	return dt.Project(columns...)
}
