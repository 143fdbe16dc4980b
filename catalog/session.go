// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"cogentcore.org/skycat/base/errors"
	"cogentcore.org/skycat/cuts"
	"cogentcore.org/skycat/pdz"
	"cogentcore.org/skycat/tensor/table"
	"github.com/google/uuid"
)

// Session holds the state of one analysis: the catalog reader, the logger,
// and grids already read. It is passed explicitly to every read, and is
// not safe for concurrent use.
type Session struct {
	// ID identifies the session in log messages.
	ID uuid.UUID

	// Reader reads catalog partitions.
	Reader Reader

	// Logger receives session messages, including skipped partitions.
	Logger *slog.Logger

	grids map[gridKey]pdz.Grid
}

type gridKey struct {
	repo, version, column string
}

// NewSession returns a new Session using the given reader.
// If logger is nil, [slog.Default] is used.
func NewSession(rd Reader, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Session{
		ID:     id,
		Reader: rd,
		Logger: logger.With("session", id.String()),
		grids:  map[gridKey]pdz.Grid{},
	}
}

// Read reads one partition, checking that the result is aligned and
// has every requested column.
func (s *Session) Read(ctx context.Context, src Source, columns []string, filters []cuts.Expr) (*table.Table, error) {
	dt, err := s.Reader.Read(ctx, src, columns, filters)
	if err != nil {
		return nil, err
	}
	if err := dt.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", src, err)
	}
	if _, err := dt.ColumnsTry(columns...); err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", src, err)
	}
	dt.Meta.SetSource(src.String())
	return dt, nil
}

// Grid returns the redshift grid of the given density column, reading it
// once per repo, version and column. The reader must implement [GridReader].
func (s *Session) Grid(ctx context.Context, src Source, column string) (pdz.Grid, error) {
	key := gridKey{repo: src.Repo, version: src.Version, column: column}
	if g, ok := s.grids[key]; ok {
		return g, nil
	}
	gr, ok := s.Reader.(GridReader)
	if !ok {
		return nil, fmt.Errorf("catalog: reader %T does not provide redshift grids", s.Reader)
	}
	g, err := gr.ReadGrid(ctx, src, column)
	if err != nil {
		return nil, err
	}
	s.grids[key] = g
	return g, nil
}

// SetGrid sets the grid for the given source and column, for readers
// that do not store grids.
func (s *Session) SetGrid(src Source, column string, g pdz.Grid) {
	s.grids[gridKey{repo: src.Repo, version: src.Version, column: column}] = g
}

// Skip records a partition that was skipped.
type Skip struct {
	Source Source
	Err    error
}

// Accumulation is the result of reading many partitions.
type Accumulation struct {
	// Table has the rows of all partitions read, concatenated in
	// partition order. It is nil if no partition had data.
	Table *table.Table

	// Read lists the partitions that contributed rows.
	Read []Source

	// Skipped lists the partitions with no data.
	Skipped []Skip
}

// PartitionResult is the outcome of reading one partition.
type PartitionResult struct {
	Source Source
	Table  *table.Table
	Err    error
}

// ReadPartition reads one partition, returning the table or error as a result.
func (s *Session) ReadPartition(ctx context.Context, src Source, columns []string, filters []cuts.Expr) PartitionResult {
	dt, err := s.Read(ctx, src, columns, filters)
	return PartitionResult{Source: src, Table: dt, Err: err}
}

// ReadPartitions reads each source in turn and concatenates the rows.
// Partitions with no data are logged as warnings, recorded in
// [Accumulation.Skipped], and do not stop the read. Any other error,
// or cancellation of ctx, stops the read and is returned along with
// what has been accumulated so far.
func (s *Session) ReadPartitions(ctx context.Context, srcs []Source, columns []string, filters []cuts.Expr) (*Accumulation, error) {
	acc := &Accumulation{}
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return acc, err
		}
		res := s.ReadPartition(ctx, src, columns, filters)
		if err := acc.add(res); err != nil {
			return acc, err
		}
		if res.Err != nil {
			s.Logger.Warn("skipping partition", "source", src.String(), "err", res.Err)
		}
	}
	s.Logger.Info("read partitions", "read", len(acc.Read), "skipped", len(acc.Skipped), "rows", acc.NumRows())
	return acc, nil
}

func (acc *Accumulation) add(res PartitionResult) error {
	if res.Err != nil {
		if errors.Is(res.Err, ErrNoData) {
			acc.Skipped = append(acc.Skipped, Skip{Source: res.Source, Err: res.Err})
			return nil
		}
		return res.Err
	}
	if acc.Table == nil {
		acc.Table = table.NewTable()
		acc.Table.Meta.Copy(res.Table.Meta)
		acc.Table.Meta.SetSource("")
	}
	if err := acc.Table.AppendRows(res.Table); err != nil {
		return fmt.Errorf("catalog: appending %s: %w", res.Source, err)
	}
	acc.Read = append(acc.Read, res.Source)
	acc.Table.Meta.SetSource(sourcesString(acc.Read))
	return nil
}

// NumRows returns the number of rows accumulated.
func (acc *Accumulation) NumRows() int {
	if acc.Table == nil {
		return 0
	}
	return acc.Table.NumRows()
}

func sourcesString(srcs []Source) string {
	if len(srcs) == 1 {
		return srcs[0].String()
	}
	return fmt.Sprintf("%s (+%d partitions)", srcs[0], len(srcs)-1)
}
