// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/cuts"
	"cogentcore.org/skycat/tensor/table"
)

// analysis is the result of reading, deriving and selecting.
type analysis struct {
	acc      *catalog.Accumulation
	selected *table.Table
	report   *cuts.Report
}

// analyze reads the configured partitions, adds derived columns,
// and applies the baseline and cuts.
func (a *app) analyze(ctx context.Context, s *catalog.Session) (*analysis, error) {
	filters, err := a.cfg.ReadFilters()
	if err != nil {
		return nil, err
	}
	srcs := a.cfg.Sources()
	acc, err := s.ReadPartitions(ctx, srcs, a.cfg.Columns, filters)
	if err != nil {
		return nil, err
	}
	if acc.Table == nil {
		return nil, fmt.Errorf("no data in any of %d partitions: %w", len(srcs), catalog.ErrNoData)
	}
	dt := acc.Table
	if err := a.cfg.Derive.Apply(dt); err != nil {
		return nil, err
	}
	sel, err := a.cfg.Selection()
	if err != nil {
		return nil, err
	}
	out, rep, err := sel.Apply(dt)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("selected", "report", rep)
	return &analysis{acc: acc, selected: out, report: rep}, nil
}
