// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuts

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/skycat/tensor/table"
)

// Cuts is a complete selection: a baseline NaN-exclusion pass
// followed by a conjunction of predicates.
type Cuts struct {
	// Baseline lists the columns checked for NaN before any other
	// selection. If empty, all float columns are checked.
	Baseline []string

	// Predicates are combined by conjunction, each evaluated on the
	// full table.
	Predicates []Predicate
}

// Count is the number of rows passing one stage of a selection.
type Count struct {
	Name string
	Pass int
}

// Report summarizes a selection for logging.
type Report struct {
	// Rows is the number of input rows.
	Rows int

	// Baseline is the number of rows passing the NaN-exclusion pass.
	Baseline int

	// Predicates has the pass count of each predicate on its own,
	// evaluated on the full table.
	Predicates []Count

	// Selected is the number of rows passing everything.
	Selected int
}

// String returns a multi-line summary.
func (rp *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rows: %d\nbaseline: %d\n", rp.Rows, rp.Baseline)
	for _, c := range rp.Predicates {
		fmt.Fprintf(&b, "%s: %d\n", c.Name, c.Pass)
	}
	fmt.Fprintf(&b, "selected: %d\n", rp.Selected)
	return b.String()
}

// LogValue implements [slog.LogValuer].
func (rp *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("rows", rp.Rows),
		slog.Int("baseline", rp.Baseline),
		slog.Int("selected", rp.Selected))
}

// Mask returns the combined selection mask over dt, with a report.
func (c *Cuts) Mask(dt *table.Table) (table.Mask, *Report, error) {
	rp := &Report{Rows: dt.NumRows()}
	base, err := Baseline(dt, c.Baseline...)
	if err != nil {
		return nil, nil, fmt.Errorf("cuts: baseline: %w", err)
	}
	rp.Baseline = base.Count()
	m := base
	for _, p := range c.Predicates {
		pm, err := p.Mask(dt)
		if err != nil {
			return nil, nil, fmt.Errorf("cuts: %s: %w", p, err)
		}
		rp.Predicates = append(rp.Predicates, Count{Name: p.String(), Pass: pm.Count()})
		if m, err = m.And(pm); err != nil {
			return nil, nil, fmt.Errorf("cuts: %s: %w", p, err)
		}
	}
	rp.Selected = m.Count()
	return m, rp, nil
}

// Apply returns a new table with the rows of dt passing the cuts.
func (c *Cuts) Apply(dt *table.Table) (*table.Table, *Report, error) {
	m, rp, err := c.Mask(dt)
	if err != nil {
		return nil, nil, err
	}
	ft, err := table.Filter(dt, m)
	if err != nil {
		return nil, nil, err
	}
	return ft, rp, nil
}
