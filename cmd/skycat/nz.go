// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"

	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/pdz"
	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
	"github.com/spf13/cobra"
)

func (a *app) nzCmd() *cobra.Command {
	var output, plotFile string
	cmd := &cobra.Command{
		Use:   "nz",
		Short: "Sum the redshift densities of the selected objects",
		Long: `nz sums the per-object redshift densities of the selected rows into
an N(z), in total and per tomographic slice, along with histograms of
the reference redshift on the same grid. The sum is a rough estimate
of the redshift distribution, for comparisons only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Density.Column == "" {
				return fmt.Errorf("nz: no density column configured")
			}
			s, closer, err := a.session()
			if err != nil {
				return err
			}
			defer closer()
			an, err := a.analyze(cmd.Context(), s)
			if err != nil {
				return err
			}
			g, err := a.grid(cmd.Context(), s)
			if err != nil {
				return err
			}
			res, err := a.sumDensities(an.selected, g)
			if err != nil {
				return err
			}
			if output == "" {
				output = a.cfg.Output
			}
			if output == "" {
				if err := res.WriteCSV(cmd.OutOrStdout(), table.Comma, table.Headers); err != nil {
					return err
				}
			} else if err := res.SaveCSV(output, table.Comma, table.Headers); err != nil {
				return err
			}
			if plotFile != "" {
				if err := plotNZ(plotFile, res); err != nil {
					return err
				}
				s.Logger.Info("wrote plot", "file", plotFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV file for the N(z) table; overrides the config")
	cmd.Flags().StringVar(&plotFile, "plot", "", "image file for a plot of N(z) against the reference histogram")
	return cmd
}

// grid returns the redshift grid of the density column from the reader,
// falling back to the configured grid.
func (a *app) grid(ctx context.Context, s *catalog.Session) (pdz.Grid, error) {
	d := a.cfg.Density
	src := a.cfg.Sources()[0]
	g, err := s.Grid(ctx, src, d.Column)
	if err == nil {
		return g, nil
	}
	g, cerr := d.Grid()
	if cerr != nil {
		return nil, cerr
	}
	s.Logger.Warn("using configured grid", "column", d.Column, "n", g.Len(), "err", err)
	s.SetGrid(src, d.Column, g)
	return g, nil
}

// sumDensities returns a table with the grid in column z, then for the
// full selection and each slice the summed density nz and, if a reference
// column is configured, the reference histogram ref. Slice columns have
// suffixes _1, _2 and so on.
func (a *app) sumDensities(dt *table.Table, g pdz.Grid) (*table.Table, error) {
	d := a.cfg.Density
	pdz.SetGrid(dt, g)
	res := table.NewTable("nz")
	pdz.SetGrid(res, g)
	if err := res.AddColumn("z", tensor.NewFloat64FromValues(g...)); err != nil {
		return nil, err
	}
	if d.Mode != "" {
		if err := pdz.Mode(dt, d.Column, g, d.Mode); err != nil {
			return nil, err
		}
	}
	masks := []table.Mask{nil}
	if len(d.Slices) > 0 {
		sm, err := pdz.Slices(dt, d.SliceColumnName(), d.Slices)
		if err != nil {
			return nil, err
		}
		masks = append(masks, sm...)
	}
	var ref []float64
	if d.Reference != "" {
		var err error
		if ref, err = dt.Floats(d.Reference); err != nil {
			return nil, err
		}
	}
	for i, m := range masks {
		suffix := ""
		if i > 0 {
			suffix = "_" + strconv.Itoa(i)
		}
		nz, err := pdz.Sum(dt, d.Column, m)
		if err != nil {
			return nil, err
		}
		if err := res.AddColumn("nz"+suffix, tensor.NewFloat64FromValues(nz...)); err != nil {
			return nil, err
		}
		n := dt.NumRows()
		if m != nil {
			n = m.Count()
		}
		mean, err := pdz.Mean(nz, g)
		if err != nil {
			a.logger.Warn("mean redshift", "slice", i, "err", err)
		}
		a.logger.Info("summed densities", "slice", i, "rows", n, "mean_z", mean)
		if ref == nil {
			continue
		}
		var vals []float64
		for r, v := range ref {
			if m == nil || m[r] {
				vals = append(vals, v)
			}
		}
		if err := res.AddColumn("ref"+suffix, tensor.NewFloat64FromValues(pdz.Histogram(vals, g)...)); err != nil {
			return nil, err
		}
	}
	return res, nil
}
