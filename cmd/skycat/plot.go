// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"cogentcore.org/skycat/pdz"
	"cogentcore.org/skycat/tensor/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// plotNZ saves a plot of the nz columns of res, each normalized to unit
// area, with the matching ref histograms as dashed steps. The image
// format is given by the file extension.
func plotNZ(file string, res *table.Table) error {
	g, err := pdz.GridOf(res)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "N(z)"
	p.X.Label.Text = "z"
	p.Y.Label.Text = "normalized density"
	p.Legend.Top = true

	ci := 0
	for _, name := range res.ColumnNames() {
		if !strings.HasPrefix(name, "nz") {
			continue
		}
		for _, col := range []string{name, "ref" + strings.TrimPrefix(name, "nz")} {
			vals, err := res.Floats(col)
			if err != nil {
				continue
			}
			if floats.HasNaN(vals) {
				return fmt.Errorf("plot: column %q has NaN values; exclude them with the baseline", col)
			}
			norm, err := pdz.Normalize(vals, g)
			if err != nil {
				return err
			}
			l, err := plotter.NewLine(gridXYs(g, norm))
			if err != nil {
				return err
			}
			l.LineStyle.Color = plotutil.Color(ci)
			l.LineStyle.Width = vg.Points(1.5)
			if strings.HasPrefix(col, "ref") {
				l.StepStyle = plotter.MidStep
				l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			}
			p.Add(l)
			p.Legend.Add(col, l)
		}
		ci++
	}
	p.Add(plotter.NewGrid())
	p.Legend.Padding = vg.Points(2)
	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}

func gridXYs(g pdz.Grid, vals []float64) plotter.XYs {
	xys := make(plotter.XYs, len(g))
	for i := range g {
		xys[i] = plotter.XY{X: g[i], Y: vals[i]}
	}
	return xys
}
