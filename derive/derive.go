// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package derive computes new table columns elementwise from existing
// ones: calibrated magnitudes, signal-to-noise ratios, and combined
// ellipticities. Each function reads its input columns, computes the
// output without any cross-row dependency, and appends the result as
// new columns. NaN inputs give NaN outputs; exclude them afterwards with
// an explicit baseline cut. On error the table is left unchanged.
package derive

import (
	"fmt"
	"math"

	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
	"cogentcore.org/skycat/tensor/tmath"
)

// Column appends a new float64 column named out, computed by applying fn
// to the values of the given float columns at each row.
func Column(dt *table.Table, out string, fn func(vals []float64) float64, columns ...string) error {
	tsrs, err := scalarColumns(dt, columns...)
	if err != nil {
		return err
	}
	res, err := tmath.ApplyN(fn, tsrs...)
	if err != nil {
		return err
	}
	return dt.AddColumn(out, res)
}

// SNR appends the signal-to-noise ratio flux / fluxErr as column out.
// The ratio is NaN where fluxErr is zero or either input is NaN.
func SNR(dt *table.Table, fluxCol, errCol, out string) error {
	tsrs, err := scalarColumns(dt, fluxCol, errCol)
	if err != nil {
		return err
	}
	res, err := tmath.SafeDiv(tsrs[0], tsrs[1])
	if err != nil {
		return err
	}
	return dt.AddColumn(out, res)
}

// Ellipticity appends the Euclidean norm sqrt(e1² + e2²) of the two
// shape distortion components as column out.
func Ellipticity(dt *table.Table, e1Col, e2Col, out string) error {
	tsrs, err := scalarColumns(dt, e1Col, e2Col)
	if err != nil {
		return err
	}
	res, err := tmath.Hypot(tsrs[0], tsrs[1])
	if err != nil {
		return err
	}
	return dt.AddColumn(out, res)
}

// Magnitude appends magnitude and magnitude error columns computed from
// the instrumental flux and flux error columns through calib.
// Both output names must be new; if either cannot be added, neither is.
func Magnitude(dt *table.Table, calib Calibration, fluxCol, errCol, magCol, magErrCol string) error {
	tsrs, err := scalarColumns(dt, fluxCol, errCol)
	if err != nil {
		return err
	}
	flux, ferr := tsrs[0], tsrs[1]
	if magCol == magErrCol {
		return fmt.Errorf("derive.Magnitude: magnitude and error columns are both named %q", magCol)
	}
	for _, nm := range []string{magCol, magErrCol} {
		if dt.HasColumn(nm) {
			return fmt.Errorf("derive.Magnitude: column %q already exists", nm)
		}
	}
	mag := tensor.NewFloat64(flux.Len())
	merr := tensor.NewFloat64(flux.Len())
	for i := range mag.Values {
		fv, ev := flux.Float1D(i), ferr.Float1D(i)
		if math.IsNaN(fv) || math.IsNaN(ev) {
			mag.Values[i], merr.Values[i] = math.NaN(), math.NaN()
			continue
		}
		mag.Values[i], merr.Values[i] = calib.InstFluxToMagnitude(fv, ev)
	}
	if err := dt.AddColumn(magCol, mag); err != nil {
		return err
	}
	return dt.AddColumn(magErrCol, merr)
}

// scalarColumns returns the named columns, checking that each is a
// scalar column with the same number of rows as the table.
func scalarColumns(dt *table.Table, columns ...string) ([]tensor.Tensor, error) {
	tsrs, err := dt.ColumnsTry(columns...)
	if err != nil {
		return nil, err
	}
	for i, tsr := range tsrs {
		rows, cells := tsr.RowCellSize()
		if rows != dt.NumRows() || cells != 1 {
			return nil, &table.MisalignedError{Column: columns[i], Rows: tsr.Len(), Want: dt.NumRows()}
		}
	}
	return tsrs, nil
}
