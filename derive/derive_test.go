// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import (
	"math"
	"testing"

	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fluxTable(t *testing.T) *table.Table {
	dt := table.NewTable("objects")
	require.NoError(t, dt.AddColumn("flux", tensor.NewFloat64FromValues(10, math.NaN(), 5)))
	require.NoError(t, dt.AddColumn("flux_err", tensor.NewFloat64FromValues(1, 1, 0)))
	return dt
}

func floats(t *testing.T, dt *table.Table, col string) []float64 {
	v, err := dt.Floats(col)
	require.NoError(t, err)
	return v
}

func TestSNR(t *testing.T) {
	dt := fluxTable(t)
	require.NoError(t, SNR(dt, "flux", "flux_err", "snr"))
	want := []float64{10, math.NaN(), math.NaN()}
	if diff := cmp.Diff(want, floats(t, dt, "snr"), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("snr mismatch (-want +got):\n%s", diff)
	}
	// inputs are never rewritten
	assert.Equal(t, []float64{1, 1, 0}, floats(t, dt, "flux_err"))
}

func TestDeterministic(t *testing.T) {
	dt := fluxTable(t)
	require.NoError(t, SNR(dt, "flux", "flux_err", "snr1"))
	require.NoError(t, SNR(dt, "flux", "flux_err", "snr2"))
	if diff := cmp.Diff(floats(t, dt, "snr1"), floats(t, dt, "snr2"), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("repeated derivation differs:\n%s", diff)
	}
}

func TestErrorsLeaveTableUnchanged(t *testing.T) {
	dt := fluxTable(t)
	err := SNR(dt, "flux", "psf_flux_err", "snr")
	assert.ErrorIs(t, err, table.ErrMissingColumn)
	assert.Contains(t, err.Error(), "psf_flux_err")
	assert.Equal(t, 2, dt.NumColumns())

	pdf, err := dt.AddDensityColumn("pdf", 4)
	require.NoError(t, err)
	require.NotNil(t, pdf)
	err = Ellipticity(dt, "flux", "pdf", "e")
	assert.ErrorIs(t, err, table.ErrMisaligned)
	assert.False(t, dt.HasColumn("e"))

	err = SNR(dt, "flux", "flux_err", "flux")
	assert.Error(t, err)
}

func TestEllipticity(t *testing.T) {
	dt := table.NewTable()
	require.NoError(t, dt.AddColumn("e1", tensor.NewFloat64FromValues(0.3, 0, math.NaN())))
	require.NoError(t, dt.AddColumn("e2", tensor.NewFloat64FromValues(0.4, -0.2, 0.1)))
	require.NoError(t, Ellipticity(dt, "e1", "e2", "e"))
	e := floats(t, dt, "e")
	assert.InDelta(t, 0.5, e[0], 1e-12)
	assert.InDelta(t, 0.2, e[1], 1e-12)
	assert.True(t, math.IsNaN(e[2]))
}

func TestMagnitude(t *testing.T) {
	dt := fluxTable(t)
	pc := PhotoCalib{Mean: 100, Err: 0}
	require.NoError(t, Magnitude(dt, pc, "flux", "flux_err", "mag", "mag_err"))
	mag := floats(t, dt, "mag")
	merr := floats(t, dt, "mag_err")
	assert.InDelta(t, ABZeroPoint-2.5*3, mag[0], 1e-12) // 1000 nJy
	assert.InDelta(t, 2.5/math.Ln10*0.1, merr[0], 1e-12)
	assert.True(t, math.IsNaN(mag[1]))
	assert.InDelta(t, ABZeroPoint-2.5*math.Log10(500), mag[2], 1e-12)
	assert.Equal(t, 0.0, merr[2])

	err := Magnitude(dt, pc, "flux", "flux_err", "mag2", "mag_err")
	assert.Error(t, err)
	assert.False(t, dt.HasColumn("mag2"))
}

func TestCalibrations(t *testing.T) {
	zp := ZeroPoint(27)
	mag, merr := zp.InstFluxToMagnitude(100, 10)
	assert.InDelta(t, 22.0, mag, 1e-12)
	assert.InDelta(t, 2.5/math.Ln10*0.1, merr, 1e-12)
	mag, _ = zp.InstFluxToMagnitude(-1, 1)
	assert.True(t, math.IsNaN(mag))

	pc := PhotoCalib{Mean: 2, Err: 0.2}
	nJy, nJyErr := pc.InstFluxToNanojansky(10, 1)
	assert.Equal(t, 20.0, nJy)
	assert.InDelta(t, 20*math.Hypot(0.1, 0.1), nJyErr, 1e-12)
	_, merr = pc.InstFluxToMagnitude(10, 1)
	assert.InDelta(t, 2.5/math.Ln10*math.Hypot(0.1, 0.1), merr, 1e-12)
}

func TestColumn(t *testing.T) {
	dt := fluxTable(t)
	require.NoError(t, Column(dt, "flux2", func(v []float64) float64 { return 2 * v[0] }, "flux"))
	f2 := floats(t, dt, "flux2")
	assert.Equal(t, 20.0, f2[0])
	assert.True(t, math.IsNaN(f2[1]))
}
