// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/skycat/derive"
	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseTOML = `
log_level = "debug"

[source]
kind = "sqlite"
repo = "dc2.db"
version = "object_v1"
tracts = [3829, 3830]
patches = ["0,0", "0,1"]

[density]
column = "pdf"
grid_n = 31
`

const analysisYAML = `
includes: [base.toml]
source:
  version: object_v2
baseline: [mag_i, pdf]
cuts:
  - blended == false
  - snr_i > 5
  - mag_i <= 25.3
derive:
  snr:
    - {flux: flux_i, err: flux_err_i, out: snr_i}
density:
  reference: z_true
  slices: [0, 0.5, 1, 2]
`

func writeFile(t *testing.T, dir, name, data string) string {
	fn := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func TestOpenIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.toml", baseTOML)
	fn := writeFile(t, dir, "analysis.yaml", analysisYAML)

	cfg, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, SQLite, cfg.Source.Kind)
	assert.Equal(t, "object_v2", cfg.Source.Version)
	assert.Equal(t, []int{3829, 3830}, cfg.Source.Tracts)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 31, cfg.Density.GridN)
	assert.Equal(t, 3.0, cfg.Density.GridMax)
	assert.Equal(t, "z_true", cfg.Density.SliceColumnName())
	assert.Len(t, cfg.Sources(), 4)
	assert.Equal(t, "object_v2", cfg.Sources()[3].Version)

	sel, err := cfg.Selection()
	require.NoError(t, err)
	assert.Equal(t, []string{"mag_i", "pdf"}, sel.Baseline)
	require.Len(t, sel.Predicates, 3)
	assert.Equal(t, "snr_i > 5", sel.Predicates[1].String())

	g, err := cfg.Density.Grid()
	require.NoError(t, err)
	assert.Len(t, g, 31)
	assert.InDelta(t, 0.1, g[1], 1e-12)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	fn := writeFile(t, dir, "a.json", "{}")
	_, err = Open(fn)
	assert.ErrorContains(t, err, "unknown format")

	writeFile(t, dir, "x.toml", "includes = [\"y.toml\"]\n")
	fn = writeFile(t, dir, "y.toml", "includes = [\"x.toml\"]\n")
	_, err = Open(fn)
	assert.ErrorContains(t, err, "include cycle")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Defaults()
		cfg.Source.Repo = "cat"
		cfg.Source.Tracts = []int{1}
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name string
		edit func(c *Config)
	}{
		{"kind", func(c *Config) { c.Source.Kind = "parquet" }},
		{"repo", func(c *Config) { c.Source.Repo = "" }},
		{"tracts", func(c *Config) { c.Source.Tracts = nil }},
		{"level", func(c *Config) { c.LogLevel = "loud" }},
		{"filters", func(c *Config) { c.Filters = []string{"mag <"} }},
		{"cuts", func(c *Config) { c.Cuts = []string{"snr > true"} }},
		{"grid", func(c *Config) { c.Density.Column = "pdf"; c.Density.GridN = 1 }},
		{"slices", func(c *Config) {
			c.Density.Column, c.Density.Reference = "pdf", "z"
			c.Density.Slices = []float64{0, 1, 1}
		}},
		{"slice column", func(c *Config) { c.Density.Column = "pdf"; c.Density.Slices = []float64{0, 1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.edit(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSliceColumnName(t *testing.T) {
	d := Density{Reference: "z_true"}
	assert.Equal(t, "z_true", d.SliceColumnName())
	d.Mode = "z_mode"
	assert.Equal(t, "z_mode", d.SliceColumnName())
	d.SliceColumn = "z_phot"
	assert.Equal(t, "z_phot", d.SliceColumnName())
}

func TestDeriveApply(t *testing.T) {
	dt := table.NewTable()
	require.NoError(t, dt.AddColumn("flux", tensor.NewFloat64FromValues(10, math.NaN(), 5)))
	require.NoError(t, dt.AddColumn("flux_err", tensor.NewFloat64FromValues(1, 1, 0)))
	require.NoError(t, dt.AddColumn("e1", tensor.NewFloat64FromValues(0.3, 0, 0)))
	require.NoError(t, dt.AddColumn("e2", tensor.NewFloat64FromValues(0.4, 0, 0)))

	d := Derive{
		SNR:         []SNR{{Flux: "flux", Err: "flux_err", Out: "snr"}},
		Magnitude:   []Magnitude{{Flux: "flux", Err: "flux_err", Mag: "mag", MagErr: "mag_err", ZeroPoint: 27}},
		Ellipticity: []Ellipticity{{E1: "e1", E2: "e2", Out: "e"}},
	}
	require.NoError(t, d.Apply(dt))
	assert.Equal(t, 10.0, dt.Float("snr", 0))
	assert.True(t, math.IsNaN(dt.Float("snr", 1)))
	assert.True(t, math.IsNaN(dt.Float("snr", 2)))
	assert.InDelta(t, 27-2.5, dt.Float("mag", 0), 1e-12)
	assert.InDelta(t, 0.5, dt.Float("e", 0), 1e-12)

	assert.Equal(t, derive.ZeroPoint(derive.ABZeroPoint), (&Magnitude{}).Calibration())
	assert.Equal(t, derive.PhotoCalib{Mean: 2, Err: 0.1}, (&Magnitude{CalibMean: 2, CalibErr: 0.1}).Calibration())

	err := (&Derive{SNR: []SNR{{Flux: "nope", Err: "flux_err", Out: "x"}}}).Apply(dt)
	assert.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	cfg := Defaults()
	cfg.Source.Repo = "cat"
	cfg.Source.Tracts = []int{9}
	cfg.Source.Patches = []string{"1,1"}
	cfg.Cuts = []string{"snr > 5"}
	for _, name := range []string{"out.toml", "out.yaml"} {
		fn := filepath.Join(dir, name)
		require.NoError(t, Save(cfg, fn))
		got, err := Open(fn)
		require.NoError(t, err)
		assert.Equal(t, cfg.Source, got.Source, name)
		assert.Equal(t, cfg.Cuts, got.Cuts, name)
	}
}
