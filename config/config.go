// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the configuration of a catalog analysis,
// read from TOML or YAML files.
package config

import (
	"fmt"

	"cogentcore.org/skycat/base/logx"
	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/cuts"
	"cogentcore.org/skycat/derive"
	"cogentcore.org/skycat/pdz"
	"cogentcore.org/skycat/tensor/table"
)

// Reader kinds for [Source.Kind].
const (
	CSV    = "csv"
	SQLite = "sqlite"
)

// Config is the configuration of one analysis run.
type Config struct {
	// Includes are other config files whose settings are read first,
	// so that this file overrides them. Relative paths are relative to
	// the including file.
	Includes []string `toml:"includes" yaml:"includes"`

	// Source is the catalog and partitions to read.
	Source Source `toml:"source" yaml:"source"`

	// Columns to read. If empty, all columns are read.
	Columns []string `toml:"columns" yaml:"columns"`

	// Filters are expressions such as "i_mag < 25" applied by the reader.
	Filters []string `toml:"filters" yaml:"filters"`

	// Baseline lists the columns excluded when NaN, before any cuts.
	// If empty, all float columns are checked.
	Baseline []string `toml:"baseline" yaml:"baseline"`

	// Cuts are selection expressions, combined by conjunction.
	Cuts []string `toml:"cuts" yaml:"cuts"`

	// Derive lists the columns derived after reading.
	Derive Derive `toml:"derive" yaml:"derive"`

	// Density configures redshift density summation.
	Density Density `toml:"density" yaml:"density"`

	// Output is the CSV file for results; empty for none.
	Output string `toml:"output" yaml:"output"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Source configures the catalog partitions to read.
type Source struct {
	// Kind is the reader: csv or sqlite.
	Kind string `toml:"kind" yaml:"kind"`

	// Repo is the catalog directory (csv) or database file (sqlite).
	Repo string `toml:"repo" yaml:"repo"`

	// Version is the catalog version.
	Version string `toml:"version" yaml:"version"`

	Tracts  []int    `toml:"tracts" yaml:"tracts"`
	Patches []string `toml:"patches" yaml:"patches"`
}

// Derive configures derived columns.
type Derive struct {
	SNR         []SNR         `toml:"snr" yaml:"snr"`
	Magnitude   []Magnitude   `toml:"magnitude" yaml:"magnitude"`
	Ellipticity []Ellipticity `toml:"ellipticity" yaml:"ellipticity"`
}

// SNR derives Out = Flux / Err.
type SNR struct {
	Flux string `toml:"flux" yaml:"flux"`
	Err  string `toml:"err" yaml:"err"`
	Out  string `toml:"out" yaml:"out"`
}

// Magnitude derives a magnitude and its error from an instrumental flux.
// Calibration uses CalibMean and CalibErr when CalibMean is set,
// and a plain ZeroPoint otherwise.
type Magnitude struct {
	Flux      string  `toml:"flux" yaml:"flux"`
	Err       string  `toml:"err" yaml:"err"`
	Mag       string  `toml:"mag" yaml:"mag"`
	MagErr    string  `toml:"mag_err" yaml:"mag_err"`
	CalibMean float64 `toml:"calib_mean" yaml:"calib_mean"`
	CalibErr  float64 `toml:"calib_err" yaml:"calib_err"`
	ZeroPoint float64 `toml:"zero_point" yaml:"zero_point"`
}

// Ellipticity derives Out = hypot(E1, E2).
type Ellipticity struct {
	E1  string `toml:"e1" yaml:"e1"`
	E2  string `toml:"e2" yaml:"e2"`
	Out string `toml:"out" yaml:"out"`
}

// Density configures summation of redshift density vectors.
type Density struct {
	// Column is the density vector column; empty disables summation.
	Column string `toml:"column" yaml:"column"`

	// GridMin, GridMax and GridN define a linear redshift grid, used when
	// the reader does not provide one.
	GridMin float64 `toml:"grid_min" yaml:"grid_min"`
	GridMax float64 `toml:"grid_max" yaml:"grid_max"`
	GridN   int     `toml:"grid_n" yaml:"grid_n"`

	// Reference is a scalar redshift column histogrammed on the grid
	// for comparison, such as a spectroscopic or true redshift.
	Reference string `toml:"reference" yaml:"reference"`

	// Mode names a point-estimate column derived from the grid value at
	// the peak of each density, added before slicing.
	Mode string `toml:"mode" yaml:"mode"`

	// SliceColumn is the point-estimate column used to define
	// tomographic slices; defaults to Mode, then Reference.
	SliceColumn string `toml:"slice_column" yaml:"slice_column"`

	// Slices are the edges of tomographic slices in SliceColumn.
	Slices []float64 `toml:"slices" yaml:"slices"`
}

// Defaults returns a config with default settings.
func Defaults() *Config {
	return &Config{
		Source:   Source{Kind: CSV},
		LogLevel: "info",
		Density:  Density{GridMin: 0, GridMax: 3, GridN: 301},
	}
}

// Validate returns an error for the first invalid setting.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case CSV, SQLite:
	default:
		return fmt.Errorf("config: source kind %q must be %s or %s", c.Source.Kind, CSV, SQLite)
	}
	if c.Source.Repo == "" {
		return fmt.Errorf("config: source repo is required")
	}
	if len(c.Source.Tracts) == 0 {
		return fmt.Errorf("config: at least one source tract is required")
	}
	if _, err := logx.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.ReadFilters(); err != nil {
		return fmt.Errorf("config: filters: %w", err)
	}
	if _, err := cuts.ParseExprs(c.Cuts...); err != nil {
		return fmt.Errorf("config: cuts: %w", err)
	}
	for _, m := range c.Derive.Magnitude {
		if m.CalibMean < 0 {
			return fmt.Errorf("config: magnitude %q: calib_mean must be positive", m.Mag)
		}
	}
	d := c.Density
	if d.Column == "" {
		return nil
	}
	if d.GridN < 2 || d.GridMax <= d.GridMin {
		return fmt.Errorf("config: density grid needs grid_n >= 2 and grid_max > grid_min")
	}
	if len(d.Slices) == 1 {
		return fmt.Errorf("config: density slices need at least two edges")
	}
	for i := 1; i < len(d.Slices); i++ {
		if d.Slices[i] <= d.Slices[i-1] {
			return fmt.Errorf("config: density slices must be strictly increasing")
		}
	}
	if len(d.Slices) > 0 && d.SliceColumnName() == "" {
		return fmt.Errorf("config: density slices need a slice_column, mode or reference")
	}
	return nil
}

// Sources returns the partitions to read.
func (c *Config) Sources() []catalog.Source {
	return catalog.Partitions(c.Source.Repo, c.Source.Version, c.Source.Tracts, c.Source.Patches)
}

// ReadFilters returns the parsed reader filters.
func (c *Config) ReadFilters() ([]cuts.Expr, error) {
	return cuts.ParseExprs(c.Filters...)
}

// Selection returns the baseline and cuts as a [cuts.Cuts].
func (c *Config) Selection() (*cuts.Cuts, error) {
	exs, err := cuts.ParseExprs(c.Cuts...)
	if err != nil {
		return nil, err
	}
	return &cuts.Cuts{Baseline: c.Baseline, Predicates: cuts.Predicates(exs...)}, nil
}

// Apply adds the derived columns to dt, in the order SNR, magnitude,
// ellipticity. Columns already derived are left in place if an error
// is returned.
func (d *Derive) Apply(dt *table.Table) error {
	for _, s := range d.SNR {
		if err := derive.SNR(dt, s.Flux, s.Err, s.Out); err != nil {
			return err
		}
	}
	for _, m := range d.Magnitude {
		if err := derive.Magnitude(dt, m.Calibration(), m.Flux, m.Err, m.Mag, m.MagErr); err != nil {
			return err
		}
	}
	for _, e := range d.Ellipticity {
		if err := derive.Ellipticity(dt, e.E1, e.E2, e.Out); err != nil {
			return err
		}
	}
	return nil
}

// Calibration returns the photometric calibration of m.
func (m *Magnitude) Calibration() derive.Calibration {
	if m.CalibMean > 0 {
		return derive.PhotoCalib{Mean: m.CalibMean, Err: m.CalibErr}
	}
	zp := m.ZeroPoint
	if zp == 0 {
		zp = derive.ABZeroPoint
	}
	return derive.ZeroPoint(zp)
}

// Grid returns the configured linear grid.
func (d *Density) Grid() (pdz.Grid, error) {
	return pdz.Linspace(d.GridMin, d.GridMax, d.GridN)
}

// SliceColumnName returns the column defining tomographic slices.
func (d *Density) SliceColumnName() string {
	switch {
	case d.SliceColumn != "":
		return d.SliceColumn
	case d.Mode != "":
		return d.Mode
	}
	return d.Reference
}
