// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuts

import (
	"math"
	"math/rand"
	"testing"

	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func galaxies(t *testing.T) *table.Table {
	dt := table.NewTable("galaxies")
	require.NoError(t, dt.AddColumn("id", tensor.NewIntFromValues(0, 1, 2, 3, 4, 5)))
	require.NoError(t, dt.AddColumn("snr", tensor.NewFloat64FromValues(12, 3, math.NaN(), 50, 8, 6)))
	require.NoError(t, dt.AddColumn("blendedness", tensor.NewFloat64FromValues(0.1, 0.05, 0.2, 0.5, 0.3, 0.01)))
	require.NoError(t, dt.AddColumn("deblend_skipped", tensor.NewBoolFromValues(false, false, false, true, false, false)))
	return dt
}

func ids(t *testing.T, dt *table.Table) []int {
	return dt.Column("id").(*tensor.Int).Values
}

func TestSelect(t *testing.T) {
	dt := galaxies(t)
	m, err := Select(dt, Gt("snr", 5), Eq("deblend_skipped", false), Le("blendedness", 0.2))
	require.NoError(t, err)
	assert.Equal(t, table.Mask{true, false, false, false, false, true}, m)

	ft, err := table.Filter(dt, m)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5}, ids(t, ft))
}

func TestSelectEmptyIsIdentity(t *testing.T) {
	dt := galaxies(t)
	m, err := Select(dt)
	require.NoError(t, err)
	assert.Equal(t, 6, m.Count())
	ft, err := table.Filter(dt, m)
	require.NoError(t, err)
	assert.Equal(t, ids(t, dt), ids(t, ft))
	assert.Equal(t, dt.ColumnNames(), ft.ColumnNames())
}

func TestSelectOrderIndependent(t *testing.T) {
	dt := galaxies(t)
	preds := []Predicate{Gt("snr", 5), Eq("deblend_skipped", false), Lt("blendedness", 0.4), Ne("id", 4)}
	want, err := Select(dt, preds...)
	require.NoError(t, err)
	rnd := rand.New(rand.NewSource(1))
	for range 10 {
		rnd.Shuffle(len(preds), func(i, j int) { preds[i], preds[j] = preds[j], preds[i] })
		got, err := Select(dt, preds...)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSelectSoundAndComplete(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	n := 200
	dt := table.NewTable()
	a := tensor.NewFloat64(n)
	b := tensor.NewFloat64(n)
	for i := range n {
		a.Values[i] = rnd.Float64()
		b.Values[i] = rnd.NormFloat64()
	}
	require.NoError(t, dt.AddColumn("a", a))
	require.NoError(t, dt.AddColumn("b", b))
	require.NoError(t, dt.AddColumn("row", tensor.NewIntFromValues(rangeInts(n)...)))

	exs := []Expr{Gt("a", 0.3), Le("b", 0.5), Ge("b", -1)}
	m, err := Select(dt, Predicates(exs...)...)
	require.NoError(t, err)
	ft, err := table.Filter(dt, m)
	require.NoError(t, err)

	rows := ft.Column("row").(*tensor.Int).Values
	kept := map[int]bool{}
	for i, r := range rows {
		kept[r] = true
		if i > 0 {
			assert.Less(t, rows[i-1], r, "row order must be preserved")
		}
	}
	for r := range n {
		all := true
		for _, ex := range exs {
			all = all && ex.Match(dt.Float(ex.Column, r))
		}
		assert.Equal(t, all, kept[r], "row %d", r)
	}
}

func TestSelectErrors(t *testing.T) {
	dt := galaxies(t)
	_, err := Select(dt, Gt("snr", 5), Gt("psf_snr", 5))
	assert.ErrorIs(t, err, table.ErrMissingColumn)
	assert.Contains(t, err.Error(), "psf_snr")

	_, err = dt.AddDensityColumn("pdf", 3)
	require.NoError(t, err)
	_, err = Select(dt, Gt("pdf", 0))
	assert.ErrorIs(t, err, table.ErrMisaligned)
}

func TestBaseline(t *testing.T) {
	dt := table.NewTable()
	require.NoError(t, dt.AddColumn("flux", tensor.NewFloat64FromValues(1, math.NaN(), 3)))
	require.NoError(t, dt.AddColumn("flag", tensor.NewBoolFromValues(true, false, true)))
	m, err := Baseline(dt)
	require.NoError(t, err)
	assert.Equal(t, table.Mask{true, false, true}, m)

	ft, err := table.Filter(dt, m)
	require.NoError(t, err)
	assert.Equal(t, 2, ft.NumRows())
	assert.Equal(t, []float64{1, 3}, ft.Column("flux").(*tensor.Float64).Values)
	assert.Equal(t, []bool{true, true}, ft.Column("flag").(*tensor.Bool).Values)

	pdf, err := dt.AddDensityColumn("pdf", 2)
	require.NoError(t, err)
	pdf.Values[1] = math.NaN() // row 0, cell 1
	m, err = Baseline(dt, "pdf")
	require.NoError(t, err)
	assert.Equal(t, table.Mask{false, true, true}, m)

	_, err = Baseline(dt, "nope")
	assert.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestNaNNeverSelectedImplicitly(t *testing.T) {
	dt := galaxies(t)
	gt, err := Select(dt, Gt("snr", 0))
	require.NoError(t, err)
	le, err := Select(dt, Le("snr", 0))
	require.NoError(t, err)
	assert.False(t, gt[2])
	assert.False(t, le[2])
}

func TestCutsApply(t *testing.T) {
	dt := galaxies(t)
	c := &Cuts{
		Baseline:   []string{"snr", "blendedness"},
		Predicates: []Predicate{Gt("snr", 5), Eq("deblend_skipped", false)},
	}
	ft, rp, err := c.Apply(dt)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 5}, ids(t, ft))
	assert.Equal(t, 6, rp.Rows)
	assert.Equal(t, 5, rp.Baseline)
	assert.Equal(t, []Count{{"snr > 5", 4}, {"deblend_skipped == false", 5}}, rp.Predicates)
	assert.Equal(t, 3, rp.Selected)
	assert.Contains(t, rp.String(), "selected: 3")
	assert.Equal(t, 6, dt.NumRows())

	bad := &Cuts{Predicates: []Predicate{Eq("missing", true)}}
	_, _, err = bad.Apply(dt)
	assert.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestBetweenAndFunc(t *testing.T) {
	dt := galaxies(t)
	m, err := Select(dt, Between("blendedness", 0.05, 0.2))
	require.NoError(t, err)
	assert.Equal(t, table.Mask{true, false, true, false, false, false}, m)
	assert.Equal(t, "0.05 < blendedness <= 0.2", Between("blendedness", 0.05, 0.2).String())

	even := Func("even", func(dt *table.Table, row int) bool { return row%2 == 0 })
	m, err = Select(dt, even)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Count())
}

func TestParseExpr(t *testing.T) {
	ex, err := ParseExpr("deblend_skipped == False")
	require.NoError(t, err)
	assert.Equal(t, Eq("deblend_skipped", false), ex)
	assert.Equal(t, "deblend_skipped == false", ex.String())

	ex, err = ParseExpr("  snr_i>=5.5 ")
	require.NoError(t, err)
	assert.Equal(t, Ge("snr_i", 5.5), ex)

	ex, err = ParseExpr("mag_i < 25")
	require.NoError(t, err)
	assert.Equal(t, "mag_i < 25", ex.String())

	for _, bad := range []string{"snr", "snr > x", "flag > true", "5 > snr"} {
		_, err := ParseExpr(bad)
		assert.Error(t, err, bad)
	}

	exs, err := ParseExprs("a > 1", "b == true")
	require.NoError(t, err)
	assert.Len(t, exs, 2)
	_, err = ParseExprs("a > 1", "b ~ 2")
	assert.Error(t, err)
}

func TestOps(t *testing.T) {
	nan := math.NaN()
	assert.True(t, NotEqual.Compare(nan, 1))
	assert.False(t, Equal.Compare(nan, nan))
	assert.True(t, LessEqual.Compare(1, 1))
	assert.False(t, Ops("~").Compare(1, 1))
	assert.False(t, Ops("~").IsValid())
	assert.True(t, Greater.IsValid())
	assert.Panics(t, func() { Eq("x", "string") })
}

func rangeInts(n int) []int {
	v := make([]int, n)
	for i := range v {
		v[i] = i
	}
	return v
}
