// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csvcat

import (
	"context"
	"math"
	"reflect"
	"testing"
	"testing/fstest"

	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/cuts"
	"cogentcore.org/skycat/pdz"
	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patchCSV = `|id,#mag,#snr,^blended
1,21.5,12,false
2,24.1,4,false
3,22.0,NaN,true
4,23.3,30,false
`

func TestPath(t *testing.T) {
	assert.Equal(t, "v1/3829/2,2.csv", Path(catalog.Source{Version: "v1", Tract: 3829, Patch: "2,2"}))
	assert.Equal(t, "v1/3829.csv", Path(catalog.Source{Version: "v1", Tract: 3829}))
	assert.Equal(t, "v1.csv", Path(catalog.Source{Version: "v1", Tract: -1, Patch: "2,2"}))
	assert.Equal(t, "v1/pdf_grid.csv", GridPath(catalog.Source{Version: "v1"}, "pdf"))
}

func TestReadFS(t *testing.T) {
	rd := &Reader{Delim: table.Comma, FS: fstest.MapFS{
		"v1/3829/2,2.csv": {Data: []byte(patchCSV)},
	}}
	src := catalog.Source{Version: "v1", Tract: 3829, Patch: "2,2"}
	dt, err := rd.Read(context.Background(), src, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, dt.NumRows())
	assert.Equal(t, []string{"id", "mag", "snr", "blended"}, dt.ColumnNames())
	assert.True(t, math.IsNaN(dt.Float("snr", 2)))

	dt, err = rd.Read(context.Background(), src, []string{"id", "mag"}, []cuts.Expr{cuts.Gt("snr", 5), cuts.Eq("blended", false)})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "mag"}, dt.ColumnNames())
	require.Equal(t, 2, dt.NumRows())
	assert.Equal(t, 1.0, dt.Float("id", 0))
	assert.Equal(t, 4.0, dt.Float("id", 1))

	_, err = rd.Read(context.Background(), src, []string{"nope"}, nil)
	assert.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestReadMissingPartition(t *testing.T) {
	rd := &Reader{Delim: table.Comma, FS: fstest.MapFS{
		"v1/3829/2,2.csv": {Data: []byte(patchCSV)},
		"v1/3830/0,0.csv": {Data: []byte("|id,#mag\n")},
	}}
	_, err := rd.Read(context.Background(), catalog.Source{Version: "v1", Tract: 9999, Patch: "0,0"}, nil, nil)
	assert.ErrorIs(t, err, catalog.ErrNoData)
	_, err = rd.Read(context.Background(), catalog.Source{Version: "v1", Tract: 3830, Patch: "0,0"}, nil, nil)
	assert.ErrorIs(t, err, catalog.ErrNoData)
}

func TestWriteRead(t *testing.T) {
	root := t.TempDir()
	src := catalog.Source{Repo: root, Version: "v2", Tract: 1}
	dt := table.NewTable()
	id, err := dt.AddIntColumn("id")
	require.NoError(t, err)
	pdf, err := dt.AddDensityColumn("pdf", 3)
	require.NoError(t, err)
	dt.SetNumRows(2)
	id.Values = []int{7, 8}
	copy(pdf.Values, []float64{0, 1, 0, 0.5, 0.5, 0})
	require.NoError(t, Write(root, src, dt))

	g, err := pdz.NewGrid(0.1, 0.2, 0.3)
	require.NoError(t, err)
	require.NoError(t, WriteGrid(root, src, "pdf", g))

	rd := New(root)
	s := catalog.NewSession(rd, nil)
	acc, err := s.ReadPartitions(context.Background(), catalog.Partitions(root, "v2", []int{1, 2}, nil), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, acc.NumRows())
	assert.Len(t, acc.Skipped, 1)
	assert.Equal(t, 0.5, acc.Table.FloatRow("pdf", 1, 1))

	rg, err := s.Grid(context.Background(), src, "pdf")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64(g), []float64(rg), 1e-12)
}

func TestReadWholeCatalog(t *testing.T) {
	rd := &Reader{Delim: table.Comma, FS: fstest.MapFS{
		"v1.csv": {Data: []byte(patchCSV)},
	}}
	dt, err := rd.Read(context.Background(), catalog.Source{Version: "v1", Tract: -1}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, dt.NumRows())
}

func TestReadPartitionsInferredTypes(t *testing.T) {
	rd := &Reader{Delim: table.Comma, FS: fstest.MapFS{
		"v/1.csv": {Data: []byte("id,flux\n1,10\n2,20\n")},
		"v/2.csv": {Data: []byte("id,flux\n3,1.5\n4,2.5\n")},
	}}
	s := catalog.NewSession(rd, nil)
	acc, err := s.ReadPartitions(context.Background(), catalog.Partitions("", "v", []int{1, 2}, nil), nil, []cuts.Expr{cuts.Gt("flux", 2)})
	require.NoError(t, err)
	assert.Empty(t, acc.Skipped)
	require.Equal(t, 3, acc.NumRows())
	flux := acc.Table.Column("flux")
	assert.Equal(t, reflect.Float64, flux.DataType())
	assert.Equal(t, []float64{10, 20, 2.5}, tensor.AsFloat64s(flux))
	assert.Equal(t, reflect.Int, acc.Table.Column("id").DataType())
}
