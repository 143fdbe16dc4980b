// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"cogentcore.org/skycat/base/errors"
	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/tensor/table"
	"github.com/spf13/cobra"
)

func (a *app) selectCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Read, derive and apply cuts, reporting rows passing each stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closer, err := a.session()
			if err != nil {
				return err
			}
			defer closer()
			an, err := a.analyze(cmd.Context(), s)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "partitions: %d read, %d skipped\n", len(an.acc.Read), len(an.acc.Skipped))
			fmt.Fprint(w, an.report.String())
			if output == "" {
				output = a.cfg.Output
			}
			if output == "" {
				return nil
			}
			if err := an.selected.SaveCSV(output, table.Comma, table.Headers); err != nil {
				return err
			}
			s.Logger.Info("wrote selection", "file", output, "rows", an.selected.NumRows())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV file for the selected rows; overrides the config")
	return cmd
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "List the columns of the first partition with data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closer, err := a.session()
			if err != nil {
				return err
			}
			defer closer()
			for _, src := range a.cfg.Sources() {
				dt, err := s.Read(cmd.Context(), src, a.cfg.Columns, nil)
				if errors.Is(err, catalog.ErrNoData) {
					s.Logger.Warn("skipping partition", "source", src.String(), "err", err)
					continue
				}
				if err != nil {
					return err
				}
				return describe(cmd.OutOrStdout(), src, dt)
			}
			return fmt.Errorf("no data in any of %d partitions: %w", len(a.cfg.Sources()), catalog.ErrNoData)
		},
	}
}

// describe writes the name, kind and cell size of each column of dt.
func describe(w io.Writer, src catalog.Source, dt *table.Table) error {
	fmt.Fprintf(w, "%s: %d rows\n", src, dt.NumRows())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tkind\tcells")
	for i, tsr := range dt.Columns.Values {
		_, cells := tsr.RowCellSize()
		fmt.Fprintf(tw, "%s\t%v\t%d\n", dt.ColumnName(i), tsr.DataType(), cells)
	}
	return tw.Flush()
}
