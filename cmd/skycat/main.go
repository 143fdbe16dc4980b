// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command skycat reads partitions of a sky survey object catalog,
// derives columns, applies selection cuts, and sums photometric
// redshift densities of the selected objects.
package main

import (
	"io"
	"log/slog"
	"os"

	"cogentcore.org/skycat/base/logx"
	"cogentcore.org/skycat/catalog"
	"cogentcore.org/skycat/catalog/csvcat"
	"cogentcore.org/skycat/catalog/sqlcat"
	"cogentcore.org/skycat/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by all commands.
type app struct {
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "skycat",
		Short:             "Select and summarize sky survey object catalogs",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "skycat.toml", "config file, TOML or YAML")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error; overrides the config")
	root.AddCommand(a.selectCmd(), a.nzCmd(), a.describeCmd())
	return root
}

// setup opens the config and sets up logging to stderr.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Open(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := logx.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logx.NewLogger(cmd.ErrOrStderr())
	return nil
}

// session opens the configured catalog reader. The returned function
// closes it.
func (a *app) session() (*catalog.Session, func() error, error) {
	var rd catalog.Reader
	closer := func() error { return nil }
	switch a.cfg.Source.Kind {
	case config.SQLite:
		sr, err := sqlcat.Open(a.cfg.Source.Repo)
		if err != nil {
			return nil, nil, err
		}
		rd, closer = sr, sr.Close
	default:
		rd = csvcat.New(a.cfg.Source.Repo)
	}
	s := catalog.NewSession(rd, a.logger)
	s.Logger.Debug("opened catalog", "kind", a.cfg.Source.Kind, "repo", a.cfg.Source.Repo)
	return s, closer, nil
}
