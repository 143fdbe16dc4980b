// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the user-facing log level and
// a [slog.Logger] constructor used by command-line tools.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through the -log-level command line flag. The default is
// [slog.LevelInfo], or [slog.LevelDebug] under the debug build tag,
// or [slog.LevelWarn] under the release build tag.
var UserLevel = defaultUserLevel

// ParseLevel returns the [slog.Level] for the given name,
// which is one of debug, info, warn, or error (case insensitive).
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logx.ParseLevel: unknown log level %q", name)
}

// SetLevel sets [UserLevel] from the given level name.
func SetLevel(name string) error {
	lv, err := ParseLevel(name)
	if err != nil {
		return err
	}
	UserLevel = lv
	return nil
}

// NewLogger returns a new text [slog.Logger] writing to w
// that shows messages at or above [UserLevel].
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel}))
}

// SetDefault sets the [slog] default logger to one from [NewLogger].
func SetDefault(w io.Writer) *slog.Logger {
	lg := NewLogger(w)
	slog.SetDefault(lg)
	return lg
}
