// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errorsx provides small error-handling helpers layered on top of
// log/slog, extending the standard library errors package the way
// cursorforge's components want to report and recover from per-file
// failures without propagating a panic.
package errorsx

import (
	"context"
	"errors"
	"log/slog"
)

// Log logs err at error level if it is non-nil and returns it unchanged.
// Typical usage wraps a recoverable per-file operation:
//
//	errorsx.Log(ctx, "render svg", "file", path, renderOne(path))
func Log(ctx context.Context, msg string, args ...any) error {
	// the last variadic argument, if an error, is extracted and logged;
	// this mirrors errors.Log's "wrap the call" ergonomics while still
	// allowing structured slog fields.
	if len(args) == 0 {
		return nil
	}
	err, ok := args[len(args)-1].(error)
	if !ok || err == nil {
		return nil
	}
	fields := args[:len(args)-1]
	fields = append(fields, "error", err)
	slog.ErrorContext(ctx, msg, fields...)
	return err
}

// Warn logs err at warn level (used for recoverable per-file skips, per
// spec's §7 recovery policy) and returns it unchanged.
func Warn(ctx context.Context, msg string, args ...any) error {
	if len(args) == 0 {
		return nil
	}
	err, ok := args[len(args)-1].(error)
	if !ok || err == nil {
		return nil
	}
	fields := args[:len(args)-1]
	fields = append(fields, "error", err)
	slog.WarnContext(ctx, msg, fields...)
	return err
}

// Kind identifies the category of error a cursorforge operation failed
// with, per spec §7.
type Kind int

const (
	// KindArg is a malformed CLI invocation.
	KindArg Kind = iota
	// KindConfig is malformed JSON, a blank theme name, or an unknown palette.
	KindConfig
	// KindSVG is malformed XML or a missing viewBox/width/height.
	KindSVG
	// KindAlignment is a numeric overflow or unparseable bias.
	KindAlignment
	// KindDataFormat is a malformed binary container on read.
	KindDataFormat
	// KindIO is a filesystem failure.
	KindIO
	// KindUnsupported is a recognized-but-unhandled feature.
	KindUnsupported
)

// String returns the name of k.
func (k Kind) String() string {
	switch k {
	case KindArg:
		return "ArgError"
	case KindConfig:
		return "ConfigError"
	case KindSVG:
		return "SVGError"
	case KindAlignment:
		return "AlignmentError"
	case KindDataFormat:
		return "DataFormat"
	case KindIO:
		return "IOError"
	case KindUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Error is a cursorforge error tagged with its Kind, so the CLI layer can
// map it to an exit code and the theme driver can decide whether it is
// recoverable per-file or fatal per-theme.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return e.Kind.String() + ": " + e.Op + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a Kind-tagged Error.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// ExitCode maps a Kind to the process exit code documented in spec §6.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindArg:
			return 1
		case KindConfig:
			return 2
		case KindIO:
			return 3
		default:
			return 4
		}
	}
	return 4
}
