// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cursorforge renders a cursor theme's SVG sources into
// platform-specific binary cursor formats.
package main

import (
	"fmt"
	"os"

	"github.com/cursorforge/cursorforge/internal/cli"
	"github.com/cursorforge/cursorforge/internal/errorsx"
)

func main() {
	root := cli.NewRootCmd(nil)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cursorforge:", err)
		os.Exit(errorsx.ExitCode(err))
	}
}
