// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/cursorforge/cursorforge/internal/errorsx"
	"github.com/cursorforge/cursorforge/internal/render"
)

// NewRootCmd returns cursorforge's root command: a thin wrapper around
// `render`, mirroring the teacher's single-purpose CLI shape rather than
// its general-purpose multi-command framework, since cursorforge has
// exactly one operation.
func NewRootCmd(rasterizer render.Rasterizer) *cobra.Command {
	root := &cobra.Command{
		Use:           "cursorforge",
		Short:         "Generate cursor theme binaries from SVG sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	renderCmd := NewRenderCommand(rasterizer)
	wrapWatch(renderCmd, rasterizer)
	root.AddCommand(renderCmd)
	return root
}

// wrapWatch replaces renderCmd's RunE with one that, when --watch is set,
// re-invokes the render exactly as configured every time a source
// directory's files change, per spec §5's watch mode.
func wrapWatch(renderCmd *cobra.Command, rasterizer render.Rasterizer) {
	inner := renderCmd.RunE
	renderCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := inner(cmd, args); err != nil {
			return err
		}
		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			return nil
		}
		return watchAndRerun(cmd, args, inner)
	}
}

func watchAndRerun(cmd *cobra.Command, args []string, run func(*cobra.Command, []string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errorsx.New(errorsx.KindIO, "cli.watchAndRerun", err)
	}
	defer watcher.Close()

	sources, _ := cmd.Flags().GetStringArray("source")
	for _, dir := range sources {
		if err := watcher.Add(dir); err != nil {
			return errorsx.New(errorsx.KindIO, "cli.watchAndRerun", err)
		}
	}

	slog.Info("watching for source changes", "dirs", sources)

	var debounce *time.Timer
	const debounceDelay = 300 * time.Millisecond
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				if err := run(cmd, args); err != nil {
					slog.Error("watch re-render failed", "error", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}
