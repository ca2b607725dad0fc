// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// buildSummary accumulates counts across a render invocation's expanded
// themes, printed as a one-line colorized table at the end of the run —
// the `render summary` table named in the supplemented-features section,
// styled with termenv the way the teacher colorizes its own CLI output.
type buildSummary struct {
	profile               termenv.Profile
	themes, cursors, animations int
}

func newBuildSummary(profile termenv.Profile) *buildSummary {
	return &buildSummary{profile: profile}
}

func (s *buildSummary) print(w io.Writer) {
	label := termenv.String("themes rendered").Foreground(s.profile.Color("2")).String()
	fmt.Fprintf(w, "%s: %d (%d cursors, %d animations)\n", label, s.themes, s.cursors, s.animations)
}
