// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"golang.org/x/xerrors"
	"rsc.io/orimig/lex"
	"rsc.io/orimig/refactor"
)

// A summary tallies what one command did across all files.
type summary struct {
	cmd     string
	changed int
	same    int
	failed  int
	counts  []count
	notes   []string // per-file detail, printed with -v
	flags   []string // lines the user must fix by hand
	flagMsg string
}

type count struct {
	name string
	n    int
}

func newSummary(cmd string) *summary {
	return &summary{cmd: cmd}
}

func (s *summary) add(name string, n int) {
	for i := range s.counts {
		if s.counts[i].name == name {
			s.counts[i].n += n
			return
		}
	}
	s.counts = append(s.counts, count{name, n})
}

func (s *summary) note(format string, args ...interface{}) {
	s.notes = append(s.notes, fmt.Sprintf(format, args...))
}

// fail records that the named file could not be processed and was left
// alone. If src is set, the error's offset is reported as a line of src.
func (s *summary) fail(snap *refactor.Snapshot, name, src string, err error) {
	s.failed++
	line := 0
	var e *lex.Error
	if src != "" && xerrors.As(err, &e) {
		line = lex.Line(src, e.Open)
	}
	snap.ErrorAt(name, line, "%v (file left unchanged)", err)
}

func (s *summary) print(w io.Writer, verbose bool) {
	if verbose {
		for _, n := range s.notes {
			fmt.Fprintf(w, "%s\n", n)
		}
	}
	fmt.Fprintf(w, "%s: %d changed, %d unchanged, %d failed\n", s.cmd, s.changed, s.same, s.failed)
	for _, c := range s.counts {
		if c.n > 0 {
			fmt.Fprintf(w, "\t%s: %d\n", c.name, c.n)
		}
	}
	if len(s.flags) > 0 {
		fmt.Fprintf(w, "%s (%d):\n", s.flagMsg, len(s.flags))
		for _, f := range s.flags {
			fmt.Fprintf(w, "\t%s\n", f)
		}
	}
}
