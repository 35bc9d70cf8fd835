// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"strings"

	"rsc.io/orimig/extract"
	"rsc.io/orimig/refactor"
)

// cmdTests moves inline test modules of .rs files into tests.rs files.
func cmdTests(snap *refactor.Snapshot, args string) (*summary, error) {
	if strings.TrimSpace(args) != "" {
		return nil, newErrUsage("tests")
	}
	sum := newSummary("tests")
	moved := 0
	for _, name := range snap.Files(".rs") {
		if filepath.Base(name) == "tests.rs" {
			continue
		}
		src := snap.Text(name)
		res, err := extract.Unit(src, name, snap.Exists)
		if err != nil {
			sum.fail(snap, name, src, err)
			continue
		}
		if res.Status != extract.Extracted {
			sum.same++
			if res.Status != extract.NoUnit {
				sum.note("%s: %v", name, res.Status)
			}
			continue
		}
		if err := snap.Create(res.Dest, res.Content); err != nil {
			sum.fail(snap, name, "", err)
			continue
		}
		snap.Replace(name, res.NewSource)
		sum.changed++

		n := res.EndLine - res.StartLine + 1
		moved += n
		sum.note("%s -> %s: lines %d-%d (%d lines, %d%% of file)",
			name, res.Dest, res.StartLine, res.EndLine, n, n*100/res.TotalLines)
	}
	sum.add("lines moved", moved)
	return sum, nil
}
