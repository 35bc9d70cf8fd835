// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"rsc.io/orimig/refactor"
	"rsc.io/orimig/semi"
)

// cmdSemis terminates the expression-bodied declarations in .ori files.
func cmdSemis(snap *refactor.Snapshot, args string) (*summary, error) {
	if strings.TrimSpace(args) != "" {
		return nil, newErrUsage("semis")
	}
	return insertAll(snap, "semis", ".ori", semi.Insert)
}

// cmdStrings terminates the declarations inside string literals
// of .rs files, such as the test fixtures of the compiler.
func cmdStrings(snap *refactor.Snapshot, args string) (*summary, error) {
	if strings.TrimSpace(args) != "" {
		return nil, newErrUsage("strings")
	}
	return insertAll(snap, "strings", ".rs", semi.FixEmbedded)
}

func insertAll(snap *refactor.Snapshot, cmd, ext string, fix func(string) (string, int, error)) (*summary, error) {
	sum := newSummary(cmd)
	total := 0
	for _, name := range snap.Files(ext) {
		src := snap.Text(name)
		out, n, err := fix(src)
		if err != nil {
			sum.fail(snap, name, src, err)
			continue
		}
		if n == 0 {
			sum.same++
			continue
		}
		snap.Replace(name, out)
		sum.changed++
		total += n
		sum.note("%s: %d terminators", name, n)
	}
	sum.add("terminators added", total)
	return sum, nil
}
