// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"rsc.io/orimig/refactor"
	"rsc.io/orimig/rewrite"
)

// cmdBlocks rewrites call-style blocks into brace blocks in .ori files
// and in the ```ori fences of .md files.
func cmdBlocks(snap *refactor.Snapshot, args string) (*summary, error) {
	exts := []string{".ori", ".md"}
	switch strings.TrimSpace(args) {
	case "":
	case "ori":
		exts = []string{".ori"}
	case "md":
		exts = []string{".md"}
	default:
		return nil, newErrUsage("blocks [md|ori]")
	}

	rw := rewrite.New()
	sum := newSummary("blocks")
	sum.flagMsg = "contract clauses to move to pre()/post() by hand"
	var total rewrite.Stats
	for _, name := range snap.Files(exts...) {
		src := snap.Text(name)
		var st rewrite.Stats
		fix := func(code string) (string, error) {
			return rw.Rewrite(code, &st)
		}
		flags := rewrite.ContractFlags
		if filepath.Ext(name) == ".md" {
			fix = func(code string) (string, error) {
				return rewrite.Markdown(code, func(body string) (string, error) {
					return rw.Rewrite(body, &st)
				})
			}
			flags = rewrite.MarkdownFlags
		}
		out, err := fix(src)
		if err != nil {
			sum.fail(snap, name, src, err)
			continue
		}

		for _, f := range flags(out) {
			sum.flags = append(sum.flags, fmt.Sprintf("%s:%d: %s", name, f.Line, f.Text))
		}
		if out == src {
			sum.same++
			continue
		}
		snap.Replace(name, out)
		sum.changed++
		total.Add(&st)

		var b strings.Builder
		for _, rule := range st.Names() {
			fmt.Fprintf(&b, " %s=%d", rule, st.Rules[rule])
		}
		sum.note("%s:%s", name, b.String())
	}

	for _, r := range rw.Rules {
		sum.add(r.Name, total.Rules[r.Name])
	}
	sum.add("separators converted", total.Converted)
	sum.add("separators removed", total.Removed)
	return sum, nil
}
