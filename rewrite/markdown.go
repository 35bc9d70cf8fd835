// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"regexp"
	"strings"

	"golang.org/x/xerrors"
	"rsc.io/orimig/lex"
)

var fenceRE = regexp.MustCompile("(?s)(```ori\n)(.*?)(```)")

// Fences returns the bodies of the ```ori fenced blocks in src.
func Fences(src string) []lex.Span {
	var spans []lex.Span
	for _, m := range fenceRE.FindAllStringSubmatchIndex(src, -1) {
		spans = append(spans, lex.Span{Start: m[4], End: m[5]})
	}
	return spans
}

// Markdown applies fn to the body of every ```ori fenced block in src,
// leaving the prose and other fences untouched.
// A *lex.Error from fn is adjusted to hold offsets into src.
func Markdown(src string, fn func(string) (string, error)) (string, error) {
	var out strings.Builder
	last := 0
	for _, body := range Fences(src) {
		repl, err := fn(body.Text(src))
		if err != nil {
			var e *lex.Error
			if xerrors.As(err, &e) {
				e.Open += body.Start
				e.Pos += body.Start
			}
			return "", err
		}
		out.WriteString(src[last:body.Start])
		out.WriteString(repl)
		last = body.End
	}
	if last == 0 {
		return src, nil
	}
	out.WriteString(src[last:])
	return out.String(), nil
}

// ContractMarkers are old-style contract clauses that have no
// mechanical translation and must be moved by hand.
var ContractMarkers = []string{"pre_check:", "post_check:"}

// A Flag is a line needing human attention.
type Flag struct {
	Line int    // 1-based
	Text string // the line, trimmed
}

// ContractFlags returns the lines of src containing a ContractMarker.
func ContractFlags(src string) []Flag {
	var flags []Flag
	for i, line := range strings.Split(src, "\n") {
		for _, m := range ContractMarkers {
			if strings.Contains(line, m) {
				flags = append(flags, Flag{Line: i + 1, Text: strings.TrimSpace(line)})
				break
			}
		}
	}
	return flags
}

// MarkdownFlags is like ContractFlags but looks only inside
// the ```ori fences of src. Lines are numbered within src.
func MarkdownFlags(src string) []Flag {
	var flags []Flag
	for _, body := range Fences(src) {
		first := lex.Line(src, body.Start)
		for _, f := range ContractFlags(body.Text(src)) {
			f.Line += first - 1
			flags = append(flags, f)
		}
	}
	return flags
}
