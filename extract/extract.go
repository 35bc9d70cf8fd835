// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package extract moves an inline test module
//
//	#[cfg(test)]
//	mod tests {
//	    ...
//	}
//
// out of a source file into a file of its own, leaving
//
//	#[cfg(test)]
//	mod tests;
//
// in its place. For foo.rs the module moves to foo/tests.rs;
// for mod.rs, lib.rs and main.rs it moves to tests.rs beside them.
package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/xerrors"
	"rsc.io/orimig/lex"
)

var (
	inlineRE = regexp.MustCompile(`(?m)^(#\[cfg\(test\)\]\s*\n(?:#\[(?:allow|deny|warn|expect)\([^\]]*\)\]\s*\n)*)mod\s+tests\s*\{`)
	externRE = regexp.MustCompile(`#\[cfg\(test\)\]\s*\n\s*mod\s+tests\s*;`)
)

// Indent is the indentation removed from each line of the moved module.
const Indent = "    "

// A Status says what Unit did.
type Status int

const (
	Extracted         Status = iota
	NoUnit                   // no inline test module
	AlreadyExtracted         // the module is already a forward declaration
	DestinationExists        // the destination file exists
)

func (s Status) String() string {
	switch s {
	case Extracted:
		return "extracted"
	case NoUnit:
		return "no test module"
	case AlreadyExtracted:
		return "already extracted"
	case DestinationExists:
		return "destination exists"
	}
	return "Status(?)"
}

// A Result describes one extraction. Unless Status is Extracted,
// only Source, Dest and Status are set and NewSource is the
// unchanged source text.
type Result struct {
	Status    Status
	Source    string // path of the source file
	Dest      string // path of the file receiving the module
	NewSource string // source with the module replaced by a declaration
	Content   string // text of the destination file

	// Lines of the source spanned by the module, 1-based and inclusive,
	// and the number of lines in the whole source.
	StartLine, EndLine, TotalLines int
}

// Dest returns the file that the test module of the source file
// at path moves to.
func Dest(path string) string {
	dir, base := filepath.Split(path)
	switch base {
	case "mod.rs", "lib.rs", "main.rs":
		return filepath.Join(dir, "tests.rs")
	}
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base)), "tests.rs")
}

// Unit extracts the inline test module from src, the text of the file
// at path. The exists function reports whether a file is already present.
// Skipped files are reported through Result.Status; the only errors
// are scanning failures, which leave the file alone.
func Unit(src, path string, exists func(string) bool) (*Result, error) {
	r := &Result{
		Status:    NoUnit,
		Source:    path,
		Dest:      Dest(path),
		NewSource: src,
	}
	if externRE.MatchString(src) {
		r.Status = AlreadyExtracted
		return r, nil
	}
	m, err := find(src)
	if err != nil || m == nil {
		return r, err
	}
	if exists(r.Dest) {
		r.Status = DestinationExists
		return r, nil
	}

	open := m[1] - 1
	inner, close, err := lex.Extract(src, open, lex.Brace)
	if err != nil {
		return nil, xerrors.Errorf("%s:%d: test module: %w", path, lex.Line(src, m[0]), err)
	}

	r.Status = Extracted
	r.StartLine = lex.Line(src, m[0])
	r.EndLine = lex.Line(src, close)
	r.TotalLines = strings.Count(src, "\n") + 1
	r.Content = strings.TrimRight(dedent(strings.Trim(inner, "\n")), "\n") + "\n"

	attrs := strings.TrimRightFunc(src[m[2]:m[3]], isSpace)
	decl := attrs + "\nmod tests;\n"

	before := strings.TrimRight(src[:m[0]], "\n")
	if before != "" {
		before += "\n\n"
	}
	after := strings.TrimLeft(src[close+1:], "\n")
	if after != "" {
		after = "\n" + after
	}
	r.NewSource = before + decl + after
	if !strings.HasSuffix(r.NewSource, "\n") {
		r.NewSource += "\n"
	}
	return r, nil
}

// find returns the submatch indexes of the first test module
// whose attribute starts in plain code, or nil.
func find(src string) ([]int, error) {
	all := inlineRE.FindAllStringSubmatchIndex(src, -1)
	if all == nil {
		return nil, nil
	}
	ctxs, err := lex.LineContexts(src)
	if err != nil {
		return nil, err
	}
	for _, m := range all {
		if ctxs[lex.Line(src, m[0])-1] == lex.Code {
			return m, nil
		}
	}
	return nil, nil
}

// dedent removes one Indent from every line that has it.
// Blank lines become empty and other lines are kept.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, Indent):
			lines[i] = line[len(Indent):]
		case strings.TrimSpace(line) == "":
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
