// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"strings"

	"rsc.io/orimig/lex"
)

const (
	separator  = ","
	terminator = ";"
)

// Counts reports what Normalize changed.
type Counts struct {
	Converted int // separators replaced by terminators
	Removed   int // result-expression separators deleted
}

// Normalize turns the comma-separated statements of a block body
// into terminated statements.
//
// In a multi-line body every line ending in a comma at bracket depth
// zero gets a terminator instead, except the last non-blank line,
// whose comma marks the block's result expression and is deleted.
// Other lines, and trailing whitespace, are kept exactly.
//
// A single-line body is split at its top-level commas and
// rejoined with "; ", dropping a trailing comma.
func Normalize(content string) (string, Counts) {
	if !strings.Contains(content, "\n") {
		return normalizeLine(content)
	}

	var c Counts
	lines := strings.Split(content, "\n")
	ok := statementEnds(content, len(lines))
	last := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = i
			break
		}
	}
	for i, line := range lines {
		code := strings.TrimRight(line, " \t\r")
		if !strings.HasSuffix(code, separator) || !ok[i] {
			continue
		}
		trail := line[len(code):]
		code = code[:len(code)-len(separator)]
		if i == last {
			lines[i] = code + trail
			c.Removed++
		} else {
			lines[i] = code + terminator + trail
			c.Converted++
		}
	}
	return strings.Join(lines, "\n"), c
}

// statementEnds reports, for each of the n lines of content, whether
// the line ends in plain code with every bracket on it and above it closed,
// so that a trailing separator there separates statements.
func statementEnds(content string, n int) []bool {
	ends := make([]bool, n)
	line, depth := 0, 0
	lastCtx := lex.Code
	s := lex.NewScanner(content, 0)
	for !s.Done() {
		tok, err := s.Next()
		if err != nil {
			return lineCounts(content, n)
		}
		if tok.Context != lex.Code {
			lastCtx = tok.Context
			for _, c := range []byte(tok.Text(content)) {
				if c == '\n' {
					ends[line] = false
					line++
				}
			}
			continue
		}
		switch c := content[tok.Start]; {
		case c == '\n':
			ends[line] = depth <= 0 && lastCtx == lex.Code
			line++
			lastCtx = lex.Code
		case lex.Any.Opens(c):
			depth++
			lastCtx = lex.Code
		case lex.Any.Closes(c):
			depth--
			lastCtx = lex.Code
		case !isSpace(c):
			lastCtx = lex.Code
		}
	}
	if line < n {
		ends[line] = depth <= 0 && lastCtx == lex.Code
	}
	return ends
}

// lineCounts is the fallback used when content cannot be scanned:
// a line qualifies when it opens no more brackets than it closes.
func lineCounts(content string, n int) []bool {
	ends := make([]bool, n)
	for i, line := range strings.SplitN(content, "\n", n) {
		opens := strings.Count(line, "(") + strings.Count(line, "[") + strings.Count(line, "{")
		closes := strings.Count(line, ")") + strings.Count(line, "]") + strings.Count(line, "}")
		ends[i] = opens <= closes
	}
	return ends
}

func normalizeLine(content string) (string, Counts) {
	var c Counts
	var parts []string
	depth, start := 0, 0
	s := lex.NewScanner(content, 0)
	for !s.Done() {
		tok, err := s.Next()
		if err != nil {
			return content, Counts{}
		}
		if tok.Context != lex.Code {
			continue
		}
		switch ch := content[tok.Start]; {
		case lex.Any.Opens(ch):
			depth++
		case lex.Any.Closes(ch):
			depth--
		case ch == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(content[start:tok.Start]))
			start = tok.End
		}
	}
	if parts == nil {
		return content, c
	}
	tail := strings.TrimSpace(content[start:])
	if tail == "" {
		c.Removed++
	} else {
		parts = append(parts, tail)
	}
	c.Converted = len(parts) - 1
	return strings.Join(parts, terminator+" "), c
}
