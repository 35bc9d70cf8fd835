// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package semi adds the terminator that expression-bodied
// declarations now require:
//
//	@double (x: int) -> int = x * 2
//	type Id = int
//
// become
//
//	@double (x: int) -> int = x * 2;
//	type Id = int;
//
// Declarations whose body is a block are left alone. A body may
// continue over several lines, through open brackets, trailing
// operators, or a next line starting with a method call or pipe;
// the terminator goes at the end of the last line of the body.
package semi

import (
	"regexp"
	"strings"

	"rsc.io/orimig/lex"
)

// Prefixes match the start of a declaration line, after indentation.
var Prefixes = []*regexp.Regexp{
	regexp.MustCompile(`^(pub\s+)?@\w+`),
	regexp.MustCompile(`^(pub\s+)?type\s+\w`),
	regexp.MustCompile(`^(pub\s+)?let\s+\$`),
	regexp.MustCompile(`^(pub\s+)?\$\w+\s*=`),
}

// ContinuationEndings mark a line whose expression continues on the
// next line. A leading space means the token must stand alone.
var ContinuationEndings = []string{
	" yield", " then", " else", " do", " in", " ->", " =",
	" +", " -", " *", " /", " %", " &&", " ||", " |>", " ==", " !=",
	" <", " >", " <=", " >=", " <<", " >>", " &", " |", " ^",
	" and", " or", ",", "(",
}

// ContinuationStarts mark a line that continues the expression
// on the line before it. Word tokens must stand alone.
var ContinuationStarts = []string{".", "|>", "else"}

// Insert adds missing terminators to the expression-bodied
// declarations in src and returns the new text with the number added.
// It fails only if src cannot be scanned.
func Insert(src string) (string, int, error) {
	f, err := newFile(src)
	if err != nil {
		return "", 0, err
	}
	n := 0
	for i := 0; i < len(f.lines); i++ {
		if f.start[i] != lex.Code {
			continue
		}
		line := f.text(i)
		if !isDecl(strings.TrimLeft(line, " \t")) {
			continue
		}
		start := f.lines[i].Start
		code := f.code(i)
		sep := f.separator(start, start+len(code))
		if sep < 0 {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(src[sep+1:start+len(code)]), "{") {
			continue
		}
		end, depth := f.walk(i, f.depth(sep+1, start+len(code)))
		if depth == 0 && f.terminate(end) {
			n++
		}
		i = end
	}
	if n == 0 {
		return src, 0, nil
	}
	return f.String(), n, nil
}

func isDecl(s string) bool {
	for _, re := range Prefixes {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// A file is src split into lines, with the lexical context of every byte.
type file struct {
	src   string
	lines []lex.Span    // without the newline
	start []lex.Context // context owning the first byte of each line
	ctx   []lex.Context // context of each byte
	edits map[int]int   // line -> offset within the line to insert at
}

func newFile(src string) (*file, error) {
	f := &file{
		src:   src,
		ctx:   make([]lex.Context, len(src)+1),
		edits: make(map[int]int),
	}
	var err error
	s := lex.NewScanner(src, 0)
	for !s.Done() {
		var tok lex.Token
		tok, err = s.Next()
		if err != nil {
			return nil, err
		}
		for k := tok.Start; k < tok.End; k++ {
			f.ctx[k] = tok.Context
		}
	}
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			f.lines = append(f.lines, lex.Span{Start: start, End: i})
			start = i + 1
		}
	}
	f.lines = append(f.lines, lex.Span{Start: start, End: len(src)})
	f.start, err = lex.LineContexts(src)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *file) text(i int) string { return f.lines[i].Text(f.src) }

// code returns line i up to any line comment, without trailing space.
func (f *file) code(i int) string {
	l := f.lines[i]
	end := l.End
	for k := l.Start; k < l.End; k++ {
		if f.ctx[k] == lex.LineComment {
			end = k
			break
		}
	}
	return strings.TrimRight(f.src[l.Start:end], " \t\r")
}

func (f *file) isCode(k int) bool { return f.ctx[k] == lex.Code }

// depth returns the net number of brackets opened in src[lo:hi].
func (f *file) depth(lo, hi int) int {
	d := 0
	for k := lo; k < hi; k++ {
		if !f.isCode(k) {
			continue
		}
		switch c := f.src[k]; {
		case lex.Any.Opens(c):
			d++
		case lex.Any.Closes(c):
			d--
		}
	}
	return d
}

const opChars = "=<>!-+*/%&|^:?~."

// operators are the multi-character operators a run of opChars may begin with.
var operators = []string{
	"==", "!=", "<=", ">=", "=>", "->", "<<", ">>", "&&", "||", "|>", "::", "..",
}

// isSeparator reports whether the operator run begins with a lone '=',
// as in "= x", "=-1" or "=!ok", rather than with an operator like "==".
func isSeparator(run string) bool {
	if run[0] != '=' {
		return false
	}
	for _, op := range operators {
		if strings.HasPrefix(run, op) {
			return false
		}
	}
	return true
}

// separator returns the offset of the '=' introducing the body of the
// declaration in src[lo:hi], or -1. It scans from the end, skipping
// bracketed text and whole operator runs such as "==" and "<=".
// A run beginning with a lone '=' is the separator followed by a
// prefix operator.
func (f *file) separator(lo, hi int) int {
	depth := 0
	for k := hi - 1; k >= lo; k-- {
		if !f.isCode(k) {
			continue
		}
		c := f.src[k]
		switch {
		case lex.Any.Closes(c):
			depth++
		case lex.Any.Opens(c):
			if depth > 0 {
				depth--
			}
		case strings.IndexByte(opChars, c) >= 0:
			j := k
			for j > lo && f.isCode(j-1) && strings.IndexByte(opChars, f.src[j-1]) >= 0 {
				j--
			}
			if depth == 0 && isSeparator(f.src[j:k+1]) {
				if f.depth(lo, j) != 0 {
					// Inside a parameter list that continues on the next line.
					return -1
				}
				return j
			}
			k = j
		}
	}
	return -1
}

// walk follows the body that starts on line i with the given bracket
// depth, returning the last line of the body and the depth there.
// Bracket depth decides first; continuation tokens only matter at
// depth zero.
func (f *file) walk(i, depth int) (end, finalDepth int) {
	end = i
	for {
		more := depth > 0 ||
			end+1 < len(f.lines) && f.start[end+1] != lex.Code ||
			depth == 0 && (f.continues(end) || f.continued(end))
		if !more {
			return end, depth
		}
		next := f.nextLine(end)
		if next < 0 {
			return end, depth
		}
		l := f.lines[next]
		d := f.depth(l.Start, l.End)
		if depth+d < 0 {
			// The line closes an enclosing block.
			return end, depth
		}
		end, depth = next, depth+d
	}
}

// continues reports whether line i ends in a continuation token.
func (f *file) continues(i int) bool {
	code := " " + strings.TrimSpace(f.code(i))
	for _, tok := range ContinuationEndings {
		if strings.HasSuffix(code, tok) {
			return true
		}
	}
	return false
}

// continued reports whether the line after i starts with a continuation token.
func (f *file) continued(i int) bool {
	next := f.nextLine(i)
	if next < 0 || f.start[next] != lex.Code {
		return false
	}
	text := strings.TrimSpace(f.text(next))
	for _, tok := range ContinuationStarts {
		if !strings.HasPrefix(text, tok) {
			continue
		}
		if lex.IsIdent(tok[0]) && len(text) > len(tok) && lex.IsIdent(text[len(tok)]) {
			continue
		}
		return true
	}
	return false
}

// nextLine returns the first line after i that is neither blank
// nor only a comment, or -1.
func (f *file) nextLine(i int) int {
	for j := i + 1; j < len(f.lines); j++ {
		if f.start[j] == lex.Code && strings.TrimSpace(f.code(j)) == "" {
			continue
		}
		return j
	}
	return -1
}

// terminate records a terminator at the end of line i's code
// unless the line already ends in a way that needs none.
func (f *file) terminate(i int) bool {
	code := f.code(i)
	if code == "" {
		return false
	}
	switch code[len(code)-1] {
	case ';', '}', ',', '{', '(', '[':
		return false
	}
	f.edits[i] = len(code)
	return true
}

func (f *file) String() string {
	var b strings.Builder
	for i, l := range f.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		text := l.Text(f.src)
		if at, ok := f.edits[i]; ok {
			b.WriteString(text[:at])
			b.WriteString(";")
			b.WriteString(text[at:])
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}
