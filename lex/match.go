// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lex

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// A Kind selects the bracket family whose nesting is tracked.
type Kind int

const (
	Paren   Kind = iota // ( )
	Brace               // { }
	Bracket             // [ ]
	Any                 // all three, counted together
)

var kindPairs = [...]string{
	Paren:   "()",
	Brace:   "{}",
	Bracket: "[]",
	Any:     "([{)]}",
}

func (k Kind) String() string {
	switch k {
	case Paren:
		return "paren"
	case Brace:
		return "brace"
	case Bracket:
		return "bracket"
	case Any:
		return "any"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Opens reports whether c opens a bracket of family k.
func (k Kind) Opens(c byte) bool {
	if k == Any {
		return c == '(' || c == '[' || c == '{'
	}
	return c == kindPairs[k][0]
}

// Closes reports whether c closes a bracket of family k.
func (k Kind) Closes(c byte) bool {
	if k == Any {
		return c == ')' || c == ']' || c == '}'
	}
	return c == kindPairs[k][1]
}

// A Span is a half-open range [Start, End) of byte offsets.
type Span struct {
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

// Text returns the text of s in src.
func (s Span) Text(src string) string { return src[s.Start:s.End] }

// Lines returns the 1-based first and last line numbers covered by s.
func (s Span) Lines(src string) (first, last int) {
	first = Line(src, s.Start)
	end := s.End
	if end > s.Start {
		end--
	}
	return first, Line(src, end)
}

// Line returns the 1-based line number of offset off in src.
func Line(src string, off int) int {
	if off > len(src) {
		off = len(src)
	}
	return strings.Count(src[:off], "\n") + 1
}

var (
	// ErrUnbalanced reports that the input ended, or a literal was left
	// unterminated, before the bracket depth returned to zero.
	ErrUnbalanced = xerrors.New("unbalanced delimiter")

	// ErrNotOpen reports that the starting offset does not hold
	// an opening bracket of the requested kind.
	ErrNotOpen = xerrors.New("not an opening delimiter")
)

// An Error describes a scanning failure at a particular offset.
type Error struct {
	Open    int     // offset of the construct that was not closed
	Pos     int     // offset at which scanning stopped
	Context Context // context that was active when it stopped
	Err     error
}

func (e *Error) Error() string {
	if e.Context != Code {
		return fmt.Sprintf("offset %d: unterminated %s: %v", e.Open, e.Context, e.Err)
	}
	return fmt.Sprintf("offset %d: %v", e.Open, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// FindMatching returns the offset of the bracket that closes
// the one at src[open], which must open a bracket of family k.
// Brackets inside literals and comments are ignored.
func FindMatching(src string, open int, k Kind) (int, error) {
	if open < 0 || open >= len(src) || !k.Opens(src[open]) {
		return -1, &Error{Open: open, Pos: open, Err: ErrNotOpen}
	}
	depth := 1
	s := NewScanner(src, open+1)
	for !s.Done() {
		tok, err := s.Next()
		if err != nil {
			var e *Error
			if xerrors.As(err, &e) {
				e.Open = open
			}
			return -1, err
		}
		if tok.Context != Code {
			continue
		}
		switch c := src[tok.Start]; {
		case k.Opens(c):
			depth++
		case k.Closes(c):
			depth--
			if depth == 0 {
				return tok.Start, nil
			}
		}
	}
	return -1, &Error{Open: open, Pos: len(src), Err: ErrUnbalanced}
}

// Extract returns the text between the bracket at src[open]
// and its match, along with the offset of the closing bracket.
func Extract(src string, open int, k Kind) (inner string, close int, err error) {
	close, err = FindMatching(src, open, k)
	if err != nil {
		return "", -1, err
	}
	return src[open+1 : close], close, nil
}

// LineContexts returns, for each line of src, the context that owns
// the line's first byte. A line beginning inside a multi-line string
// or block comment reports String, RawString or BlockComment.
func LineContexts(src string) ([]Context, error) {
	ctxs := []Context{Code}
	s := NewScanner(src, 0)
	for !s.Done() {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		text := tok.Text(src)
		for i := 0; i < len(text); i++ {
			if text[i] != '\n' {
				continue
			}
			c := tok.Context
			if c == LineComment || tok.Start+i+1 == tok.End {
				c = Code
			}
			ctxs = append(ctxs, c)
		}
	}
	return ctxs, nil
}
