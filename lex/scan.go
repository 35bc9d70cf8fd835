// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lex scans source text with C-like lexical conventions
// one lexical unit at a time, so that callers can find balanced
// bracket spans without being fooled by brackets inside string,
// raw-string and character literals or inside comments.
//
// The scanner knows nothing about grammar. It recognizes:
//
//	// line comments
//	/* block comments, which /* nest */ */
//	"strings" and `template strings`, with backslash escapes
//	r"raw", r#"raw"#, br##"raw"## strings
//	'c' and '\n' character literals ('a alone is a label)
//
// Everything else is plain code, one byte at a time.
package lex

import (
	"fmt"
	"unicode/utf8"
)

// A Context says which lexical construct owns the scanner's cursor.
type Context int

const (
	Code Context = iota
	LineComment
	BlockComment
	String
	RawString
	Char
)

func (c Context) String() string {
	switch c {
	case Code:
		return "code"
	case LineComment:
		return "line comment"
	case BlockComment:
		return "block comment"
	case String:
		return "string"
	case RawString:
		return "raw string"
	case Char:
		return "char"
	}
	return fmt.Sprintf("Context(%d)", int(c))
}

// maxCharEscape is the widest escape a character literal may hold,
// as in '\u{10FFFF}'.
const maxCharEscape = 10

// A Token is one lexical unit: a single byte of code,
// or a whole comment or literal.
type Token struct {
	Context Context
	Span
}

// A Scanner walks src starting at some offset.
// The zero Scanner is not usable; call NewScanner.
type Scanner struct {
	src string
	pos int

	// State of the unit being scanned.
	ctx     Context
	comment int  // block comment nesting depth
	hashes  int  // # count of the raw string being scanned
	quote   byte // closing quote of the string being scanned
}

// NewScanner returns a Scanner positioned at offset pos of src.
func NewScanner(src string, pos int) *Scanner {
	return &Scanner{src: src, pos: pos}
}

// Pos returns the offset of the next unit to be scanned.
func (s *Scanner) Pos() int { return s.pos }

// Done reports whether the scanner has reached the end of src.
func (s *Scanner) Done() bool { return s.pos >= len(s.src) }

// Next scans one lexical unit and returns it.
// An unterminated string or raw string is an error wrapping ErrUnbalanced;
// the scanner is then left at the end of src.
func (s *Scanner) Next() (Token, error) {
	start := s.pos
	s.ctx = s.enter()
	var err error
	switch s.ctx {
	case Code:
		s.pos++
	case LineComment:
		s.lineComment()
	case BlockComment:
		err = s.blockComment(start)
	case String:
		err = s.str(start)
	case RawString:
		err = s.rawString(start)
	case Char:
		s.char()
	}
	tok := Token{s.ctx, Span{start, s.pos}}
	s.ctx = Code
	return tok, err
}

// enter decides which context begins at s.pos and consumes its opener.
// Transitions only ever start from Code.
func (s *Scanner) enter() Context {
	src, i := s.src, s.pos
	switch c := src[i]; c {
	case '/':
		if i+1 < len(src) {
			switch src[i+1] {
			case '/':
				s.pos += 2
				return LineComment
			case '*':
				s.pos += 2
				s.comment = 1
				return BlockComment
			}
		}
	case '"', '`':
		s.quote = c
		s.pos++
		return String
	case '\'':
		return Char
	case 'r', 'b':
		if i > 0 && isIdent(src[i-1]) {
			break
		}
		j := i
		if src[j] == 'b' {
			j++
			if j >= len(src) || src[j] != 'r' {
				break
			}
		}
		j++
		n := 0
		for j < len(src) && src[j] == '#' {
			n++
			j++
		}
		if j < len(src) && src[j] == '"' {
			s.hashes = n
			s.pos = j + 1
			return RawString
		}
	}
	return Code
}

func (s *Scanner) lineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *Scanner) blockComment(start int) error {
	src := s.src
	for s.pos < len(src) {
		switch {
		case src[s.pos] == '/' && s.pos+1 < len(src) && src[s.pos+1] == '*':
			s.comment++
			s.pos += 2
		case src[s.pos] == '*' && s.pos+1 < len(src) && src[s.pos+1] == '/':
			s.comment--
			s.pos += 2
			if s.comment == 0 {
				return nil
			}
		default:
			s.pos++
		}
	}
	return &Error{Open: start, Pos: s.pos, Context: BlockComment, Err: ErrUnbalanced}
}

func (s *Scanner) str(start int) error {
	src := s.src
	for s.pos < len(src) {
		switch src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case s.quote:
			s.pos++
			return nil
		}
		s.pos++
	}
	s.pos = len(src)
	return &Error{Open: start, Pos: s.pos, Context: String, Err: ErrUnbalanced}
}

func (s *Scanner) rawString(start int) error {
	src := s.src
	for s.pos < len(src) {
		if src[s.pos] == '"' && s.closesRaw(s.pos+1) {
			s.pos += 1 + s.hashes
			return nil
		}
		s.pos++
	}
	return &Error{Open: start, Pos: s.pos, Context: RawString, Err: ErrUnbalanced}
}

func (s *Scanner) closesRaw(i int) bool {
	if i+s.hashes > len(s.src) {
		return false
	}
	for k := 0; k < s.hashes; k++ {
		if s.src[i+k] != '#' {
			return false
		}
	}
	return true
}

// char consumes a character literal, or a lone apostrophe when
// what follows does not close within a literal's width.
func (s *Scanner) char() {
	src, i := s.src, s.pos
	if i+1 < len(src) && src[i+1] == '\\' {
		for j := i + 2; j < len(src) && j <= i+2+maxCharEscape; j++ {
			if src[j] == '\n' {
				break
			}
			if src[j] == '\'' && j > i+2 {
				s.pos = j + 1
				return
			}
		}
	} else if i+1 < len(src) && src[i+1] != '\'' && src[i+1] != '\n' {
		_, size := utf8.DecodeRuneInString(src[i+1:])
		if j := i + 1 + size; j < len(src) && src[j] == '\'' {
			s.pos = j + 1
			return
		}
	}
	s.ctx = Code
	s.pos = i + 1
}

func isIdent(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c >= utf8.RuneSelf
}

// IsIdent reports whether c can be part of an identifier.
// Bytes of multi-byte UTF-8 sequences count as identifier bytes.
func IsIdent(c byte) bool { return isIdent(c) }
