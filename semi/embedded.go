// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package semi

import (
	"regexp"
	"strings"

	"rsc.io/orimig/lex"
)

// oriRE matches text that contains at least one declaration line.
var oriRE = regexp.MustCompile(`(?m)^\s*(pub\s+)?(@\w+\s*[(<]|type\s+\w|let\s+\$|\$\w+\s*=)`)

// FixEmbedded applies Insert to the string literals of a host
// source file that hold declarations, such as test fixtures
// written as Rust string or raw-string literals.
//
// Raw strings are rewritten directly. Ordinary strings are decoded
// first and only when every escape they contain is \n, \" or \\,
// so that re-encoding reproduces the literal exactly; other strings
// are left alone. Literals Insert cannot scan are skipped as well.
func FixEmbedded(src string) (string, int, error) {
	var out strings.Builder
	last, n := 0, 0
	s := lex.NewScanner(src, 0)
	for !s.Done() {
		tok, err := s.Next()
		if err != nil {
			return "", 0, err
		}
		var body lex.Span
		var fixed string
		var k int
		switch tok.Context {
		default:
			continue
		case lex.String:
			if src[tok.Start] != '"' {
				continue
			}
			body = lex.Span{Start: tok.Start + 1, End: tok.End - 1}
			fixed, k = fixString(body.Text(src))
		case lex.RawString:
			text := tok.Text(src)
			q := strings.IndexByte(text, '"')
			hashes := q - strings.IndexByte(text, 'r') - 1
			body = lex.Span{Start: tok.Start + q + 1, End: tok.End - 1 - hashes}
			fixed, k = fixRaw(body.Text(src))
		}
		if k == 0 {
			continue
		}
		out.WriteString(src[last:body.Start])
		out.WriteString(fixed)
		last = body.End
		n += k
	}
	if n == 0 {
		return src, 0, nil
	}
	out.WriteString(src[last:])
	return out.String(), n, nil
}

func fixRaw(text string) (string, int) {
	if !oriRE.MatchString(text) {
		return text, 0
	}
	fixed, n, err := Insert(text)
	if err != nil {
		return text, 0
	}
	return fixed, n
}

func fixString(lit string) (string, int) {
	text, ok := unquote(lit)
	if !ok || quote(text) != lit {
		return lit, 0
	}
	fixed, n := fixRaw(text)
	if n == 0 {
		return lit, 0
	}
	return quote(fixed), n
}

// unquote decodes the body of a string literal,
// reporting false if it uses an escape other than \n, \" or \\.
func unquote(lit string) (string, bool) {
	if !strings.Contains(lit, `\`) {
		return lit, true
	}
	var b strings.Builder
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(lit) {
			return "", false
		}
		switch lit[i] {
		case 'n':
			b.WriteByte('\n')
		case '"', '\\':
			b.WriteByte(lit[i])
		default:
			return "", false
		}
	}
	return b.String(), true
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(text string) string { return quoter.Replace(text) }
