// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite converts call-style block forms such as
//
//	run(
//		let x = f(),
//		x + 1,
//	)
//
// into brace-delimited blocks:
//
//	{
//		let x = f();
//		x + 1
//	}
//
// Rewriting is purely textual. Triggers are found only in plain code,
// never inside literals or comments, and the span following a trigger
// is located with the lex package.
package rewrite

import (
	"sort"
	"strings"

	"golang.org/x/xerrors"
	"rsc.io/orimig/lex"
)

// MaxNesting bounds how deeply rewrites may nest inside one another.
// Each nested rewrite works on a strictly shorter span than its parent,
// so depth is also bounded by the length of the input; MaxNesting caps
// it for inputs longer than that.
const MaxNesting = 1000

// ErrTooDeep reports that MaxNesting was exceeded.
var ErrTooDeep = xerrors.New("rewrites nested too deeply")

// A Rule rewrites one surface form into block syntax.
//
// The Trigger is one or more words; a space in the Trigger matches one
// or more whitespace characters in the source. The last word must be
// followed directly by an opening parenthesis. A trigger preceded by an
// identifier character or a member-access dot does not match.
type Rule struct {
	Name    string
	Trigger string

	// Keyword is emitted in front of the new block.
	Keyword string

	// Wrapped, if set, requires the whole parenthesized content
	// to be a single Wrapped(...) call, which is unwrapped.
	Wrapped string

	// Scrutinee splits the content at its first top-level comma;
	// the first part is emitted between Keyword and the block.
	Scrutinee bool

	// Single wraps one expression without the separator pass.
	// Content with top-level separators is normalized as usual.
	Single bool
}

// Rules is the default rule pipeline. Compound forms come before
// the simple forms they contain.
var Rules = []*Rule{
	{Name: "loop_run", Trigger: "loop", Keyword: "loop ", Wrapped: "run"},
	{Name: "unsafe_run", Trigger: "unsafe", Keyword: "unsafe ", Wrapped: "run"},
	{Name: "for_do_run", Trigger: "do run", Keyword: "do "},
	{Name: "loop_single", Trigger: "loop", Keyword: "loop ", Single: true},
	{Name: "match", Trigger: "match", Keyword: "match ", Scrutinee: true},
	{Name: "try", Trigger: "try", Keyword: "try "},
	{Name: "run", Trigger: "run"},
}

// Stats counts what a rewrite did.
type Stats struct {
	Rules     map[string]int // triggers rewritten, by rule name
	Converted int            // separators turned into terminators
	Removed   int            // result-expression separators dropped
}

func (s *Stats) count(rule string) {
	if s.Rules == nil {
		s.Rules = make(map[string]int)
	}
	s.Rules[rule]++
}

// Add merges the counts in t into s.
func (s *Stats) Add(t *Stats) {
	for name, n := range t.Rules {
		if s.Rules == nil {
			s.Rules = make(map[string]int)
		}
		s.Rules[name] += n
	}
	s.Converted += t.Converted
	s.Removed += t.Removed
}

// Total returns the number of triggers rewritten.
func (s *Stats) Total() int {
	n := 0
	for _, c := range s.Rules {
		n += c
	}
	return n
}

// Names returns the rule names with nonzero counts, sorted.
func (s *Stats) Names() []string {
	var names []string
	for name, n := range s.Rules {
		if n > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// A Rewriter applies an ordered list of rules.
type Rewriter struct {
	Rules []*Rule
}

// New returns a Rewriter using the default Rules.
func New() *Rewriter {
	return &Rewriter{Rules: Rules}
}

// Rewrite applies every rule, in order, to src.
// Counts are added to st, which may be nil.
// On error the returned text is empty and src should be left alone.
func (rw *Rewriter) Rewrite(src string, st *Stats) (string, error) {
	if st == nil {
		st = new(Stats)
	}
	var local Stats
	out, err := rw.rewrite(src, 0, &local)
	if err != nil {
		return "", err
	}
	st.Add(&local)
	return out, nil
}

func (rw *Rewriter) rewrite(src string, depth int, st *Stats) (string, error) {
	if depth > MaxNesting {
		return "", ErrTooDeep
	}
	for _, r := range rw.Rules {
		var err error
		src, err = rw.apply(r, src, depth, st)
		if err != nil {
			return "", err
		}
	}
	return src, nil
}

// apply makes one left-to-right pass of rule r over src.
// Scanning resumes after each replaced span, so emitted text
// is never looked at again by the same pass.
func (rw *Rewriter) apply(r *Rule, src string, depth int, st *Stats) (string, error) {
	var out strings.Builder
	last := 0
	s := lex.NewScanner(src, 0)
	for !s.Done() {
		tok, err := s.Next()
		if err != nil {
			return "", err
		}
		if tok.Context != lex.Code {
			continue
		}
		at := tok.Start
		open, ok := r.match(src, at)
		if !ok {
			continue
		}
		inner, close, err := lex.Extract(src, open, lex.Any)
		if err != nil {
			return "", err
		}
		repl, ok, err := rw.emit(r, inner, depth, st)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		st.count(r.Name)
		out.WriteString(src[last:at])
		out.WriteString(repl)
		last = close + 1
		s = lex.NewScanner(src, last)
	}
	if last == 0 {
		return src, nil
	}
	out.WriteString(src[last:])
	return out.String(), nil
}

// match reports whether r's trigger starts at src[at],
// returning the offset of the opening parenthesis.
func (r *Rule) match(src string, at int) (open int, ok bool) {
	if at > 0 && (lex.IsIdent(src[at-1]) || src[at-1] == '.') {
		return 0, false
	}
	i := at
	words := strings.Fields(r.Trigger)
	for k, w := range words {
		if !strings.HasPrefix(src[i:], w) {
			return 0, false
		}
		i += len(w)
		if k == len(words)-1 {
			break
		}
		j := i
		for j < len(src) && isSpace(src[j]) {
			j++
		}
		if j == i {
			return 0, false
		}
		i = j
	}
	if i >= len(src) || src[i] != '(' {
		return 0, false
	}
	return i, true
}

// emit builds the replacement for r given the parenthesized content.
// It reports ok=false when the content does not have the form r needs.
func (rw *Rewriter) emit(r *Rule, inner string, depth int, st *Stats) (repl string, ok bool, err error) {
	head := r.Keyword
	body := inner
	switch {
	case r.Wrapped != "":
		trimmed := strings.TrimSpace(inner)
		if !strings.HasPrefix(trimmed, r.Wrapped+"(") {
			return "", false, nil
		}
		body, close, err := lex.Extract(trimmed, len(r.Wrapped), lex.Any)
		if err != nil {
			return "", false, err
		}
		if close != len(trimmed)-1 {
			return "", false, nil
		}
		return rw.block(head, body, depth, st, false)

	case r.Scrutinee:
		scrut, rest, found, err := splitFirst(inner)
		if err != nil {
			return "", false, err
		}
		if !found {
			return "", false, nil
		}
		scrut, err = rw.rewrite(strings.TrimSpace(scrut), depth+1, st)
		if err != nil {
			return "", false, err
		}
		head += scrut + " "
		body = rest

	case r.Single:
		// Content holding several expressions is a block like any other.
		_, _, found, err := splitFirst(inner)
		if err != nil {
			return "", false, err
		}
		return rw.block(head, body, depth, st, !found)
	}
	return rw.block(head, body, depth, st, false)
}

// block rewrites body recursively, normalizes its separators unless
// single is set, and wraps it in braces after head.
func (rw *Rewriter) block(head, body string, depth int, st *Stats, single bool) (string, bool, error) {
	body, err := rw.rewrite(body, depth+1, st)
	if err != nil {
		return "", false, err
	}
	if !single {
		var c Counts
		body, c = Normalize(body)
		st.Converted += c.Converted
		st.Removed += c.Removed
	}
	return head + wrap(body), true, nil
}

// wrap puts braces around body. Single-line bodies get inner padding.
func wrap(body string) string {
	if strings.Contains(body, "\n") {
		return "{" + body + "}"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "{}"
	}
	return "{ " + body + " }"
}

// splitFirst splits text at its first comma outside brackets,
// literals and comments.
func splitFirst(text string) (before, after string, found bool, err error) {
	depth := 0
	s := lex.NewScanner(text, 0)
	for !s.Done() {
		tok, err := s.Next()
		if err != nil {
			return "", "", false, err
		}
		if tok.Context != lex.Code {
			continue
		}
		switch c := text[tok.Start]; {
		case lex.Any.Opens(c):
			depth++
		case lex.Any.Closes(c):
			depth--
		case c == ',' && depth == 0:
			return text[:tok.Start], text[tok.End:], true, nil
		}
	}
	return text, "", false, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
