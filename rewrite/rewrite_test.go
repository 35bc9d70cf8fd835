// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/xerrors"
	"rsc.io/orimig/lex"
)

var rewriteTests = []struct {
	in  string
	out string
}{
	{"loop(run(a, b))", "loop { a; b }"},
	{"unsafe(run(a))", "unsafe { a }"},
	{"loop(next(it))", "loop { next(it) }"},
	{"loop(a, b)", "loop { a; b }"},
	{"loop(next(it),)", "loop { next(it) }"},
	{"loop(\n    a,\n    b,\n)", "loop {\n    a;\n    b\n}"},
	{"try(a, b)", "try { a; b }"},
	{"run(a, b,)", "{ a; b }"},
	{"run()", "{}"},
	{"match(x, A -> 1, B -> 2)", "match x { A -> 1; B -> 2 }"},
	{"match(x)", "match(x)"},
	{"x.run(a)", "x.run(a)"},
	{"rerun(a)", "rerun(a)"},
	{"x.match(a, b)", "x.match(a, b)"},
	{`print("run(a)")`, `print("run(a)")`},
	{"// run(a)\nb", "// run(a)\nb"},
	{`run(")", '(')`, `{ ")"; '(' }`},
	{"loop(run(a) + f(b))", "loop { { a } + f(b) }"},
	{
		"@f () -> int = run(\n    let x = 1,\n    let y = 2,\n    x + y,\n)",
		"@f () -> int = {\n    let x = 1;\n    let y = 2;\n    x + y\n}",
	},
	{
		"match(x,\n    Some(v) -> v,\n    None -> 0,\n)",
		"match x {\n    Some(v) -> v;\n    None -> 0\n}",
	},
	{
		"for x in xs do run(\n    print(x),\n    x,\n)",
		"for x in xs do {\n    print(x);\n    x\n}",
	},
	{
		"for x in xs do\n    run(a, b)",
		"for x in xs do { a; b }",
	},
	{
		"loop(run(\n    let x = next(),\n    if x then break,\n))",
		"loop {\n    let x = next();\n    if x then break\n}",
	},
	{
		"run(\n    let x = try(f(), g()),\n    match(x, A -> run(b, c), _ -> d),\n)",
		"{\n    let x = try { f(); g() };\n    match x { A -> { b; c }; _ -> d }\n}",
	},
	{
		"run(\n    let f = (x) -> run(\n        a,\n        b,\n    ),\n    f(1),\n)",
		"{\n    let f = (x) -> {\n        a;\n        b\n    };\n    f(1)\n}",
	},
}

func TestRewrite(t *testing.T) {
	rw := New()
	for _, tt := range rewriteTests {
		have, err := rw.Rewrite(tt.in, nil)
		if err != nil {
			t.Errorf("Rewrite(%q): %v", tt.in, err)
			continue
		}
		if have != tt.out {
			t.Errorf("Rewrite(%q):\nhave %q\nwant %q", tt.in, have, tt.out)
		}
	}
}

func TestRewriteIdempotent(t *testing.T) {
	rw := New()
	for _, tt := range rewriteTests {
		once, err := rw.Rewrite(tt.in, nil)
		if err != nil {
			continue
		}
		var st Stats
		twice, err := rw.Rewrite(once, &st)
		if err != nil {
			t.Errorf("Rewrite(Rewrite(%q)): %v", tt.in, err)
			continue
		}
		if twice != once {
			t.Errorf("Rewrite not idempotent on %q:\nonce  %q\ntwice %q", tt.in, once, twice)
		}
		if st.Total() != 0 {
			t.Errorf("second Rewrite of %q fired %v", tt.in, st.Rules)
		}
	}
}

func TestRewriteUnbalanced(t *testing.T) {
	for _, in := range []string{
		"run(a, b",
		`run(a, "b)`,
		"x\nloop(run(a)\n",
	} {
		_, err := New().Rewrite(in, nil)
		if !xerrors.Is(err, lex.ErrUnbalanced) {
			t.Errorf("Rewrite(%q): err = %v, want ErrUnbalanced", in, err)
		}
	}
}

func TestRewriteTooDeep(t *testing.T) {
	n := MaxNesting + 10
	in := strings.Repeat("run(", n) + "x" + strings.Repeat(")", n)
	_, err := New().Rewrite(in, nil)
	if !xerrors.Is(err, ErrTooDeep) {
		t.Errorf("Rewrite of %d nested runs: err = %v, want ErrTooDeep", n, err)
	}
}

func TestRewriteDeep(t *testing.T) {
	n := 200
	in := strings.Repeat("run(", n) + "x" + strings.Repeat(")", n)
	want := strings.Repeat("{ ", n) + "x" + strings.Repeat(" }", n)
	var st Stats
	have, err := New().Rewrite(in, &st)
	if err != nil {
		t.Fatalf("Rewrite of %d nested runs: %v", n, err)
	}
	if have != want {
		t.Errorf("Rewrite of %d nested runs = %q", n, have)
	}
	if st.Rules["run"] != n {
		t.Errorf("run count = %d, want %d", st.Rules["run"], n)
	}
}

func TestRewriteLoopSeparators(t *testing.T) {
	var st Stats
	have, err := New().Rewrite("loop(\n    a,\n    b,\n)", &st)
	if err != nil {
		t.Fatal(err)
	}
	if want := "loop {\n    a;\n    b\n}"; have != want {
		t.Errorf("Rewrite = %q, want %q", have, want)
	}
	if st.Rules["loop_single"] != 1 || st.Converted != 1 || st.Removed != 1 {
		t.Errorf("Stats = %+v, want loop_single=1 Converted=1 Removed=1", st)
	}
}

func TestRewriteStats(t *testing.T) {
	in := "loop(run(a, b))\nrun(\n    x,\n    y,\n)\nmatch(v, A -> try(c), B -> d)\n"
	var st Stats
	if _, err := New().Rewrite(in, &st); err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"loop_run": 1, "run": 1, "match": 1, "try": 1}
	if !reflect.DeepEqual(st.Rules, want) {
		t.Errorf("Rules = %v, want %v", st.Rules, want)
	}
	// a; b + x; + A; B
	if st.Converted != 3 || st.Removed != 1 {
		t.Errorf("Converted, Removed = %d, %d, want 3, 1", st.Converted, st.Removed)
	}
	if names := st.Names(); !reflect.DeepEqual(names, []string{"loop_run", "match", "run", "try"}) {
		t.Errorf("Names = %v", names)
	}
}

var normalizeTests = []struct {
	in  string
	out string
	c   Counts
}{
	{"a,\nb,\nc", "a;\nb;\nc", Counts{2, 0}},
	{"a,\nb,", "a;\nb", Counts{1, 1}},
	{"\n    a,\n    b,\n", "\n    a;\n    b\n", Counts{1, 1}},
	{"a,  \nb", "a;  \nb", Counts{1, 0}},
	{"a\nb", "a\nb", Counts{}},
	{"a, // note\nb", "a, // note\nb", Counts{}},
	{
		"\n    let x = f(\n        a,\n        b,\n    ),\n    x,\n",
		"\n    let x = f(\n        a,\n        b,\n    );\n    x\n",
		Counts{1, 1},
	},
	{"\"x,\ny\",\nz", "\"x,\ny\";\nz", Counts{1, 0}},
	{"f(a,\nb),\nc", "f(a,\nb);\nc", Counts{1, 0}},
	{"a, b,", "a; b", Counts{1, 1}},
	{"a, (b, c)", "a; (b, c)", Counts{1, 0}},
	{"x", "x", Counts{}},
	// Unscannable content falls back to counting brackets per line.
	{"a,\n\"b,\nc", "a;\n\"b;\nc", Counts{2, 0}},
}

func TestNormalize(t *testing.T) {
	for _, tt := range normalizeTests {
		have, c := Normalize(tt.in)
		if have != tt.out || c != tt.c {
			t.Errorf("Normalize(%q) = %q, %+v, want %q, %+v", tt.in, have, c, tt.out, tt.c)
		}
	}
}

func TestMarkdown(t *testing.T) {
	in := "Use run(a) like this:\n\n```ori\nrun(a, b)\n```\n\n```rust\nrun(a, b)\n```\n"
	want := "Use run(a) like this:\n\n```ori\n{ a; b }\n```\n\n```rust\nrun(a, b)\n```\n"
	rw := New()
	have, err := Markdown(in, func(code string) (string, error) {
		return rw.Rewrite(code, nil)
	})
	if err != nil {
		t.Fatal(err)
	}
	if have != want {
		t.Errorf("Markdown:\nhave %q\nwant %q", have, want)
	}
}

func TestContractFlags(t *testing.T) {
	src := "@f (x: int) -> int = run(\n    pre_check: x > 0,\n    x,\n    post_check: r -> r > 0,\n)\n"
	have := ContractFlags(src)
	want := []Flag{{2, "pre_check: x > 0,"}, {4, "post_check: r -> r > 0,"}}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("ContractFlags = %v, want %v", have, want)
	}
}

func TestMarkdownFlags(t *testing.T) {
	src := "Old pre_check: clauses\n\n```ori\n@f (x: int) -> int = {\n    pre_check: x > 0;\n    x\n}\n```\n"
	have := MarkdownFlags(src)
	want := []Flag{{5, "pre_check: x > 0;"}}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("MarkdownFlags = %v, want %v", have, want)
	}
}

func TestMarkdownError(t *testing.T) {
	src := "# Title\n\n```ori\nrun(a, \"b)\n```\n"
	rw := New()
	_, err := Markdown(src, func(code string) (string, error) {
		return rw.Rewrite(code, nil)
	})
	var e *lex.Error
	if !xerrors.As(err, &e) {
		t.Fatalf("Markdown: err = %v, want *lex.Error", err)
	}
	if want := strings.Index(src, `"b`); e.Open != want {
		t.Errorf("Open = %d, want %d", e.Open, want)
	}
	if line := lex.Line(src, e.Open); line != 4 {
		t.Errorf("line = %d, want 4", line)
	}
}
