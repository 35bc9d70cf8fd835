// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"path/filepath"
	"testing"

	"golang.org/x/xerrors"
	"rsc.io/orimig/lex"
)

func none(string) bool { return false }

const lib = `use std::fmt;

pub fn add(a: i32, b: i32) -> i32 {
    a + b
}

#[cfg(test)]
#[allow(clippy::unwrap_used)]
mod tests {
    use super::*;

    #[test]
    fn adds() {
        let s = "}";
        assert_eq!(add(1, 2), 3);
    }
}
`

func TestUnit(t *testing.T) {
	r, err := Unit(lib, "src/ops.rs", none)
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != Extracted {
		t.Fatalf("Status = %v, want %v", r.Status, Extracted)
	}
	if want := filepath.Join("src", "ops", "tests.rs"); r.Dest != want {
		t.Errorf("Dest = %q, want %q", r.Dest, want)
	}
	wantSource := `use std::fmt;

pub fn add(a: i32, b: i32) -> i32 {
    a + b
}

#[cfg(test)]
#[allow(clippy::unwrap_used)]
mod tests;
`
	if r.NewSource != wantSource {
		t.Errorf("NewSource:\n%s\nwant:\n%s", r.NewSource, wantSource)
	}
	wantContent := `use super::*;

#[test]
fn adds() {
    let s = "}";
    assert_eq!(add(1, 2), 3);
}
`
	if r.Content != wantContent {
		t.Errorf("Content:\n%s\nwant:\n%s", r.Content, wantContent)
	}
	if r.StartLine != 7 || r.EndLine != 17 || r.TotalLines != 18 {
		t.Errorf("lines %d-%d of %d, want 7-17 of 18", r.StartLine, r.EndLine, r.TotalLines)
	}

	again, err := Unit(r.NewSource, "src/ops.rs", none)
	if err != nil || again.Status != AlreadyExtracted {
		t.Errorf("second Unit: %v, %v, want %v", again.Status, err, AlreadyExtracted)
	}
}

func TestUnitKeepsTrailingCode(t *testing.T) {
	src := "#[cfg(test)]\nmod tests {\n    #[test]\n    fn t() {}\n}\n\n\nfn after() {}\n"
	r, err := Unit(src, "lib.rs", none)
	if err != nil {
		t.Fatal(err)
	}
	if want := "#[cfg(test)]\nmod tests;\n\nfn after() {}\n"; r.NewSource != want {
		t.Errorf("NewSource = %q, want %q", r.NewSource, want)
	}
	if want := "#[test]\nfn t() {}\n"; r.Content != want {
		t.Errorf("Content = %q, want %q", r.Content, want)
	}
}

func TestUnitDestinationExists(t *testing.T) {
	exists := func(name string) bool { return name == Dest("src/ops.rs") }
	r, err := Unit(lib, "src/ops.rs", exists)
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != DestinationExists {
		t.Errorf("Status = %v, want %v", r.Status, DestinationExists)
	}
	if r.NewSource != lib {
		t.Errorf("NewSource changed:\n%s", r.NewSource)
	}
}

func TestUnitNoModule(t *testing.T) {
	for _, src := range []string{
		"fn main() {}\n",
		"const S: &str = \"\n#[cfg(test)]\nmod tests {\n}\n\";\n",
		"    #[cfg(test)]\n    mod tests {\n    }\n",
	} {
		r, err := Unit(src, "main.rs", none)
		if err != nil {
			t.Errorf("Unit(%q): %v", src, err)
			continue
		}
		if r.Status != NoUnit || r.NewSource != src {
			t.Errorf("Unit(%q) = %v, want %v with source unchanged", src, r.Status, NoUnit)
		}
	}
}

func TestUnitUnbalanced(t *testing.T) {
	src := "#[cfg(test)]\nmod tests {\n    fn t() {\n}\n"
	_, err := Unit(src, "lib.rs", none)
	if !xerrors.Is(err, lex.ErrUnbalanced) {
		t.Errorf("err = %v, want ErrUnbalanced", err)
	}
}

func TestDest(t *testing.T) {
	for _, tt := range []struct{ in, out string }{
		{"a/mod.rs", "a/tests.rs"},
		{"src/lib.rs", "src/tests.rs"},
		{"src/main.rs", "src/tests.rs"},
		{"src/parse.rs", "src/parse/tests.rs"},
		{"x.rs", "x/tests.rs"},
	} {
		if have := Dest(tt.in); have != filepath.FromSlash(tt.out) {
			t.Errorf("Dest(%q) = %q, want %q", tt.in, have, tt.out)
		}
	}
}

func TestDedent(t *testing.T) {
	in := "    a\n\n  b\n        c\n   "
	want := "a\n\n  b\n    c\n"
	if have := dedent(in); have != want {
		t.Errorf("dedent(%q) = %q, want %q", in, have, want)
	}
}
