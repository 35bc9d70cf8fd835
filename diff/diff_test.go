// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import "testing"

const (
	oldName = "a/b/c"
	newName = "d/e/f"
	oldText = "abc\ndef\nghi\n"
	newText = "ABC\ndef\nGHI\n"
	want    = "diff a/b/c d/e/f\n--- a/b/c\n+++ d/e/f\n@@ -1,3 +1,3 @@\n-abc\n+ABC\n def\n-ghi\n+GHI\n"
)

func TestDiff(t *testing.T) {
	out, err := Diff(oldName, []byte(oldText), newName, []byte(newText))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != want {
		t.Errorf("Diff: have:\n%s", out)
		t.Errorf("Diff: want:\n%s", want)
	}
}

func TestDiffEqual(t *testing.T) {
	out, err := Diff(oldName, []byte(oldText), newName, []byte(oldText))
	if err != nil || out != nil {
		t.Errorf("Diff of equal inputs = %q, %v, want nil, nil", out, err)
	}
}

func TestDiffNoNewline(t *testing.T) {
	out, err := Diff(oldName, []byte("x\ny"), newName, []byte("x\ny\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := "diff a/b/c d/e/f\n--- a/b/c\n+++ d/e/f\n@@ -1,2 +1,2 @@\n x\n-y\n\\ No newline at end of file\n+y\n"
	if string(out) != want {
		t.Errorf("Diff: have:\n%s", out)
		t.Errorf("Diff: want:\n%s", want)
	}
}
