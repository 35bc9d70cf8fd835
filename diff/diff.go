// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs
// and reports the differences as a unified diff.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

const noNewline = "\n\\ No newline at end of file\n"

// Diff returns a unified diff of old and new, or nil if they are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	u := difflib.UnifiedDiff{
		A:        splitLines(string(old)),
		B:        splitLines(string(new)),
		FromFile: oldName,
		ToFile:   newName,
		Context:  Context,
	}
	text, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return []byte(fmt.Sprintf("diff %s %s\n%s", oldName, newName, text)), nil
}

// splitLines splits s into lines that keep their newlines.
// A final line without one is marked the way diff -u marks it.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + noNewline
	}
	return lines
}
