// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"
	"rsc.io/orimig/diff"
)

// An Edit is the new text of one file.
type Edit struct {
	Name    string
	OldText string
	Text    string
	Create  bool
}

// Replace sets the text of the loaded file name.
// Replacing a file with its current text is a no-op.
func (s *Snapshot) Replace(name, text string) {
	if ed := s.edits[name]; ed != nil {
		ed.Text = text
		if !ed.Create && ed.Text == ed.OldText {
			delete(s.edits, name)
		}
		return
	}
	f := s.files[name]
	if f == nil {
		panic("refactor: Replace of unloaded file " + name)
	}
	if f.Text == text {
		return
	}
	s.edits[name] = &Edit{Name: name, OldText: f.Text, Text: text}
}

// Create adds a new file with the given text.
// It is an error if the file already exists.
func (s *Snapshot) Create(name, text string) error {
	if s.Exists(name) {
		return xerrors.Errorf("%s: file exists", name)
	}
	s.edits[name] = &Edit{Name: name, Text: text, Create: true}
	return nil
}

// oldText returns the text of name as first loaded,
// and whether the file existed then.
func (s *Snapshot) oldText(name string) (string, bool) {
	for s.parent != nil {
		s = s.parent
	}
	f := s.files[name]
	if f == nil {
		return "", false
	}
	return f.Text, true
}

// names returns the sorted names of all files in s, including created ones.
func (s *Snapshot) names() []string {
	var names []string
	for name := range s.files {
		names = append(names, name)
	}
	for name, ed := range s.edits {
		if ed.Create {
			names = append(names, name)
		}
	}
	sortNames(names)
	return names
}

// Modified returns the sorted names of the files whose text in s
// differs from the text first loaded, including created files.
func (s *Snapshot) Modified() []string {
	var names []string
	for _, name := range s.names() {
		old, ok := s.oldText(name)
		if !ok || old != s.Text(name) {
			names = append(names, name)
		}
	}
	return names
}

// Edits returns the sorted names of the files edited in s itself.
func (s *Snapshot) Edits() []string {
	var names []string
	for name := range s.edits {
		names = append(names, name)
	}
	sortNames(names)
	return names
}

// Diff returns a diff of every modified file against its original text.
func (s *Snapshot) Diff() ([]byte, error) {
	var diffs []byte
	for _, name := range s.Modified() {
		old, _ := s.oldText(name)
		rel := filepath.ToSlash(s.r.shortPath(s.r.abs(name)))
		d, err := diff.Diff("old/"+rel, []byte(old), "new/"+rel, []byte(s.Text(name)))
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d...)
	}
	return diffs, nil
}

// Write writes every modified file to disk, creating directories
// for new files as needed. A directory is always created before any
// file in it is written.
func (s *Snapshot) Write() error {
	created := make(map[string]int)
	failed := false
	for _, name := range s.Modified() {
		path := s.r.abs(name)
		dir := filepath.Dir(path)
		if created[dir] == 0 {
			created[dir] = 1
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				if err := os.MkdirAll(dir, 0777); err != nil {
					fmt.Fprintf(s.r.Stderr, "%s\n", err)
					failed = true
					created[dir] = 2
					continue
				}
			}
		}
		if created[dir] != 1 {
			continue
		}
		if err := ioutil.WriteFile(path, []byte(s.Text(name)), 0666); err != nil {
			fmt.Fprintf(s.r.Stderr, "%s\n", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("errors writing files")
	}
	return nil
}
