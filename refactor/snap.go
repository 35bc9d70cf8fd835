// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/sumdb/dirhash"
)

// A Snapshot is a set of loaded files plus a set of pending edits
// to those files.
type Snapshot struct {
	r      *Refactor
	parent *Snapshot

	// files contains the contents of files before any edits in this
	// Snapshot. It's keyed by short path (File.Name).
	files map[string]*File

	// edits contains edits made to files by this Snapshot. It's keyed by
	// short path and only contains entries for files that were changed
	// or created.
	edits map[string]*Edit

	Errors *ErrorList
}

// File is the text of one source file. Files are immutable.
type File struct {
	Name     string // Short path (either relative to r.dir or absolute)
	Text     string
	Modified bool   // Modified from on-disk file (or does not exist on disk)
	Hash     string // SHA256(Name+Text)
}

func newSnapshot(r *Refactor, parent *Snapshot) *Snapshot {
	s := &Snapshot{
		r:      r,
		parent: parent,
		files:  make(map[string]*File),
		edits:  make(map[string]*Edit),
		Errors: new(ErrorList),
	}
	if parent != nil {
		s.Errors = parent.Errors
	}
	return s
}

func newFile(name, text string, modified bool) *File {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte("\x00"))
	h.Write([]byte(text))
	return &File{
		Name:     name,
		Text:     text,
		Modified: modified,
		Hash:     fmt.Sprintf("%x", h.Sum(nil)),
	}
}

func (s *Snapshot) read(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	name := s.r.shortPath(path)
	s.files[name] = newFile(name, string(data), false)
	return nil
}

func (s *Snapshot) Refactor() *Refactor { return s.r }

// ErrorAt records a problem with the named file. A line of 0 means
// the problem is with the file as a whole.
func (s *Snapshot) ErrorAt(name string, line int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	msg = strings.ReplaceAll(msg, "\n", "\n\t")
	s.Errors.Add(&Error{Pos: Position{Filename: name, Line: line}, Msg: msg})
}

// Files returns the sorted names of the loaded files
// having one of the given extensions, or all of them.
func (s *Snapshot) Files(exts ...string) []string {
	var names []string
	for name := range s.files {
		if len(exts) == 0 || hasExt(name, exts) {
			names = append(names, name)
		}
	}
	sortNames(names)
	return names
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Text returns the current text of the named file,
// including any edit made in s.
func (s *Snapshot) Text(name string) string {
	if ed := s.edits[name]; ed != nil {
		return ed.Text
	}
	if f := s.files[name]; f != nil {
		return f.Text
	}
	return ""
}

// Exists reports whether the named file exists in s or on disk.
func (s *Snapshot) Exists(name string) bool {
	if s.files[name] != nil || s.edits[name] != nil {
		return true
	}
	_, err := os.Stat(s.r.abs(name))
	return err == nil
}

// Apply returns a new Snapshot whose files are the files of s with
// s's edits applied. The new Snapshot keeps s as its parent, so that
// Diff and Write compare against the files originally loaded.
func (s *Snapshot) Apply() *Snapshot {
	ns := newSnapshot(s.r, s)
	for name, f := range s.files {
		ns.files[name] = f
	}
	for name, ed := range s.edits {
		ns.files[name] = newFile(name, ed.Text, true)
	}
	return ns
}

// Hash returns a hash of the current text of every file in s.
func (s *Snapshot) Hash() (string, error) {
	var names []string
	for name := range s.files {
		names = append(names, filepath.ToSlash(name))
	}
	for name, ed := range s.edits {
		if ed.Create {
			names = append(names, filepath.ToSlash(name))
		}
	}
	return dirhash.Hash1(names, func(name string) (io.ReadCloser, error) {
		return ioutil.NopCloser(strings.NewReader(s.Text(filepath.FromSlash(name)))), nil
	})
}
