// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refactor holds the source files being migrated
// and the pending edits to them.
//
// A Refactor loads a tree of files into a Snapshot. Commands edit the
// Snapshot, which records new text per file without touching the disk;
// Apply folds the edits into a fresh Snapshot for the next command, and
// Write puts the final result on disk.
package refactor

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// DefaultExts are the file extensions loaded when Refactor.Exts is empty.
var DefaultExts = []string{".ori", ".md", ".rs"}

// SkipDirs are directory names never descended into.
// Hidden directories are skipped as well.
var SkipDirs = []string{"target", "build", "out", "node_modules"}

// A Refactor holds the state for an active migration.
type Refactor struct {
	dir string

	// Exts lists the file extensions to load.
	Exts []string

	Stdout   io.Writer
	Stderr   io.Writer
	ShowDiff bool
	DryRun   bool
	Verbose  bool
}

// New returns a new migration rooted at dir (usually ".").
// Relative paths passed to Load are interpreted relative to dir.
func New(dir string) (*Refactor, error) {
	dir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}
	dir, err = filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return nil, err
	}
	r := &Refactor{
		dir:    dir,
		Exts:   DefaultExts,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	return r, nil
}

// Dir returns the root directory of the migration.
func (r *Refactor) Dir() string { return r.dir }

// shortPath returns an absolute or relative name for path, whatever is shorter.
func (r *Refactor) shortPath(path string) string {
	if rel, err := filepath.Rel(r.dir, path); err == nil && len(rel) < len(path) {
		return rel
	}
	return path
}

// abs returns the absolute form of the short path name.
func (r *Refactor) abs(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.dir, name)
}

func (r *Refactor) wantFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range r.Exts {
		if ext == e {
			return true
		}
	}
	return false
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	for _, d := range SkipDirs {
		if name == d {
			return true
		}
	}
	return false
}

// Load reads the files under the given paths, which may name files or
// directories, into a new Snapshot. With no paths it loads r.Dir().
// Files named explicitly are loaded whatever their extension.
func (r *Refactor) Load(paths ...string) (*Snapshot, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	s := newSnapshot(r, nil)
	for _, path := range paths {
		root := r.abs(path)
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if err := s.read(root); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !r.wantFile(path) {
				return nil
			}
			return s.read(path)
		})
		if err != nil {
			return nil, xerrors.Errorf("loading %s: %w", path, err)
		}
	}
	return s, nil
}

// sortNames sorts file names by directory, then by name.
func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		di, dj := filepath.Dir(names[i]), filepath.Dir(names[j])
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})
}
