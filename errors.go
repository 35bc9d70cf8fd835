// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "fmt"

// errUsage indicates a syntax error in a script command. Usage errors are
// independent of the files being migrated.
type errUsage struct {
	err string
}

func newErrUsage(f string, args ...interface{}) *errUsage {
	return &errUsage{fmt.Sprintf(f, args...)}
}

func (e *errUsage) Error() string {
	return "usage: " + e.err
}

// errConverge indicates that a command was well-formed, but running it a
// second time over its own output changed the files again, so its result
// cannot be trusted.
type errConverge struct {
	cmd   string
	files []string
}

func (e *errConverge) Error() string {
	return fmt.Sprintf("%s did not converge: second pass changed %v", e.cmd, e.files)
}
