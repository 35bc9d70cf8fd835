// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// A Position is a file name and 1-based line number.
// A zero Line refers to the whole file.
type Position struct {
	Filename string
	Line     int
}

func (p Position) IsValid() bool { return p.Filename != "" }

func (p Position) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%s:%d", p.Filename, p.Line)
	}
	return p.Filename
}

// An Error is an error at a particular source position.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	} else {
		return e.Msg
	}
}

// ErrorList is a set of Errors. It is also an error itself. The zero value is
// an empty list, ready to use.
type ErrorList struct {
	errs []*Error
	set  map[Error]bool
}

// Add adds an error to l. If the error is an Error, it uses the position
// information from the error. If the error is an ErrorList, it merges all
// errors from that list into this list. Otherwise, it adds the error with no
// position information. It suppresses duplicate errors (same position and
// message).
func (l *ErrorList) Add(err error) {
	var e *Error
	var list *ErrorList

	switch {
	case err == nil:
		return

	case xerrors.As(err, &list):
		for _, e := range list.errs {
			l.Add(e)
		}
		return

	case xerrors.As(err, &e):

	default:
		e = &Error{Msg: err.Error()}
	}

	if !l.set[*e] {
		if l.set == nil {
			l.set = make(map[Error]bool)
		}
		l.errs = append(l.errs, e)
		l.set[*e] = true
	}
}

// Len returns the number of errors in l.
func (l *ErrorList) Len() int { return len(l.errs) }

// Error sorts and returns a "\n" separated list of formatted errors.
// Note that the result does not end in "\n" because the caller is
// expected to add that.
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}

	// Sort the error list.
	sort.SliceStable(l.errs, func(i, j int) bool {
		p1, p2 := l.errs[i].Pos, l.errs[j].Pos
		if p1.Filename != p2.Filename {
			return p1.Filename < p2.Filename
		}
		return p1.Line < p2.Line
	})

	// Collapse duplicate messages that appear in many locations on the
	// assumption that one construct is repeated throughout the tree and
	// the user doesn't want to be flooded.
	count := make(map[string]int)
	for _, e := range l.errs {
		count[e.Msg]++
	}

	// Print messages.
	buf := new(strings.Builder)
	for _, e := range l.errs {
		msg := e.Msg
		switch {
		case count[msg] > 3:
			n := count[e.Msg]
			count[e.Msg] = -1
			msg += fmt.Sprintf(" [× %d]", n)

		case count[msg] < 0:
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}

		if e.Pos.IsValid() {
			fmt.Fprintf(buf, "%s: %s", e.Pos, msg)
		} else {
			fmt.Fprintf(buf, "%s", msg)
		}
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
