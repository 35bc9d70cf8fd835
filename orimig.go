// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"rsc.io/orimig/refactor"
)

var (
	showDiff = flag.Bool("diff", false, "show diff instead of writing files")
	dryRun   = flag.Bool("n", false, "list the files that would change instead of writing them")
	verbose  = flag.Bool("v", false, "report what happened to each file")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: orimig [-n] [-diff] [-v] script [path ...]\n")
	os.Exit(2)
}

func main() {
	log.SetPrefix("orimig: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
	}
	script, paths := args[0], args[1:]

	r, err := refactor.New(".")
	if err != nil {
		log.Fatal(err)
	}
	r.ShowDiff = *showDiff
	r.DryRun = *dryRun
	r.Verbose = *verbose
	if err := run(r, script, paths); err != nil {
		log.Fatal(err)
	}
}

var cmds = map[string]func(*refactor.Snapshot, string) (*summary, error){
	"blocks":  cmdBlocks,
	"semis":   cmdSemis,
	"strings": cmdStrings,
	"tests":   cmdTests,
}

func run(r *refactor.Refactor, script string, paths []string) error {
	var snap *refactor.Snapshot

	text := script
	for text != "" {
		var line string
		line, text, _ = cut(text, "\n")
		line = trimComments(line)
		for strings.HasSuffix(line, `\`) && text != "" {
			var l string
			l, text, _ = cut(text, "\n")
			line = line[:len(line)-1] + "\n" + l
			line = trimComments(line)
		}
		line = strings.TrimLeft(line, " \t\n")
		if line == "" {
			continue
		}
		cmd, args, _ := cutAny(line, " \t")

		fn := cmds[cmd]
		if fn == nil {
			return newErrUsage("unknown command %s", cmd)
		}

		if snap == nil {
			var err error
			snap, err = r.Load(paths...)
			if err != nil {
				return err
			}
		} else {
			snap = snap.Apply()
		}

		sum, err := fn(snap, args)
		if err != nil {
			return err
		}

		// Running the command again over its own output must change nothing.
		check := snap.Apply()
		before, err := check.Hash()
		if err != nil {
			return err
		}
		if _, err := fn(check, args); err != nil {
			return err
		}
		after, err := check.Hash()
		if err != nil {
			return err
		}
		if before != after {
			return &errConverge{cmd, check.Edits()}
		}

		sum.print(r.Stdout, r.Verbose)
	}

	if snap == nil {
		// Did nothing.
		return nil
	}

	// Files that could not be processed were left alone; say so but carry on.
	if err := snap.Errors.Err(); err != nil {
		fmt.Fprintf(r.Stderr, "%s\n", err)
	}

	if r.ShowDiff {
		d, err := snap.Diff()
		if err != nil {
			return err
		}
		r.Stdout.Write(d)
		return nil
	}

	if r.DryRun {
		for _, name := range snap.Modified() {
			fmt.Fprintf(r.Stdout, "would write %s\n", name)
		}
		return nil
	}

	return snap.Write()
}

func trimComments(line string) string {
	// Cut line at # comment, being careful not to cut inside quoted text.
	var q byte
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case q:
			q = 0
		case '\'', '"', '`':
			q = c
		case '\\':
			if q == '\'' || q == '"' {
				i++
			}
		case '#':
			if q == 0 {
				line = line[:i]
			}
		}
	}
	return strings.TrimSpace(line)
}

func cut(s, sep string) (before, after string, ok bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

func cutAny(s, any string) (before, after string, ok bool) {
	if i := strings.IndexAny(s, any); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[:i], s[i+size:], true
	}
	return s, "", false
}
