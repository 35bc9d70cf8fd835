// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Orimig migrates Ori source trees to the block syntax.
//
// Usage:
//
//	orimig [-n] [-diff] [-v] script [path ...]
//
// Orimig applies a script of migration commands to the files under
// the given paths, or under the current directory if none are given.
// For example, to convert the code blocks and then terminate
// expression-bodied declarations:
//
//	orimig '
//		blocks
//		semis
//	'
//
// By default, orimig writes changes back to the disk.
// The -diff flag causes orimig to print a diff of the intended changes instead,
// and the -n flag causes it to list the files it would write.
// The -v flag reports what happened to each file.
//
// A script is a sequence of commands, one per line.
// Comments are introduced by # and extend to the end of the line.
// Commands may be broken across lines by ending all but the last
// with a trailing backslash (before any comment).
//
// Directories named target, build, out or node_modules, and hidden
// directories, are not searched. Files named on the command line are
// always loaded.
//
// Each command runs over the result of the one before it. After a command
// runs, orimig runs it a second time over its own output; if that changes
// anything, orimig stops with an error and writes nothing.
//
// A file that cannot be scanned, such as one with an unterminated string
// literal, is reported and left unchanged; the other files are still migrated.
//
// # Blocks
//
// The blocks command rewrites call-style blocks in .ori files and in
// the ```ori fences of .md files:
//
//	blocks [md|ori]
//
// With an argument, only files of that kind are rewritten.
//
// The forms rewritten are, in order:
//
//	loop(run(a, b))        ->  loop { a; b }
//	unsafe(run(a, b))      ->  unsafe { a; b }
//	for x in xs do run(a)  ->  for x in xs do { a }
//	loop(e)                ->  loop { e }
//	match(x, A -> a)       ->  match x { A -> a }
//	try(a, b)              ->  try { a; b }
//	run(a, b)              ->  { a; b }
//
// Inside a converted block, a comma ending a statement becomes a semicolon,
// and the comma after the block's final expression is removed:
//
//	run(
//	    let x = f(),
//	    x + 1,
//	)
//
// becomes
//
//	{
//	    let x = f();
//	    x + 1
//	}
//
// Occurrences inside string literals and comments are never rewritten,
// nor are method calls such as x.run(y).
//
// Lines mentioning pre_check: or post_check: have no mechanical
// translation. They are listed after the summary for migration by hand.
//
// # Semis
//
// The semis command adds the semicolon that ends an expression-bodied
// declaration in .ori files:
//
//	@double (x: int) -> int = x * 2;
//	type Id = int;
//	let $limit = 10;
//
// Declarations with a block body are left alone. A body continues onto
// following lines while brackets are open, while a line ends in an operator
// or keyword such as + or then, and while the next line starts with . or |>.
//
// # Strings
//
// The strings command applies the semis rewrite to Rust string and raw
// string literals that hold Ori declarations, such as compiler test fixtures.
// Strings using escapes other than \n, \" and \\ are left alone.
//
// # Tests
//
// The tests command moves each inline test module of a .rs file,
//
//	#[cfg(test)]
//	mod tests {
//	    ...
//	}
//
// to a file of its own, leaving the declaration
//
//	#[cfg(test)]
//	mod tests;
//
// The module of foo.rs moves to foo/tests.rs; that of mod.rs, lib.rs or
// main.rs moves to tests.rs in the same directory. Its contents lose one
// level of indentation. Lint attributes such as #[allow(...)] between
// #[cfg(test)] and the module stay with the declaration. A file whose
// destination already exists is skipped.
package main
