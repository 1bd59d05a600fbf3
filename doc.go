// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package iniedit edits INI-style configuration text in place, preserving every
byte of formatting the caller did not ask to change.

Unlike a parser that rebuilds a canonical document, this package keeps the
original file as an ordered sequence of raw text lines and records, for each
section, the physical line range that represents it. Edits splice individual
lines into or out of that sequence and renumber the affected sections, so
comments, blank-line spacing, indentation, and commented-out settings all
survive a read-modify-write round trip untouched. Parsing a file and saving
it again without modification reproduces the original bytes exactly.

Syntax

A file consists of settings, one per line, optionally grouped into sections:

	timeout = 30

	[server]
	host = example.com
	; port = 8080

A section starts at a header line, its name surrounded by the configured
prefix and suffix ("[" and "]" by default), and ends at the next header or
the end of the file. Settings before the first header belong to the global
section, identified by the empty string (""). Lines whose first
non-whitespace character is a semicolon (';') or hash ('#') are comments.
Lines that match neither pattern are opaque: they are kept verbatim but
carry no settings.

There is no quoting, escaping, or type coercion; a setting's value is the
rest of its line with surrounding whitespace trimmed. This package is a text
editor, not a validator.

Editing model

Setting a value prefers the smallest possible diff. An existing line is
rewritten in place, keeping its own leading whitespace and separator text.
If the section instead contains a commented-out line for the same key, an
active line is inserted directly below it and the comment is kept as
documentation. Only settings with no physical home are appended to their
section at save time, before the section's trailing blank lines. Deleting a
named section's last setting removes the section entirely, header included;
the global section is never removed.

Files are not safe for concurrent mutation, and two editors over the same
path have no coordination between them.
*/
package iniedit
