// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniedit

import "strings"

// A lineStore is the ordered sequence of raw text lines backing a file.
// Lines do not include their trailing newline. Indices are stable between
// mutations, but any insert or remove shifts every later index, so callers
// must renumber dependent records immediately after splicing.
type lineStore struct {
	lines []string
}

// splitLines splits text into lines without their newlines. A trailing
// newline does not produce a final empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (st *lineStore) len() int { return len(st.lines) }

func (st *lineStore) at(i int) string { return st.lines[i] }

func (st *lineStore) replace(i int, line string) { st.lines[i] = line }

// insert splices line in before index i. i == len appends.
func (st *lineStore) insert(i int, line string) {
	st.lines = append(st.lines, "")
	copy(st.lines[i+1:], st.lines[i:])
	st.lines[i] = line
}

// remove deletes the line at index i.
func (st *lineStore) remove(i int) {
	copy(st.lines[i:], st.lines[i+1:])
	// Zero out truncated element for garbage collection.
	st.lines[len(st.lines)-1] = ""
	st.lines = st.lines[:len(st.lines)-1]
}

// A lineCursor is a single forward pass over a lineStore with one line of
// lookahead. It is not restartable.
type lineCursor struct {
	store *lineStore
	pos   int
}

// peek returns the next line and its index without consuming it. ok is
// false once the input is exhausted.
func (c *lineCursor) peek() (line string, i int, ok bool) {
	if c.pos >= c.store.len() {
		return "", c.store.len(), false
	}
	return c.store.at(c.pos), c.pos, true
}

// next consumes and returns the next line and its index.
func (c *lineCursor) next() (line string, i int, ok bool) {
	line, i, ok = c.peek()
	if ok {
		c.pos++
	}
	return line, i, ok
}
