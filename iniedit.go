// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniedit

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"zombiezen.com/go/log"
)

// A File is an INI document held as raw text lines plus the section records
// needed to edit individual settings without disturbing the surrounding
// formatting. Files are safe for concurrent reads but not for concurrent
// mutation.
type File struct {
	path        string
	match       *matcher
	indentChar  string
	indentWidth int

	store    *lineStore
	order    []string // section names in file order; "" is always first
	sections map[string]*section
}

// A section records one named group of settings and the physical line range
// that represents it. start and end delimit the body inclusively, header
// line excluded; start < 0 marks a section with no physical lines yet.
type section struct {
	name       string
	start, end int
	settings   map[string]string
	order      []string  // settings keys in first-seen order
	additional []setting // set since parse, written at save time
	indent     int       // minimum observed leading-whitespace width; -1 if none
}

// A setting is a key/value pair pending a physical line of its own.
type setting struct {
	key   string
	sep   string
	value string
}

func newSection(name string) *section {
	return &section{
		name:     name,
		start:    -1,
		end:      -1,
		settings: make(map[string]string),
		indent:   -1,
	}
}

func (s *section) isNew() bool { return s.start < 0 }

// headerIndex returns the line index of the section's header, or -1 for the
// global section.
func (s *section) headerIndex() int {
	if s.name == "" || s.isNew() {
		return -1
	}
	return s.start - 1
}

func (s *section) put(key, value string) {
	if _, ok := s.settings[key]; !ok {
		s.order = append(s.order, key)
	}
	s.settings[key] = value
}

// New returns an empty document.
func New(opts *Options) *File {
	return parseLines(nil, opts)
}

// Parse reads r to the end and builds a document from its lines. A leading
// UTF-8 byte order mark is discarded. Nil options are treated identically
// as passing the zero value. The only possible errors come from r.
func Parse(r io.Reader, opts *Options) (*File, error) {
	data, err := ioutil.ReadAll(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	return parseLines(splitLines(string(data)), opts), nil
}

// Open reads the file at path. A missing file yields an empty document
// bound to path rather than an error, so that a configuration file can be
// created on first Save.
func Open(ctx context.Context, path string, opts *Options) (*File, error) {
	r, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Debugf(ctx, "iniedit: %s does not exist; starting empty", path)
		f := New(opts)
		f.path = path
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ini file: %w", err)
	}
	defer r.Close()
	f, err := Parse(r, opts)
	if err != nil {
		return nil, fmt.Errorf("open ini file: %s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// parseLines builds the section records in a single cursor pass. The global
// section always exists; it stays "new" when no lines precede the first
// header, which is what tells the save path not to print a leading blank
// line.
func parseLines(lines []string, opts *Options) *File {
	f := &File{
		match:       newMatcher(opts),
		indentChar:  opts.indentChar(),
		indentWidth: opts.indent(),
		store:       &lineStore{lines: lines},
		order:       []string{""},
		sections:    make(map[string]*section),
	}
	curr := newSection("")
	f.sections[""] = curr

	c := &lineCursor{store: f.store}
	for {
		line, i, ok := c.next()
		if !ok {
			break
		}
		if name, ok := f.match.matchHeader(line); ok {
			next, exists := f.sections[name]
			if !exists {
				next = newSection(name)
				f.order = append(f.order, name)
				f.sections[name] = next
			}
			// A duplicate header re-points the record at the
			// newest block.
			next.start, next.end = i+1, i
			curr = next
			continue
		}
		if curr.start < 0 {
			// First body line of the global section.
			curr.start = i
		}
		curr.end = i
		if t, ok := f.match.matchSetting(line); ok {
			curr.put(t.key, t.value)
			if w := len(t.indent); curr.indent < 0 || w < curr.indent {
				curr.indent = w
			}
		}
	}
	return f
}

// SectionNames returns the names of the document's sections in file order.
// The global section is always first, under the name "".
func (f *File) SectionNames() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}

// HasSection reports whether the named section exists.
func (f *File) HasSection(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.sections[name]
	return ok
}

// Get returns the current value of the setting, or the empty string if the
// section or setting does not exist. Passing an empty section name reads
// the settings outside any section.
func (f *File) Get(section, key string) string {
	v, _ := f.Lookup(section, key)
	return v
}

// Lookup is Get distinguishing an absent setting from an empty value.
func (f *File) Lookup(sectionName, key string) (value string, ok bool) {
	if f == nil {
		return "", false
	}
	s := f.sections[sectionName]
	if s == nil {
		return "", false
	}
	if v, ok := s.settings[key]; ok {
		return v, true
	}
	for _, a := range s.additional {
		if a.key == key {
			return a.value, true
		}
	}
	return "", false
}

// Section returns a copy of the named section's current settings, including
// ones set since parse. It returns nil for an unknown section.
func (f *File) Section(name string) map[string]string {
	if f == nil {
		return nil
	}
	s := f.sections[name]
	if s == nil {
		return nil
	}
	result := make(map[string]string, len(s.settings)+len(s.additional))
	for k, v := range s.settings {
		result[k] = v
	}
	for _, a := range s.additional {
		result[a.key] = a.value
	}
	return result
}

// SettingNames returns the names of the section's current settings in the
// order they appear in the file, settings still pending a line of their own
// last.
func (f *File) SettingNames(section string) []string {
	if f == nil {
		return nil
	}
	s := f.sections[section]
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.order)+len(s.additional))
	names = append(names, s.order...)
	for _, a := range s.additional {
		names = append(names, a.key)
	}
	return names
}

// indentFor returns the leading whitespace for a newly written setting
// line: the fixed configured width if any, else the section's own minimum
// observed indentation, else none.
func (f *File) indentFor(s *section) string {
	w := f.indentWidth
	if w <= 0 {
		w = s.indent
	}
	if w <= 0 {
		return ""
	}
	return strings.Repeat(f.indentChar, w)
}
