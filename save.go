// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniedit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	"zombiezen.com/go/log"
)

// MarshalText serializes the document, replaying unmodified lines verbatim
// and materializing the settings added since parse.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	var buf []byte
	for pos, name := range f.order {
		s := f.sections[name]
		last := pos == len(f.order)-1
		if s.isNew() {
			buf = f.appendNewSection(buf, s, last)
		} else {
			buf = f.appendExistingSection(buf, s)
		}
	}
	return buf, nil
}

// appendNewSection writes a section that has no physical lines yet. A new
// section with nothing to write produces no output at all, not even a bare
// header.
func (f *File) appendNewSection(buf []byte, s *section, last bool) []byte {
	if len(s.additional) == 0 {
		return buf
	}
	if s.name != "" {
		// Separate the header from whatever came before, unless
		// nothing did or it already ends in a blank line.
		if len(buf) > 0 && !bytes.HasSuffix(buf, []byte("\n\n")) {
			buf = append(buf, '\n')
		}
		buf = append(buf, f.match.prefix+s.name+f.match.suffix...)
		buf = append(buf, '\n')
	}
	for _, a := range s.additional {
		buf = append(buf, f.indentFor(s)+a.key+a.sep+a.value...)
		buf = append(buf, '\n')
	}
	if !last {
		buf = append(buf, '\n')
	}
	return buf
}

// appendExistingSection replays the section's original lines, header
// included. Pure-whitespace lines are held back so that settings added
// since parse land before the section's trailing blank lines rather than
// after them.
func (f *File) appendExistingSection(buf []byte, s *section) []byte {
	var blanks []string
	first := s.start
	if h := s.headerIndex(); h >= 0 {
		first = h
	}
	for i := first; i <= s.end; i++ {
		line := f.store.at(i)
		if strings.TrimSpace(line) == "" {
			blanks = append(blanks, line)
			continue
		}
		for _, b := range blanks {
			buf = append(buf, b...)
			buf = append(buf, '\n')
		}
		blanks = blanks[:0]
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	for _, a := range s.additional {
		buf = append(buf, f.indentFor(s)+a.key+a.sep+a.value...)
		buf = append(buf, '\n')
	}
	for _, b := range blanks {
		buf = append(buf, b...)
		buf = append(buf, '\n')
	}
	return buf
}

// UnmarshalText replaces the document with one parsed from data using
// default options. The backing path, if any, is kept.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	parsed.path = f.path
	*f = *parsed
	return nil
}

// Save writes the document back to the path it was opened from, truncating
// whatever was there. Failure to write the destination is the only error
// this package propagates; Save on a File without a backing path reports
// one too.
func (f *File) Save(ctx context.Context) error {
	if f.path == "" {
		return errors.New("save ini file: no backing path")
	}
	text, err := f.MarshalText()
	if err != nil {
		return fmt.Errorf("save ini file: %s: %w", f.path, err)
	}
	if err := ioutil.WriteFile(f.path, text, 0666); err != nil {
		return fmt.Errorf("save ini file: %w", err)
	}
	log.Debugf(ctx, "iniedit: wrote %d bytes to %s", len(text), f.path)
	return nil
}
