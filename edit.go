// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniedit

// EnsureSection guarantees that the named section exists, creating it as a
// new (not yet written) section if needed. It writes no setting; a new
// section with nothing in it produces no output.
func (f *File) EnsureSection(name string) {
	f.section(name)
}

func (f *File) section(name string) *section {
	s := f.sections[name]
	if s == nil {
		s = newSection(name)
		f.order = append(f.order, name)
		f.sections[name] = s
	}
	return s
}

// Set sets the setting to the given value using the configured separator,
// creating the section if needed. Setting the same value twice leaves the
// document byte-identical to setting it once.
func (f *File) Set(sectionName, key, value string) {
	f.SetWithSeparator(sectionName, key, "", value)
}

// SetWithSeparator is Set with an explicit separator text, used if the
// setting has to be written on a new line. An empty sep means the
// configured separator. A setting that already has a line keeps that line's
// own separator text.
func (f *File) SetWithSeparator(sectionName, key, sep, value string) {
	s := f.section(sectionName)
	if key == "" {
		return
	}
	if sep == "" {
		sep = f.match.sep
	}
	if !s.isNew() {
		// An existing line is rewritten in place, keeping its leading
		// whitespace and separator text.
		for i := s.start; i <= s.end; i++ {
			t, ok := f.match.matchSetting(f.store.at(i))
			if !ok || t.key != key {
				continue
			}
			f.store.replace(i, t.indent+t.key+t.sep+value)
			s.put(key, value)
			return
		}
		// A commented-out line for the same key gets an active line
		// inserted directly below it; the comment stays as
		// documentation.
		for i := s.start; i <= s.end; i++ {
			ck, ok := f.match.matchCommented(f.store.at(i))
			if !ok || ck != key {
				continue
			}
			f.store.insert(i+1, f.indentFor(s)+key+sep+value)
			s.end++
			f.shiftAfter(sectionName, 1)
			s.put(key, value)
			return
		}
	}
	// No physical home yet: remember the setting for save time.
	for i := range s.additional {
		if s.additional[i].key == key {
			s.additional[i].sep = sep
			s.additional[i].value = value
			return
		}
	}
	s.additional = append(s.additional, setting{key: key, sep: sep, value: value})
}

// Delete removes the setting's line from the document. Settings with no
// physical line are left alone. Removing a named section's last setting
// removes the whole section, header included; the global section is never
// removed.
func (f *File) Delete(sectionName, key string) {
	s := f.sections[sectionName]
	if s == nil || s.isNew() {
		return
	}
	found := -1
	for i := s.start; i <= s.end; i++ {
		if t, ok := f.match.matchSetting(f.store.at(i)); ok && t.key == key {
			found = i
			break
		}
	}
	if found < 0 {
		return
	}
	f.store.remove(found)
	s.end--
	f.shiftAfter(sectionName, -1)
	delete(s.settings, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.name == "" || len(s.settings) > 0 || len(s.additional) > 0 {
		return
	}
	// The section emptied out: drop its header line, then the record
	// itself. This is a second splice, so later sections shift again.
	f.store.remove(s.headerIndex())
	f.shiftAfter(sectionName, -1)
	for i, n := range f.order {
		if n == sectionName {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	delete(f.sections, sectionName)
}

// shiftAfter adjusts the recorded spans of every section after the named
// one by delta lines. Sections are addressed by name, not position, so that
// cascading deletes cannot alias indices.
func (f *File) shiftAfter(name string, delta int) {
	after := false
	for _, n := range f.order {
		if n == name {
			after = true
			continue
		}
		if !after {
			continue
		}
		if s := f.sections[n]; !s.isNew() {
			s.start += delta
			s.end += delta
		}
	}
}
