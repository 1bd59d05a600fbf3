// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniedit

import "context"

// FileSet is a list of files to obtain configuration from in descending
// order of precedence.
type FileSet []*File

// OpenFiles opens each path and returns the files as a FileSet. Missing
// files become empty documents bound to their paths, so a later Save can
// create them. OpenFiles stops on the first read error.
func OpenFiles(ctx context.Context, opts *Options, paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := Open(ctx, p, opts)
		if err != nil {
			return fset, err
		}
		fset = append(fset, f)
	}
	return fset, nil
}

// Get returns the value from the first file in the set that has the
// setting. If none does, Get returns the empty string.
func (fset FileSet) Get(section, key string) string {
	v, _ := fset.Lookup(section, key)
	return v
}

// Lookup is Get distinguishing an absent setting from an empty value.
func (fset FileSet) Lookup(section, key string) (string, bool) {
	for _, f := range fset {
		if v, ok := f.Lookup(section, key); ok {
			return v, true
		}
	}
	return "", false
}

// Section returns the merged settings of the named section across the set,
// values from higher-precedence files winning.
func (fset FileSet) Section(name string) map[string]string {
	var merged map[string]string
	for i := len(fset) - 1; i >= 0; i-- {
		for k, v := range fset[i].Section(name) {
			if merged == nil {
				merged = make(map[string]string)
			}
			merged[k] = v
		}
	}
	return merged
}

// HasSection reports whether any file in the set has the named section.
func (fset FileSet) HasSection(name string) bool {
	for _, f := range fset {
		if f.HasSection(name) {
			return true
		}
	}
	return false
}

// Set sets the setting in the first file and deletes it from all later
// files, so the new value wins regardless of earlier precedence. Set panics
// if the set is empty. Nil files in the set are ignored.
func (fset FileSet) Set(section, key, value string) {
	if fset[0] == nil {
		fset[0] = New(nil)
	}
	fset[0].Set(section, key, value)
	fset[1:].Delete(section, key)
}

// Delete removes the setting from every file in the set. Nil files in the
// set are ignored.
func (fset FileSet) Delete(section, key string) {
	for _, f := range fset {
		if f != nil {
			f.Delete(section, key)
		}
	}
}

// Save writes every file in the set back to its backing path, stopping on
// the first failure.
func (fset FileSet) Save(ctx context.Context) error {
	for _, f := range fset {
		if f == nil {
			continue
		}
		if err := f.Save(ctx); err != nil {
			return err
		}
	}
	return nil
}
