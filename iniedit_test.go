// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniedit

import (
	"context"
	"encoding"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Ensure File satisfies the encoding.Text* interfaces.
var _ interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = new(File)

func TestNil(t *testing.T) {
	f := (*File)(nil)
	if got := f.Get("foo", "bar"); got != "" {
		t.Errorf("Get(...) = %q; want empty", got)
	}
	if _, ok := f.Lookup("foo", "bar"); ok {
		t.Error("Lookup(...) ok = true; want false")
	}
	if got := f.SectionNames(); len(got) > 0 {
		t.Errorf("SectionNames() = %q; want empty", got)
	}
	if f.HasSection("foo") {
		t.Error("HasSection(...) = true; want false")
	}
	if got := f.Section("foo"); len(got) > 0 {
		t.Errorf("Section(...) = %q; want empty", got)
	}
	if got, err := f.MarshalText(); err != nil {
		t.Errorf("MarshalText(): %v", err)
	} else if len(got) > 0 {
		t.Errorf("MarshalText() = %q; want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		source string
		opts   *Options
	}{
		{
			name: "Empty",
		},
		{
			name:   "GlobalOnly",
			source: "foo = 1\n",
		},
		{
			name:   "BlankLines",
			source: "\n\nfoo = 1\n\n",
		},
		{
			name: "CommentsAndSections",
			source: "; header comment\n" +
				"\n" +
				"[server]\n" +
				"    host = example.com\n" +
				"    port = 8080\n" +
				"\n" +
				"; disabled:\n" +
				"; debug = true\n" +
				"\n" +
				"[client]\n" +
				"\tretries = 3\n" +
				"\n" +
				"\n",
		},
		{
			name:   "CRLF",
			source: "a = 1\r\n\r\n[s]\r\nb = 2\r\n",
		},
		{
			name:   "OpaqueLines",
			source: "key only line\nnot-a-setting\n[a]\nfoo = bar = baz\n",
		},
		{
			name:   "HeaderOnlySection",
			source: "[empty]\n",
		},
		{
			name:   "MixedIndentation",
			source: "[a]\n  one = 1\n\t\ttwo = 2\nthree = 3\n",
		},
		{
			name:   "CustomSeparator",
			source: "host: example.com\n[db]\nport: 5432\n",
			opts:   &Options{Separator: ": "},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(test.source), test.opts)
			if err != nil {
				t.Fatal("Parse:", err)
			}
			got, err := f.MarshalText()
			if err != nil {
				t.Fatal("MarshalText:", err)
			}
			if diff := cmp.Diff(test.source, string(got)); diff != "" {
				t.Errorf("MarshalText (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseAccess(t *testing.T) {
	const source = "timeout = 30\n" +
		"\n" +
		"[server]\n" +
		"  host = example.com\n" +
		"  ; port = 8080\n" +
		"opaque junk line\n" +
		"[client]\n" +
		"retries=3\n"
	f, err := Parse(strings.NewReader(source), nil)
	if err != nil {
		t.Fatal(err)
	}

	wantNames := []string{"", "server", "client"}
	if diff := cmp.Diff(wantNames, f.SectionNames()); diff != "" {
		t.Errorf("SectionNames() (-want +got):\n%s", diff)
	}
	if !f.HasSection("server") {
		t.Error(`HasSection("server") = false; want true`)
	}
	if f.HasSection("bogus") {
		t.Error(`HasSection("bogus") = true; want false`)
	}

	if got := f.Get("", "timeout"); got != "30" {
		t.Errorf(`Get("", "timeout") = %q; want "30"`, got)
	}
	if got := f.Get("server", "host"); got != "example.com" {
		t.Errorf(`Get("server", "host") = %q; want "example.com"`, got)
	}
	if got := f.Get("client", "retries"); got != "3" {
		t.Errorf(`Get("client", "retries") = %q; want "3"`, got)
	}
	// A commented-out setting is not a setting.
	if _, ok := f.Lookup("server", "port"); ok {
		t.Error(`Lookup("server", "port") ok = true; want false`)
	}
	if _, ok := f.Lookup("bogus", "key"); ok {
		t.Error(`Lookup("bogus", "key") ok = true; want false`)
	}

	wantSection := map[string]string{"host": "example.com"}
	if diff := cmp.Diff(wantSection, f.Section("server")); diff != "" {
		t.Errorf(`Section("server") (-want +got):`+"\n%s", diff)
	}
	if got := f.Section("bogus"); got != nil {
		t.Errorf(`Section("bogus") = %v; want nil`, got)
	}
}

func TestParseBOM(t *testing.T) {
	f, err := Parse(strings.NewReader("\ufefffoo = 1\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Get("", "foo"); got != "1" {
		t.Errorf(`Get("", "foo") = %q; want "1"`, got)
	}
	got, err := f.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("foo = 1\n", string(got)); diff != "" {
		t.Errorf("MarshalText (-want +got):\n%s", diff)
	}
}

func TestParseHeaderOptions(t *testing.T) {
	opts := &Options{SectionPrefix: "<", SectionSuffix: ">"}
	f, err := Parse(strings.NewReader("<sec>\nfoo = 1\n"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Get("sec", "foo"); got != "1" {
		t.Errorf(`Get("sec", "foo") = %q; want "1"`, got)
	}
	f.Set("new", "bar", "2")
	got, err := f.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	want := "<sec>\nfoo = 1\n\n<new>\nbar = 2\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("MarshalText (-want +got):\n%s", diff)
	}
}

func TestUnmarshalText(t *testing.T) {
	f := new(File)
	if err := f.UnmarshalText([]byte("[a]\nfoo = 1\n")); err != nil {
		t.Fatal(err)
	}
	if got := f.Get("a", "foo"); got != "1" {
		t.Errorf(`Get("a", "foo") = %q; want "1"`, got)
	}
}

func TestOpenSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.ini")

	f, err := Open(ctx, path, nil)
	if err != nil {
		t.Fatal("Open:", err)
	}
	if diff := cmp.Diff([]string{""}, f.SectionNames()); diff != "" {
		t.Errorf("SectionNames() of missing file (-want +got):\n%s", diff)
	}

	f.Set("server", "host", "example.com")
	if err := f.Save(ctx); err != nil {
		t.Fatal("Save:", err)
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	const want = "[server]\nhost = example.com\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("saved file (-want +got):\n%s", diff)
	}

	// Reopen, edit in place, and save again: the file is truncated.
	f, err = Open(ctx, path, nil)
	if err != nil {
		t.Fatal("Open:", err)
	}
	f.Set("server", "host", "other")
	if err := f.Save(ctx); err != nil {
		t.Fatal("Save:", err)
	}
	data, err = ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("[server]\nhost = other\n", string(data)); diff != "" {
		t.Errorf("resaved file (-want +got):\n%s", diff)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	f := New(nil)
	if err := f.Save(context.Background()); err == nil {
		t.Error("Save() on pathless file = nil; want error")
	}
}

func TestSectionCopies(t *testing.T) {
	f, err := Parse(strings.NewReader("[a]\nfoo = 1\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := f.Section("a")
	got["foo"] = "tampered"
	if v := f.Get("a", "foo"); v != "1" {
		t.Errorf(`Get("a", "foo") after mutating Section copy = %q; want "1"`, v)
	}
}
