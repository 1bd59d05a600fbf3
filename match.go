// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniedit

import (
	"regexp"
	"strings"
)

// Defaults used when the corresponding Options fields are left empty.
const (
	DefaultSeparator     = " = "
	DefaultSectionPrefix = "["
	DefaultSectionSuffix = "]"
)

// Options holds optional formatting parameters. The zero value (or a nil
// *Options) uses the defaults.
type Options struct {
	// Separator is the literal text written between a key and its value,
	// for example " = " or ": ". A separator consisting entirely of
	// whitespace matches any run of whitespace on existing lines but is
	// written verbatim. Defaults to " = ".
	Separator string

	// SectionPrefix and SectionSuffix surround section names on header
	// lines. They default to "[" and "]".
	SectionPrefix string
	SectionSuffix string

	// IndentChar is the character newly written setting lines are
	// indented with. Defaults to a space.
	IndentChar string

	// Indent, if positive, fixes the indentation width of newly written
	// setting lines. If zero, each section's own minimum observed
	// indentation is used.
	Indent int
}

func (o *Options) separator() string {
	if o == nil || o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

func (o *Options) sectionPrefix() string {
	if o == nil || o.SectionPrefix == "" {
		return DefaultSectionPrefix
	}
	return o.SectionPrefix
}

func (o *Options) sectionSuffix() string {
	if o == nil || o.SectionSuffix == "" {
		return DefaultSectionSuffix
	}
	return o.SectionSuffix
}

func (o *Options) indentChar() string {
	if o == nil || o.IndentChar == "" {
		return " "
	}
	return o.IndentChar
}

func (o *Options) indent() int {
	if o == nil || o.Indent < 0 {
		return 0
	}
	return o.Indent
}

// A matcher holds the line patterns derived from one Options value. The
// setting and commented-setting patterns share a separator fragment so that
// a line classifies as at most one kind.
type matcher struct {
	sep       string // literal separator text for newly written lines
	prefix    string
	suffix    string
	header    *regexp.Regexp
	setting   *regexp.Regexp
	commented *regexp.Regexp
}

func newMatcher(o *Options) *matcher {
	sep := o.separator()
	frag := `\s*` + regexp.QuoteMeta(strings.TrimSpace(sep)) + `\s*`
	if strings.TrimSpace(sep) == "" {
		// A whitespace-only separator matches any run of whitespace.
		frag = `\s+`
	}
	prefix, suffix := o.sectionPrefix(), o.sectionSuffix()
	return &matcher{
		sep:       sep,
		prefix:    prefix,
		suffix:    suffix,
		header:    regexp.MustCompile(`^\s*` + regexp.QuoteMeta(prefix) + `(.*)` + regexp.QuoteMeta(suffix) + `\s*$`),
		setting:   regexp.MustCompile(`^(\s*)([^#;\s]+?)(` + frag + `)(.*)$`),
		commented: regexp.MustCompile(`^(\s*)[#;]+\s*([^#;\s]+?)` + frag + `(.*)$`),
	}
}

// A settingLine is the decomposition of a line that matched the setting
// pattern.
type settingLine struct {
	indent string
	key    string
	sep    string
	value  string
}

func (m *matcher) matchHeader(line string) (name string, ok bool) {
	sub := m.header.FindStringSubmatch(line)
	if sub == nil {
		return "", false
	}
	return strings.TrimSpace(sub[1]), true
}

func (m *matcher) matchSetting(line string) (settingLine, bool) {
	sub := m.setting.FindStringSubmatch(line)
	if sub == nil {
		return settingLine{}, false
	}
	return settingLine{
		indent: sub[1],
		key:    sub[2],
		sep:    sub[3],
		value:  strings.TrimSpace(sub[4]),
	}, true
}

// matchCommented reports the key of a commented-out setting line. Only the
// key matters: promotion inserts a fresh line rather than editing the
// comment.
func (m *matcher) matchCommented(line string) (key string, ok bool) {
	sub := m.commented.FindStringSubmatch(line)
	if sub == nil {
		return "", false
	}
	return sub[2], true
}
