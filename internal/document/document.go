// Package document parses and rewrites the per-project configuration
// document (.roster/project.md). The document is an ordered list of markdown
// sections; roster owns exactly one of them (the Active Capabilities section)
// and preserves every other byte of the file verbatim, so round-tripping an
// unmodified document through Parse and Serialize is byte-identical.
package document

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// ActiveSectionTitle is the heading of the section roster owns.
const ActiveSectionTitle = "Active Capabilities"

// activeSectionHeading is the heading line synthesized when the section is
// absent and must be created on first write.
const activeSectionHeading = "## " + ActiveSectionTitle + "\n"

// ParseError indicates the document text could not be parsed. It is fatal
// for the operation in progress; the document is never partially rewritten.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing document: %v", e.Err)
	}
	return fmt.Sprintf("parsing document %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Section is one heading-delimited region of the document.
// HeadingLine and Body are verbatim text, including line terminators, so
// serialization reproduces the source exactly.
type Section struct {
	HeadingLine string // e.g. "## Tech Stack\n"
	Title       string // e.g. "Tech Stack"
	Level       int    // number of leading '#'
	Body        string // everything up to the next heading, verbatim
}

// Document is the parsed configuration document.
type Document struct {
	Preamble string // text before the first heading, verbatim
	Sections []Section
}

// Heading lines are a run of '#' characters followed by a space.
var headingPattern = regexp.MustCompile(`^(#+) (.*?)\s*$`)

// Parse splits text into sections on heading-marker lines. All body text is
// preserved verbatim, including whitespace and unrecognized sections.
func Parse(text string) (*Document, error) {
	if !utf8.ValidString(text) {
		return nil, &ParseError{Err: fmt.Errorf("document is not valid UTF-8")}
	}

	doc := &Document{}
	var current *Section

	for _, line := range splitAfterLines(text) {
		m := headingPattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m != nil {
			doc.Sections = append(doc.Sections, Section{
				HeadingLine: line,
				Title:       m[2],
				Level:       len(m[1]),
			})
			current = &doc.Sections[len(doc.Sections)-1]
			continue
		}
		if current == nil {
			doc.Preamble += line
		} else {
			current.Body += line
		}
	}

	return doc, nil
}

// splitAfterLines splits text into lines, each retaining its terminator.
func splitAfterLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	// SplitAfter yields a trailing empty element when text ends with "\n".
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Serialize reassembles the document text.
func (d *Document) Serialize() string {
	var b strings.Builder
	b.WriteString(d.Preamble)
	for _, s := range d.Sections {
		b.WriteString(s.HeadingLine)
		b.WriteString(s.Body)
	}
	return b.String()
}

// Section returns the first section with the given title, or nil.
func (d *Document) Section(title string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Title == title {
			return &d.Sections[i]
		}
	}
	return nil
}

// HasSection reports whether a section with the given title exists.
func (d *Document) HasSection(title string) bool {
	return d.Section(title) != nil
}

// DuplicateTitles returns section titles that appear more than once, in first
// appearance order.
func (d *Document) DuplicateTitles() []string {
	seen := make(map[string]int)
	var dups []string
	for _, s := range d.Sections {
		seen[s.Title]++
		if seen[s.Title] == 2 {
			dups = append(dups, s.Title)
		}
	}
	return dups
}

// ActiveIDs extracts the activation set from the Active Capabilities section:
// one capability id per "- " bullet line. A missing section yields an empty
// set, not an error. Duplicate bullets collapse into the set.
func (d *Document) ActiveIDs() map[string]bool {
	ids := make(map[string]bool)
	s := d.Section(ActiveSectionTitle)
	if s == nil {
		return ids
	}
	for _, line := range strings.Split(s.Body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		if id := strings.TrimSpace(line[2:]); id != "" {
			ids[id] = true
		}
	}
	return ids
}

// WithActiveIDs returns a new document in which only the Active Capabilities
// section body is replaced: the ids serialized sorted, one bullet per line,
// duplicate-free. Ids absent from the catalog are the caller's concern and
// are written like any other, never silently dropped. Every other section,
// including ordering, is untouched. If the section does not exist it is
// appended at the end with the fixed heading.
func (d *Document) WithActiveIDs(ids map[string]bool) *Document {
	out := &Document{
		Preamble: d.Preamble,
		Sections: make([]Section, len(d.Sections)),
	}
	copy(out.Sections, d.Sections)

	body := activeBody(ids)

	if s := out.Section(ActiveSectionTitle); s != nil {
		s.Body = body
		return out
	}

	// Synthesize the section at the end. Make sure the preceding text ends
	// with a newline so the heading starts on its own line.
	if n := len(out.Sections); n > 0 {
		last := &out.Sections[n-1]
		if last.Body == "" {
			if !strings.HasSuffix(last.HeadingLine, "\n") {
				last.HeadingLine += "\n"
			}
		} else if !strings.HasSuffix(last.Body, "\n") {
			last.Body += "\n"
		}
	} else if out.Preamble != "" && !strings.HasSuffix(out.Preamble, "\n") {
		out.Preamble += "\n"
	}

	out.Sections = append(out.Sections, Section{
		HeadingLine: activeSectionHeading,
		Title:       ActiveSectionTitle,
		Level:       2,
		Body:        body,
	})
	return out
}

// activeBody renders the owned section body: a blank line, sorted bullets,
// and a blank line before whatever follows.
func activeBody(ids map[string]bool) string {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	var b strings.Builder
	b.WriteString("\n")
	for _, id := range sorted {
		b.WriteString("- ")
		b.WriteString(id)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
