package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const sample = `# Project Configuration

Intro text the tool must never touch.

## Project Overview

An internal billing service.

## Tech Stack

Go, Postgres, React.

## Active Capabilities

- code-reviewer
- react-specialist

## Notes

  indented user content
	and a tab line
`

func TestParseSerializeRoundTrip(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)
	require.Equal(t, sample, doc.Serialize())
}

func TestParseSerializeRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lineGen := rapid.OneOf(
			rapid.Just("## Heading\n"),
			rapid.Just("# Top\n"),
			rapid.Just("plain text\n"),
			rapid.Just("- bullet\n"),
			rapid.Just("\n"),
			rapid.Just("  indented\n"),
			rapid.Just("### Deep   \n"),
			rapid.Just("#NotAHeading\n"),
		)
		lines := rapid.SliceOfN(lineGen, 0, 40).Draw(t, "lines")
		text := strings.Join(lines, "")
		if rapid.Bool().Draw(t, "trimFinalNewline") {
			text = strings.TrimSuffix(text, "\n")
		}

		doc, err := Parse(text)
		require.NoError(t, err)
		require.Equal(t, text, doc.Serialize())
	})
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := Parse("# Title\n\xff\xfe\n")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseSections(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	require.Equal(t, "# Project Configuration\n", doc.Sections[0].HeadingLine)
	require.Equal(t, 1, doc.Sections[0].Level)
	require.True(t, doc.HasSection("Tech Stack"))
	require.True(t, doc.HasSection("Active Capabilities"))
	require.False(t, doc.HasSection("Missing"))

	// Trailing whitespace on a heading line is not part of the title but is
	// preserved in the heading line itself.
	doc, err = Parse("## Padded   \nbody\n")
	require.NoError(t, err)
	require.Equal(t, "Padded", doc.Sections[0].Title)
	require.Equal(t, "## Padded   \n", doc.Sections[0].HeadingLine)
}

func TestDuplicateTitles(t *testing.T) {
	doc, err := Parse("## A\n## B\n## A\n## B\n## C\n")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, doc.DuplicateTitles())

	doc, err = Parse(sample)
	require.NoError(t, err)
	require.Empty(t, doc.DuplicateTitles())
}

func TestActiveIDs(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{
		"code-reviewer":    true,
		"react-specialist": true,
	}, doc.ActiveIDs())
}

func TestActiveIDsMissingSection(t *testing.T) {
	doc, err := Parse("## Tech Stack\n\nGo.\n")
	require.NoError(t, err)
	require.Empty(t, doc.ActiveIDs())
}

func TestActiveIDsSkipsNonBullets(t *testing.T) {
	doc, err := Parse("## Active Capabilities\n\n- one\nnot a bullet\n-missing-space\n- \n  - two\n")
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"one": true, "two": true}, doc.ActiveIDs())
}

func TestWithActiveIDsRewritesOnlyOwnedSection(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	out := doc.WithActiveIDs(map[string]bool{"zeta": true, "alpha": true, "mid": true})
	got := out.Serialize()

	require.Contains(t, got, "## Active Capabilities\n\n- alpha\n- mid\n- zeta\n")
	// Everything outside the owned section is byte-identical.
	before, after, found := strings.Cut(sample, "## Active Capabilities")
	require.True(t, found)
	_, afterNotes, _ := strings.Cut(after, "## Notes")
	require.True(t, strings.HasPrefix(got, before))
	require.True(t, strings.HasSuffix(got, "## Notes"+afterNotes))

	// The source document is untouched.
	require.Equal(t, sample, doc.Serialize())
}

func TestWithActiveIDsAppendsMissingSection(t *testing.T) {
	doc, err := Parse("## Tech Stack\n\nGo.\n")
	require.NoError(t, err)

	out := doc.WithActiveIDs(map[string]bool{"code-reviewer": true})
	require.Equal(t, "## Tech Stack\n\nGo.\n## Active Capabilities\n\n- code-reviewer\n\n", out.Serialize())
}

func TestWithActiveIDsAppendEnsuresNewline(t *testing.T) {
	doc, err := Parse("## Tech Stack\n\nGo.")
	require.NoError(t, err)

	out := doc.WithActiveIDs(map[string]bool{"a": true})
	require.Contains(t, out.Serialize(), "Go.\n## Active Capabilities\n")
}

func TestWithActiveIDsEmptySet(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	out := doc.WithActiveIDs(nil)
	require.Contains(t, out.Serialize(), "## Active Capabilities\n\n\n## Notes\n")
	require.Empty(t, out.ActiveIDs())
}

func TestWithActiveIDsRoundTripsThroughActiveIDs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		idGen := rapid.StringMatching(`[a-z]{1,8}(-[a-z]{1,8})?`)
		ids := make(map[string]bool)
		for _, id := range rapid.SliceOfN(idGen, 0, 10).Draw(t, "ids") {
			ids[id] = true
		}

		doc, err := Parse(sample)
		require.NoError(t, err)
		out := doc.WithActiveIDs(ids)
		require.Equal(t, ids, out.ActiveIDs())

		// A second rewrite with the same set is a no-op.
		require.Equal(t, out.Serialize(), out.WithActiveIDs(ids).Serialize())
	})
}
