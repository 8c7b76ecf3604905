package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtiforge/qtiforge/internal/qti"
	"github.com/qtiforge/qtiforge/internal/qti/parser"
)

// Exports a package to disk and reads it back through the parser, checking
// the drafts survive the round trip.
func TestPackageRoundTrip(t *testing.T) {
	reg := qti.NewIDRegistry()

	choice := NewChoiceDraft()
	choice.Title = "Capital"
	choice.Prompt = "Pick the capital of France."
	choice.Choices = []string{"Paris", "Lyon", "Nice"}
	choice.Correct = []int{0}
	choice.Points = 1

	match := NewMatchDraft()
	match.Title = "Capitals"
	match.Prompt = "Match them."
	match.Rows = []MatchRow{
		{Left: "Paris", Right: "France"},
		{Left: "Rome", Right: "Italy"},
	}
	match.Points = 2

	m := qti.NewManifest(reg, "Round Trip")
	for _, d := range []Draft{choice, match} {
		item, err := d.BuildItem(reg)
		require.NoError(t, err)
		m.Add(item)
	}

	dir := t.TempDir()
	require.NoError(t, m.Write(dir))

	_, itemFiles, err := parser.ParseManifest(dir)
	require.NoError(t, err)
	require.Len(t, itemFiles, 2)

	var parsed []parser.ParsedItem
	for _, rel := range itemFiles {
		it, err := parser.ParseItemFile(dir, rel)
		require.NoError(t, err)
		parsed = append(parsed, it)
	}

	drafts, err := DraftsFromPackage(parsed)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	gotChoice, ok := drafts[0].(*ChoiceDraft)
	require.True(t, ok)
	assert.Equal(t, "Capital", gotChoice.Title)
	assert.Equal(t, choice.Choices, gotChoice.Choices)
	assert.Equal(t, []int{0}, gotChoice.Correct)
	assert.Equal(t, 1.0, gotChoice.Points)

	gotMatch, ok := drafts[1].(*MatchDraft)
	require.True(t, ok)
	assert.Equal(t, "Capitals", gotMatch.Title)
	assert.Equal(t, match.Rows, gotMatch.Rows)
	assert.Equal(t, 2.0, gotMatch.Points)
}
