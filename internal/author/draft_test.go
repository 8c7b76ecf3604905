package author

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtiforge/qtiforge/internal/qti"
)

func TestChoiceDraftSingleAnswerOnePoint(t *testing.T) {
	d := NewChoiceDraft()
	d.Title = "Capital of France"
	d.Prompt = "Pick one."
	d.Choices = []string{"Paris", "Lyon", "Nice"}
	d.Correct = []int{0}
	d.Points = 1

	item, err := d.BuildItem(qti.NewIDRegistry())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, item.WriteXML(&buf))
	out := buf.String()

	assert.Contains(t, out, `template="http://www.imsglobal.org/question/qti_v2p2/rptemplates/match_correct"`)
	assert.Contains(t, out, `maxChoices="1" minChoices="1"`)
	assert.Contains(t, out, `cardinality="single"`)
	assert.NotContains(t, out, "<mapping")
}

func TestChoiceDraftMultiAnswer(t *testing.T) {
	d := NewChoiceDraft()
	d.Title = "Primary colors"
	d.Prompt = "Pick all that apply."
	d.Choices = []string{"red", "green", "blue", "orange"}
	d.Correct = []int{0, 2}
	d.Points = 2

	item, err := d.BuildItem(qti.NewIDRegistry())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, item.WriteXML(&buf))
	out := buf.String()

	assert.Contains(t, out, `template="http://www.imsglobal.org/question/qti_v2p2/rptemplates/map_response"`)
	assert.Contains(t, out, `maxChoices="0"`)
	assert.Contains(t, out, `cardinality="multiple"`)
	// two entries at a point each
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`mappedValue="1"`)))
}

func TestChoiceDraftSkipsBlankChoices(t *testing.T) {
	d := NewChoiceDraft()
	d.Choices = []string{"yes", "", "  ", "no"}
	d.Correct = []int{1} // index into the non-blank list, i.e. "no"
	d.Points = 1

	item, err := d.BuildItem(qti.NewIDRegistry())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, item.WriteXML(&buf))
	out := buf.String()
	assert.Contains(t, out, ">yes</simpleChoice>")
	assert.Contains(t, out, ">no</simpleChoice>")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("<simpleChoice")))
}

func TestChoiceDraftValidation(t *testing.T) {
	d := NewChoiceDraft()
	d.Choices = []string{"only one"}
	d.Correct = []int{0}
	_, err := d.BuildItem(qti.NewIDRegistry())
	assert.ErrorIs(t, err, ErrTooFewChoices)

	d.Choices = []string{"a", "b"}
	d.Correct = nil
	_, err = d.BuildItem(qti.NewIDRegistry())
	assert.ErrorIs(t, err, ErrNoCorrectAnswer)

	d.Correct = []int{5}
	_, err = d.BuildItem(qti.NewIDRegistry())
	assert.ErrorIs(t, err, ErrAnswerIndexRange)
}

func TestChoiceDraftEditTransaction(t *testing.T) {
	d := NewChoiceDraft()
	d.Title = "before"
	d.Choices = []string{"a", "b"}
	d.Points = 2

	d.BeginEdit()
	d.Title = "after"
	d.Choices = append(d.Choices, "c")
	require.Error(t, d.SetPointsText("-3"))
	assert.Equal(t, 2.0, d.Points, "rejected points keep the previous value")
	d.CancelEdit()

	assert.Equal(t, "before", d.Title)
	assert.Equal(t, []string{"a", "b"}, d.Choices)
	assert.Equal(t, 2.0, d.Points)

	d.BeginEdit()
	d.Title = "committed"
	require.NoError(t, d.SetPointsText("3"))
	d.EndEdit()
	d.CancelEdit() // no open transaction, must be a no-op

	assert.Equal(t, "committed", d.Title)
	assert.Equal(t, 3.0, d.Points)
}

func TestMatchDraftBuild(t *testing.T) {
	d := NewMatchDraft()
	d.Title = "Countries"
	d.Prompt = "Match each capital."
	d.Rows = []MatchRow{
		{Left: "Paris", Right: "France"},
		{Left: "Rome", Right: "Italy"},
		{Left: "", Right: ""}, // blank row is dropped
	}
	d.Points = 1

	item, err := d.BuildItem(qti.NewIDRegistry())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, item.WriteXML(&buf))
	out := buf.String()

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("<simpleMatchSet>")))
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte(`matchMax="1"`)))
	assert.Contains(t, out, `baseType="directedPair"`)
	// match questions always map points, even at one point total
	assert.Contains(t, out, `template="http://www.imsglobal.org/question/qti_v2p2/rptemplates/map_response"`)
	assert.Contains(t, out, `mappedValue="0.5"`)
}

func TestMatchDraftRequiresRows(t *testing.T) {
	d := NewMatchDraft()
	d.Rows = []MatchRow{{Left: " ", Right: ""}}
	_, err := d.BuildItem(qti.NewIDRegistry())
	assert.ErrorIs(t, err, ErrNoAssociations)
}
