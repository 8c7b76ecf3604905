package qti

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freezeNow(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
}

func buildSingleAnswerItem(t *testing.T, reg *IDRegistry) *AssessmentItem {
	t.Helper()
	item := NewAssessmentItem(reg, "Colors")
	body := NewItemBody(reg)
	body.Append(&Paragraph{Text: "Pick the primary color."})

	ci := NewChoiceInteraction(reg)
	for _, text := range []string{"red", "green", "teal"} {
		ci.Choices = append(ci.Choices, NewSimpleChoice(reg, text))
	}
	require.NoError(t, ci.SetCorrectChoice(0))
	body.Append(ci)

	item.OutcomeDeclarations = []*OutcomeDeclaration{TemplateScore()}
	item.Processing = TemplateMatchCorrect()
	item.SetBody(body)
	return item
}

func TestAssessmentItemXMLSingleAnswer(t *testing.T) {
	freezeNow(t)
	reg := NewIDRegistry()
	item := buildSingleAnswerItem(t, reg)

	var buf bytes.Buffer
	require.NoError(t, item.WriteXML(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, "File automatically generated 2024-05-01T12:00:00Z by QTIForge v0.2.1")
	assert.Contains(t, out, `xmlns="http://www.imsglobal.org/xsd/imsqti_v2p2"`)
	assert.Contains(t, out, `identifier="AssessmentItem-0000" title="Colors" toolName="QTIForge" toolVersion="0.2.1" adaptive="false" timeDependent="false"`)
	assert.Contains(t, out, `<responseDeclaration identifier="RESPONSE" cardinality="single" baseType="identifier">`)
	assert.Contains(t, out, `<responseProcessing template="http://www.imsglobal.org/question/qti_v2p2/rptemplates/match_correct">`)
	assert.Contains(t, out, `<p>Pick the primary color.</p>`)

	// The response declaration is derived from the body, emitted once.
	assert.Equal(t, 1, strings.Count(out, "<responseDeclaration"))
}

func TestAssessmentItemDerivedDeclarationsDedupe(t *testing.T) {
	reg := NewIDRegistry()
	item := NewAssessmentItem(reg, "Shared")
	body := NewItemBody(reg)

	resp, err := TemplateCorrectResponse("x")
	require.NoError(t, err)

	a := NewChoiceInteraction(reg)
	a.Response = resp
	b := NewChoiceInteraction(reg)
	b.Response = resp
	body.Append(a)
	body.Append(b)
	item.SetBody(body)

	assert.Len(t, item.responseDeclarations(), 1)
}

func TestAssessmentItemEmissionFailsOnInvalidInteraction(t *testing.T) {
	reg := NewIDRegistry()
	item := buildSingleAnswerItem(t, reg)

	ci := item.Body.Blocks()[1].(*ChoiceInteraction)
	unbounded := uint(0)
	ci.MaxChoices = &unbounded

	var buf bytes.Buffer
	err := item.WriteXML(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple cardinality")
}

func TestItemBodyBackReference(t *testing.T) {
	reg := NewIDRegistry()
	item := NewAssessmentItem(reg, "Nav")
	body := NewItemBody(reg)
	ci := NewChoiceInteraction(reg)
	body.Append(ci)
	item.SetBody(body)

	assert.Same(t, body, ci.Body())
	assert.Same(t, item, ci.Body().Item())
}

func TestAssessmentItemLinkable(t *testing.T) {
	reg := NewIDRegistry()
	item := NewAssessmentItem(reg, "Linked")

	assert.Equal(t, item.Identifier, item.LinkID())
	assert.Equal(t, "imsqti_item_xmlv2p2", item.ResourceType())
	assert.Equal(t, "AssessmentItem-0000.xml", item.Href())
	assert.Equal(t, []string{"AssessmentItem-0000.xml"}, item.Files())
	assert.Nil(t, item.Dependencies())
}
