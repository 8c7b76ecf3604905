package qti

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCorrectResponseCardinality(t *testing.T) {
	single, err := TemplateCorrectResponse("SimpleChoice-0000")
	require.NoError(t, err)
	assert.Equal(t, CardinalitySingle, single.Cardinality)
	assert.Equal(t, BaseTypeIdentifier, single.BaseType)
	assert.Equal(t, ResponseIdentifier, single.Identifier)

	multi, err := TemplateCorrectResponse("SimpleChoice-0000", "SimpleChoice-0002")
	require.NoError(t, err)
	assert.Equal(t, CardinalityMultiple, multi.Cardinality)
	assert.Equal(t, []string{"SimpleChoice-0000", "SimpleChoice-0002"}, multi.CorrectResponse.Values)

	_, err = TemplateCorrectResponse()
	assert.ErrorIs(t, err, ErrEmptyCorrectResponse)
}

func TestTemplateDirectedPairResponse(t *testing.T) {
	decl, err := TemplateDirectedPairResponse([]IdentifierPair{
		{Source: "SimpleAssociableChoice-0000", Target: "SimpleAssociableChoice-0001"},
	})
	require.NoError(t, err)
	assert.Equal(t, CardinalitySingle, decl.Cardinality)
	assert.Equal(t, BaseTypeDirectedPair, decl.BaseType)
	assert.Equal(t, []string{"SimpleAssociableChoice-0000 SimpleAssociableChoice-0001"}, decl.CorrectResponse.Values)

	_, err = TemplateDirectedPairResponse(nil)
	assert.ErrorIs(t, err, ErrEmptyCorrectResponse)
}

func TestApplyMappingEven(t *testing.T) {
	decl, err := TemplateCorrectResponse("a", "b", "c")
	require.NoError(t, err)
	require.NoError(t, decl.ApplyMappingEven(6))

	require.Len(t, decl.Mapping.Entries, 3)
	var sum float64
	for _, e := range decl.Mapping.Entries {
		assert.InDelta(t, 2.0, e.MappedValue, 1e-9)
		sum += e.MappedValue
	}
	assert.InDelta(t, 6.0, sum, 1e-9)
	require.NotNil(t, decl.Mapping.DefaultValue)
	assert.Zero(t, *decl.Mapping.DefaultValue)
	assert.Nil(t, decl.Mapping.LowerBound)
	assert.Nil(t, decl.Mapping.UpperBound)
}

func TestApplyMappingEvenWithoutCorrectResponse(t *testing.T) {
	decl := &ResponseDeclaration{Identifier: ResponseIdentifier}
	assert.ErrorIs(t, decl.ApplyMappingEven(5), ErrNoCorrectResponse)
}

func TestResponseDeclarationXML(t *testing.T) {
	decl, err := TemplateCorrectResponse("a", "b")
	require.NoError(t, err)
	require.NoError(t, decl.ApplyMappingEven(3))

	var buf bytes.Buffer
	x := newXMLWriter(&buf)
	decl.writeXML(x)
	require.NoError(t, x.flush())

	out := buf.String()
	assert.Contains(t, out, `<responseDeclaration identifier="RESPONSE" cardinality="multiple" baseType="identifier">`)
	assert.Contains(t, out, `<mapping defaultValue="0">`)
	assert.Contains(t, out, `<mapEntry mapKey="a" mappedValue="1.5">`)
}

func TestTemplateScoreDefaults(t *testing.T) {
	score := TemplateScore()
	assert.Equal(t, ScoreIdentifier, score.Identifier)
	assert.Equal(t, CardinalitySingle, score.Cardinality)
	assert.Equal(t, BaseTypeFloat, score.BaseType)
	assert.Equal(t, []string{"0"}, score.DefaultValue.Values)

	max := TemplateMaxScore(2.5)
	assert.Equal(t, MaxScoreIdentifier, max.Identifier)
	assert.Equal(t, []string{"2.5"}, max.DefaultValue.Values)
}
