package qti

import (
	"encoding/xml"
	"errors"

	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyCorrectResponse is returned when a response template is asked
	// to declare zero correct values.
	ErrEmptyCorrectResponse = errors.New("response declaration has no correct values")

	// ErrNoCorrectResponse is returned by ApplyMappingEven when the
	// declaration never declared a correct response to map over.
	ErrNoCorrectResponse = errors.New("cannot apply mapping without a declared correct response")
)

// Interaction response variables are conventionally bound under the reserved
// RESPONSE identifier; scored outcomes under SCORE.
const (
	ResponseIdentifier UniqueIdentifier = "RESPONSE"
	ScoreIdentifier    UniqueIdentifier = "SCORE"
	MaxScoreIdentifier UniqueIdentifier = "MAXSCORE"
)

// ValueList holds the value set for a correctResponse or defaultValue
// element. Order is significant only for ordered cardinality.
type ValueList struct {
	Interpretation string
	Values         []string
}

func (v *ValueList) writeXML(x *xmlWriter, tag string) {
	var attrs []xml.Attr
	if v.Interpretation != "" {
		attrs = append(attrs, attr("interpretation", v.Interpretation))
	}
	x.start(tag, attrs...)
	for _, val := range v.Values {
		x.element("value", val)
	}
	x.end(tag)
}

// IdentifierPair is a directed association between two choice identifiers,
// serialized as "source target".
type IdentifierPair struct {
	Source UniqueIdentifier
	Target UniqueIdentifier
}

func (p IdentifierPair) String() string {
	return string(p.Source) + " " + string(p.Target)
}

// ResponseDeclaration describes the shape of the expected candidate response
// for one interaction: its cardinality, base type, the declared correct
// value set, an optional default and an optional point-value mapping.
//
// Declarations are built through the template factories below rather than
// open-ended construction; the two factories encode the only authoring
// patterns the tool supports.
type ResponseDeclaration struct {
	Identifier      UniqueIdentifier
	Cardinality     Cardinality
	BaseType        BaseType
	CorrectResponse *ValueList
	DefaultValue    *ValueList
	Mapping         *Mapping
}

// TemplateCorrectResponse declares the given choice identifiers as the
// correct response. Cardinality is multiple when more than one identifier is
// given, single otherwise; the base type is always identifier.
func TemplateCorrectResponse(ids ...UniqueIdentifier) (*ResponseDeclaration, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyCorrectResponse
	}
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = string(id)
	}
	card := CardinalitySingle
	if len(ids) > 1 {
		card = CardinalityMultiple
	}
	return &ResponseDeclaration{
		Identifier:      ResponseIdentifier,
		Cardinality:     card,
		BaseType:        BaseTypeIdentifier,
		CorrectResponse: &ValueList{Values: values},
	}, nil
}

// TemplateDirectedPairResponse declares a set of correct source→target pairs
// with base type directedPair. The same cardinality rule as
// TemplateCorrectResponse applies.
func TemplateDirectedPairResponse(pairs []IdentifierPair) (*ResponseDeclaration, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyCorrectResponse
	}
	values := make([]string, len(pairs))
	for i, p := range pairs {
		values[i] = p.String()
	}
	card := CardinalitySingle
	if len(pairs) > 1 {
		card = CardinalityMultiple
	}
	return &ResponseDeclaration{
		Identifier:      ResponseIdentifier,
		Cardinality:     card,
		BaseType:        BaseTypeDirectedPair,
		CorrectResponse: &ValueList{Values: values},
	}, nil
}

// ApplyMappingEven attaches a mapping that divides totalPoints evenly across
// every declared correct value, so matching the full correct set yields the
// full score. A declaration with three correct answers and six points maps
// each answer to two points. The mapping default is zero and no bounds are
// set.
func (d *ResponseDeclaration) ApplyMappingEven(totalPoints float64) error {
	if d.CorrectResponse == nil {
		return ErrNoCorrectResponse
	}
	perResponse := totalPoints / float64(len(d.CorrectResponse.Values))
	entries := make([]MapEntry, len(d.CorrectResponse.Values))
	for i, v := range d.CorrectResponse.Values {
		entries[i] = MapEntry{MapKey: v, MappedValue: perResponse}
	}
	zero := 0.0
	d.Mapping = &Mapping{DefaultValue: &zero, Entries: entries}
	return nil
}

func (d *ResponseDeclaration) writeXML(x *xmlWriter) {
	attrs := []xml.Attr{
		identAttr("identifier", d.Identifier),
		attr("cardinality", d.Cardinality.String()),
	}
	if d.BaseType != BaseTypeUnset {
		attrs = append(attrs, attr("baseType", d.BaseType.String()))
	}
	x.start("responseDeclaration", attrs...)
	if d.CorrectResponse != nil {
		d.CorrectResponse.writeXML(x, "correctResponse")
	}
	if d.DefaultValue != nil {
		d.DefaultValue.writeXML(x, "defaultValue")
	}
	if d.Mapping != nil {
		d.Mapping.writeXML(x)
	}
	x.end("responseDeclaration")
}

// Mapping maps response values onto floats for the map_response processing
// template. Summing the mapped values of a container response, clamped to
// the optional bounds, produces the score.
type Mapping struct {
	LowerBound   *float64
	UpperBound   *float64
	DefaultValue *float64
	Entries      []MapEntry
}

// MapEntry maps a single source value onto a single float.
type MapEntry struct {
	MapKey        string
	MappedValue   float64
	CaseSensitive *bool
}

func (m *Mapping) writeXML(x *xmlWriter) {
	var attrs []xml.Attr
	if m.LowerBound != nil {
		attrs = append(attrs, floatAttr("lowerBound", *m.LowerBound))
	}
	if m.UpperBound != nil {
		attrs = append(attrs, floatAttr("upperBound", *m.UpperBound))
	}
	if m.DefaultValue != nil {
		attrs = append(attrs, floatAttr("defaultValue", *m.DefaultValue))
	}
	x.start("mapping", attrs...)
	for _, e := range m.Entries {
		entryAttrs := []xml.Attr{
			attr("mapKey", e.MapKey),
			floatAttr("mappedValue", e.MappedValue),
		}
		if e.CaseSensitive != nil {
			entryAttrs = append(entryAttrs, boolAttr("caseSensitive", *e.CaseSensitive))
		}
		x.start("mapEntry", entryAttrs...)
		x.end("mapEntry")
	}
	x.end("mapping")
}

// OutcomeDeclaration declares a scored output variable such as SCORE.
type OutcomeDeclaration struct {
	Identifier         UniqueIdentifier
	Cardinality        Cardinality
	BaseType           BaseType
	View               View
	Interpretation     string
	LongInterpretation string
	DefaultValue       *ValueList
}

// TemplateScore declares the conventional SCORE outcome: single float,
// default zero.
func TemplateScore() *OutcomeDeclaration {
	return &OutcomeDeclaration{
		Identifier:   ScoreIdentifier,
		Cardinality:  CardinalitySingle,
		BaseType:     BaseTypeFloat,
		DefaultValue: &ValueList{Values: []string{"0"}},
	}
}

// TemplateMaxScore declares the MAXSCORE outcome holding the item's maximum
// attainable score.
func TemplateMaxScore(max float64) *OutcomeDeclaration {
	return &OutcomeDeclaration{
		Identifier:   MaxScoreIdentifier,
		Cardinality:  CardinalitySingle,
		BaseType:     BaseTypeFloat,
		DefaultValue: &ValueList{Values: []string{formatFloat(max)}},
	}
}

func (o *OutcomeDeclaration) writeXML(x *xmlWriter) {
	attrs := []xml.Attr{
		identAttr("identifier", o.Identifier),
		attr("cardinality", o.Cardinality.String()),
	}
	if o.BaseType != BaseTypeUnset {
		attrs = append(attrs, attr("baseType", o.BaseType.String()))
	}
	if o.View != ViewUnset {
		attrs = append(attrs, attr("view", o.View.String()))
	}
	if o.Interpretation != "" {
		attrs = append(attrs, attr("interpretation", o.Interpretation))
	}
	if o.LongInterpretation != "" {
		attrs = append(attrs, attr("longInterpretation", o.LongInterpretation))
	}
	x.start("outcomeDeclaration", attrs...)
	if o.DefaultValue != nil {
		o.DefaultValue.writeXML(x, "defaultValue")
	}
	x.end("outcomeDeclaration")
}

// Standard response-processing template URIs defined by the QTI
// specification. These are the only templates the tool emits.
const (
	MatchCorrectTemplate = "http://www.imsglobal.org/question/qti_v2p2/rptemplates/match_correct"
	MapResponseTemplate  = "http://www.imsglobal.org/question/qti_v2p2/rptemplates/map_response"
)

// ResponseProcessing references an externally defined scoring template by
// URI. The tool never embeds response rules inline.
type ResponseProcessing struct {
	Template         string
	TemplateLocation string
}

// TemplateMatchCorrect scores full credit when the response matches the
// single declared correct value.
func TemplateMatchCorrect() *ResponseProcessing {
	return &ResponseProcessing{Template: MatchCorrectTemplate}
}

// TemplateMapResponse scores the weighted sum of the response values through
// the declaration's mapping.
func TemplateMapResponse() *ResponseProcessing {
	return &ResponseProcessing{Template: MapResponseTemplate}
}

func (p *ResponseProcessing) writeXML(x *xmlWriter) {
	var attrs []xml.Attr
	if p.Template != "" {
		attrs = append(attrs, attr("template", p.Template))
	}
	if p.TemplateLocation != "" {
		attrs = append(attrs, attr("templateLocation", p.TemplateLocation))
	}
	x.start("responseProcessing", attrs...)
	x.end("responseProcessing")
}

func warnUnprocessedResponses(item UniqueIdentifier) {
	log.Warn().
		Str("item", string(item)).
		Msg("response declared but no response processing template set")
}
