package qti

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented marks interaction variants that exist in the modeled
// schema but have no emission support. Hitting one during export is a
// programming error, not a recoverable input problem.
var ErrNotImplemented = errors.New("interaction variant not implemented")

// Violation is one structural problem found by a pre-emission validity
// check.
type Violation struct {
	Element string
	Reason  string
}

func (v Violation) String() string {
	return v.Element + ": " + v.Reason
}

func violationsError(vs []Violation) error {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return fmt.Errorf("document failed validation: %s", strings.Join(parts, "; "))
}

// ChoiceInteraction presents an ordered set of choices the candidate selects
// from. Validation is deliberately lazy: an interaction may hold
// inconsistent constraints while it is being edited, and is only checked by
// Validate immediately before emission.
type ChoiceInteraction struct {
	body *ItemBody

	ID          UniqueIdentifier
	Prompt      *Prompt
	Shuffle     *bool
	MaxChoices  *uint
	MinChoices  *uint
	Orientation Orientation
	Choices     []*SimpleChoice
	Response    *ResponseDeclaration
}

func NewChoiceInteraction(reg *IDRegistry) *ChoiceInteraction {
	return &ChoiceInteraction{ID: reg.Next("ChoiceInteraction")}
}

func (ci *ChoiceInteraction) blockTag() string      { return "choiceInteraction" }
func (ci *ChoiceInteraction) attach(body *ItemBody) { ci.body = body }

// Body returns the owning item body, set when the interaction is appended.
func (ci *ChoiceInteraction) Body() *ItemBody { return ci.body }

func (ci *ChoiceInteraction) ResponseBinding() *ResponseDeclaration { return ci.Response }

func (ci *ChoiceInteraction) Shuffled() bool { return ci.Shuffle != nil && *ci.Shuffle }

// SetCorrectChoice declares the choice at index as the single correct
// answer: a single-cardinality response template and exactly-one selection
// bounds.
func (ci *ChoiceInteraction) SetCorrectChoice(index int) error {
	if index < 0 || index >= len(ci.Choices) {
		return fmt.Errorf("correct choice index %d out of range [0,%d)", index, len(ci.Choices))
	}
	resp, err := TemplateCorrectResponse(ci.Choices[index].Identifier)
	if err != nil {
		return err
	}
	ci.Response = resp
	one := uint(1)
	ci.MaxChoices = &one
	ci.MinChoices = &one
	return nil
}

// Validate checks the interlocked selection constraints. A maxChoices other
// than exactly one requires a multiple-cardinality response, and minChoices
// must not exceed maxChoices.
func (ci *ChoiceInteraction) Validate() []Violation {
	var vs []Violation
	if ci.Response == nil {
		return append(vs, Violation{"choiceInteraction", "no response declaration bound"})
	}
	if (ci.MaxChoices == nil || *ci.MaxChoices != 1) && ci.Response.Cardinality != CardinalityMultiple {
		vs = append(vs, Violation{"choiceInteraction", "maxChoices other than 1 requires multiple cardinality"})
	}
	if ci.MinChoices != nil && ci.MaxChoices != nil && *ci.MinChoices > *ci.MaxChoices {
		vs = append(vs, Violation{"choiceInteraction", "minChoices exceeds maxChoices"})
	}
	return vs
}

func (ci *ChoiceInteraction) writeXML(x *xmlWriter) error {
	if vs := ci.Validate(); len(vs) > 0 {
		return violationsError(vs)
	}
	attrs := []xml.Attr{identAttr("responseIdentifier", ci.Response.Identifier)}
	if ci.Shuffle != nil {
		attrs = append(attrs, boolAttr("shuffle", *ci.Shuffle))
	}
	if ci.MaxChoices != nil {
		attrs = append(attrs, uintAttr("maxChoices", *ci.MaxChoices))
	}
	if ci.MinChoices != nil {
		attrs = append(attrs, uintAttr("minChoices", *ci.MinChoices))
	}
	if ci.Orientation != OrientationUnset {
		attrs = append(attrs, attr("orientation", ci.Orientation.String()))
	}
	x.start(ci.blockTag(), attrs...)
	if ci.Prompt != nil {
		ci.Prompt.writeXML(x)
	}
	for _, c := range ci.Choices {
		c.writeXML(x)
	}
	x.end(ci.blockTag())
	return nil
}

// MatchInteraction presents two choice sets and lets the candidate associate
// pairs across them. It must be bound to a directedPair response.
type MatchInteraction struct {
	body *ItemBody

	ID              UniqueIdentifier
	Prompt          *Prompt
	Shuffle         *bool
	MaxAssociations *uint
	MinAssociations *uint
	SourceSet       *SimpleMatchSet
	TargetSet       *SimpleMatchSet
	Response        *ResponseDeclaration
}

func NewMatchInteraction(reg *IDRegistry) *MatchInteraction {
	return &MatchInteraction{ID: reg.Next("MatchInteraction")}
}

func (mi *MatchInteraction) blockTag() string      { return "matchInteraction" }
func (mi *MatchInteraction) attach(body *ItemBody) { mi.body = body }

func (mi *MatchInteraction) Body() *ItemBody { return mi.body }

func (mi *MatchInteraction) ResponseBinding() *ResponseDeclaration { return mi.Response }

func (mi *MatchInteraction) Shuffled() bool { return mi.Shuffle != nil && *mi.Shuffle }

func (mi *MatchInteraction) Validate() []Violation {
	var vs []Violation
	if mi.Response == nil {
		vs = append(vs, Violation{"matchInteraction", "no response declaration bound"})
	}
	if mi.SourceSet == nil || mi.TargetSet == nil {
		vs = append(vs, Violation{"matchInteraction", "both match sets must be present"})
	}
	return vs
}

func (mi *MatchInteraction) writeXML(x *xmlWriter) error {
	if vs := mi.Validate(); len(vs) > 0 {
		return violationsError(vs)
	}
	attrs := []xml.Attr{identAttr("responseIdentifier", mi.Response.Identifier)}
	if mi.Shuffle != nil {
		attrs = append(attrs, boolAttr("shuffle", *mi.Shuffle))
	}
	if mi.MaxAssociations != nil {
		attrs = append(attrs, uintAttr("maxAssociations", *mi.MaxAssociations))
	}
	if mi.MinAssociations != nil {
		attrs = append(attrs, uintAttr("minAssociations", *mi.MinAssociations))
	}
	x.start(mi.blockTag(), attrs...)
	if mi.Prompt != nil {
		mi.Prompt.writeXML(x)
	}
	mi.SourceSet.writeXML(x)
	mi.TargetSet.writeXML(x)
	x.end(mi.blockTag())
	return nil
}

// The remaining block interaction variants are modeled so documents can hold
// them, but emission is not supported; exporting one fails the export.

type AssociateInteraction struct {
	body     *ItemBody
	ID       UniqueIdentifier
	Response *ResponseDeclaration
}

func NewAssociateInteraction(reg *IDRegistry) *AssociateInteraction {
	return &AssociateInteraction{ID: reg.Next("AssociateInteraction")}
}

func (ai *AssociateInteraction) blockTag() string                      { return "associateInteraction" }
func (ai *AssociateInteraction) attach(body *ItemBody)                 { ai.body = body }
func (ai *AssociateInteraction) ResponseBinding() *ResponseDeclaration { return ai.Response }

func (ai *AssociateInteraction) writeXML(*xmlWriter) error {
	return fmt.Errorf("%s: %w", ai.blockTag(), ErrNotImplemented)
}

type PositionObjectInteraction struct {
	body     *ItemBody
	ID       UniqueIdentifier
	Response *ResponseDeclaration
}

func NewPositionObjectInteraction(reg *IDRegistry) *PositionObjectInteraction {
	return &PositionObjectInteraction{ID: reg.Next("PositionObjectInteraction")}
}

func (pi *PositionObjectInteraction) blockTag() string                      { return "positionObjectInteraction" }
func (pi *PositionObjectInteraction) attach(body *ItemBody)                 { pi.body = body }
func (pi *PositionObjectInteraction) ResponseBinding() *ResponseDeclaration { return pi.Response }

func (pi *PositionObjectInteraction) writeXML(*xmlWriter) error {
	return fmt.Errorf("%s: %w", pi.blockTag(), ErrNotImplemented)
}

type DrawingInteraction struct {
	body     *ItemBody
	ID       UniqueIdentifier
	Response *ResponseDeclaration
}

func NewDrawingInteraction(reg *IDRegistry) *DrawingInteraction {
	return &DrawingInteraction{ID: reg.Next("DrawingInteraction")}
}

func (di *DrawingInteraction) blockTag() string                      { return "drawingInteraction" }
func (di *DrawingInteraction) attach(body *ItemBody)                 { di.body = body }
func (di *DrawingInteraction) ResponseBinding() *ResponseDeclaration { return di.Response }

func (di *DrawingInteraction) writeXML(*xmlWriter) error {
	return fmt.Errorf("%s: %w", di.blockTag(), ErrNotImplemented)
}

type CustomInteraction struct {
	body     *ItemBody
	ID       UniqueIdentifier
	Response *ResponseDeclaration
}

func NewCustomInteraction(reg *IDRegistry) *CustomInteraction {
	return &CustomInteraction{ID: reg.Next("CustomInteraction")}
}

func (ui *CustomInteraction) blockTag() string                      { return "customInteraction" }
func (ui *CustomInteraction) attach(body *ItemBody)                 { ui.body = body }
func (ui *CustomInteraction) ResponseBinding() *ResponseDeclaration { return ui.Response }

func (ui *CustomInteraction) writeXML(*xmlWriter) error {
	return fmt.Errorf("%s: %w", ui.blockTag(), ErrNotImplemented)
}
