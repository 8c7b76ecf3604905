package qti

import "encoding/xml"

// SimpleChoice is a leaf choice inside a choiceInteraction. Every choice is
// given its own generated identifier at construction so references can never
// become lost or invalid, even for choices nothing ends up referencing.
type SimpleChoice struct {
	Identifier         UniqueIdentifier
	Fixed              *bool
	TemplateIdentifier UniqueIdentifier
	ShowHide           ShowHide
	Text               string
}

func NewSimpleChoice(reg *IDRegistry, text string) *SimpleChoice {
	return &SimpleChoice{Identifier: reg.Next("SimpleChoice"), Text: text}
}

func (c *SimpleChoice) writeXML(x *xmlWriter) {
	attrs := []xml.Attr{identAttr("identifier", c.Identifier)}
	if c.Fixed != nil {
		attrs = append(attrs, boolAttr("fixed", *c.Fixed))
	}
	if c.TemplateIdentifier != "" {
		attrs = append(attrs, identAttr("templateIdentifier", c.TemplateIdentifier))
	}
	if c.ShowHide != ShowHideUnset {
		attrs = append(attrs, attr("showHide", c.ShowHide.String()))
	}
	x.start("simpleChoice", attrs...)
	x.text(c.Text)
	x.end("simpleChoice")
}

// SimpleAssociableChoice is a choice inside a simpleMatchSet. matchMax
// limits how many choices from the opposite set it may be associated with;
// zero means unrestricted.
type SimpleAssociableChoice struct {
	Identifier         UniqueIdentifier
	Fixed              *bool
	TemplateIdentifier UniqueIdentifier
	ShowHide           ShowHide
	MatchGroup         []UniqueIdentifier
	MatchMax           uint
	MatchMin           *uint
	Text               string
}

func NewSimpleAssociableChoice(reg *IDRegistry, text string, matchMax uint) *SimpleAssociableChoice {
	return &SimpleAssociableChoice{
		Identifier: reg.Next("SimpleAssociableChoice"),
		MatchMax:   matchMax,
		Text:       text,
	}
}

func (c *SimpleAssociableChoice) writeXML(x *xmlWriter) {
	attrs := []xml.Attr{identAttr("identifier", c.Identifier)}
	if c.Fixed != nil {
		attrs = append(attrs, boolAttr("fixed", *c.Fixed))
	}
	if c.TemplateIdentifier != "" {
		attrs = append(attrs, identAttr("templateIdentifier", c.TemplateIdentifier))
	}
	if c.ShowHide != ShowHideUnset {
		attrs = append(attrs, attr("showHide", c.ShowHide.String()))
	}
	if len(c.MatchGroup) > 0 {
		attrs = append(attrs, attr("matchGroup", joinIdentifiers(c.MatchGroup)))
	}
	attrs = append(attrs, uintAttr("matchMax", c.MatchMax))
	if c.MatchMin != nil {
		attrs = append(attrs, uintAttr("matchMin", *c.MatchMin))
	}
	x.start("simpleAssociableChoice", attrs...)
	x.text(c.Text)
	x.end("simpleAssociableChoice")
}

// SimpleMatchSet is one of the two ordered choice sets of a matchInteraction.
type SimpleMatchSet struct {
	ID      UniqueIdentifier
	Choices []*SimpleAssociableChoice
}

func (s *SimpleMatchSet) writeXML(x *xmlWriter) {
	var attrs []xml.Attr
	if s.ID != "" {
		attrs = append(attrs, identAttr("id", s.ID))
	}
	x.start("simpleMatchSet", attrs...)
	for _, c := range s.Choices {
		c.writeXML(x)
	}
	x.end("simpleMatchSet")
}
