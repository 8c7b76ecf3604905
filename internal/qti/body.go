package qti

import (
	"encoding/xml"
	"strings"
)

// BodyBlock is a block-level element that can appear inside an itemBody:
// today either a paragraph or one of the block interactions. Each variant
// names its own wire tag so serialization never depends on Go type names.
type BodyBlock interface {
	blockTag() string
	attach(*ItemBody)
	writeXML(x *xmlWriter) error
}

// Respondable is implemented by body blocks that bind a response variable.
type Respondable interface {
	ResponseBinding() *ResponseDeclaration
}

// Shuffleable is implemented by interactions whose choice order the delivery
// engine may randomize.
type Shuffleable interface {
	Shuffled() bool
}

// ItemBody is the ordered block content of one assessment item. The body
// owns its children; appending a block sets a non-owning back-reference from
// the block to the body so blocks can navigate to their enclosing item.
type ItemBody struct {
	item *AssessmentItem

	ID      UniqueIdentifier
	Classes []string
	Dir     Dir

	blocks []BodyBlock
}

func NewItemBody(reg *IDRegistry) *ItemBody {
	return &ItemBody{ID: reg.Next("ItemBody")}
}

// Append adds a block to the end of the body and attaches the back-reference.
func (b *ItemBody) Append(blk BodyBlock) {
	blk.attach(b)
	b.blocks = append(b.blocks, blk)
}

// Blocks returns the body's children in document order.
func (b *ItemBody) Blocks() []BodyBlock { return b.blocks }

// Item returns the assessment item this body belongs to, or nil when the
// body has not been attached to one yet.
func (b *ItemBody) Item() *AssessmentItem { return b.item }

func (b *ItemBody) writeXML(x *xmlWriter) error {
	var attrs []xml.Attr
	if len(b.Classes) > 0 {
		attrs = append(attrs, attr("class", strings.Join(b.Classes, ",")))
	}
	if b.Dir != DirUnset {
		attrs = append(attrs, attr("dir", b.Dir.String()))
	}
	x.start("itemBody", attrs...)
	for _, blk := range b.blocks {
		if err := blk.writeXML(x); err != nil {
			x.fail(err)
			return err
		}
	}
	x.end("itemBody")
	return nil
}

// Paragraph is a plain text block used for stimulus text around an
// interaction.
type Paragraph struct {
	body *ItemBody
	Text string
}

func (p *Paragraph) blockTag() string      { return "p" }
func (p *Paragraph) attach(body *ItemBody) { p.body = body }

func (p *Paragraph) writeXML(x *xmlWriter) error {
	x.element(p.blockTag(), p.Text)
	return nil
}

// Prompt guides the candidate without containing the question itself.
type Prompt struct {
	ID   UniqueIdentifier
	Text string
}

func NewPrompt(reg *IDRegistry, text string) *Prompt {
	return &Prompt{ID: reg.Next("Prompt"), Text: text}
}

func (p *Prompt) writeXML(x *xmlWriter) {
	x.start("prompt")
	x.text(p.Text)
	x.end("prompt")
}
