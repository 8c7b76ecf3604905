package qti

import (
	"io"
	"os"
	"path/filepath"
)

// AssessmentItem is the root of a single question document. Response
// declarations are not stored on the item; they are derived at serialization
// time from the interactions in the body, so an item can never emit a
// declaration for an interaction that was removed.
type AssessmentItem struct {
	Identifier    UniqueIdentifier
	Title         string
	Label         string
	Lang          string
	Adaptive      bool
	TimeDependent bool

	Body                *ItemBody
	OutcomeDeclarations []*OutcomeDeclaration
	Processing          *ResponseProcessing
}

func NewAssessmentItem(reg *IDRegistry, title string) *AssessmentItem {
	return &AssessmentItem{
		Identifier: reg.Next("AssessmentItem"),
		Title:      title,
	}
}

// SetBody installs the item body and wires the body's back-reference so
// blocks can navigate from body to item.
func (it *AssessmentItem) SetBody(body *ItemBody) {
	it.Body = body
	if body != nil {
		body.item = it
	}
}

// responseDeclarations walks the body and collects the response declaration
// of every respondable block, deduplicated by pointer in document order.
func (it *AssessmentItem) responseDeclarations() []*ResponseDeclaration {
	if it.Body == nil {
		return nil
	}
	seen := make(map[*ResponseDeclaration]bool)
	var decls []*ResponseDeclaration
	for _, blk := range it.Body.Blocks() {
		r, ok := blk.(Respondable)
		if !ok {
			continue
		}
		d := r.ResponseBinding()
		if d == nil || seen[d] {
			continue
		}
		seen[d] = true
		decls = append(decls, d)
	}
	return decls
}

// WriteXML serializes the complete assessmentItem document to w.
func (it *AssessmentItem) WriteXML(w io.Writer) error {
	x := newXMLWriter(w)
	x.header()
	x.generated()

	attrs := append(qtiRootAttrs(),
		identAttr("identifier", it.Identifier),
		attr("title", it.Title),
	)
	if it.Label != "" {
		attrs = append(attrs, attr("label", it.Label))
	}
	if it.Lang != "" {
		attrs = append(attrs, attr("xml:lang", it.Lang))
	}
	attrs = append(attrs,
		attr("toolName", ToolName),
		attr("toolVersion", ToolVersion),
		boolAttr("adaptive", it.Adaptive),
		boolAttr("timeDependent", it.TimeDependent),
	)
	x.start("assessmentItem", attrs...)

	decls := it.responseDeclarations()
	for _, d := range decls {
		d.writeXML(x)
	}
	for _, o := range it.OutcomeDeclarations {
		o.writeXML(x)
	}
	if it.Body != nil {
		if err := it.Body.writeXML(x); err != nil {
			return err
		}
	}
	if it.Processing != nil {
		it.Processing.writeXML(x)
	} else if len(decls) > 0 {
		warnUnprocessedResponses(it.Identifier)
	}

	x.end("assessmentItem")
	return x.flush()
}

// Manifest linkage. An item is packaged as one standalone XML file named
// after its identifier and carries no dependencies of its own.

func (it *AssessmentItem) LinkID() UniqueIdentifier { return it.Identifier }

func (it *AssessmentItem) ResourceType() string { return "imsqti_item_xmlv2p2" }

func (it *AssessmentItem) Href() string { return string(it.Identifier) + ".xml" }

func (it *AssessmentItem) Files() []string { return []string{it.Href()} }

func (it *AssessmentItem) Dependencies() []Linkable { return nil }

// WriteFile serializes the item into dir under its manifest href.
func (it *AssessmentItem) WriteFile(dir string) error {
	f, err := os.Create(filepath.Join(dir, it.Href()))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := it.WriteXML(f); err != nil {
		return err
	}
	if _, err := f.WriteString("\n"); err != nil {
		return err
	}
	return f.Close()
}
