package qti

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
)

// SectionPart is a child of an assessmentSection: either a nested section or
// a reference to an assessment item.
type SectionPart interface {
	partTag() string
	writePartXML(x *xmlWriter)
}

// AssessmentItemRef points a section at an item packaged alongside the test.
// The referenced item supplies both the href and the manifest dependency.
type AssessmentItemRef struct {
	Identifier UniqueIdentifier
	Required   *bool
	Fixed      *bool
	Item       *AssessmentItem
}

func NewAssessmentItemRef(reg *IDRegistry, item *AssessmentItem) *AssessmentItemRef {
	return &AssessmentItemRef{
		Identifier: reg.Next("AssessmentItemRef"),
		Item:       item,
	}
}

func (r *AssessmentItemRef) partTag() string { return "assessmentItemRef" }

func (r *AssessmentItemRef) writePartXML(x *xmlWriter) {
	attrs := []xml.Attr{
		identAttr("identifier", r.Identifier),
		attr("href", r.Item.Href()),
	}
	if r.Required != nil {
		attrs = append(attrs, boolAttr("required", *r.Required))
	}
	if r.Fixed != nil {
		attrs = append(attrs, boolAttr("fixed", *r.Fixed))
	}
	x.start(r.partTag(), attrs...)
	x.end(r.partTag())
}

// AssessmentSection groups item references, possibly recursively.
type AssessmentSection struct {
	Identifier UniqueIdentifier
	Title      string
	Visible    bool
	Required   *bool
	Fixed      *bool

	Parts []SectionPart
}

func NewAssessmentSection(reg *IDRegistry, title string, visible bool) *AssessmentSection {
	return &AssessmentSection{
		Identifier: reg.Next("AssessmentSection"),
		Title:      title,
		Visible:    visible,
	}
}

// AddItem appends a reference to item and returns it.
func (s *AssessmentSection) AddItem(reg *IDRegistry, item *AssessmentItem) *AssessmentItemRef {
	ref := NewAssessmentItemRef(reg, item)
	s.Parts = append(s.Parts, ref)
	return ref
}

func (s *AssessmentSection) partTag() string { return "assessmentSection" }

func (s *AssessmentSection) writePartXML(x *xmlWriter) {
	attrs := []xml.Attr{
		identAttr("identifier", s.Identifier),
		attr("title", s.Title),
		boolAttr("visible", s.Visible),
	}
	if s.Required != nil {
		attrs = append(attrs, boolAttr("required", *s.Required))
	}
	if s.Fixed != nil {
		attrs = append(attrs, boolAttr("fixed", *s.Fixed))
	}
	x.start(s.partTag(), attrs...)
	for _, p := range s.Parts {
		p.writePartXML(x)
	}
	x.end(s.partTag())
}

// itemRefs collects the item references of this section and every nested
// section in document order.
func (s *AssessmentSection) itemRefs() []*AssessmentItemRef {
	var refs []*AssessmentItemRef
	for _, p := range s.Parts {
		switch v := p.(type) {
		case *AssessmentItemRef:
			refs = append(refs, v)
		case *AssessmentSection:
			refs = append(refs, v.itemRefs()...)
		}
	}
	return refs
}

// TestPart is one navigable division of a test.
type TestPart struct {
	Identifier     UniqueIdentifier
	NavigationMode NavigationMode
	SubmissionMode SubmissionMode

	Sections []*AssessmentSection
}

func NewTestPart(reg *IDRegistry) *TestPart {
	return &TestPart{
		Identifier:     reg.Next("TestPart"),
		NavigationMode: NavigationNonlinear,
		SubmissionMode: SubmissionIndividual,
	}
}

func (p *TestPart) writeXML(x *xmlWriter) {
	x.start("testPart",
		identAttr("identifier", p.Identifier),
		attr("navigationMode", p.NavigationMode.String()),
		attr("submissionMode", p.SubmissionMode.String()),
	)
	for _, s := range p.Sections {
		s.writePartXML(x)
	}
	x.end("testPart")
}

// AssessmentTest is the root of a test document: an ordered set of test
// parts referencing packaged items.
type AssessmentTest struct {
	Identifier UniqueIdentifier
	Title      string

	OutcomeDeclarations []*OutcomeDeclaration
	Parts               []*TestPart
}

func NewAssessmentTest(reg *IDRegistry, title string) *AssessmentTest {
	return &AssessmentTest{
		Identifier: reg.Next("AssessmentTest"),
		Title:      title,
	}
}

// itemRefs collects every item reference across all parts.
func (t *AssessmentTest) itemRefs() []*AssessmentItemRef {
	var refs []*AssessmentItemRef
	for _, p := range t.Parts {
		for _, s := range p.Sections {
			refs = append(refs, s.itemRefs()...)
		}
	}
	return refs
}

// WriteXML serializes the complete assessmentTest document to w.
func (t *AssessmentTest) WriteXML(w io.Writer) error {
	x := newXMLWriter(w)
	x.header()
	x.generated()

	attrs := append(qtiRootAttrs(),
		identAttr("identifier", t.Identifier),
		attr("title", t.Title),
		attr("toolName", ToolName),
		attr("toolVersion", ToolVersion),
	)
	x.start("assessmentTest", attrs...)
	for _, o := range t.OutcomeDeclarations {
		o.writeXML(x)
	}
	for _, p := range t.Parts {
		p.writeXML(x)
	}
	x.end("assessmentTest")
	return x.flush()
}

// Manifest linkage. A test resource depends on every item it references, so
// packaging a test pulls all of its items into the manifest.

func (t *AssessmentTest) LinkID() UniqueIdentifier { return t.Identifier }

func (t *AssessmentTest) ResourceType() string { return "imsqti_test_xmlv2p2" }

func (t *AssessmentTest) Href() string { return string(t.Identifier) + ".xml" }

func (t *AssessmentTest) Files() []string { return []string{t.Href()} }

func (t *AssessmentTest) Dependencies() []Linkable {
	refs := t.itemRefs()
	seen := make(map[*AssessmentItem]bool)
	var deps []Linkable
	for _, r := range refs {
		if r.Item == nil || seen[r.Item] {
			continue
		}
		seen[r.Item] = true
		deps = append(deps, r.Item)
	}
	return deps
}

// WriteFile serializes the test into dir under its manifest href.
func (t *AssessmentTest) WriteFile(dir string) error {
	f, err := os.Create(filepath.Join(dir, t.Href()))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.WriteXML(f); err != nil {
		return err
	}
	if _, err := f.WriteString("\n"); err != nil {
		return err
	}
	return f.Close()
}
