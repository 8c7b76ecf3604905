package qti

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResource lets tests shape arbitrary dependency graphs, including ones
// with cycles.
type stubResource struct {
	id   UniqueIdentifier
	deps []Linkable
}

func (s *stubResource) LinkID() UniqueIdentifier { return s.id }
func (s *stubResource) ResourceType() string     { return "imsqti_item_xmlv2p2" }
func (s *stubResource) Href() string             { return string(s.id) + ".xml" }
func (s *stubResource) Files() []string          { return []string{s.Href()} }
func (s *stubResource) Dependencies() []Linkable { return s.deps }
func (s *stubResource) WriteFile(dir string) error {
	return os.WriteFile(filepath.Join(dir, s.Href()), []byte("<stub/>\n"), 0o644)
}

func TestManifestWriteCompleteness(t *testing.T) {
	reg := NewIDRegistry()
	m := NewManifest(reg, "Unit 3 Quiz")

	itemA := buildSingleAnswerItem(t, reg)
	itemB := buildSingleAnswerItem(t, reg)
	m.Add(itemA)
	m.Add(itemB)

	dir := t.TempDir()
	require.NoError(t, m.Write(dir))

	data, err := os.ReadFile(filepath.Join(dir, "imsmanifest.xml"))
	require.NoError(t, err)
	out := string(data)

	for _, item := range []*AssessmentItem{itemA, itemB} {
		assert.Equal(t, 1, strings.Count(out, `identifier="`+string(item.Identifier)+`"`))
		assert.Contains(t, out, `href="`+item.Href()+`"`)
		_, err := os.Stat(filepath.Join(dir, item.Href()))
		assert.NoError(t, err, "item file %s must exist", item.Href())
	}
	assert.Contains(t, out, `type="imsqti_item_xmlv2p2"`)
	assert.Contains(t, out, "<organizations>")
	assert.Contains(t, out, "<schema>QTIv2.2 Package</schema>")
	assert.Contains(t, out, "<imsmd:string>Unit 3 Quiz</imsmd:string>")
}

func TestManifestLOMMetadata(t *testing.T) {
	reg := NewIDRegistry()
	m := NewManifest(reg, "Unit 3 Quiz")
	m.Description = "End of unit assessment."
	m.Copyright = "(c) 2026 Example University"
	m.Add(buildSingleAnswerItem(t, reg))

	dir := t.TempDir()
	require.NoError(t, m.Write(dir))

	data, err := os.ReadFile(filepath.Join(dir, "imsmanifest.xml"))
	require.NoError(t, err)
	out := string(data)

	titleIdx := strings.Index(out, "<imsmd:title>")
	require.GreaterOrEqual(t, titleIdx, 0)
	assert.Contains(t, out[titleIdx:], "<imsmd:string>Unit 3 Quiz</imsmd:string>")
	assert.Contains(t, out, "<imsmd:description>")
	assert.Contains(t, out, "<imsmd:string>End of unit assessment.</imsmd:string>")

	rightsIdx := strings.Index(out, "<imsmd:rights>")
	require.GreaterOrEqual(t, rightsIdx, 0, "copyright must sit under a rights element")
	assert.Contains(t, out[rightsIdx:], "<imsmd:string>(c) 2026 Example University</imsmd:string>")

	// Fixed LOM housekeeping values.
	assert.Contains(t, out, "<imsmd:source>LOMv1.0</imsmd:source>")
	assert.Contains(t, out, "<imsmd:value>Final</imsmd:value>")
	assert.Contains(t, out, "<imsmd:metadataschema>QTIv2.1</imsmd:metadataschema>")
	assert.Contains(t, out, "<imsmd:format>text/x-imsqti-item-xml</imsmd:format>")
}

func TestManifestTestPullsItemDependencies(t *testing.T) {
	reg := NewIDRegistry()
	m := NewManifest(reg, "Final")

	item := buildSingleAnswerItem(t, reg)
	test := NewAssessmentTest(reg, "Final")
	part := NewTestPart(reg)
	section := NewAssessmentSection(reg, "Section A", true)
	section.AddItem(reg, item)
	part.Sections = append(part.Sections, section)
	test.Parts = append(test.Parts, part)
	m.Add(test)

	dir := t.TempDir()
	require.NoError(t, m.Write(dir))

	data, err := os.ReadFile(filepath.Join(dir, "imsmanifest.xml"))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `type="imsqti_test_xmlv2p2"`)
	assert.Contains(t, out, `<dependency identifierref="`+string(item.Identifier)+`">`)

	_, err = os.Stat(filepath.Join(dir, test.Href()))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, item.Href()))
	assert.NoError(t, err, "referenced item must be materialized")

	testXML, err := os.ReadFile(filepath.Join(dir, test.Href()))
	require.NoError(t, err)
	assert.Contains(t, string(testXML), `navigationMode="nonlinear" submissionMode="individual"`)
	assert.Contains(t, string(testXML), `href="`+item.Href()+`"`)
}

func TestManifestCycleGuard(t *testing.T) {
	reg := NewIDRegistry()
	m := NewManifest(reg, "Cyclic")

	a := &stubResource{id: "Stub-0000"}
	b := &stubResource{id: "Stub-0001"}
	a.deps = []Linkable{b}
	b.deps = []Linkable{a}
	m.Add(a)

	dir := t.TempDir()
	require.NoError(t, m.Write(dir), "cyclic dependencies must not hang the traversal")

	data, err := os.ReadFile(filepath.Join(dir, "imsmanifest.xml"))
	require.NoError(t, err)
	out := string(data)
	assert.Equal(t, 2, strings.Count(out, "<resource "))
	assert.Equal(t, 1, strings.Count(out, `identifier="Stub-0000"`))
	assert.Equal(t, 1, strings.Count(out, `identifier="Stub-0001"`))
}
