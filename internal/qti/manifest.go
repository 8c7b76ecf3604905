package qti

import (
	"io"
	"os"
	"path/filepath"
)

// Linkable is any document that can appear as a resource in a content
// package: it knows its manifest identity, how to write its own file, and
// which other resources it depends on.
type Linkable interface {
	LinkID() UniqueIdentifier
	ResourceType() string
	Href() string
	Files() []string
	Dependencies() []Linkable
	WriteFile(dir string) error
}

// Manifest models the imsmanifest.xml of an IMS content package. Resources
// holds the roots; dependencies are discovered by traversal when the
// manifest is written, so adding a test automatically pulls in its items.
type Manifest struct {
	Identifier  UniqueIdentifier
	Title       string
	Description string
	Copyright   string
	Resources   []Linkable
}

func NewManifest(reg *IDRegistry, title string) *Manifest {
	return &Manifest{
		Identifier: reg.Next("Manifest"),
		Title:      title,
	}
}

// Add appends a root resource to the package.
func (m *Manifest) Add(res Linkable) {
	m.Resources = append(m.Resources, res)
}

// collect walks the dependency graph breadth first and returns every
// reachable resource exactly once, roots first. The visited set keys on
// manifest identifier, which also guards against dependency cycles.
func (m *Manifest) collect() []Linkable {
	visited := make(map[UniqueIdentifier]bool)
	var all []Linkable
	queue := append([]Linkable(nil), m.Resources...)
	for len(queue) > 0 {
		res := queue[0]
		queue = queue[1:]
		if visited[res.LinkID()] {
			continue
		}
		visited[res.LinkID()] = true
		all = append(all, res)
		queue = append(queue, res.Dependencies()...)
	}
	return all
}

// Write materializes the complete package into dir: every reachable
// resource's file plus the imsmanifest.xml describing them.
func (m *Manifest) Write(dir string) error {
	all := m.collect()
	for _, res := range all {
		if err := res.WriteFile(dir); err != nil {
			return err
		}
	}
	f, err := os.Create(filepath.Join(dir, "imsmanifest.xml"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := m.writeManifestXML(f, all); err != nil {
		return err
	}
	return f.Close()
}

func (m *Manifest) writeManifestXML(w io.Writer, all []Linkable) error {
	x := newXMLWriter(w)
	x.header()
	x.generated()

	x.start("manifest",
		identAttr("identifier", m.Identifier),
		attr("xmlns", cpNamespace),
		attr("xmlns:imsmd", lomNamespace),
		attr("xmlns:imsqti", qtiMDNamespace),
		attr("xmlns:xsi", xsiNamespace),
		attr("xsi:schemaLocation", cpSchemaLocation),
	)

	x.start("metadata")
	x.element("schema", "QTIv2.2 Package")
	x.element("schemaversion", "1.0.0")
	m.writeLOM(x)
	x.end("metadata")

	x.start("organizations")
	x.end("organizations")

	x.start("resources")
	for _, res := range all {
		x.start("resource",
			identAttr("identifier", res.LinkID()),
			attr("type", res.ResourceType()),
			attr("href", res.Href()),
		)
		for _, file := range res.Files() {
			x.start("file", attr("href", file))
			x.end("file")
		}
		for _, dep := range res.Dependencies() {
			x.start("dependency", identAttr("identifierref", dep.LinkID()))
			x.end("dependency")
		}
		x.end("resource")
	}
	x.end("resources")

	x.end("manifest")
	if err := x.flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// writeLOM emits the package-level LOM metadata block: general
// title/description, fixed lifeCycle/metaMetadata/technical values, and the
// copyright statement under rights.
func (m *Manifest) writeLOM(x *xmlWriter) {
	x.start("imsmd:lom")

	x.start("imsmd:general")
	x.start("imsmd:title")
	x.element("imsmd:string", m.Title)
	x.end("imsmd:title")
	x.element("imsmd:language", "en")
	x.start("imsmd:description")
	x.element("imsmd:string", m.Description)
	x.end("imsmd:description")
	x.end("imsmd:general")

	x.start("imsmd:lifeCycle")
	x.start("imsmd:version")
	x.element("imsmd:string", "2.1")
	x.end("imsmd:version")
	x.start("imsmd:status")
	x.element("imsmd:source", "LOMv1.0")
	x.element("imsmd:value", "Final")
	x.end("imsmd:status")
	x.end("imsmd:lifeCycle")

	x.start("imsmd:metaMetadata")
	x.element("imsmd:metadataschema", "LOMv1.0")
	x.element("imsmd:metadataschema", "QTIv2.1")
	x.element("imsmd:language", "en")
	x.end("imsmd:metaMetadata")

	x.start("imsmd:technical")
	x.element("imsmd:format", "text/x-imsqti-item-xml")
	x.end("imsmd:technical")

	x.start("imsmd:rights")
	x.start("imsmd:description")
	x.element("imsmd:string", m.Copyright)
	x.end("imsmd:description")
	x.end("imsmd:rights")

	x.end("imsmd:lom")
}
