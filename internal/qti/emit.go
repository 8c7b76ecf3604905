package qti

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Tool identity stamped into every generated document.
const (
	ToolName    = "QTIForge"
	ToolVersion = "0.2.1"
)

// Fixed IMS namespace and schema-location declarations for QTI v2.2 output.
const (
	QTINamespace      = "http://www.imsglobal.org/xsd/imsqti_v2p2"
	qtiSchemaLocation = "http://www.imsglobal.org/xsd/imsqti_v2p2  http://www.imsglobal.org/xsd/qti/qtiv2p2/imsqti_v2p2p2.xsd"
	xsiNamespace      = "http://www.w3.org/2001/XMLSchema-instance"

	cpNamespace        = "http://www.imsglobal.org/xsd/imscp_v1p1"
	lomNamespace       = "http://ltsc.ieee.org/xsd/LOM"
	qtiMDNamespace     = "http://www.imsglobal.org/xsd/imsqti_metadata_v2p2"
	cpSchemaLocation   = "http://www.imsglobal.org/xsd/imscp_v1p1  http://www.imsglobal.org/xsd/qti/qtiv2p2/qtiv2p2_imscpv1p2_v1p0.xsd http://ltsc.ieee.org/xsd/LOM http://www.imsglobal.org/xsd/imsmd_loose_v1p3p2.xsd http://www.imsglobal.org/xsd/imsqti_metadata_v2p2  http://www.imsglobal.org/xsd/qti/qtiv2p2/imsqti_metadata_v2p2.xsd"
)

// now is swapped out by tests that need a stable generation comment.
var now = time.Now

// xmlWriter wraps an xml.Encoder with error latching so the per-type
// writeXML methods stay linear. Attributes are emitted in the order they are
// appended and optional attributes are simply never appended, which is how
// the wire format keeps absent fields absent instead of empty.
type xmlWriter struct {
	enc *xml.Encoder
	err error
}

func newXMLWriter(w io.Writer) *xmlWriter {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return &xmlWriter{enc: enc}
}

func (x *xmlWriter) token(t xml.Token) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(t)
}

func (x *xmlWriter) header() {
	x.token(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)})
}

func (x *xmlWriter) start(name string, attrs ...xml.Attr) {
	x.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (x *xmlWriter) end(name string) {
	x.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (x *xmlWriter) text(s string) {
	x.token(xml.CharData(s))
}

// element writes <name>text</name> in one go.
func (x *xmlWriter) element(name, text string) {
	x.start(name)
	x.text(text)
	x.end(name)
}

func (x *xmlWriter) comment(s string) {
	x.token(xml.Comment(" " + s + " "))
}

// generated emits the per-document provenance comment.
func (x *xmlWriter) generated() {
	x.comment(fmt.Sprintf("File automatically generated %s by %s v%s",
		now().UTC().Format(time.RFC3339), ToolName, ToolVersion))
}

func (x *xmlWriter) fail(err error) {
	if x.err == nil {
		x.err = err
	}
}

func (x *xmlWriter) flush() error {
	if x.err != nil {
		return x.err
	}
	return x.enc.Flush()
}

// Attribute constructors. Values use canonical XML-schema lexical forms:
// booleans as true/false, doubles in shortest round-trip decimal form.

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func boolAttr(name string, v bool) xml.Attr {
	return attr(name, strconv.FormatBool(v))
}

func uintAttr(name string, v uint) xml.Attr {
	return attr(name, strconv.FormatUint(uint64(v), 10))
}

func floatAttr(name string, v float64) xml.Attr {
	return attr(name, formatFloat(v))
}

func identAttr(name string, id UniqueIdentifier) xml.Attr {
	return attr(name, string(id))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// joinIdentifiers renders an identifier list as the comma-joined attribute
// form QTI uses for identifier collections.
func joinIdentifiers(ids []UniqueIdentifier) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// qtiRootAttrs returns the namespace header attributes shared by every
// top-level QTI document.
func qtiRootAttrs() []xml.Attr {
	return []xml.Attr{
		attr("xmlns", QTINamespace),
		attr("xmlns:xsi", xsiNamespace),
		attr("xsi:schemaLocation", qtiSchemaLocation),
	}
}
