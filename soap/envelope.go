package soap

import (
	"fmt"

	"github.com/beevik/etree"
)

// Envelope assembles a SOAP 1.1 envelope for a SuiteTalk request.
//
// Header elements (passports, preferences) and the single body element are
// built by the caller — typically through a Factory so they carry the right
// versioned URNs — and attached with the builder methods.
type Envelope struct {
	headers []*etree.Element
	body    *etree.Element
}

// NewEnvelope creates an empty envelope.
func NewEnvelope() *Envelope {
	return &Envelope{}
}

// WithHeader appends an element to the SOAP header. Call order is preserved
// in the marshalled document.
func (e *Envelope) WithHeader(el *etree.Element) *Envelope {
	if el != nil {
		e.headers = append(e.headers, el)
	}
	return e
}

// WithBody sets the single operation element carried in the SOAP body.
func (e *Envelope) WithBody(el *etree.Element) *Envelope {
	e.body = el
	return e
}

// Document assembles the envelope into an XML document. The returned
// document owns the header and body elements, so an Envelope must not be
// reused after calling Document.
func (e *Envelope) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement(PrefixEnvelope + ":Envelope")
	env.CreateAttr("xmlns:"+PrefixEnvelope, NsSOAPEnvelope)
	env.CreateAttr("xmlns:xsi", NsXSI)

	header := env.CreateElement(PrefixEnvelope + ":Header")
	for _, h := range e.headers {
		header.AddChild(h)
	}

	body := env.CreateElement(PrefixEnvelope + ":Body")
	if e.body != nil {
		body.AddChild(e.body)
	}

	return doc
}

// Marshal serializes the envelope to XML.
func (e *Envelope) Marshal() ([]byte, error) {
	data, err := e.Document().WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("soap: marshal envelope: %w", err)
	}
	return data, nil
}

// envelopeBody locates the Body element of a parsed response document,
// tolerating whatever prefix the server chose for the envelope namespace.
func envelopeBody(doc *etree.Document) (*etree.Element, error) {
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, fmt.Errorf("soap: response has no Envelope root")
	}
	for _, child := range root.ChildElements() {
		if child.Tag == "Body" {
			return child, nil
		}
	}
	return nil, fmt.Errorf("soap: response envelope has no Body")
}
