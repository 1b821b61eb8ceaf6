package soap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Response is a parsed SOAP response with fault checking already applied.
type Response struct {
	// Raw is the response body exactly as received.
	Raw []byte

	doc  *etree.Document
	body *etree.Element
}

// ParseResponse parses a SOAP response body. A fault envelope is returned
// as a *Fault error; anything else must be an envelope with a body.
func ParseResponse(data []byte) (*Response, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("soap: parse response: %w", err)
	}

	if fault := FaultFromDocument(doc); fault != nil {
		return nil, fault
	}

	body, err := envelopeBody(doc)
	if err != nil {
		return nil, err
	}

	return &Response{Raw: data, doc: doc, body: body}, nil
}

// Body returns the envelope body element.
func (r *Response) Body() *etree.Element {
	return r.body
}

// Operation returns the single operation response element inside the body,
// e.g. getListResponse.
func (r *Response) Operation() (*etree.Element, error) {
	children := r.body.ChildElements()
	if len(children) == 0 {
		return nil, fmt.Errorf("soap: response body is empty")
	}
	return children[0], nil
}

// Find walks a dot-separated path of local element names below the body
// and returns the first match, e.g.
//
//	resp.Find("getListResponse.readResponseList")
//
// A leading "body" segment is accepted and refers to the body itself.
// Namespace prefixes in the response are ignored; only local names match.
func (r *Response) Find(path string) (*etree.Element, error) {
	steps, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	el := r.body
	for _, step := range steps {
		next := el.SelectElement(step)
		if next == nil {
			return nil, fmt.Errorf("soap: path %q: no element %q", path, step)
		}
		el = next
	}
	return el, nil
}

// FindAll walks like Find but returns every sibling matching the final
// path step, e.g. each readResponse under readResponseList. Intermediate
// steps take the first match. The final step matching nothing yields an
// empty slice, not an error: list responses are legitimately empty.
func (r *Response) FindAll(path string) ([]*etree.Element, error) {
	steps, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	el := r.body
	for _, step := range steps[:len(steps)-1] {
		next := el.SelectElement(step)
		if next == nil {
			return nil, fmt.Errorf("soap: path %q: no element %q", path, step)
		}
		el = next
	}
	return el.SelectElements(steps[len(steps)-1]), nil
}

// Text returns the character data at the given path.
func (r *Response) Text(path string) (string, error) {
	el, err := r.Find(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(el.Text()), nil
}

// splitPath validates and splits a dotted navigation path, dropping the
// leading "body" segment when present.
func splitPath(path string) ([]string, error) {
	steps := strings.Split(path, ".")
	if len(steps) > 0 && steps[0] == "body" {
		steps = steps[1:]
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("soap: empty navigation path %q", path)
	}
	for _, step := range steps {
		if step == "" {
			return nil, fmt.Errorf("soap: malformed navigation path %q", path)
		}
	}
	return steps, nil
}
