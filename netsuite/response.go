package netsuite

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/suitegate/go-suitetalk/soap"
)

// Record wraps one record element returned by a read or search operation.
// Field access walks child elements by local name, ignoring whatever
// namespace prefixes the server chose.
type Record struct {
	el *etree.Element
}

// Element returns the underlying record element.
func (r Record) Element() *etree.Element {
	return r.el
}

// Type returns the record's schema type: the local part of its xsi:type
// discriminator when present, otherwise the element name.
func (r Record) Type() string {
	for _, attr := range r.el.Attr {
		if attr.Space != "" && attr.Key == "type" {
			if _, local, ok := strings.Cut(attr.Value, ":"); ok {
				return local
			}
			return attr.Value
		}
	}
	return r.el.Tag
}

// InternalID returns the record's internalId attribute.
func (r Record) InternalID() string {
	return r.el.SelectAttrValue("internalId", "")
}

// ExternalID returns the record's externalId attribute.
func (r Record) ExternalID() string {
	return r.el.SelectAttrValue("externalId", "")
}

// Text returns the character data at a dot-separated path of field names
// below the record. Missing fields return "": records carry only the
// fields the server chose to populate.
func (r Record) Text(path string) string {
	el := r.el
	for _, step := range strings.Split(path, ".") {
		if el = el.SelectElement(step); el == nil {
			return ""
		}
	}
	return strings.TrimSpace(el.Text())
}

// Decimal parses the field at path as an arbitrary-precision decimal.
// Quantity and amount fields must not round-trip through float64.
func (r Record) Decimal(path string) (decimal.Decimal, error) {
	s := r.Text(path)
	if s == "" {
		return decimal.Zero, fmt.Errorf("netsuite: record has no value at %q", path)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("netsuite: parse %q at %q: %w", s, path, err)
	}
	return d, nil
}

// Reference is a record reference parsed from a response element.
type Reference struct {
	InternalID string
	ExternalID string
	Type       string

	// Name is the display name the server attaches to some references.
	Name string
}

func referenceFrom(el *etree.Element) Reference {
	if el == nil {
		return Reference{}
	}
	ref := Reference{
		InternalID: el.SelectAttrValue("internalId", ""),
		ExternalID: el.SelectAttrValue("externalId", ""),
		Type:       el.SelectAttrValue("type", ""),
	}
	if name := el.SelectElement("name"); name != nil {
		ref.Name = strings.TrimSpace(name.Text())
	}
	return ref
}

// Extract returns the element at a dot-separated path of local names
// below the operation response element. A leading "body" segment refers
// to the operation response itself, so paths read the same as the
// response shapes in NetSuite's documentation, e.g.
//
//	Extract(resp, "body.getItemAvailabilityResult.itemAvailabilityList")
func Extract(resp *soap.Response, path string) (*etree.Element, error) {
	steps, err := splitSteps(path)
	if err != nil {
		return nil, err
	}

	el, err := resp.Operation()
	if err != nil {
		return nil, err
	}
	for _, step := range steps {
		next := el.SelectElement(step)
		if next == nil {
			return nil, fmt.Errorf("netsuite: path %q: no element %q", path, step)
		}
		el = next
	}
	return el, nil
}

// ExtractAll walks like Extract but returns every sibling matching the
// final path step. A final step matching nothing yields an empty slice:
// list responses are legitimately empty.
func ExtractAll(resp *soap.Response, path string) ([]*etree.Element, error) {
	steps, err := splitSteps(path)
	if err != nil {
		return nil, err
	}

	el, err := resp.Operation()
	if err != nil {
		return nil, err
	}
	for _, step := range steps[:len(steps)-1] {
		next := el.SelectElement(step)
		if next == nil {
			return nil, fmt.Errorf("netsuite: path %q: no element %q", path, step)
		}
		el = next
	}
	return el.SelectElements(steps[len(steps)-1]), nil
}

func splitSteps(path string) ([]string, error) {
	steps := strings.Split(path, ".")
	if len(steps) > 0 && steps[0] == "body" {
		steps = steps[1:]
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("netsuite: empty extraction path %q", path)
	}
	for _, step := range steps {
		if step == "" {
			return nil, fmt.Errorf("netsuite: malformed extraction path %q", path)
		}
	}
	return steps, nil
}

// checkStatus surfaces a failed status child of el as an error.
func checkStatus(el *etree.Element) error {
	return soap.StatusFromElement(el.SelectElement("status"))
}

// readResponses converts readResponse elements into records, surfacing
// any per-record failure status as an error.
func readResponses(nodes []*etree.Element) ([]Record, error) {
	records := make([]Record, 0, len(nodes))
	for _, rr := range nodes {
		if err := checkStatus(rr); err != nil {
			return nil, err
		}
		rec := rr.SelectElement("record")
		if rec == nil {
			return nil, fmt.Errorf("netsuite: read response carries no record")
		}
		records = append(records, Record{el: rec})
	}
	return records, nil
}
