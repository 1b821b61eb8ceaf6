package soap

import (
	"strings"

	"github.com/beevik/etree"
)

// Factory constructs XML elements in a single SuiteTalk schema namespace.
// Every element a Factory produces declares its own prefix binding, so the
// results can be attached anywhere in an envelope without coordinating
// namespace declarations with the caller.
type Factory struct {
	prefix string
	urn    string
}

// NewFactory creates a factory for a (module, sub-namespace) pair at the
// given no-micro version. The prefix follows NetSuite's documentation
// conventions (see PrefixFor).
func NewFactory(module, subNamespace, version string) *Factory {
	return &Factory{
		prefix: PrefixFor(module, subNamespace),
		urn:    URN(module, subNamespace, version),
	}
}

// URN returns the schema URN the factory is bound to.
func (f *Factory) URN() string {
	return f.urn
}

// Prefix returns the namespace prefix used on produced elements.
func (f *Factory) Prefix() string {
	return f.prefix
}

// Element creates an element of the given local name in the factory's
// namespace. The prefix is declared on the element itself.
func (f *Factory) Element(name string) *etree.Element {
	el := etree.NewElement(f.prefix + ":" + name)
	el.CreateAttr("xmlns:"+f.prefix, f.urn)
	return el
}

// Text creates an element holding character data, e.g.
//
//	f.Text("account", "123456")  // <platformCore:account>123456</platformCore:account>
func (f *Factory) Text(name, value string) *etree.Element {
	el := f.Element(name)
	el.SetText(value)
	return el
}

// SetType marks el with an xsi:type discriminator naming a type from this
// factory's namespace. SuiteTalk relies on xsi:type to resolve polymorphic
// elements such as baseRef to a concrete schema type.
func (f *Factory) SetType(el *etree.Element, typeName string) {
	el.CreateAttr("xmlns:"+f.prefix, f.urn)
	el.CreateAttr("xsi:type", f.prefix+":"+typeName)
}

// Canonical prefixes for the platform schemas, matching NetSuite's
// published samples. All other bindings derive mechanically.
var canonicalPrefixes = map[string]string{
	"core/platform":         PrefixCore,
	"types.core/platform":   PrefixCoreTypes,
	"messages/platform":     PrefixMessages,
	"common/platform":       PrefixCommon,
	"types.common/platform": PrefixCommon + "Typ",
	"faults/platform":       PrefixFaults,
	"types.faults/platform": PrefixFaults + "Typ",
}

var subNamespaceAbbrevs = map[string]string{
	SubNamespacePlatform:     "platform",
	SubNamespaceActivities:   "act",
	SubNamespaceGeneral:      "general",
	SubNamespaceDocuments:    "doc",
	SubNamespaceLists:        "list",
	SubNamespaceTransactions: "tran",
	SubNamespaceSetup:        "setup",
}

// PrefixFor derives the namespace prefix for a (module, sub-namespace)
// binding: the sub-namespace abbreviation followed by the capitalized
// module, with a "Typ" suffix for the enumeration schemas ("types."
// modules). The platform schemas use their canonical documented prefixes.
//
//	PrefixFor("sales", "transactions")       // "tranSales"
//	PrefixFor("types.sales", "transactions") // "tranSalesTyp"
func PrefixFor(module, subNamespace string) string {
	if p, ok := canonicalPrefixes[module+"/"+subNamespace]; ok {
		return p
	}
	name := module
	suffix := ""
	if rest, ok := strings.CutPrefix(module, "types."); ok {
		name = rest
		suffix = "Typ"
	}
	abbrev, ok := subNamespaceAbbrevs[subNamespace]
	if !ok {
		abbrev = subNamespace
	}
	return abbrev + strings.ToUpper(name[:1]) + name[1:] + suffix
}
