// Package soap provides namespace constants and envelope construction for
// the SuiteTalk SOAP protocol.
//
// SuiteTalk scopes every schema to a versioned URN of the form
// urn:{module}_{version}.{subNamespace}.webservices.netsuite.com, where the
// version carries no micro component (e.g. "2017_2"). The constants and
// helpers here render those URNs and the handful of fixed W3C namespaces
// the envelope itself needs.
package soap

import "fmt"

// Fixed XML namespace URIs used by every SuiteTalk envelope.
const (
	// NsSOAPEnvelope is the SOAP 1.1 envelope namespace. SuiteTalk speaks
	// SOAP 1.1 exclusively.
	NsSOAPEnvelope = "http://schemas.xmlsoap.org/soap/envelope/"

	// NsXSI is the XML Schema Instance namespace, used for xsi:type
	// discriminators on polymorphic record references.
	NsXSI = "http://www.w3.org/2001/XMLSchema-instance"

	// NsXSD is the XML Schema namespace.
	NsXSD = "http://www.w3.org/2001/XMLSchema"
)

// Namespace prefixes conventionally used in SuiteTalk documents. The server
// does not require these exact prefixes, but matching them keeps captured
// traffic diffable against NetSuite's own documentation.
const (
	// PrefixEnvelope is the SOAP envelope prefix.
	PrefixEnvelope = "soapenv"

	// PrefixCore is the platform core prefix (RecordRef and friends).
	PrefixCore = "platformCore"

	// PrefixCoreTypes is the platform core enumerations prefix.
	PrefixCoreTypes = "platformCoreTyp"

	// PrefixMessages is the platform messages prefix (request/response
	// wrappers and the passport headers).
	PrefixMessages = "platformMsgs"

	// PrefixCommon is the platform common prefix (shared search fields).
	PrefixCommon = "platformCommon"

	// PrefixFaults is the platform faults prefix.
	PrefixFaults = "platformFaults"
)

// Sub-namespace groups a module may belong to.
const (
	SubNamespacePlatform     = "platform"
	SubNamespaceActivities   = "activities"
	SubNamespaceGeneral      = "general"
	SubNamespaceDocuments    = "documents"
	SubNamespaceLists        = "lists"
	SubNamespaceTransactions = "transactions"
	SubNamespaceSetup        = "setup"
)

// URNDomain is the fixed DNS suffix of every SuiteTalk schema URN.
const URNDomain = "webservices.netsuite.com"

// URN renders the schema URN for a (module, sub-namespace) pair at the given
// no-micro underscored version (e.g. "2017_2").
//
//	URN("core", "platform", "2017_2")
//	// urn:core_2017_2.platform.webservices.netsuite.com
//
// Module may itself be dotted for the enumeration schemas, e.g.
// "types.core".
func URN(module, subNamespace, version string) string {
	return fmt.Sprintf("urn:%s_%s.%s.%s", module, version, subNamespace, URNDomain)
}

// CoreURN is shorthand for the platform core URN at the given version.
func CoreURN(version string) string {
	return URN("core", SubNamespacePlatform, version)
}

// MessagesURN is shorthand for the platform messages URN at the given
// version. Operation request and response wrappers live here, as do the
// passport and preference SOAP headers.
func MessagesURN(version string) string {
	return URN("messages", SubNamespacePlatform, version)
}

// FaultsURN is shorthand for the platform faults URN at the given version.
func FaultsURN(version string) string {
	return URN("faults", SubNamespacePlatform, version)
}

// CommonURN is shorthand for the platform common URN at the given version.
func CommonURN(version string) string {
	return URN("common", SubNamespacePlatform, version)
}
