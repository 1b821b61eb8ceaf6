package soap

import (
	"strconv"

	"github.com/beevik/etree"
)

// RecordRef identifies a NetSuite record by internal or external ID.
// Type is the record type discriminator (e.g., "inventoryItem") and may be
// empty for operations that imply it.
type RecordRef struct {
	InternalID string
	ExternalID string
	Type       string
}

// Element renders the reference as an element of the given local name in
// the owner namespace, typed as a core RecordRef through xsi:type.
func (r RecordRef) Element(name string, owner, core *Factory) *etree.Element {
	el := owner.Element(name)
	core.SetType(el, "RecordRef")
	if r.Type != "" {
		el.CreateAttr("type", r.Type)
	}
	if r.InternalID != "" {
		el.CreateAttr("internalId", r.InternalID)
	}
	if r.ExternalID != "" {
		el.CreateAttr("externalId", r.ExternalID)
	}
	return el
}

// Preferences is the request-level preferences SOAP header. Nil fields are
// omitted so the server applies its defaults.
type Preferences struct {
	WarningAsError                          *bool
	DisableMandatoryCustomFieldValidation   *bool
	DisableSystemNotesForCustomFields       *bool
	IgnoreReadOnlyFields                    *bool
	RunServerSuiteScriptAndTriggerWorkflows *bool
}

// Element renders the preferences header in the messages namespace.
func (p Preferences) Element(msgs *Factory) *etree.Element {
	el := msgs.Element("preferences")
	appendBool(el, msgs, "warningAsError", p.WarningAsError)
	appendBool(el, msgs, "disableMandatoryCustomFieldValidation", p.DisableMandatoryCustomFieldValidation)
	appendBool(el, msgs, "disableSystemNotesForCustomFields", p.DisableSystemNotesForCustomFields)
	appendBool(el, msgs, "ignoreReadOnlyFields", p.IgnoreReadOnlyFields)
	appendBool(el, msgs, "runServerSuiteScriptAndTriggerWorkflows", p.RunServerSuiteScriptAndTriggerWorkflows)
	return el
}

// SearchPreferences is the search tuning SOAP header. Nil fields are
// omitted so the server applies its defaults (page size 1000, full rows).
type SearchPreferences struct {
	BodyFieldsOnly      *bool
	ReturnSearchColumns *bool
	PageSize            *int
}

// Element renders the search preferences header in the messages namespace.
func (p SearchPreferences) Element(msgs *Factory) *etree.Element {
	el := msgs.Element("searchPreferences")
	appendBool(el, msgs, "bodyFieldsOnly", p.BodyFieldsOnly)
	appendBool(el, msgs, "returnSearchColumns", p.ReturnSearchColumns)
	if p.PageSize != nil {
		el.AddChild(msgs.Text("pageSize", strconv.Itoa(*p.PageSize)))
	}
	return el
}

// ApplicationInfo is the application identification SOAP header required by
// accounts with mandatory application IDs.
type ApplicationInfo struct {
	ApplicationID string
}

// Element renders the applicationInfo header in the messages namespace.
func (a ApplicationInfo) Element(msgs *Factory) *etree.Element {
	el := msgs.Element("applicationInfo")
	el.AddChild(msgs.Text("applicationId", a.ApplicationID))
	return el
}

// PartnerInfo is the partner identification SOAP header, the partner-built
// integration counterpart of ApplicationInfo.
type PartnerInfo struct {
	PartnerID string
}

// Element renders the partnerInfo header in the messages namespace.
func (p PartnerInfo) Element(msgs *Factory) *etree.Element {
	el := msgs.Element("partnerInfo")
	el.AddChild(msgs.Text("partnerId", p.PartnerID))
	return el
}

// Bool returns a pointer to v, for filling optional preference fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for filling optional preference fields.
func Int(v int) *int { return &v }

func appendBool(parent *etree.Element, f *Factory, name string, v *bool) {
	if v == nil {
		return
	}
	parent.AddChild(f.Text(name, strconv.FormatBool(*v)))
}
