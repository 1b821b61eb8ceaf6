package soap

import (
	"strings"
	"testing"
)

// TestRecordRef_Element verifies reference rendering with xsi:type.
func TestRecordRef_Element(t *testing.T) {
	msgs := NewFactory("messages", SubNamespacePlatform, "2017_2")
	core := NewFactory("core", SubNamespacePlatform, "2017_2")

	tests := []struct {
		name    string
		ref     RecordRef
		want    []string
		notWant []string
	}{
		{
			name: "internal id with type",
			ref:  RecordRef{InternalID: "42", Type: "inventoryItem"},
			want: []string{
				"<platformMsgs:baseRef",
				`xsi:type="platformCore:RecordRef"`,
				`internalId="42"`,
				`type="inventoryItem"`,
			},
			notWant: []string{"externalId"},
		},
		{
			name: "external id",
			ref:  RecordRef{ExternalID: "CUST-7", Type: "customer"},
			want: []string{
				`externalId="CUST-7"`,
				`type="customer"`,
			},
			notWant: []string{"internalId"},
		},
		{
			name: "untyped reference",
			ref:  RecordRef{InternalID: "9"},
			want: []string{`internalId="9"`},
			// leading space so the pattern cannot match inside xsi:type
			notWant: []string{` type="`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xmlStr := marshalElement(t, tt.ref.Element("baseRef", msgs, core))

			for _, want := range tt.want {
				if !strings.Contains(xmlStr, want) {
					t.Errorf("missing %q in %q", want, xmlStr)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(xmlStr, notWant) {
					t.Errorf("unexpected %q in %q", notWant, xmlStr)
				}
			}
		})
	}
}

// TestPreferences_Element verifies only set preferences are emitted.
func TestPreferences_Element(t *testing.T) {
	msgs := NewFactory("messages", SubNamespacePlatform, "2017_2")

	prefs := Preferences{
		WarningAsError:       Bool(true),
		IgnoreReadOnlyFields: Bool(false),
	}
	xmlStr := marshalElement(t, prefs.Element(msgs))

	if !strings.Contains(xmlStr, "<platformMsgs:preferences") {
		t.Errorf("missing preferences element, got %q", xmlStr)
	}
	if !strings.Contains(xmlStr, ">true</platformMsgs:warningAsError>") {
		t.Errorf("missing warningAsError, got %q", xmlStr)
	}
	if !strings.Contains(xmlStr, ">false</platformMsgs:ignoreReadOnlyFields>") {
		t.Errorf("missing ignoreReadOnlyFields, got %q", xmlStr)
	}
	if strings.Contains(xmlStr, "disableMandatoryCustomFieldValidation") {
		t.Errorf("unset preference should be omitted, got %q", xmlStr)
	}
}

// TestSearchPreferences_Element verifies search header rendering.
func TestSearchPreferences_Element(t *testing.T) {
	msgs := NewFactory("messages", SubNamespacePlatform, "2017_2")

	prefs := SearchPreferences{
		BodyFieldsOnly: Bool(false),
		PageSize:       Int(250),
	}
	xmlStr := marshalElement(t, prefs.Element(msgs))

	if !strings.Contains(xmlStr, "<platformMsgs:searchPreferences") {
		t.Errorf("missing searchPreferences element, got %q", xmlStr)
	}
	if !strings.Contains(xmlStr, ">false</platformMsgs:bodyFieldsOnly>") {
		t.Errorf("missing bodyFieldsOnly, got %q", xmlStr)
	}
	if !strings.Contains(xmlStr, ">250</platformMsgs:pageSize>") {
		t.Errorf("missing pageSize, got %q", xmlStr)
	}
	if strings.Contains(xmlStr, "returnSearchColumns") {
		t.Errorf("unset preference should be omitted, got %q", xmlStr)
	}
}

// TestApplicationInfo_Element verifies application id header rendering.
func TestApplicationInfo_Element(t *testing.T) {
	msgs := NewFactory("messages", SubNamespacePlatform, "2017_2")

	info := ApplicationInfo{ApplicationID: "A1B2C3D4-E5F6-4A5B-9C8D-0123456789AB"}
	xmlStr := marshalElement(t, info.Element(msgs))

	if !strings.Contains(xmlStr, "<platformMsgs:applicationInfo") {
		t.Errorf("missing applicationInfo element, got %q", xmlStr)
	}
	if !strings.Contains(xmlStr, ">A1B2C3D4-E5F6-4A5B-9C8D-0123456789AB</platformMsgs:applicationId>") {
		t.Errorf("missing applicationId, got %q", xmlStr)
	}
}

// TestPartnerInfo_Element verifies partner id header rendering.
func TestPartnerInfo_Element(t *testing.T) {
	msgs := NewFactory("messages", SubNamespacePlatform, "2017_2")

	info := PartnerInfo{PartnerID: "NETSUITE_PARTNER_7"}
	xmlStr := marshalElement(t, info.Element(msgs))

	if !strings.Contains(xmlStr, "<platformMsgs:partnerInfo") {
		t.Errorf("missing partnerInfo element, got %q", xmlStr)
	}
	if !strings.Contains(xmlStr, ">NETSUITE_PARTNER_7</platformMsgs:partnerId>") {
		t.Errorf("missing partnerId, got %q", xmlStr)
	}
}
