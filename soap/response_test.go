package soap

import (
	"strings"
	"testing"
)

const getListResponseXML = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <getListResponse xmlns="urn:messages_2017_2.platform.webservices.netsuite.com">
      <readResponseList xmlns:platformCore="urn:core_2017_2.platform.webservices.netsuite.com">
        <platformCore:status isSuccess="true"/>
        <readResponse>
          <platformCore:status isSuccess="true"/>
          <record internalId="42" xmlns:listRel="urn:relationships_2017_2.lists.webservices.netsuite.com">
            <listRel:companyName>Wolfe Electronics</listRel:companyName>
          </record>
        </readResponse>
        <readResponse>
          <platformCore:status isSuccess="true"/>
          <record internalId="43" xmlns:listRel="urn:relationships_2017_2.lists.webservices.netsuite.com">
            <listRel:companyName>Anderson Boats</listRel:companyName>
          </record>
        </readResponse>
      </readResponseList>
    </getListResponse>
  </soapenv:Body>
</soapenv:Envelope>`

// TestParseResponse verifies parsing and body access.
func TestParseResponse(t *testing.T) {
	resp, err := ParseResponse([]byte(getListResponseXML))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}

	if resp.Body() == nil {
		t.Fatal("Body() returned nil")
	}

	op, err := resp.Operation()
	if err != nil {
		t.Fatalf("Operation failed: %v", err)
	}
	if op.Tag != "getListResponse" {
		t.Errorf("operation = %q, want %q", op.Tag, "getListResponse")
	}
}

// TestParseResponse_Fault verifies fault envelopes become errors.
func TestParseResponse_Fault(t *testing.T) {
	faultXML := `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <soapenv:Fault>
      <faultcode>soapenv:Server</faultcode>
      <faultstring>boom</faultstring>
    </soapenv:Fault>
  </soapenv:Body>
</soapenv:Envelope>`

	_, err := ParseResponse([]byte(faultXML))
	if err == nil {
		t.Fatal("expected fault error, got nil")
	}
	if !IsFault(err) {
		t.Errorf("error is %T, want *Fault", err)
	}
}

// TestResponse_Find verifies dotted-path navigation.
func TestResponse_Find(t *testing.T) {
	resp, err := ParseResponse([]byte(getListResponseXML))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantTag string
		wantErr bool
	}{
		{
			name:    "nested element",
			path:    "getListResponse.readResponseList",
			wantTag: "readResponseList",
		},
		{
			name:    "leading body segment",
			path:    "body.getListResponse.readResponseList",
			wantTag: "readResponseList",
		},
		{
			name:    "first of repeated elements",
			path:    "getListResponse.readResponseList.readResponse",
			wantTag: "readResponse",
		},
		{
			name:    "missing step",
			path:    "getListResponse.nothingHere",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := resp.Find(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.path) {
					t.Errorf("error should name the path, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find(%q) failed: %v", tt.path, err)
			}
			if el.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", el.Tag, tt.wantTag)
			}
		})
	}
}

// TestResponse_FindAll verifies repeated element collection.
func TestResponse_FindAll(t *testing.T) {
	resp, err := ParseResponse([]byte(getListResponseXML))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}

	els, err := resp.FindAll("getListResponse.readResponseList.readResponse")
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(els) != 2 {
		t.Fatalf("len = %d, want 2", len(els))
	}

	for i, el := range els {
		record := el.SelectElement("record")
		if record == nil {
			t.Fatalf("readResponse[%d] has no record", i)
		}
	}
	if id := els[0].SelectElement("record").SelectAttrValue("internalId", ""); id != "42" {
		t.Errorf("first record internalId = %q, want %q", id, "42")
	}
}

// TestResponse_FindAll_Empty verifies empty final steps are not errors.
func TestResponse_FindAll_Empty(t *testing.T) {
	emptyXML := `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <searchResponse xmlns="urn:messages_2017_2.platform.webservices.netsuite.com">
      <searchResult>
        <recordList/>
      </searchResult>
    </searchResponse>
  </soapenv:Body>
</soapenv:Envelope>`

	resp, err := ParseResponse([]byte(emptyXML))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}

	els, err := resp.FindAll("searchResponse.searchResult.recordList.record")
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(els) != 0 {
		t.Errorf("len = %d, want 0", len(els))
	}
}

// TestResponse_Text verifies character data extraction.
func TestResponse_Text(t *testing.T) {
	resp, err := ParseResponse([]byte(getListResponseXML))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}

	got, err := resp.Text("getListResponse.readResponseList.readResponse.record.companyName")
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if got != "Wolfe Electronics" {
		t.Errorf("Text = %q, want %q", got, "Wolfe Electronics")
	}
}

// TestSplitPath verifies path validation.
func TestSplitPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    int
		wantErr bool
	}{
		{name: "plain", path: "a.b.c", want: 3},
		{name: "leading body", path: "body.a.b", want: 2},
		{name: "bare body", path: "body", wantErr: true},
		{name: "empty", path: "", wantErr: true},
		{name: "double dot", path: "a..b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := splitPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err == nil && len(steps) != tt.want {
				t.Errorf("len = %d, want %d", len(steps), tt.want)
			}
		})
	}
}
