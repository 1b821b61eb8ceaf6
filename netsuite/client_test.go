package netsuite

import (
	"strings"
	"testing"

	"github.com/suitegate/go-suitetalk/soap"
	"github.com/suitegate/go-suitetalk/soap/passport"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New(tokenConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if !c.Sandbox() {
		t.Error("Sandbox() = false, want sandbox by default")
	}
	if c.Version() != "2017.2.0" {
		t.Errorf("Version() = %q, want 2017.2.0", c.Version())
	}
	if got, want := c.WSDLURL(), "https://webservices.sandbox.netsuite.com/wsdl/v2017_2_0/netsuite.wsdl"; got != want {
		t.Errorf("WSDLURL() = %q, want %q", got, want)
	}
	if got, want := c.String(), "<NetSuite webservices.sandbox.netsuite.com(2017.2.0)>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNew_Production(t *testing.T) {
	c, err := New(tokenConfig(), WithSandbox(false), WithVersion("2016.1.0"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if got, want := c.Hostname(), "webservices.netsuite.com"; got != want {
		t.Errorf("Hostname() = %q, want %q", got, want)
	}
	if got, want := c.String(), "<NetSuite webservices.netsuite.com(2016.1.0)>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !strings.Contains(c.WSDLURL(), "/wsdl/v2016_1_0/") {
		t.Errorf("WSDLURL() = %q, want 2016.1.0 path", c.WSDLURL())
	}
}

func TestNew_WSDLURLOverride(t *testing.T) {
	c, err := New(tokenConfig(), WithWSDLURL("http://127.0.0.1:43115/netsuite.wsdl"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if got := c.WSDLURL(); got != "http://127.0.0.1:43115/netsuite.wsdl" {
		t.Errorf("WSDLURL() = %q, want the override", got)
	}
	if got := c.Hostname(); got != "127.0.0.1:43115" {
		t.Errorf("Hostname() = %q, want 127.0.0.1:43115", got)
	}
}

func TestNew_InvalidVersion(t *testing.T) {
	if _, err := New(tokenConfig(), WithVersion("2017_2")); err == nil {
		t.Error("New() with malformed version should fail")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{Account: "123456"}); err == nil {
		t.Error("New() without credentials should fail")
	}
}

func TestNew_PassportOverrideSkipsConfigValidation(t *testing.T) {
	// With an explicit provider the credential fields may stay empty.
	p := passport.NewTokenPassport("123456", "ck", "cs", "tid", "ts")
	c, err := New(Config{Account: "123456"}, WithPassport(p))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()
}

func TestClient_FactoryNamespaces(t *testing.T) {
	c, err := New(tokenConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	tests := []struct {
		name   string
		urn    string
		prefix string
	}{
		{"Core", "urn:core_2017_2.platform.webservices.netsuite.com", "platformCore"},
		{"Messages", "urn:messages_2017_2.platform.webservices.netsuite.com", "platformMsgs"},
		{"FaultsTypes", "urn:types.faults_2017_2.platform.webservices.netsuite.com", "platformFaultsTyp"},
		{"Scheduling", "urn:scheduling_2017_2.activities.webservices.netsuite.com", "actScheduling"},
		{"Filecabinet", "urn:filecabinet_2017_2.documents.webservices.netsuite.com", "docFilecabinet"},
		{"Relationships", "urn:relationships_2017_2.lists.webservices.netsuite.com", "listRelationships"},
		{"Sales", "urn:sales_2017_2.transactions.webservices.netsuite.com", "tranSales"},
		{"SalesTypes", "urn:types.sales_2017_2.transactions.webservices.netsuite.com", "tranSalesTyp"},
		{"Customization", "urn:customization_2017_2.setup.webservices.netsuite.com", "setupCustomization"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := factoryByName(t, c, tt.name)
			if f.URN() != tt.urn {
				t.Errorf("URN = %q, want %q", f.URN(), tt.urn)
			}
			if f.Prefix() != tt.prefix {
				t.Errorf("Prefix = %q, want %q", f.Prefix(), tt.prefix)
			}
		})
	}
}

func factoryByName(t *testing.T, c *Client, name string) *soap.Factory {
	t.Helper()
	switch name {
	case "Core":
		return c.Core()
	case "Messages":
		return c.Messages()
	case "FaultsTypes":
		return c.FaultsTypes()
	case "Scheduling":
		return c.Scheduling()
	case "Filecabinet":
		return c.Filecabinet()
	case "Relationships":
		return c.Relationships()
	case "Sales":
		return c.Sales()
	case "SalesTypes":
		return c.SalesTypes()
	case "Customization":
		return c.Customization()
	default:
		t.Fatalf("unknown factory %q", name)
		return nil
	}
}

func TestClient_FactoriesMemoized(t *testing.T) {
	c, err := New(tokenConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if c.Core() != c.Core() {
		t.Error("Core() built a new factory on the second call")
	}
	if c.Core() == c.CoreTypes() {
		t.Error("Core() and CoreTypes() share a factory")
	}
}

func TestClient_FactoryVersion(t *testing.T) {
	c, err := New(tokenConfig(), WithVersion("2016.1.0"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	want := "urn:core_2016_1.platform.webservices.netsuite.com"
	if got := c.Core().URN(); got != want {
		t.Errorf("URN = %q, want %q", got, want)
	}
}
