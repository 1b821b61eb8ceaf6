package soap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Fault represents a SuiteTalk SOAP fault.
type Fault struct {
	// Code is the SOAP 1.1 faultcode (e.g., "soapenv:Server.userException").
	Code string

	// Reason is the human-readable faultstring.
	Reason string

	// Actor is the faultactor, when the server reports one.
	Actor string

	// Type is the local name of the typed fault carried in the detail
	// element (e.g., "invalidCredentialsFault").
	Type string

	// DetailCode is the NetSuite error code from the fault detail
	// (e.g., "INVALID_LOGIN_CREDENTIALS").
	DetailCode string

	// Message is the fault detail message.
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	var parts []string
	if f.Code != "" {
		parts = append(parts, f.Code)
	}
	if f.Type != "" {
		parts = append(parts, f.Type)
	}
	if f.DetailCode != "" {
		parts = append(parts, f.DetailCode)
	}
	if f.Message != "" {
		parts = append(parts, f.Message)
	} else if f.Reason != "" {
		parts = append(parts, f.Reason)
	}
	return "soap fault: " + strings.Join(parts, ": ")
}

// IsInvalidCredentials returns true if the fault indicates the passport was
// rejected.
func (f *Fault) IsInvalidCredentials() bool {
	return f.Type == "invalidCredentialsFault" ||
		f.DetailCode == "INVALID_LOGIN_CREDENTIALS" ||
		f.DetailCode == "INVALID_LOGIN" ||
		strings.Contains(f.Code, "InvalidCredentials")
}

// IsInvalidSession returns true if the fault indicates the session expired
// or was never established.
func (f *Fault) IsInvalidSession() bool {
	return f.Type == "invalidSessionFault" ||
		f.DetailCode == "SESSION_TIMED_OUT" ||
		f.DetailCode == "INVALID_SESSION"
}

// IsConcurrencyLimit returns true if the fault indicates the account's
// request governance limit was exceeded. These faults are transient and
// safe to retry after a backoff.
func (f *Fault) IsConcurrencyLimit() bool {
	switch f.Type {
	case "exceededConcurrentRequestLimitFault", "exceededRequestLimitFault":
		return true
	}
	switch f.DetailCode {
	case "EXCEEDED_CONCURRENT_REQUEST_LIMIT", "WS_CONCUR_SESSION_DISALLWD", "EXCEEDED_REQUEST_LIMIT":
		return true
	}
	return false
}

// IsInsufficientPermission returns true if the fault indicates the role
// lacks permission for the requested operation or record type.
func (f *Fault) IsInsufficientPermission() bool {
	return f.Type == "insufficientPermissionFault" ||
		f.DetailCode == "INSUFFICIENT_PERMISSION"
}

// IsFault returns true if the error is a SuiteTalk Fault.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}

// ParseFault parses a SOAP response and returns a Fault if present.
// Returns nil if the response does not contain a fault.
func ParseFault(data []byte) (*Fault, error) {
	// Quick check if this might be a fault
	if !strings.Contains(string(data), ":Fault") &&
		!strings.Contains(string(data), "<Fault") {
		return nil, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse fault: %w", err)
	}
	return FaultFromDocument(doc), nil
}

// FaultFromDocument extracts a Fault from a parsed envelope. Returns nil
// when the body carries no fault element.
func FaultFromDocument(doc *etree.Document) *Fault {
	el := doc.FindElement("//Body/Fault")
	if el == nil {
		return nil
	}
	fault := &Fault{
		Code:   textOf(el.SelectElement("faultcode")),
		Reason: textOf(el.SelectElement("faultstring")),
		Actor:  textOf(el.SelectElement("faultactor")),
	}
	if detail := el.SelectElement("detail"); detail != nil {
		for _, child := range detail.ChildElements() {
			if !strings.HasSuffix(child.Tag, "Fault") {
				continue
			}
			fault.Type = child.Tag
			fault.DetailCode = textOf(child.SelectElement("code"))
			fault.Message = textOf(child.SelectElement("message"))
			break
		}
	}
	return fault
}

// CheckFault parses a response and returns an error if it contains a fault.
func CheckFault(data []byte) error {
	fault, err := ParseFault(data)
	if err != nil {
		return err
	}
	if fault != nil {
		return fault
	}
	return nil
}

// StatusError is an operation-level failure reported through a status
// element inside an otherwise successful response, e.g. a record in a
// getList request that does not exist.
type StatusError struct {
	// Code is the NetSuite status code (e.g., "RCRD_DSNT_EXIST").
	Code string

	// Message is the human-readable status detail.
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return "suitetalk status: " + e.Code
	}
	return "suitetalk status: " + e.Code + ": " + e.Message
}

// StatusFromElement inspects a status element and returns a StatusError when
// it reports isSuccess="false". A nil element or a successful status returns
// nil.
func StatusFromElement(el *etree.Element) error {
	if el == nil {
		return nil
	}
	if attr := el.SelectAttr("isSuccess"); attr == nil || attr.Value != "false" {
		return nil
	}
	statusErr := &StatusError{}
	if detail := el.SelectElement("statusDetail"); detail != nil {
		statusErr.Code = textOf(detail.SelectElement("code"))
		statusErr.Message = textOf(detail.SelectElement("message"))
	}
	return statusErr
}

func textOf(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
