// Package transport provides HTTPS transport for SuiteTalk communication.
//
// The transport layer handles:
//   - HTTPS connections with TLS 1.2+
//   - SOAP 1.1 POST dispatch with SOAPAction headers
//   - WSDL and schema document fetching
//   - Fault envelope passthrough on HTTP 500
package transport
