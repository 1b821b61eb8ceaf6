package soap

import (
	"context"

	"github.com/suitegate/go-suitetalk/soap/transport"
)

// Client dispatches SOAP envelopes to a single SuiteTalk service endpoint.
//
// The client is operation-agnostic: callers build envelopes through
// Factory and Envelope and receive parsed Response values back. Faults are
// surfaced as *Fault errors regardless of the HTTP status they arrived
// under.
type Client struct {
	endpoint  string
	transport *transport.HTTPTransport
}

// NewClient creates a client bound to the given service endpoint URL.
func NewClient(endpoint string, tr *transport.HTTPTransport) *Client {
	return &Client{
		endpoint:  endpoint,
		transport: tr,
	}
}

// Endpoint returns the bound service URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call sends an envelope under the given SOAPAction and returns the parsed
// response. A SOAP fault in the reply is returned as a *Fault error.
func (c *Client) Call(ctx context.Context, action string, env *Envelope) (*Response, error) {
	body, err := env.Marshal()
	if err != nil {
		return nil, err
	}

	respBody, err := c.transport.Post(ctx, c.endpoint, action, body)
	if err != nil {
		return nil, err
	}

	return ParseResponse(respBody)
}

// CloseIdleConnections closes any idle connections in the underlying transport.
func (c *Client) CloseIdleConnections() {
	c.transport.CloseIdleConnections()
}
