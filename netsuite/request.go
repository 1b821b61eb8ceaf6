package netsuite

import (
	"context"
	"log/slog"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/suitegate/go-suitetalk/soap"
)

// Call dispatches one SuiteTalk operation. body is the operation request
// element, normally built through the Messages factory.
//
// Every attempt carries a freshly signed passport header: the server
// rejects nonce reuse, so a retry can never replay the previous
// signature. The call passes through the concurrency semaphore, the
// credential breaker, and the retry policy, in that order.
func (c *Client) Call(ctx context.Context, operation string, body *etree.Element) (*soap.Response, error) {
	svc, def, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	action := def.SOAPAction(operation)

	logger := c.logger.With("request_id", uuid.NewString(), "operation", operation)

	if err := c.semaphore.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.semaphore.Release()

	var resp *soap.Response
	err = c.breaker.Execute(func() error {
		var callErr error
		resp, callErr = c.callWithRetry(ctx, logger, svc, action, body)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// callWithRetry runs the attempt loop for one operation. The request
// envelope is rebuilt per attempt so each try signs with a new nonce and
// timestamp.
func (c *Client) callWithRetry(ctx context.Context, logger *slog.Logger, svc *soap.Client, action string, body *etree.Element) (*soap.Response, error) {
	attempts := 1
	if c.retry != nil && c.retry.MaxAttempts > 1 {
		attempts = c.retry.MaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		env, err := c.envelope(body)
		if err != nil {
			return nil, err
		}

		start := c.clock.Now()
		resp, err := svc.Call(ctx, action, env)
		if err == nil {
			logger.DebugContext(ctx, "request complete",
				"attempt", attempt,
				"elapsed", c.clock.Now().Sub(start))
			return resp, nil
		}

		lastErr = err
		if !isRetryableError(err) || attempt == attempts {
			return nil, err
		}

		delay := calculateRetryBackoff(attempt, c.retry)
		logger.WarnContext(ctx, "request failed, backing off",
			"attempt", attempt,
			"delay", delay,
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// envelope assembles the SOAP envelope for one attempt: passport first,
// then the optional identification and preference headers.
func (c *Client) envelope(body *etree.Element) (*soap.Envelope, error) {
	header, err := c.passport.Header(c.urnVersion)
	if err != nil {
		return nil, err
	}

	env := soap.NewEnvelope().WithHeader(header)

	msgs := c.Messages()
	if c.config.ApplicationID != "" {
		env.WithHeader(soap.ApplicationInfo{ApplicationID: c.config.ApplicationID}.Element(msgs))
	}
	if c.config.PartnerID != "" {
		env.WithHeader(soap.PartnerInfo{PartnerID: c.config.PartnerID}.Element(msgs))
	}
	if c.preferences != nil {
		env.WithHeader(c.preferences.Element(msgs))
	}
	if c.searchPrefs != nil {
		env.WithHeader(c.searchPrefs.Element(msgs))
	}

	return env.WithBody(body), nil
}
