// Package suitetalk provides a complete NetSuite SuiteTalk (SOAP web
// services) client.
//
// The module wraps the SuiteTalk SOAP API end to end: WSDL resolution and
// caching, per-request credential signing, and typed access to the read,
// search, and file cabinet operations, with concurrency limiting, retries,
// and account lockout protection built in.
//
// # Architecture
//
// The library is organized into layers:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  netsuite/        High-level client API                  │
//	├──────────────────────────────────────────────────────────┤
//	│  wsdl/            Service definition resolution + cache  │
//	├──────────────────────────────────────────────────────────┤
//	│  soap/            Envelope codec, factories, faults      │
//	│  soap/passport/   Token and request-level credentials    │
//	│  soap/transport/  HTTP layer with redacted tracing       │
//	├──────────────────────────────────────────────────────────┤
//	│  cache/           Memory, SQLite, Redis document caches  │
//	└──────────────────────────────────────────────────────────┘
//
// # Quick Start
//
//	cfg := netsuite.Config{
//	    Account:        "123456",
//	    ConsumerKey:    os.Getenv("NS_CONSUMER_KEY"),
//	    ConsumerSecret: os.Getenv("NS_CONSUMER_SECRET"),
//	    TokenID:        os.Getenv("NS_TOKEN_ID"),
//	    TokenSecret:    os.Getenv("NS_TOKEN_SECRET"),
//	}
//	c, err := netsuite.New(cfg, netsuite.WithSandbox(false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	records, err := c.GetList(ctx, "customer", []string{"42"}, nil)
package suitetalk
