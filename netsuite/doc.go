// Package netsuite provides a high-level client for NetSuite's SuiteTalk
// SOAP web services.
//
// This is the recommended entry point for most users. It handles:
//   - Endpoint and WSDL resolution per account, version, and sandbox flag
//   - Request signing with token-based or user credentials
//   - Concurrency governance, retries, and credential lockout protection
//   - Typed access to every SuiteTalk schema namespace
//
// # Quick Start
//
//	c, err := netsuite.New(netsuite.Config{
//	    Account:        "123456",
//	    ConsumerKey:    os.Getenv("NS_CONSUMER_KEY"),
//	    ConsumerSecret: os.Getenv("NS_CONSUMER_SECRET"),
//	    TokenID:        os.Getenv("NS_TOKEN_ID"),
//	    TokenSecret:    os.Getenv("NS_TOKEN_SECRET"),
//	}, netsuite.WithSandbox(false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	records, err := c.GetList(ctx, "customer", []string{"42"}, nil)
//
// Operations beyond the built-in ones are reached through the schema
// factories and Call:
//
//	msgs := c.Messages()
//	body := msgs.Element("checkAsyncStatus")
//	body.AddChild(msgs.Text("jobId", jobID))
//	resp, err := c.Call(ctx, "checkAsyncStatus", body)
package netsuite
