// Package passport provides authentication headers for SuiteTalk requests.
//
// # Supported Authentication Methods
//
//   - TokenPassport: token-based authentication (TBA) with a per-request
//     HMAC signature. The recommended method; survives password rotation.
//   - UserCredentials: request-level email/password login. Deprecated by
//     NetSuite for newer endpoint versions but still required for a few
//     operations and older accounts.
//
// # Usage
//
// Token-based authentication:
//
//	p := passport.NewTokenPassport(
//	    "123456",           // account
//	    "consumer-key", "consumer-secret",
//	    "token-id", "token-secret",
//	)
//
// User credentials:
//
//	p := &passport.UserCredentials{
//	    Email:    "svc@example.com",
//	    Password: "secret",
//	    Account:  "123456",
//	    Role:     "3",
//	}
//
// Providers render a fresh header for every request; token signatures are
// single-use by construction (random nonce plus timestamp).
package passport
