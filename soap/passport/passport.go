package passport

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/beevik/etree"
)

// Provider renders the authentication SOAP header for one request.
//
// Header is called once per request with the endpoint's no-micro
// underscored version (e.g. "2017_2"); token-based providers must produce
// a fresh signature on every call because the server rejects nonce reuse.
type Provider interface {
	// Header renders the authentication header element.
	Header(version string) (*etree.Element, error)

	// Name returns the authentication scheme name.
	Name() string
}

// Clock supplies timestamps for passport signatures. Satisfied by any type
// with a Now method, so a test clock can drive signing deterministically.
type Clock interface {
	Now() time.Time
}

// NonceLength is the length of generated signature nonces.
const NonceLength = 20

const nonceAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Nonce returns a cryptographically random alphanumeric string of length n.
func Nonce(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("passport: read random bytes: %w", err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = nonceAlphabet[int(b)%len(nonceAlphabet)]
	}
	return string(out), nil
}
