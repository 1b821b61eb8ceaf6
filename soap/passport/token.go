package passport

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/suitegate/go-suitetalk/soap"
)

// Signature algorithms accepted by the tokenPassport header.
const (
	AlgorithmHMACSHA256 = "HMAC-SHA256"
	AlgorithmHMACSHA1   = "HMAC-SHA1"
)

// TokenPassport implements token-based authentication (TBA).
//
// Each request carries a signature over the five-field base string
//
//	account&consumerKey&tokenID&nonce&timestamp
//
// keyed with consumerSecret&tokenSecret. The nonce and timestamp make
// every signature single-use.
type TokenPassport struct {
	// Account is the NetSuite account number.
	Account string

	// ConsumerKey and ConsumerSecret identify the integration record.
	ConsumerKey    string
	ConsumerSecret string

	// TokenID and TokenSecret identify the access token issued for a
	// user/role pair.
	TokenID     string
	TokenSecret string

	// Algorithm selects the HMAC variant. Defaults to HMAC-SHA256;
	// HMAC-SHA1 exists only for endpoints older than 2015.2.
	Algorithm string

	// Clock supplies signature timestamps. Defaults to the wall clock.
	Clock Clock

	// nonceFn generates signature nonces; tests override it.
	nonceFn func(n int) (string, error)
}

// NewTokenPassport creates a token passport provider signing with
// HMAC-SHA256.
func NewTokenPassport(account, consumerKey, consumerSecret, tokenID, tokenSecret string) *TokenPassport {
	return &TokenPassport{
		Account:        account,
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		TokenID:        tokenID,
		TokenSecret:    tokenSecret,
	}
}

// Name returns the authentication scheme name.
func (p *TokenPassport) Name() string {
	return "TBA"
}

// Validate checks that required token fields are populated.
func (p *TokenPassport) Validate() error {
	if p.Account == "" {
		return errors.New("account is required")
	}
	if p.ConsumerKey == "" || p.ConsumerSecret == "" {
		return errors.New("consumer key and secret are required")
	}
	if p.TokenID == "" || p.TokenSecret == "" {
		return errors.New("token id and secret are required")
	}
	return nil
}

// Header renders a freshly signed tokenPassport header for the given
// endpoint version.
func (p *TokenPassport) Header(version string) (*etree.Element, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("passport: %w", err)
	}

	nonceFn := p.nonceFn
	if nonceFn == nil {
		nonceFn = Nonce
	}
	nonce, err := nonceFn(NonceLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if p.Clock != nil {
		now = p.Clock.Now()
	}
	timestamp := strconv.FormatInt(now.Unix(), 10)

	signature, algorithm, err := p.sign(nonce, timestamp)
	if err != nil {
		return nil, err
	}

	msgs := soap.NewFactory("messages", soap.SubNamespacePlatform, version)
	core := soap.NewFactory("core", soap.SubNamespacePlatform, version)

	el := msgs.Element("tokenPassport")
	el.AddChild(core.Text("account", p.Account))
	el.AddChild(core.Text("consumerKey", p.ConsumerKey))
	el.AddChild(core.Text("token", p.TokenID))
	el.AddChild(core.Text("nonce", nonce))
	el.AddChild(core.Text("timestamp", timestamp))
	sig := core.Text("signature", signature)
	sig.CreateAttr("algorithm", algorithm)
	el.AddChild(sig)
	return el, nil
}

// sign computes the base-string signature for one request.
func (p *TokenPassport) sign(nonce, timestamp string) (signature, algorithm string, err error) {
	base := strings.Join([]string{p.Account, p.ConsumerKey, p.TokenID, nonce, timestamp}, "&")
	key := p.ConsumerSecret + "&" + p.TokenSecret

	var mac hash.Hash
	switch p.Algorithm {
	case "", AlgorithmHMACSHA256:
		mac = hmac.New(sha256.New, []byte(key))
		algorithm = AlgorithmHMACSHA256
	case AlgorithmHMACSHA1:
		mac = hmac.New(sha1.New, []byte(key))
		algorithm = AlgorithmHMACSHA1
	default:
		return "", "", fmt.Errorf("passport: unsupported algorithm %q", p.Algorithm)
	}
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), algorithm, nil
}
