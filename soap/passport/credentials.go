package passport

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/suitegate/go-suitetalk/soap"
)

// UserCredentials implements request-level email/password authentication.
//
// NetSuite deprecated this method for 2020.2 and later endpoints in favor
// of token-based authentication, but older endpoints and a few operations
// still accept it.
type UserCredentials struct {
	// Email is the login email address.
	Email string

	// Password is the login password.
	Password string

	// Account is the NetSuite account number.
	Account string

	// Role is the internal id of the login role. Optional; the user's
	// default role applies when empty.
	Role string
}

// Name returns the authentication scheme name.
func (p *UserCredentials) Name() string {
	return "Credentials"
}

// Validate checks that required credential fields are populated.
func (p *UserCredentials) Validate() error {
	if p.Email == "" {
		return errors.New("email is required")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	if p.Account == "" {
		return errors.New("account is required")
	}
	return nil
}

// Header renders the passport header for the given endpoint version.
func (p *UserCredentials) Header(version string) (*etree.Element, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("passport: %w", err)
	}

	msgs := soap.NewFactory("messages", soap.SubNamespacePlatform, version)
	core := soap.NewFactory("core", soap.SubNamespacePlatform, version)

	el := msgs.Element("passport")
	el.AddChild(core.Text("email", p.Email))
	el.AddChild(core.Text("password", p.Password))
	el.AddChild(core.Text("account", p.Account))
	if p.Role != "" {
		role := core.Element("role")
		role.CreateAttr("internalId", p.Role)
		el.AddChild(role)
	}
	return el, nil
}
