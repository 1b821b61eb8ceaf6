package netsuite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/suitegate/go-suitetalk/soap/passport"
)

// validate is shared across Validate calls; validator.Validate caches
// struct metadata and is safe for concurrent use.
var validate = validator.New()

// Config holds the account and credentials for a NetSuite connection.
//
// Two authentication methods are supported. Token-based authentication
// (TBA) needs all four consumer/token fields and is the method NetSuite
// recommends; request-level credentials need Email and Password. When both
// are present, token authentication wins.
type Config struct {
	// Account is the NetSuite account number (e.g. "123456" or
	// "123456_SB1" for a sandbox account).
	Account string `validate:"required"`

	// Token-based authentication. The consumer pair identifies the
	// integration record, the token pair the access token issued for a
	// user/role.
	ConsumerKey    string `validate:"required_with=ConsumerSecret TokenID TokenSecret"`
	ConsumerSecret string `validate:"required_with=ConsumerKey TokenID TokenSecret"`
	TokenID        string `validate:"required_with=ConsumerKey ConsumerSecret TokenSecret"`
	TokenSecret    string `validate:"required_with=ConsumerKey ConsumerSecret TokenID"`

	// Request-level credentials.
	Email    string `validate:"required_with=Password,omitempty,email"`
	Password string `validate:"required_with=Email"`

	// Role is the internal id of the login role. Optional; the user's
	// default role applies when empty.
	Role string

	// ApplicationID is sent in the applicationInfo header. Required by
	// accounts that enforce application ids on integrations.
	ApplicationID string

	// PartnerID is sent in the partnerInfo header by partner-built
	// integrations. Optional.
	PartnerID string
}

// Validate checks that the configuration carries a complete credential set.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return fmt.Errorf("netsuite: invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("netsuite: invalid config: %w", err)
	}

	if !c.hasTokenAuth() && !c.hasUserAuth() {
		return errors.New("netsuite: config needs either token credentials or email and password")
	}

	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_with":
		return fe.Field() + " is required with " + fe.Param()
	case "email":
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}

func (c *Config) hasTokenAuth() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" &&
		c.TokenID != "" && c.TokenSecret != ""
}

func (c *Config) hasUserAuth() bool {
	return c.Email != "" && c.Password != ""
}

// Passport selects the authentication provider for this config.
func (c *Config) Passport() (passport.Provider, error) {
	switch {
	case c.hasTokenAuth():
		return passport.NewTokenPassport(
			c.Account, c.ConsumerKey, c.ConsumerSecret, c.TokenID, c.TokenSecret,
		), nil
	case c.hasUserAuth():
		return &passport.UserCredentials{
			Email:    c.Email,
			Password: c.Password,
			Account:  c.Account,
			Role:     c.Role,
		}, nil
	default:
		return nil, errors.New("netsuite: config has no usable credentials")
	}
}
