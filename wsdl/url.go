// Package wsdl resolves and loads SuiteTalk service definitions.
//
// NetSuite publishes one WSDL per endpoint version per environment. The
// URL embeds the full dotted version with underscores:
//
//	https://webservices.netsuite.com/wsdl/v2017_2_0/netsuite.wsdl
//	https://webservices.sandbox.netsuite.com/wsdl/v2017_2_0/netsuite.wsdl
//
// while schema URNs drop the micro component ("2017_2"). This package owns
// both renderings plus the loader that fetches definitions through a
// document cache.
package wsdl

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	productionHost = "webservices.netsuite.com"
	sandboxHost    = "webservices.sandbox.netsuite.com"

	urlTemplate = "https://%s/wsdl/v%s/netsuite.wsdl"
)

// versionPattern is the dotted three-part endpoint version form.
var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidateVersion checks that version is a full dotted endpoint version
// such as "2017.2.0".
func ValidateVersion(version string) error {
	if !versionPattern.MatchString(version) {
		return fmt.Errorf("wsdl: invalid version %q: want MAJOR.MINOR.MICRO like 2017.2.0", version)
	}
	return nil
}

// URL renders the WSDL location for a version and environment.
func URL(version string, sandbox bool) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}
	host := productionHost
	if sandbox {
		host = sandboxHost
	}
	return fmt.Sprintf(urlTemplate, host, strings.ReplaceAll(version, ".", "_")), nil
}

// Hostname extracts the host from a WSDL or service URL: everything after
// the scheme separator up to the first path slash. Unlike url.Parse it
// preserves any port verbatim, which keeps test-server URLs intact.
func Hostname(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}

// EndpointVersion converts a dotted version to the no-micro underscored
// form used in schema URNs: "2017.2.0" becomes "2017_2".
func EndpointVersion(version string) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}
	parts := strings.SplitN(version, ".", 3)
	return parts[0] + "_" + parts[1], nil
}
