package endpoint

import (
	"net/url"
	"regexp"
)

// urnPattern follows RFC 8141: "urn:", a namespace identifier of 2 to 32
// characters, then a non-empty namespace-specific string.
var urnPattern = regexp.MustCompile(`^(?i:urn):[A-Za-z0-9][A-Za-z0-9-]{0,30}[A-Za-z0-9]:\S+$`)

// IsURL reports whether s is an absolute URL with a scheme and a host.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsURN reports whether s is a syntactically valid URN.
func IsURN(s string) bool {
	return urnPattern.MatchString(s)
}
