package cpe

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cpescan/cpescan/cpescan/version"
)

const uriPrefix = "cpe:/"

// CPE holds the decoded fields of a CPE 2.2 URI
// (e.g. "cpe:/a:apache:struts:2.1.2").
type CPE struct {
	Part    string
	Vendor  string
	Product string
	Version string
	Update  string
	Edition string
}

// New parses a CPE 2.2 URI string.
func New(cpeStr string) (CPE, error) {
	if !strings.HasPrefix(cpeStr, uriPrefix) {
		return CPE{}, fmt.Errorf("not a CPE URI: %q", cpeStr)
	}

	fields := strings.Split(strings.TrimPrefix(cpeStr, uriPrefix), ":")
	var c CPE
	for idx, field := range fields {
		decoded, err := url.PathUnescape(field)
		if err != nil {
			// percent-encoding in NVD data is occasionally malformed; keep the
			// raw field rather than rejecting the whole identifier
			decoded = field
		}
		switch idx {
		case 0:
			c.Part = decoded
		case 1:
			c.Vendor = decoded
		case 2:
			c.Product = decoded
		case 3:
			c.Version = decoded
		case 4:
			c.Update = decoded
		case 5:
			c.Edition = decoded
		}
	}

	if c.Vendor == "" || c.Product == "" {
		return CPE{}, fmt.Errorf("CPE URI missing vendor/product: %q", cpeStr)
	}

	return c, nil
}

// VersionText renders the version-parse input for this identifier. A revision
// ("update" field, e.g. a service pack or patch level) is appended with a
// separator so it participates in ordering as a trailing token.
func (c CPE) VersionText() string {
	if c.Version == "" {
		return version.UnspecifiedToken
	}
	if c.Update != "" {
		return fmt.Sprintf("%s.%s", c.Version, c.Update)
	}
	return c.Version
}

// ParseVersion parses the version (including any revision) carried by this
// identifier. Identifiers without a version yield the unspecified sentinel.
func (c CPE) ParseVersion() *version.Version {
	return version.New(c.VersionText())
}

func (c CPE) String() string {
	fields := []string{c.Part, c.Vendor, c.Product, c.Version, c.Update, c.Edition}

	// trim empty trailing fields
	end := len(fields)
	for end > 0 && fields[end-1] == "" {
		end--
	}
	return uriPrefix + strings.Join(fields[:end], ":")
}
