package cpescan

import (
	"fmt"

	"github.com/wagoodman/go-partybus"

	"github.com/cpescan/cpescan/cpescan/cpe"
	"github.com/cpescan/cpescan/cpescan/event"
	"github.com/cpescan/cpescan/cpescan/match"
	"github.com/cpescan/cpescan/cpescan/matcher"
	"github.com/cpescan/cpescan/cpescan/version"
	"github.com/cpescan/cpescan/cpescan/vulnerability"
	"github.com/cpescan/cpescan/internal/bus"
)

// FindVulnerabilities matches a single software identifier (a CPE URI) against
// the vulnerability database. The version encoded in the identifier is what
// gets compared against recorded range entries; an identifier without a
// version matches only open ranges.
func FindVulnerabilities(provider vulnerability.Provider, userCpeStr string) (match.Matches, error) {
	c, err := cpe.New(userCpeStr)
	if err != nil {
		return match.NewMatches(), fmt.Errorf("unable to parse CPE %q: %w", userCpeStr, err)
	}

	bus.Publish(partybus.Event{
		Type:   event.VulnerabilityMatchingStarted,
		Source: c.String(),
	})

	var identified *version.Version
	if versionText := c.VersionText(); versionText != version.UnspecifiedToken {
		identified = version.New(versionText)
	}

	matches, err := matcher.FindMatches(provider, c.Vendor, c.Product, identified)

	bus.Publish(partybus.Event{
		Type:  event.VulnerabilityMatchingFinished,
		Value: matches,
	})

	return matches, err
}
