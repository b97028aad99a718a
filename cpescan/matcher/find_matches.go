package matcher

import (
	"fmt"

	"github.com/cpescan/cpescan/cpescan/cpe"
	"github.com/cpescan/cpescan/cpescan/match"
	"github.com/cpescan/cpescan/cpescan/version"
	"github.com/cpescan/cpescan/cpescan/vulnerability"
	"github.com/cpescan/cpescan/internal/log"
)

var defaultMatcher = New()

// FindMatches runs the default matcher over all vulnerabilities recorded for
// the vendor/product pair.
func FindMatches(provider vulnerability.Provider, vendor, product string, identified *version.Version) (match.Matches, error) {
	return defaultMatcher.FindMatches(provider, vendor, product, identified)
}

// FindMatches streams the candidate entries recorded for one vendor/product
// pair, matches each vulnerability's candidate set against the identified
// version, and enriches every hit with the full vulnerability record.
func (m *Matcher) FindMatches(provider vulnerability.Provider, vendor, product string, identified *version.Version) (match.Matches, error) {
	matches := match.NewMatches()

	identifiedStr := version.UnspecifiedToken
	if identified != nil {
		identifiedStr = identified.String()
	}
	log.Debugf("searching for vulnerabilities vendor=%q product=%q version=%q", vendor, product, identifiedStr)

	stream, err := provider.CandidateStream(vendor, product)
	if err != nil {
		return matches, fmt.Errorf("matcher failed to fetch candidates vendor=%q product=%q: %w", vendor, product, err)
	}
	defer log.CloseAndLogError(stream, fmt.Sprintf("candidate stream (vendor=%q product=%q)", vendor, product))

	searchKey := fmt.Sprintf("vendor[%s] product[%s] version[%s]", vendor, product, identifiedStr)

	err = aggregate(stream, func(id string, candidates []cpe.Candidate) error {
		winner, ok := m.Match(identified, vendor, product, candidates)
		if !ok {
			return nil
		}

		vuln, err := provider.GetVulnerability(id)
		if err != nil {
			return fmt.Errorf("matcher failed to fetch vulnerability id=%q: %w", id, err)
		}
		if vuln == nil {
			// an orphaned software row; still report the ID we matched on
			log.Warnf("matched vulnerability %q has no record, reporting ID only", id)
			vuln = &vulnerability.Vulnerability{ID: id}
		}

		matches.Add(match.Match{
			Vulnerability:   *vuln,
			MatchedCPE:      winner.CPE,
			MatchedVersion:  winner.VersionText,
			AffectsAllPrior: winner.AffectsAllPrior,
			SearchKey:       searchKey,
		})
		return nil
	})
	if err != nil {
		return matches, err
	}

	log.Debugf("found %d vulnerabilities for vendor=%q product=%q", matches.Count(), vendor, product)
	return matches, nil
}
