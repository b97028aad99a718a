package match

import (
	"fmt"

	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

// Match pairs a vulnerability with the range entry that made it applicable to
// the identified software.
type Match struct {
	Vulnerability vulnerability.Vulnerability

	// MatchedCPE is the original identifier string of the winning range entry.
	MatchedCPE string

	// MatchedVersion is the winning entry's version as recorded.
	MatchedVersion string

	// AffectsAllPrior indicates the winning entry was an open "this version
	// and everything earlier" range rather than an exact version.
	AffectsAllPrior bool

	// SearchKey captures what was searched to produce this hit.
	SearchKey string
}

func (m Match) String() string {
	return fmt.Sprintf("Match(vuln=%q matched=%q allPrior=%t key=%q)", m.Vulnerability.ID, m.MatchedCPE, m.AffectsAllPrior, m.SearchKey)
}
