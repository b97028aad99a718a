package cpe

import (
	"github.com/cpescan/cpescan/cpescan/version"
)

// Candidate is one vulnerable-software range entry for a vulnerability: a
// product identifier, its parsed version, and whether the entry covers that
// version and everything earlier (an open range) or the single version alone.
type Candidate struct {
	// CPE is the original identifier string as recorded in the data source.
	CPE string

	// VersionText is the recorded version string (including any revision)
	// before parsing, suitable for reporting back to the caller.
	VersionText string

	// Version is the parsed version (including any revision). An unparseable
	// identifier degrades to the unspecified sentinel, which the matcher
	// treats as "all versions".
	Version *version.Version

	// AffectsAllPrior indicates the entry denotes the half-open range
	// (-inf, Version] rather than the singleton {Version}.
	AffectsAllPrior bool
}

// NewCandidate builds a Candidate from a raw CPE string and the
// previous-versions flag. Construction never fails: identifiers that cannot
// be parsed carry the unspecified version.
func NewCandidate(cpeStr string, affectsAllPrior bool) Candidate {
	versionText := version.UnspecifiedToken
	if c, err := New(cpeStr); err == nil {
		versionText = c.VersionText()
	}
	return Candidate{
		CPE:             cpeStr,
		VersionText:     versionText,
		Version:         version.New(versionText),
		AffectsAllPrior: affectsAllPrior,
	}
}
