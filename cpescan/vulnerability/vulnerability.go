package vulnerability

import (
	"github.com/cpescan/cpescan/cpescan/cpe"
)

// Cvss carries the CVSS v2 base score and vector components for a
// vulnerability. The values are opaque to matching; they are fetched only to
// enrich matched records.
type Cvss struct {
	Score                 float64
	AccessVector          string
	AccessComplexity      string
	Authentication        string
	ConfidentialityImpact string
	IntegrityImpact       string
	AvailabilityImpact    string
}

// Reference is an advisory link attached to a vulnerability.
type Reference struct {
	Name   string
	URL    string
	Source string
}

type Vulnerability struct {
	// ID is the CVE identifier (e.g. "CVE-2017-5638").
	ID          string
	Description string
	Cwe         string
	Cvss        Cvss
	References  []Reference

	// VulnerableSoftware is the full set of range entries recorded for this
	// vulnerability (across all products).
	VulnerableSoftware []cpe.Candidate
}
