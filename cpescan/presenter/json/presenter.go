package json

import (
	"encoding/json"
	"io"

	"github.com/cpescan/cpescan/cpescan/match"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct{}

// NewPresenter is a *Presenter constructor
func NewPresenter() *Presenter {
	return &Presenter{}
}

// ResultObj is a single item for the JSON array reported
type ResultObj struct {
	Cve          string       `json:"cve"`
	Description  string       `json:"description,omitempty"`
	Cwe          string       `json:"cwe,omitempty"`
	CvssScore    float64      `json:"cvss-score"`
	FoundBy      FoundBy      `json:"found-by"`
	MatchedEntry MatchedEntry `json:"matched-entry"`
}

// FoundBy contains all data that indicates how the result match was found
type FoundBy struct {
	SearchKey string `json:"search-key"`
}

// MatchedEntry describes the range entry that produced the match
type MatchedEntry struct {
	Cpe             string `json:"cpe"`
	Version         string `json:"version"`
	AffectsAllPrior bool   `json:"affects-all-prior"`
}

// Present creates a JSON-based reporting
func (pres *Presenter) Present(output io.Writer, matches match.Matches) error {
	doc := make([]ResultObj, 0)

	for _, m := range matches.Sorted() {
		doc = append(
			doc,
			ResultObj{
				Cve:         m.Vulnerability.ID,
				Description: m.Vulnerability.Description,
				Cwe:         m.Vulnerability.Cwe,
				CvssScore:   m.Vulnerability.Cvss.Score,
				FoundBy: FoundBy{
					SearchKey: m.SearchKey,
				},
				MatchedEntry: MatchedEntry{
					Cpe:             m.MatchedCPE,
					Version:         m.MatchedVersion,
					AffectsAllPrior: m.AffectsAllPrior,
				},
			},
		)
	}

	enc := json.NewEncoder(output)
	// prevent > and < from being escaped in the payload
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	return enc.Encode(&doc)
}
