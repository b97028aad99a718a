package table

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/cpescan/cpescan/cpescan/match"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct{}

// NewPresenter is a *Presenter constructor
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Present creates a human readable table of matched vulnerabilities
func (pres *Presenter) Present(output io.Writer, matches match.Matches) error {
	rows := make([][]string, 0)

	for _, m := range matches.Sorted() {
		rng := "exact"
		if m.AffectsAllPrior {
			rng = "and all prior"
		}
		rows = append(rows, []string{
			m.Vulnerability.ID,
			fmt.Sprintf("%.1f", m.Vulnerability.Cvss.Score),
			m.MatchedVersion,
			rng,
			m.MatchedCPE,
		})
	}

	if len(rows) == 0 {
		_, err := io.WriteString(output, "No vulnerabilities found\n")
		return err
	}

	table := tablewriter.NewWriter(output)
	table.SetHeader([]string{"Vulnerability", "Score", "Version", "Range", "Matched CPE"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()

	return nil
}
