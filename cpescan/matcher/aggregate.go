package matcher

import (
	"github.com/cpescan/cpescan/cpescan/cpe"
	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

// groupHandler is invoked once per contiguous run of rows sharing one
// vulnerability ID, with the candidate set accumulated for that run.
type groupHandler func(id string, candidates []cpe.Candidate) error

// aggregate drives an ID-ordered candidate stream through the handler, one
// group at a time, holding at most one group in memory. The stream's sort
// contract is documented on vulnerability.CandidateStream; it is not enforced
// here.
func aggregate(stream vulnerability.CandidateStream, handle groupHandler) error {
	var currentID string
	var group []cpe.Candidate

	for {
		row, err := stream.Next()
		if err != nil {
			return err
		}
		if row == nil {
			break
		}

		if currentID != "" && row.ID != currentID {
			if err := handle(currentID, group); err != nil {
				return err
			}
			group = nil
		}
		currentID = row.ID
		group = append(group, cpe.NewCandidate(row.CPE, row.AffectsAllPrior))
	}

	// the trailing group has no ID boundary behind it and must still be
	// finalized
	if currentID != "" {
		return handle(currentID, group)
	}
	return nil
}
