package store

import (
	"database/sql"
	"fmt"

	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

// candidateStream adapts a sql.Rows cursor to the matching contract. The
// ordering guarantee comes from the query that produced the cursor.
type candidateStream struct {
	rows *sql.Rows
}

func (s *candidateStream) Next() (*vulnerability.CandidateRow, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return nil, fmt.Errorf("candidate stream failed: %w", err)
		}
		return nil, nil
	}

	var cve, cpeStr string
	var previous sql.NullString
	if err := s.rows.Scan(&cve, &cpeStr, &previous); err != nil {
		return nil, fmt.Errorf("unable to scan candidate row: %w", err)
	}

	return &vulnerability.CandidateRow{
		ID:              cve,
		CPE:             cpeStr,
		AffectsAllPrior: previous.Valid && previous.String != "",
	}, nil
}

func (s *candidateStream) Close() error {
	return s.rows.Close()
}
