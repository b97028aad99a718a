package db

import (
	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

// StoreReader is the complete read surface of the vulnerability database. It
// is a superset of vulnerability.StoreReader: the extra operations serve
// curation and diagnostics rather than matching.
type StoreReader interface {
	IDReader
	vulnerability.StoreReader

	// GetProperties fetches all key-value metadata rows recorded in the DB.
	GetProperties() (map[string]string, error)

	// DataExists indicates whether the DB holds any software entries at all,
	// used to decide if analysis can be performed.
	DataExists() (bool, error)

	Close() error
}

// StoreWriter is used by the DB build/update path.
type StoreWriter interface {
	IDWriter

	// AddVulnerability inserts (or replaces) vulnerability records along with
	// their references and vulnerable-software entries. Records whose
	// description marks them as rejected are removed instead.
	AddVulnerability(vulnerabilities ...vulnerability.Vulnerability) error

	// SetProperty upserts one key-value metadata row.
	SetProperty(key, value string) error

	// CleanupOrphans removes rows left dangling by record replacement.
	CleanupOrphans() error

	Close() error
}

type IDReader interface {
	GetID() (*ID, error)
}

type IDWriter interface {
	SetID(ID) error
}

type Store interface {
	StoreReader
	StoreWriter
}
