package db

import (
	"time"
)

// ID represents identifying information for a DB and the data it contains.
type ID struct {
	// BuildTimestamp is the timestamp used to define the age of the DB, ideally including the age of the data
	// curated in the DB.
	BuildTimestamp time.Time

	// SchemaVersion is the version of the DB schema, used to gate application/database compatibility.
	SchemaVersion string
}

func NewID(age time.Time, schemaVersion string) ID {
	return ID{
		BuildTimestamp: age.UTC(),
		SchemaVersion:  schemaVersion,
	}
}
