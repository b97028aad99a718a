package db

import "time"

type Status struct {
	Built         time.Time
	SchemaVersion string
	Location      string
	Checksum      string
	Err           error
}
