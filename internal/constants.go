package internal

const (
	// ApplicationName is the non-capitalized name of the application (do not change this).
	ApplicationName = "cpescan"

	// DBUpdateURL is the default location of the vulnerability database listing file.
	DBUpdateURL = "https://data.cpescan.io/databases/listing.json"
)
