package db

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"

	"github.com/cpescan/cpescan/internal/file"
	"github.com/cpescan/cpescan/internal/log"
)

// Listing is the remote index of database archives available for download.
type Listing struct {
	Latest    ListingEntry   `json:"latest"`
	Available []ListingEntry `json:"available"`
}

// ListingEntry describes one downloadable database archive.
type ListingEntry struct {
	Built    time.Time
	Version  *version.Version
	URL      *url.URL
	Checksum string
}

// ListingEntryJSON is the on-disk shape of a ListingEntry.
type ListingEntryJSON struct {
	Built    string `json:"built"`
	Version  string `json:"version"`
	URL      string `json:"url"`
	Checksum string `json:"checksum"`
}

func (l ListingEntryJSON) ToListingEntry() (ListingEntry, error) {
	build, err := time.Parse(time.RFC3339, l.Built)
	if err != nil {
		return ListingEntry{}, fmt.Errorf("cannot convert built time (%s): %+v", l.Built, err)
	}

	ver, err := version.NewVersion(l.Version)
	if err != nil {
		return ListingEntry{}, fmt.Errorf("cannot parse version (%s): %+v", l.Version, err)
	}

	u, err := url.Parse(l.URL)
	if err != nil {
		return ListingEntry{}, fmt.Errorf("cannot parse url (%s): %+v", l.URL, err)
	}

	return ListingEntry{
		Built:    build.UTC(),
		Version:  ver,
		URL:      u,
		Checksum: l.Checksum,
	}, nil
}

func (l *ListingEntry) UnmarshalJSON(data []byte) error {
	var lej ListingEntryJSON
	if err := json.Unmarshal(data, &lej); err != nil {
		return err
	}
	le, err := lej.ToListingEntry()
	if err != nil {
		return err
	}
	*l = le
	return nil
}

func (l ListingEntry) String() string {
	return fmt.Sprintf("Listing(url=%s version=%s built=%s)", l.URL, l.Version, l.Built)
}

// NewListingFromPath loads a listing file from disk.
func NewListingFromPath(fs afero.Fs, path string) (Listing, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Listing{}, fmt.Errorf("unable to open DB listing path: %w", err)
	}
	defer f.Close()

	var l Listing
	err = json.NewDecoder(f).Decode(&l)
	if err != nil {
		return Listing{}, fmt.Errorf("unable to parse DB listing: %w", err)
	}
	return l, nil
}

// NewListingFromURL downloads and parses the listing file at the given URL.
func NewListingFromURL(fs afero.Fs, getter file.Getter, listingURL string) (Listing, error) {
	tempFile, err := afero.TempFile(fs, "", "cpescan-listing")
	if err != nil {
		return Listing{}, fmt.Errorf("unable to create listing temp file: %w", err)
	}
	defer func() {
		err := fs.RemoveAll(tempFile.Name())
		if err != nil {
			log.Errorf("failed to remove file (%s): %+v", tempFile.Name(), err)
		}
	}()

	// download the listing file
	err = getter.GetFile(tempFile.Name(), listingURL)
	if err != nil {
		return Listing{}, fmt.Errorf("unable to download listing: %w", err)
	}

	// parse the listing file
	listing, err := NewListingFromPath(fs, tempFile.Name())
	if err != nil {
		return Listing{}, err
	}
	return listing, nil
}

// BestUpdate returns the newest entry that satisfies the given schema-version
// constraint, or nil when none qualifies.
func (l *Listing) BestUpdate(constraint version.Constraints) *ListingEntry {
	candidates := []ListingEntry{l.Latest}
	candidates = append(candidates, l.Available...)

	var updateEntry *ListingEntry
	for _, candidate := range candidates {
		log.Debugf("found update candidate: %s", candidate)
		if constraint.Check(candidate.Version) {
			theCandidate := candidate
			updateEntry = &theCandidate
			break
		}
	}

	return updateEntry
}
