package db

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/cpescan/cpescan/cpescan/event"
	"github.com/cpescan/cpescan/internal/bus"
	"github.com/cpescan/cpescan/internal/file"
	"github.com/cpescan/cpescan/internal/log"
)

const (
	// supportedVersion expresses the range of database schema versions this
	// application can read.
	supportedVersion = ">=1.0.0, <2.0.0"

	// StoreFileName is the name of the sqlite file within the DB directory.
	StoreFileName = "vulnerability.db"
)

type Config struct {
	DBDir      string
	ListingURL string
}

// Curator owns the lifecycle of the local database cache: discovery of
// updates, download, validation, and activation. Opening the store against
// the validated payload is left to the caller via StorePath.
type Curator struct {
	fs                afero.Fs
	config            Config
	client            file.Getter
	versionConstraint version.Constraints
}

func NewCurator(cfg Config) (Curator, error) {
	constraint, err := version.NewConstraint(supportedVersion)
	if err != nil {
		return Curator{}, fmt.Errorf("unable to set DB curator version constraint (%s): %w", supportedVersion, err)
	}

	return Curator{
		config:            cfg,
		fs:                afero.NewOsFs(),
		versionConstraint: constraint,
		client:            &file.HashiGoGetter{},
	}, nil
}

// StorePath is where the sqlite payload lives within the managed DB
// directory. Opening the store is the caller's concern.
func (c *Curator) StorePath() string {
	return path.Join(c.config.DBDir, StoreFileName)
}

func (c *Curator) Status() Status {
	metadata, err := NewMetadataFromDir(c.fs, c.config.DBDir)
	if err != nil {
		return Status{
			Err: fmt.Errorf("failed to parse database metadata (%s): %w", c.config.DBDir, err),
		}
	}
	if metadata == nil {
		return Status{
			Err: fmt.Errorf("database metadata not found at %q", c.config.DBDir),
		}
	}

	return Status{
		Built:         metadata.Built,
		SchemaVersion: metadata.Version.String(),
		Location:      c.config.DBDir,
		Checksum:      metadata.Checksum,
		Err:           c.Validate(),
	}
}

func (c *Curator) Delete() error {
	return c.fs.RemoveAll(c.config.DBDir)
}

func (c *Curator) IsUpdateAvailable() (bool, *ListingEntry, error) {
	log.Debugf("checking for available database updates")

	listing, err := NewListingFromURL(c.fs, c.client, c.config.ListingURL)
	if err != nil {
		return false, nil, fmt.Errorf("failed to get listing file: %w", err)
	}

	updateEntry := listing.BestUpdate(c.versionConstraint)
	if updateEntry == nil {
		return false, nil, fmt.Errorf("no db candidates with correct version available (maybe there is an application update available?)")
	}
	log.Debugf("found database update candidate: %s", updateEntry)

	// compare created data to current db date
	current, err := NewMetadataFromDir(c.fs, c.config.DBDir)
	if err != nil {
		return false, nil, fmt.Errorf("current metadata corrupt: %w", err)
	}

	if current.IsSupercededBy(updateEntry) {
		log.Debugf("database update available: %s", updateEntry)
		return true, updateEntry, nil
	}
	log.Debugf("no database update available")

	return false, nil, nil
}

// Validate checks the current database to ensure file integrity and if it can be used by this version of the application.
func (c *Curator) Validate() error {
	return c.validate(c.config.DBDir)
}

// ImportFrom takes a DB archive file and imports it into the final DB location.
func (c *Curator) ImportFrom(dbArchivePath string) error {
	// note: the temp directory is persisted upon download/validation/activation failure to allow for investigation
	tempDir, err := ioutil.TempDir("", "cpescan-import")
	if err != nil {
		return fmt.Errorf("unable to create db temp dir: %w", err)
	}

	f, err := os.Open(dbArchivePath)
	if err != nil {
		return fmt.Errorf("unable to open archive (%s): %w", dbArchivePath, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("unable to close archive (%s): %+v", dbArchivePath, err)
		}
	}()

	if err := file.UnTarGz(tempDir, f); err != nil {
		return err
	}

	if err := c.validate(tempDir); err != nil {
		return err
	}

	if err := c.activate(tempDir); err != nil {
		return err
	}

	return c.fs.RemoveAll(tempDir)
}

func (c *Curator) UpdateTo(listing *ListingEntry) error {
	monitor := &progress.Manual{}
	bus.Publish(partybus.Event{
		Type:   event.UpdateVulnerabilityDatabase,
		Value:  progress.Progressable(monitor),
		Source: listing.URL.String(),
	})
	defer monitor.SetCompleted()

	// note: the temp directory is persisted upon download/validation/activation failure to allow for investigation
	tempDir, err := c.download(listing, monitor)
	if err != nil {
		return err
	}

	if err := c.validate(tempDir); err != nil {
		return err
	}

	if err := c.activate(tempDir); err != nil {
		return err
	}

	return c.fs.RemoveAll(tempDir)
}

func (c *Curator) download(listing *ListingEntry, monitor *progress.Manual) (string, error) {
	tempDir, err := ioutil.TempDir("", "cpescan-scratch")
	if err != nil {
		return "", fmt.Errorf("unable to create db temp dir: %w", err)
	}

	// from go-getter, adding a checksum as a query string will validate the payload after download
	// note: the checksum query parameter is not sent to the server
	url := *listing.URL
	query := url.Query()
	query.Add("checksum", listing.Checksum)
	url.RawQuery = query.Encode()

	// go-getter will automatically extract all files within the archive to the temp dir
	err = c.client.GetToDir(tempDir, url.String(), monitor)
	if err != nil {
		return "", fmt.Errorf("unable to download db: %w", err)
	}

	return tempDir, nil
}

func (c *Curator) validate(dbDirPath string) error {
	// check that the disk checksum still matches the db payload
	metadata, err := NewMetadataFromDir(c.fs, dbDirPath)
	if err != nil {
		return fmt.Errorf("failed to parse database metadata (%s): %w", dbDirPath, err)
	}
	if metadata == nil {
		return fmt.Errorf("database metadata not found: %s", dbDirPath)
	}

	dbPath := path.Join(dbDirPath, StoreFileName)
	valid, err := file.ValidateByHash(c.fs, dbPath, metadata.Checksum)
	if err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("bad db checksum (%s)", dbDirPath)
	}

	if !c.versionConstraint.Check(metadata.Version) {
		return fmt.Errorf("unsupported database version: version=%s constraint=%s", metadata.Version.String(), c.versionConstraint.String())
	}

	return nil
}

// activate swaps over the downloaded db to the application directory
func (c *Curator) activate(dbDirPath string) error {
	_, err := c.fs.Stat(c.config.DBDir)
	if !os.IsNotExist(err) {
		// remove any previous databases
		if err := c.Delete(); err != nil {
			return fmt.Errorf("failed to purge existing database: %w", err)
		}
	}

	// ensure there is an application db directory
	if err := c.fs.MkdirAll(c.config.DBDir, 0755); err != nil {
		return fmt.Errorf("failed to create db directory: %w", err)
	}

	// activate the new db cache
	return file.CopyDir(c.fs, dbDirPath, c.config.DBDir)
}
