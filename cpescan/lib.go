package cpescan

import (
	"fmt"

	"github.com/wagoodman/go-partybus"

	"github.com/cpescan/cpescan/cpescan/db"
	"github.com/cpescan/cpescan/cpescan/db/store"
	"github.com/cpescan/cpescan/cpescan/logger"
	"github.com/cpescan/cpescan/cpescan/vulnerability"
	"github.com/cpescan/cpescan/internal/bus"
	"github.com/cpescan/cpescan/internal/log"
)

// note: lib name must be a single word, all lowercase
const LibraryName = "cpescan"

// LoadVulnerabilityDB opens the local vulnerability database, optionally
// checking for and applying an update first.
func LoadVulnerabilityDB(cfg db.Config, update bool) (vulnerability.Provider, error) {
	dbCurator, err := db.NewCurator(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not curate database: %w", err)
	}

	if update {
		updateAvailable, updateEntry, err := dbCurator.IsUpdateAvailable()
		if err != nil {
			// TODO: should this be so fatal? we can certainly continue with a warning...
			return nil, fmt.Errorf("unable to check for vulnerability database update: %w", err)
		}
		if updateAvailable {
			err = dbCurator.UpdateTo(updateEntry)
			if err != nil {
				return nil, fmt.Errorf("unable to update vulnerability database: %w", err)
			}
		}
	}

	if err := dbCurator.Validate(); err != nil {
		return nil, fmt.Errorf("vulnerability database is corrupt (run db update to correct): %+v", err)
	}

	reader, err := store.NewReader(dbCurator.StorePath())
	if err != nil {
		return nil, err
	}

	return vulnerability.NewProviderFromStore(reader), nil
}

func SetLogger(logger logger.Logger) {
	log.Log = logger
}

func SetBus(b *partybus.Bus) {
	bus.SetPublisher(b)
}
