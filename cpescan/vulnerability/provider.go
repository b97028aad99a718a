package vulnerability

// CandidateRow is one flattened (vulnerability, range-entry) record from the
// store, scoped to a single vendor/product pair.
type CandidateRow struct {
	// ID is the vulnerability identifier the range entry belongs to.
	ID string

	// CPE is the recorded software identifier string.
	CPE string

	// AffectsAllPrior indicates the entry covers the recorded version and all
	// earlier versions.
	AffectsAllPrior bool
}

// CandidateStream is a forward-only cursor over candidate rows.
//
// Load-bearing contract: rows MUST be ordered ascending by vulnerability ID.
// The aggregator groups contiguous runs of the same ID without buffering the
// whole result set; unsorted input silently corrupts grouping (no error is
// raised). The store owns this ordering.
type CandidateStream interface {
	// Next returns the next row, or (nil, nil) once the stream is exhausted.
	Next() (*CandidateRow, error)

	// Close releases the underlying cursor. Safe to call more than once.
	Close() error
}

// StoreReader is the subset of the persistent store the matching path needs.
type StoreReader interface {
	// CandidateStream opens an ID-ordered stream of range entries recorded
	// for the given vendor/product pair.
	CandidateStream(vendor, product string) (CandidateStream, error)

	// GetVulnerability fetches the full record for one vulnerability ID, or
	// nil if it is not known.
	GetVulnerability(id string) (*Vulnerability, error)
}

// Provider is the interface the matcher and callers consume.
type Provider interface {
	StoreReader
}

// NewProviderFromStore adapts a store reader into a Provider.
func NewProviderFromStore(reader StoreReader) Provider {
	return &storeAdapter{reader: reader}
}

type storeAdapter struct {
	reader StoreReader
}

func (a *storeAdapter) CandidateStream(vendor, product string) (CandidateStream, error) {
	return a.reader.CandidateStream(vendor, product)
}

func (a *storeAdapter) GetVulnerability(id string) (*Vulnerability, error) {
	return a.reader.GetVulnerability(id)
}
