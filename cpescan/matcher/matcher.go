package matcher

import (
	"sort"

	"github.com/scylladb/go-set/strset"

	"github.com/cpescan/cpescan/cpescan/cpe"
	"github.com/cpescan/cpescan/cpescan/version"
)

// Matcher decides whether an identified version falls within any of the range
// entries recorded for a single vendor/product pair. Matcher values are
// immutable and safe for concurrent use.
type Matcher struct {
	exceptions Exceptions
}

func New() *Matcher {
	return &Matcher{
		exceptions: DefaultExceptions,
	}
}

func NewWithExceptions(exceptions Exceptions) *Matcher {
	return &Matcher{
		exceptions: exceptions,
	}
}

// Match returns the winning candidate for the identified version, if any. The
// candidates must all share the given vendor/product. Match never fails:
// unparseable data degrades per the rules carried by cpe.Candidate.
func (m *Matcher) Match(identified *version.Version, vendor, product string, candidates []cpe.Candidate) (cpe.Candidate, bool) {
	if len(candidates) == 0 {
		return cpe.Candidate{}, false
	}

	// iteration order over the candidate set must not influence the outcome
	candidates = sortedCopy(candidates)

	// an "any version" entry dominates every other rule
	for _, candidate := range candidates {
		if candidate.Version.IsUnspecified() {
			return candidate, true
		}
	}

	// an unknown identified version cannot be proven equal to an exact-version
	// entry, so only open-ended ranges can apply
	if identified == nil || identified.IsUnspecified() {
		for _, candidate := range candidates {
			if candidate.AffectsAllPrior {
				return candidate, true
			}
		}
		return cpe.Candidate{}, false
	}

	// collect the distinct major components carried by open-range entries and
	// determine whether one of them anchors the identified release line
	majors := strset.New()
	anchored := false
	for _, candidate := range candidates {
		if !candidate.AffectsAllPrior {
			continue
		}
		major := candidate.Version.Major()
		majors.Add(major)
		if major == identified.Major() {
			anchored = true
		}
	}

	// when an anchor exists and multiple release lines carry open ranges,
	// entries from other release lines are ignored: a broad "everything up to
	// 1.x" range must not cover a 2.x version that has its own boundary
	skipOtherMajors := anchored && majors.Size() > 1

	// exact versions win over open ranges
	for _, candidate := range candidates {
		if candidate.AffectsAllPrior {
			continue
		}
		if skipOtherMajors && candidate.Version.Major() != identified.Major() {
			continue
		}
		if identified.Equal(candidate.Version) {
			return candidate, true
		}
	}

	restrictMajor := m.exceptions != nil && m.exceptions(vendor, product)
	for _, candidate := range candidates {
		if !candidate.AffectsAllPrior {
			continue
		}
		if skipOtherMajors && candidate.Version.Major() != identified.Major() {
			continue
		}
		if identified.Compare(candidate.Version) <= 0 {
			if restrictMajor && identified.Major() != candidate.Version.Major() {
				continue
			}
			return candidate, true
		}
	}

	return cpe.Candidate{}, false
}

// sortedCopy orders candidates ascending by version (ties broken by the raw
// identifier string) so that the open-range pass accepts the tightest
// applicable upper bound and repeated runs yield the same winner.
func sortedCopy(candidates []cpe.Candidate) []cpe.Candidate {
	sorted := make([]cpe.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Version.Compare(sorted[j].Version); c != 0 {
			return c < 0
		}
		return sorted[i].CPE < sorted[j].CPE
	})
	return sorted
}
