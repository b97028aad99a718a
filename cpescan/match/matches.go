package match

import (
	"sort"
)

// Matches is a collection of matches keyed by vulnerability ID.
type Matches struct {
	byID map[string]Match
}

func NewMatches() Matches {
	return Matches{
		byID: make(map[string]Match),
	}
}

// Add records a match. A later match for the same vulnerability ID replaces
// the earlier one (de-duplication across products is an upstream concern).
func (m *Matches) Add(matches ...Match) {
	for _, newMatch := range matches {
		m.byID[newMatch.Vulnerability.ID] = newMatch
	}
}

func (m *Matches) Merge(other Matches) {
	for _, otherMatch := range other.byID {
		m.Add(otherMatch)
	}
}

func (m Matches) Count() int {
	return len(m.byID)
}

// Enumerate yields all matches over a channel (in no particular order).
func (m Matches) Enumerate() <-chan Match {
	channel := make(chan Match)
	go func() {
		defer close(channel)
		for _, aMatch := range m.byID {
			channel <- aMatch
		}
	}()
	return channel
}

// Sorted returns all matches ordered by vulnerability ID.
func (m Matches) Sorted() []Match {
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	matches := make([]Match, 0, len(ids))
	for _, id := range ids {
		matches = append(matches, m.byID[id])
	}
	return matches
}
