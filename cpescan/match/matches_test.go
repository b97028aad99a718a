package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

func newTestMatch(id, matchedCPE string) Match {
	return Match{
		Vulnerability: vulnerability.Vulnerability{ID: id},
		MatchedCPE:    matchedCPE,
	}
}

func TestMatchesAddDeduplicatesByID(t *testing.T) {
	actual := NewMatches()
	actual.Add(newTestMatch("CVE-2000-0001", "cpe:/a:acme:thing:1.0"))
	actual.Add(newTestMatch("CVE-2000-0001", "cpe:/a:acme:thing:1.1"))

	assert.Equal(t, 1, actual.Count())
	assert.Equal(t, "cpe:/a:acme:thing:1.1", actual.Sorted()[0].MatchedCPE)
}

func TestMatchesMerge(t *testing.T) {
	first := NewMatches()
	first.Add(newTestMatch("CVE-2000-0001", "cpe:/a:acme:thing:1.0"))

	second := NewMatches()
	second.Add(newTestMatch("CVE-2000-0002", "cpe:/a:acme:other:2.0"))
	second.Add(newTestMatch("CVE-2000-0001", "cpe:/a:acme:thing:1.5"))

	first.Merge(second)

	assert.Equal(t, 2, first.Count())
	sorted := first.Sorted()
	assert.Equal(t, "CVE-2000-0001", sorted[0].Vulnerability.ID)
	assert.Equal(t, "cpe:/a:acme:thing:1.5", sorted[0].MatchedCPE)
	assert.Equal(t, "CVE-2000-0002", sorted[1].Vulnerability.ID)
}

func TestMatchesSortedOrder(t *testing.T) {
	actual := NewMatches()
	actual.Add(
		newTestMatch("CVE-2000-0010", ""),
		newTestMatch("CVE-1999-0002", ""),
		newTestMatch("CVE-2000-0002", ""),
	)

	var ids []string
	for _, m := range actual.Sorted() {
		ids = append(ids, m.Vulnerability.ID)
	}
	assert.Equal(t, []string{"CVE-1999-0002", "CVE-2000-0002", "CVE-2000-0010"}, ids)
}

func TestMatchesEnumerate(t *testing.T) {
	actual := NewMatches()
	actual.Add(
		newTestMatch("CVE-2000-0001", ""),
		newTestMatch("CVE-2000-0002", ""),
	)

	seen := make(map[string]bool)
	for m := range actual.Enumerate() {
		seen[m.Vulnerability.ID] = true
	}
	assert.Len(t, seen, 2)
}
