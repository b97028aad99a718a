package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpescan/cpescan/cpescan/cpe"
	"github.com/cpescan/cpescan/cpescan/db"
	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

func newTestStore(t *testing.T) db.Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "vulnerability.db"), true)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestIDRoundTrip(t *testing.T) {
	s := newTestStore(t)

	// no ID yet
	id, err := s.GetID()
	require.NoError(t, err)
	assert.Nil(t, id)

	expected := db.NewID(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), "1.0.0")
	require.NoError(t, s.SetID(expected))

	id, err = s.GetID()
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, expected.SchemaVersion, id.SchemaVersion)
	assert.True(t, expected.BuildTimestamp.Equal(id.BuildTimestamp))

	// replacing the ID leaves a single row
	replacement := db.NewID(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "1.1.0")
	require.NoError(t, s.SetID(replacement))

	id, err = s.GetID()
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "1.1.0", id.SchemaVersion)
}

func TestAddGetVulnerability(t *testing.T) {
	s := newTestStore(t)

	expected := vulnerability.Vulnerability{
		ID:          "CVE-2017-5638",
		Description: "remote code execution in the Jakarta multipart parser",
		Cwe:         "CWE-20",
		Cvss: vulnerability.Cvss{
			Score:                 10.0,
			AccessVector:          "NETWORK",
			AccessComplexity:      "LOW",
			Authentication:        "NONE",
			ConfidentialityImpact: "COMPLETE",
			IntegrityImpact:       "COMPLETE",
			AvailabilityImpact:    "COMPLETE",
		},
		References: []vulnerability.Reference{
			{Name: "apache-advisory", URL: "https://struts.apache.org/announce", Source: "CONFIRM"},
		},
		VulnerableSoftware: []cpe.Candidate{
			cpe.NewCandidate("cpe:/a:apache:struts:2.3.31", true),
			cpe.NewCandidate("cpe:/a:apache:struts:2.5.10", false),
		},
	}

	require.NoError(t, s.AddVulnerability(expected))

	actual, err := s.GetVulnerability("CVE-2017-5638")
	require.NoError(t, err)
	require.NotNil(t, actual)

	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Description, actual.Description)
	assert.Equal(t, expected.Cwe, actual.Cwe)
	if diff := deep.Equal(expected.Cvss, actual.Cvss); diff != nil {
		t.Errorf("unexpected CVSS: %+v", diff)
	}
	if diff := deep.Equal(expected.References, actual.References); diff != nil {
		t.Errorf("unexpected references: %+v", diff)
	}

	require.Len(t, actual.VulnerableSoftware, 2)
	byCpe := map[string]cpe.Candidate{}
	for _, c := range actual.VulnerableSoftware {
		byCpe[c.CPE] = c
	}
	assert.True(t, byCpe["cpe:/a:apache:struts:2.3.31"].AffectsAllPrior)
	assert.False(t, byCpe["cpe:/a:apache:struts:2.5.10"].AffectsAllPrior)
}

func TestGetVulnerabilityMissing(t *testing.T) {
	s := newTestStore(t)

	actual, err := s.GetVulnerability("CVE-1999-9999")
	require.NoError(t, err)
	assert.Nil(t, actual)
}

func TestAddVulnerabilityReplacesExisting(t *testing.T) {
	s := newTestStore(t)

	original := vulnerability.Vulnerability{
		ID:          "CVE-2020-0001",
		Description: "original description",
		References: []vulnerability.Reference{
			{Name: "ref-1", URL: "https://example.com/1", Source: "MISC"},
			{Name: "ref-2", URL: "https://example.com/2", Source: "MISC"},
		},
		VulnerableSoftware: []cpe.Candidate{
			cpe.NewCandidate("cpe:/a:acme:thing:1.0", false),
		},
	}
	require.NoError(t, s.AddVulnerability(original))

	updated := original
	updated.Description = "updated description"
	updated.References = []vulnerability.Reference{
		{Name: "ref-3", URL: "https://example.com/3", Source: "MISC"},
	}
	require.NoError(t, s.AddVulnerability(updated))

	actual, err := s.GetVulnerability("CVE-2020-0001")
	require.NoError(t, err)
	require.NotNil(t, actual)
	assert.Equal(t, "updated description", actual.Description)
	require.Len(t, actual.References, 1)
	assert.Equal(t, "ref-3", actual.References[0].Name)
}

func TestAddVulnerabilityRejectedRecordIsRemoved(t *testing.T) {
	s := newTestStore(t)

	original := vulnerability.Vulnerability{
		ID:          "CVE-2020-0002",
		Description: "to be withdrawn",
		VulnerableSoftware: []cpe.Candidate{
			cpe.NewCandidate("cpe:/a:acme:thing:1.0", false),
		},
	}
	require.NoError(t, s.AddVulnerability(original))

	withdrawn := original
	withdrawn.Description = "** REJECT ** DO NOT USE THIS CANDIDATE NUMBER"
	require.NoError(t, s.AddVulnerability(withdrawn))

	actual, err := s.GetVulnerability("CVE-2020-0002")
	require.NoError(t, err)
	assert.Nil(t, actual)
}

func TestCandidateStreamOrderedByCve(t *testing.T) {
	s := newTestStore(t)

	// insert out of ID order on purpose
	for _, v := range []vulnerability.Vulnerability{
		{
			ID: "CVE-2020-0002",
			VulnerableSoftware: []cpe.Candidate{
				cpe.NewCandidate("cpe:/a:acme:thing:2.0", false),
			},
		},
		{
			ID: "CVE-2020-0001",
			VulnerableSoftware: []cpe.Candidate{
				cpe.NewCandidate("cpe:/a:acme:thing:1.0", true),
				cpe.NewCandidate("cpe:/a:acme:thing:1.1", false),
			},
		},
		{
			ID: "CVE-2020-0003",
			VulnerableSoftware: []cpe.Candidate{
				cpe.NewCandidate("cpe:/a:other:widget:1.0", false),
			},
		},
	} {
		require.NoError(t, s.AddVulnerability(v))
	}

	stream, err := s.CandidateStream("acme", "thing")
	require.NoError(t, err)
	defer stream.Close()

	var rows []vulnerability.CandidateRow
	for {
		row, err := stream.Next()
		require.NoError(t, err)
		if row == nil {
			break
		}
		rows = append(rows, *row)
	}

	// only the requested vendor/product, ordered ascending by CVE
	require.Len(t, rows, 3)
	assert.Equal(t, "CVE-2020-0001", rows[0].ID)
	assert.Equal(t, "CVE-2020-0001", rows[1].ID)
	assert.Equal(t, "CVE-2020-0002", rows[2].ID)

	var flagged int
	for _, row := range rows {
		if row.AffectsAllPrior {
			flagged++
		}
	}
	assert.Equal(t, 1, flagged)
}

func TestProperties(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetProperty("NVD CVE Modified", "2024-03-01T00:00:00Z"))
	require.NoError(t, s.SetProperty("version", "1"))

	// upsert replaces the value
	require.NoError(t, s.SetProperty("version", "2"))

	properties, err := s.GetProperties()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"NVD CVE Modified": "2024-03-01T00:00:00Z",
		"version":          "2",
	}, properties)
}

func TestDataExists(t *testing.T) {
	s := newTestStore(t)

	exists, err := s.DataExists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.AddVulnerability(vulnerability.Vulnerability{
		ID: "CVE-2020-0001",
		VulnerableSoftware: []cpe.Candidate{
			cpe.NewCandidate("cpe:/a:acme:thing:1.0", false),
		},
	}))

	exists, err = s.DataExists()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCleanupOrphans(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddVulnerability(vulnerability.Vulnerability{
		ID: "CVE-2020-0001",
		VulnerableSoftware: []cpe.Candidate{
			cpe.NewCandidate("cpe:/a:acme:thing:1.0", false),
		},
	}))

	// withdrawing the record leaves the cpe_entry dictionary row behind
	require.NoError(t, s.AddVulnerability(vulnerability.Vulnerability{
		ID:          "CVE-2020-0001",
		Description: "** REJECT **",
	}))

	require.NoError(t, s.CleanupOrphans())

	exists, err := s.DataExists()
	require.NoError(t, err)
	assert.False(t, exists)
}
