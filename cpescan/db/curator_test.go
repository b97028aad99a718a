package db

import (
	"crypto/sha256"
	"fmt"
	"testing"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCurator(t *testing.T, fs afero.Fs) Curator {
	t.Helper()

	constraint, err := version.NewConstraint(supportedVersion)
	require.NoError(t, err)

	return Curator{
		fs:                fs,
		config:            Config{DBDir: "/db", ListingURL: "https://data.example.com/listing.json"},
		versionConstraint: constraint,
	}
}

func writeTestDatabase(t *testing.T, fs afero.Fs, dir, schemaVersion string) {
	t.Helper()

	payload := []byte("database payload")
	require.NoError(t, afero.WriteFile(fs, dir+"/"+StoreFileName, payload, 0644))

	metadata := Metadata{
		Built:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Version:  version.Must(version.NewVersion(schemaVersion)),
		Checksum: fmt.Sprintf("sha256:%x", sha256.Sum256(payload)),
	}
	require.NoError(t, metadata.Write(fs, dir))
}

func TestCuratorValidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	curator := newTestCurator(t, fs)

	writeTestDatabase(t, fs, "/db", "1.0.0")

	assert.NoError(t, curator.Validate())
}

func TestCuratorValidateBadChecksum(t *testing.T) {
	fs := afero.NewMemMapFs()
	curator := newTestCurator(t, fs)

	writeTestDatabase(t, fs, "/db", "1.0.0")
	// corrupt the payload after the checksum was recorded
	require.NoError(t, afero.WriteFile(fs, "/db/"+StoreFileName, []byte("tampered"), 0644))

	err := curator.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad db checksum")
}

func TestCuratorValidateUnsupportedSchema(t *testing.T) {
	fs := afero.NewMemMapFs()
	curator := newTestCurator(t, fs)

	writeTestDatabase(t, fs, "/db", "2.0.0")

	err := curator.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database version")
}

func TestCuratorValidateMissingMetadata(t *testing.T) {
	fs := afero.NewMemMapFs()
	curator := newTestCurator(t, fs)

	err := curator.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database metadata not found")
}

func TestCuratorStorePath(t *testing.T) {
	fs := afero.NewMemMapFs()
	curator := newTestCurator(t, fs)

	assert.Equal(t, "/db/"+StoreFileName, curator.StorePath())
}

func TestCuratorStatus(t *testing.T) {
	fs := afero.NewMemMapFs()
	curator := newTestCurator(t, fs)

	writeTestDatabase(t, fs, "/db", "1.0.0")

	status := curator.Status()
	require.NoError(t, status.Err)
	assert.Equal(t, "/db", status.Location)
	assert.Equal(t, "1.0.0", status.SchemaVersion)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), status.Built)
}

func TestCuratorDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	curator := newTestCurator(t, fs)

	writeTestDatabase(t, fs, "/db", "1.0.0")
	require.NoError(t, curator.Delete())

	exists, err := afero.DirExists(fs, "/db")
	require.NoError(t, err)
	assert.False(t, exists)
}
