package db

import (
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"
)

func TestMetadataParse(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		expected Metadata
		err      bool
	}{
		{
			name:     "gocase",
			contents: `{"built":"2020-06-15T14:02:36Z","version":"1.2.0","checksum":"sha256:dcd6a285c839a7c65939e20c251202912f64826be68609dfc6e48df7f853ddc8"}`,
			expected: Metadata{
				Built:    time.Date(2020, 06, 15, 14, 02, 36, 0, time.UTC),
				Version:  version.Must(version.NewVersion("1.2.0")),
				Checksum: "sha256:dcd6a285c839a7c65939e20c251202912f64826be68609dfc6e48df7f853ddc8",
			},
		},
		{
			name:     "non-utc timezone is normalized",
			contents: `{"built":"2020-06-15T14:02:36-04:00","version":"1.2.0","checksum":"sha256:dcd6a285c839a7c65939e20c251202912f64826be68609dfc6e48df7f853ddc8"}`,
			expected: Metadata{
				Built:    time.Date(2020, 06, 15, 18, 02, 36, 0, time.UTC),
				Version:  version.Must(version.NewVersion("1.2.0")),
				Checksum: "sha256:dcd6a285c839a7c65939e20c251202912f64826be68609dfc6e48df7f853ddc8",
			},
		},
		{
			name:     "bad built time",
			contents: `{"built":"last tuesday","version":"1.2.0","checksum":"sha256:deadbeef"}`,
			err:      true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "/db/"+MetadataFileName, []byte(test.contents), 0644); err != nil {
				t.Fatalf("unable to write fixture: %+v", err)
			}

			metadata, err := NewMetadataFromDir(fs, "/db")
			if err != nil && !test.err {
				t.Fatalf("failed to get metadata: %+v", err)
			} else if err == nil && test.err {
				t.Fatalf("expected error but got none")
			}
			if test.err {
				return
			}

			if metadata == nil {
				t.Fatal("metadata not found")
			}

			for _, diff := range deep.Equal(*metadata, test.expected) {
				t.Errorf("metadata difference: %s", diff)
			}
		})
	}
}

func TestMetadataMissingFile(t *testing.T) {
	metadata, err := NewMetadataFromDir(afero.NewMemMapFs(), "/nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if metadata != nil {
		t.Errorf("expected no metadata, got %+v", metadata)
	}
}

func TestMetadataWriteRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	expected := Metadata{
		Built:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Version:  version.Must(version.NewVersion("1.0.0")),
		Checksum: "sha256:deadbeef",
	}

	if err := expected.Write(fs, "/db"); err != nil {
		t.Fatalf("unable to write metadata: %+v", err)
	}

	actual, err := NewMetadataFromDir(fs, "/db")
	if err != nil {
		t.Fatalf("unable to read metadata back: %+v", err)
	}
	if actual == nil {
		t.Fatal("metadata not found after write")
	}

	for _, diff := range deep.Equal(*actual, expected) {
		t.Errorf("metadata difference: %s", diff)
	}
}

func TestMetadataIsSupercededBy(t *testing.T) {
	tests := []struct {
		name                string
		current             *Metadata
		update              *ListingEntry
		expectedToSupercede bool
	}{
		{
			name:                "prefer updated versions over later dates",
			expectedToSupercede: true,
			current: &Metadata{
				Built:   time.Date(2020, 06, 15, 14, 02, 36, 0, time.UTC),
				Version: version.Must(version.NewVersion("1.2.0")),
			},
			update: &ListingEntry{
				Built:   time.Date(2020, 06, 13, 17, 13, 13, 0, time.UTC),
				Version: version.Must(version.NewVersion("1.3.0")),
			},
		},
		{
			name:                "same version and older build is not an update",
			expectedToSupercede: false,
			current: &Metadata{
				Built:   time.Date(2020, 06, 15, 14, 02, 36, 0, time.UTC),
				Version: version.Must(version.NewVersion("1.1.0")),
			},
			update: &ListingEntry{
				Built:   time.Date(2020, 06, 13, 17, 13, 13, 0, time.UTC),
				Version: version.Must(version.NewVersion("1.1.0")),
			},
		},
		{
			name:                "same version and newer build is an update",
			expectedToSupercede: true,
			current: &Metadata{
				Built:   time.Date(2020, 06, 13, 17, 13, 13, 0, time.UTC),
				Version: version.Must(version.NewVersion("1.1.0")),
			},
			update: &ListingEntry{
				Built:   time.Date(2020, 06, 15, 14, 02, 36, 0, time.UTC),
				Version: version.Must(version.NewVersion("1.1.0")),
			},
		},
		{
			name:                "prefer something over nothing",
			expectedToSupercede: true,
			current:             nil,
			update: &ListingEntry{
				Built:   time.Date(2020, 06, 13, 17, 13, 13, 0, time.UTC),
				Version: version.Must(version.NewVersion("1.1.0")),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := test.current.IsSupercededBy(test.update)

			if test.expectedToSupercede != actual {
				t.Errorf("failed supercede assertion: got %+v", actual)
			}
		})
	}
}
