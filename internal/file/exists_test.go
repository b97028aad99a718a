package file

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statFailFs struct {
	afero.Fs
	err error
}

func (f statFailFs) Stat(string) (os.FileInfo, error) {
	return nil, f.err
}

func TestExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/file.txt", []byte("payload"), 0644))
	require.NoError(t, fs.MkdirAll("/data/dir", 0755))

	tests := []struct {
		name     string
		fs       afero.Fs
		path     string
		expected bool
	}{
		{
			name:     "regular file",
			fs:       fs,
			path:     "/data/file.txt",
			expected: true,
		},
		{
			name:     "directory",
			fs:       fs,
			path:     "/data/dir",
			expected: false,
		},
		{
			name:     "missing path",
			fs:       fs,
			path:     "/data/nope.txt",
			expected: false,
		},
		{
			name:     "stat failure other than absence",
			fs:       statFailFs{Fs: fs, err: errors.New("permission denied")},
			path:     "/data/file.txt",
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Exists(test.fs, test.path))
		})
	}
}
