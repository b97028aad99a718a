package file

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/metadata.json", []byte("{}"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/src/nested/payload.db", []byte("payload"), 0600))

	require.NoError(t, CopyDir(fs, "/src", "/dst"))

	contents, err := afero.ReadFile(fs, "/dst/metadata.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(contents))

	contents, err = afero.ReadFile(fs, "/dst/nested/payload.db")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(contents))
}

func TestCopyDirMissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.Error(t, CopyDir(fs, "/nope", "/dst"))
}

func TestCopyFilePreservesMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src.txt", []byte("payload"), 0600))

	require.NoError(t, CopyFile(fs, "/src.txt", "/dst.txt"))

	info, err := fs.Stat("/dst.txt")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().String())
}
