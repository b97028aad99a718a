package file

import (
	"github.com/spf13/afero"
)

// Exists reports whether path names an existing regular file. Stat failures
// of any kind (not just absence) count as non-existence.
func Exists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
