package version

import (
	"strings"
	"unicode"
)

// UnspecifiedToken is the serialized form of a version that could not be determined.
// NVD entries use the same token to mean "any version of this product".
const UnspecifiedToken = "-"

// Version is an ordered sequence of comparable tokens parsed from a raw version
// string (e.g. "1.0.2k" -> ["1", "0", "2", "k"]).
type Version struct {
	raw   string
	parts []string
}

// New parses the given string into a Version. Parsing is total: any input that
// yields no tokens (empty string, only separators, or the explicit "-" token)
// results in the unspecified sentinel rather than an error. A malformed version
// in one advisory record must not abort matching for the rest.
func New(raw string) *Version {
	parts := split(raw)
	if len(parts) == 0 {
		return &Version{
			raw:   raw,
			parts: []string{UnspecifiedToken},
		}
	}
	return &Version{
		raw:   raw,
		parts: parts,
	}
}

// split tokenizes a version string on '.', '-', '_', and digit/non-digit
// transitions ("9i" -> ["9", "i"]).
func split(raw string) []string {
	var parts []string
	var current strings.Builder
	var lastDigit bool

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, c := range raw {
		switch {
		case c == '.' || c == '-' || c == '_' || unicode.IsSpace(c):
			flush()
		case unicode.IsDigit(c):
			if current.Len() > 0 && !lastDigit {
				flush()
			}
			lastDigit = true
			current.WriteRune(c)
		default:
			if current.Len() > 0 && lastDigit {
				flush()
			}
			lastDigit = false
			current.WriteRune(c)
		}
	}
	flush()
	return parts
}

// IsUnspecified indicates if this version is the "-" sentinel.
func (v *Version) IsUnspecified() bool {
	return len(v.parts) == 1 && v.parts[0] == UnspecifiedToken
}

// Major returns the first token of the version, used by the matcher's
// release-line heuristics.
func (v *Version) Major() string {
	return v.parts[0]
}

// Parts returns the parsed token sequence.
func (v *Version) Parts() []string {
	return v.parts
}

func (v *Version) String() string {
	if v.IsUnspecified() {
		return UnspecifiedToken
	}
	return strings.Join(v.parts, ".")
}

// Compare returns -1, 0, or 1 if this version orders before, the same as, or
// after the other version. Numeric tokens compare as integers, all other
// tokens compare case-insensitively as strings, and a token sequence that is
// a strict prefix of another orders before it. Note that the sentinel has no
// special meaning here; its range semantics are owned by the matcher.
func (v *Version) Compare(other *Version) int {
	if other == nil {
		return 1
	}
	for i := 0; i < len(v.parts) && i < len(other.parts); i++ {
		if c := compareToken(v.parts[i], other.parts[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(v.parts) < len(other.parts):
		return -1
	case len(v.parts) > len(other.parts):
		return 1
	}
	return 0
}

// Equal indicates if the two versions parse to the same token sequence.
func (v *Version) Equal(other *Version) bool {
	return other != nil && v.Compare(other) == 0
}

func compareToken(a, b string) int {
	if isDigits(a) && isDigits(b) {
		// compare numerically without an integer conversion so that
		// arbitrarily long numeric runs (e.g. datestamp versions) still order
		// correctly
		at := strings.TrimLeft(a, "0")
		bt := strings.TrimLeft(b, "0")
		if len(at) != len(bt) {
			if len(at) < len(bt) {
				return -1
			}
			return 1
		}
		return strings.Compare(at, bt)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func isDigits(s string) bool {
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return len(s) > 0
}
