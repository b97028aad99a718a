package matcher

// Exceptions decides whether an open "this version and all earlier" range for
// the given vendor/product is forbidden from crossing a major version
// boundary. Some products re-use one name across incompatible release lines
// (effectively different products), so an open range anchored in one line
// must not cover versions from another.
type Exceptions func(vendor, product string) bool

// DefaultExceptions covers the known NVD case: Struts 1.x and 2.x are
// unrelated codebases sharing a CPE product name.
func DefaultExceptions(vendor, product string) bool {
	return vendor == "apache" && product == "struts"
}

// NoExceptions disables the major-boundary restriction entirely.
func NoExceptions(_, _ string) bool {
	return false
}
