package analysis

import "strings"

// ShouldSkip reports whether an entry at the given relative path is ignored
// entirely: no counter increment, no recursion.
//
// Matching is substring-based on the whole path, so fragment "test" also
// skips src/testing/ and "dist" skips distro/. Known quirk, kept on purpose —
// segment-exact matching would change which repositories fit the budget.
func (r Rules) ShouldSkip(path string) bool {
	for _, fragment := range r.SkipFragments {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}

// IsCodeFile reports whether the file name carries one of the recognized
// code extensions. Purely name-based; the content is never inspected.
func (r Rules) IsCodeFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range r.CodeExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
