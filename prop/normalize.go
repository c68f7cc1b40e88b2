package prop

import "strings"

// StripUnderscores removes underscore separators from a name, so the flat
// parameter space form "USER_NAME" can be matched against the declared
// property "userName" by a case-insensitive index.
func StripUnderscores(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}

	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if r != '_' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
