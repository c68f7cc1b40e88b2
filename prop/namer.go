package prop

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsGetterName reports whether a method name follows the getter convention:
// "Get<X>" or "Is<X>".
func IsGetterName(name string) bool {
	return (strings.HasPrefix(name, "Get") && len(name) > 3) ||
		(strings.HasPrefix(name, "Is") && len(name) > 2)
}

// IsSetterName reports whether a method name follows the "Set<X>" convention.
func IsSetterName(name string) bool {
	return strings.HasPrefix(name, "Set") && len(name) > 3
}

// IsAccessorName reports whether a method name follows any accessor
// convention.
func IsAccessorName(name string) bool {
	return IsGetterName(name) || IsSetterName(name)
}

// MethodToProperty derives the property name from an accessor method name.
// Returns false if the name matches neither the getter nor setter convention.
func MethodToProperty(name string) (string, bool) {
	switch {
	case strings.HasPrefix(name, "Is") && len(name) > 2:
		name = name[2:]
	case IsGetterName(name) || IsSetterName(name):
		name = name[3:]
	default:
		return "", false
	}

	return Decapitalize(name), true
}

// Decapitalize lowercases the leading rune of a name unless the second rune
// is also uppercase, so "Name" becomes "name" but "URL" stays "URL".
func Decapitalize(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}

	if len(name) > size {
		second, _ := utf8.DecodeRuneInString(name[size:])
		if unicode.IsUpper(second) {
			return name
		}
	}

	return string(unicode.ToLower(first)) + name[size:]
}
