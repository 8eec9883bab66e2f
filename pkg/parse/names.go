package parse

import (
	"strings"
	"unicode/utf8"
)

// Initials abbreviates given names the APA way: "Paul J." becomes "P. J." and "Jean-Paul" becomes "J.-P.".
func Initials(given string) string {
	names := strings.Fields(strings.TrimRight(strings.TrimSpace(given), "."))

	initials := make([]string, 0, len(names))
	for _, name := range names {
		var parts []string
		for _, part := range strings.Split(name, "-") {
			if r, _ := utf8.DecodeRuneInString(part); r != utf8.RuneError {
				parts = append(parts, string(r)+".")
			}
		}
		if len(parts) != 0 {
			initials = append(initials, strings.Join(parts, "-"))
		}
	}

	return strings.Join(initials, " ")
}

// SplitName splits a full name into given and family names assuming that the last word is the family name.
// Single-letter given names are treated as initials.
func SplitName(fullName string) (given string, family string) {
	names := strings.Fields(fullName)
	if len(names) == 0 {
		return "", ""
	}

	givenNames := names[:len(names)-1]
	for i, name := range givenNames {
		if utf8.RuneCountInString(name) == 1 {
			givenNames[i] = name + "."
		}
	}

	return strings.Join(givenNames, " "), names[len(names)-1]
}
