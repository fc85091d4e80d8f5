package slug

import (
	"strconv"
	"strings"
)

// Make converts a human label into a stable identifier: lowercase,
// non-alphanumeric runs collapse to a single hyphen, leading and trailing
// hyphens are trimmed.
func Make(label string) string {
	var builder strings.Builder

	lastHyphen := false

	for _, r := range strings.ToLower(label) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')

		if isAlnum {
			builder.WriteRune(r)
			lastHyphen = false

			continue
		}

		if !lastHyphen && builder.Len() > 0 {
			builder.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(builder.String(), "-")
}

// MakeUnique slugifies the label and disambiguates collisions with a numeric
// suffix: make-bed, make-bed-2, make-bed-3, ...
func MakeUnique(label string, taken func(string) bool) string {
	base := Make(label)
	if base == "" {
		base = "task"
	}

	if !taken(base) {
		return base
	}

	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
