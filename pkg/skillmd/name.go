package skillmd

import (
	"regexp"
	"strings"
)

var (
	kebabPattern    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	disallowedChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	hyphenRuns      = regexp.MustCompile(`-{2,}`)
)

// NormalizeName converts a free-text title into a kebab-case skill name:
// trim, lowercase, strip everything outside [a-z0-9\s-], collapse
// whitespace runs to single hyphens, collapse hyphen runs, and trim
// leading/trailing hyphens. changed reports whether the result differs from
// the trimmed input, so callers can tell the user the name was adjusted.
//
// An input with no usable characters normalizes to ""; callers must treat
// that as "no name supplied" rather than writing a file with an empty name.
func NormalizeName(raw string) (name string, changed bool) {
	trimmed := strings.TrimSpace(raw)

	name = strings.ToLower(trimmed)
	name = disallowedChars.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, "-")
	name = hyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	return name, name != trimmed
}

// IsKebabCase reports whether s is lowercase alphanumeric segments joined
// by single hyphens, with no leading, trailing, or doubled hyphens.
func IsKebabCase(s string) bool {
	return kebabPattern.MatchString(s)
}

// Titleize turns a kebab-case name into a document title: segments split on
// hyphens, each capitalized, joined with spaces.
func Titleize(name string) string {
	segments := strings.Split(name, "-")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		segments[i] = strings.ToUpper(segment[:1]) + segment[1:]
	}
	return strings.Join(segments, " ")
}
