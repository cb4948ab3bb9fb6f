package skillmd

import "strings"

// ExtractField pulls one field value out of a GitHub issue-form body. The
// rendered body uses ###-level headings as field delimiters, so the value
// is the trimmed text between the heading matching label (case-insensitive)
// and the next ### heading or end of document.
//
// Returns "" when the heading is absent or its text is empty after
// trimming; callers must not distinguish the two cases. This is coupled to
// the issue-form renderer's output shape and is deliberately not a full
// Markdown parser.
func ExtractField(body, label string) string {
	lines := strings.Split(body, "\n")
	want := strings.ToLower(strings.TrimSpace(label))

	for i, line := range lines {
		heading, ok := strings.CutPrefix(strings.TrimSpace(line), "###")
		if !ok || strings.ToLower(strings.TrimSpace(heading)) != want {
			continue
		}

		var value []string
		for _, next := range lines[i+1:] {
			if strings.HasPrefix(strings.TrimSpace(next), "###") {
				break
			}
			value = append(value, next)
		}
		return strings.TrimSpace(strings.Join(value, "\n"))
	}

	return ""
}
