package disclosure

import (
	"fmt"
	"strings"

	"invention-disclosure-be/pkg/disclosure/section"
)

// Managed-block markers are LaTeX comment lines, so an un-compiled document
// stays valid markup. The placeholder token itself is a permanent anchor and
// is never removed.
func startMarker(id section.ID) string { return "% start:" + string(id) }
func endMarker(id section.ID) string   { return "% end:" + string(id) }

// ApplyEdit replaces the managed block for one section in a single
// line-oriented pass: any existing block for the section is dropped (markers
// included) and a fresh block is emitted right after the placeholder line.
// Every other line, including other sections' blocks, passes through
// byte-for-byte. Repeated identical calls yield identical documents.
//
// When the placeholder is absent the input is returned unchanged together
// with ErrPlaceholderNotFound; losing content silently is not an option.
func ApplyEdit(document string, id section.ID, sanitized string) (string, error) {
	placeholder := id.Placeholder()
	start := startMarker(id)
	end := endMarker(id)

	lines := strings.Split(document, "\n")
	out := make([]string, 0, len(lines)+3)

	inserted := false
	skipping := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if skipping {
			if trimmed == end {
				skipping = false
			}
			continue
		}
		if trimmed == start {
			skipping = true
			continue
		}

		out = append(out, line)

		// Insert after the first placeholder occurrence only; the template
		// contract is one anchor per section.
		if !inserted && strings.Contains(line, placeholder) {
			out = append(out, start, strings.TrimSpace(sanitized), end)
			inserted = true
		}
	}

	if !inserted {
		return document, fmt.Errorf("%w: %s", ErrPlaceholderNotFound, id)
	}

	return strings.Join(out, "\n"), nil
}
