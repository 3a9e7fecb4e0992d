package disclosure

import (
	"fmt"
	"regexp"
	"strings"

	"invention-disclosure-be/pkg/disclosure/section"
)

var placeholderPattern = regexp.MustCompile(`<<([A-Z0-9_]+)>>`)

// VerifyTemplate checks that the template and the section registry agree:
// every canonical id has exactly its placeholder anchor in the template, and
// every placeholder token maps to a known id. A mismatch is a configuration
// defect; callers run this at startup and refuse to serve on error.
func VerifyTemplate(template string) error {
	found := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		found[m[1]] = true
	}

	var missing, unknown []string

	for _, id := range section.All() {
		if !found[string(id)] {
			missing = append(missing, string(id))
		}
		delete(found, string(id))
	}
	for name := range found {
		unknown = append(unknown, name)
	}

	if len(missing) == 0 && len(unknown) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("template is missing placeholders: %s", strings.Join(missing, ", ")))
	}
	if len(unknown) > 0 {
		parts = append(parts, fmt.Sprintf("template has placeholders with no registered section: %s", strings.Join(unknown, ", ")))
	}
	return fmt.Errorf("template/registry mismatch: %s", strings.Join(parts, "; "))
}
