package latex

import "strings"

// Escape makes free text safe to embed in a LaTeX document body.
// It is a single left-to-right pass over the original input: each rune is
// classified and emitted exactly once, so a backslash introduced by one
// substitution can never be picked up again by another. Sequential
// whole-string replacement would double-escape; do not rewrite it that way.
// Escape is total and deliberately NOT idempotent.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '&', '%', '$', '#', '_', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
