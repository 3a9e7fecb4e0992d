package main

import (
	"fmt"
	"os"

	"invention-disclosure-be/pkg/disclosure"
	"invention-disclosure-be/pkg/disclosure/section"

	"github.com/fatih/color"
)

// Verifies that a LaTeX template carries exactly one placeholder per known
// section before it is deployed.
//
// Usage: go run ./cmd/checktemplate <template.tex>
func main() {
	if len(os.Args) < 2 {
		color.Red("Usage: checktemplate <template.tex>")
		os.Exit(1)
	}

	path := os.Args[1]
	raw, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read %s: %v", path, err)
		os.Exit(1)
	}

	color.Cyan("Checking template %s", path)

	if err := disclosure.VerifyTemplate(string(raw)); err != nil {
		color.Red("Template is invalid: %v", err)
		os.Exit(1)
	}

	for _, id := range section.All() {
		fmt.Printf("  %s %s\n", color.GreenString("✓"), id.Placeholder())
	}

	color.Green("Template OK: %d sections", len(section.All()))
}
